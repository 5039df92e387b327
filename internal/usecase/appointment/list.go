package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
	"github.com/BruksfildServices01/clinic-admin/internal/pagination"
	"github.com/BruksfildServices01/clinic-admin/internal/timezone"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

type ListAppointmentsInput struct {
	Query string
	Date  *time.Time
	From  *time.Time
	To    *time.Time
	Page  pagination.Params
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]models.Appointment, int64, error) {
	return uc.repo.ListAppointments(ctx, domain.ListFilter{
		Query:  in.Query,
		Date:   in.Date,
		From:   in.From,
		To:     in.To,
		Offset: in.Page.Offset(),
		Limit:  in.Page.PageSize,
	})
}

// ListTodayAppointments returns the appointments of the current clinic day
// ordered by time.
type ListTodayAppointments struct {
	repo     domain.Repository
	timezone string
}

func NewListTodayAppointments(repo domain.Repository, tz string) *ListTodayAppointments {
	return &ListTodayAppointments{repo: repo, timezone: tz}
}

func (uc *ListTodayAppointments) Execute(ctx context.Context) ([]models.Appointment, error) {
	return uc.repo.ListAppointmentsForDay(ctx, timezone.TodayIn(uc.timezone))
}

package billing

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-admin/internal/domain/billing"
	"github.com/BruksfildServices01/clinic-admin/internal/httperr"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
	"github.com/BruksfildServices01/clinic-admin/internal/pagination"
)

type ListSessions struct {
	repo domain.Repository
}

func NewListSessions(repo domain.Repository) *ListSessions {
	return &ListSessions{repo: repo}
}

func (uc *ListSessions) Execute(
	ctx context.Context,
	query string,
	p pagination.Params,
) ([]models.Session, int64, error) {
	return uc.repo.ListSessions(ctx, domain.SessionFilter{
		Query:  query,
		Offset: p.Offset(),
		Limit:  p.PageSize,
	})
}

type GetSession struct {
	repo domain.Repository
}

func NewGetSession(repo domain.Repository) *GetSession {
	return &GetSession{repo: repo}
}

func (uc *GetSession) Execute(ctx context.Context, id uint) (*models.Session, error) {
	s, err := uc.repo.GetSession(ctx, id)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusinessMsg("session_not_found", "Session not found.")
		}
		return nil, err
	}
	return s, nil
}

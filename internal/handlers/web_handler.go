package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-admin/internal/auth"
	"github.com/BruksfildServices01/clinic-admin/internal/dashboard"
	domain "github.com/BruksfildServices01/clinic-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-admin/internal/dto"
	"github.com/BruksfildServices01/clinic-admin/internal/httpresp"
	"github.com/BruksfildServices01/clinic-admin/internal/pagination"
	"github.com/BruksfildServices01/clinic-admin/internal/report"
	"github.com/BruksfildServices01/clinic-admin/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-admin/internal/usecase/appointment"
	ucBilling "github.com/BruksfildServices01/clinic-admin/internal/usecase/billing"
	"github.com/BruksfildServices01/clinic-admin/internal/web"
)

// WebHandler renders the admin pages. List pages reuse the API queries and
// show the first page matching query and page.
type WebHandler struct {
	issuer       *auth.Issuer
	dashboard    *dashboard.Service
	patients     *PatientHandler
	treatments   *TreatmentHandler
	stocks       *StockHandler
	appointments *ucAppointment.ListAppointments
	sessions     *ucBilling.ListSessions
	clinicName   string
	timezone     string
	log          *zap.Logger
}

type WebDeps struct {
	Issuer       *auth.Issuer
	Dashboard    *dashboard.Service
	Patients     *PatientHandler
	Treatments   *TreatmentHandler
	Stocks       *StockHandler
	Appointments *ucAppointment.ListAppointments
	Sessions     *ucBilling.ListSessions
	ClinicName   string
	Timezone     string
}

func NewWebHandler(deps WebDeps, log *zap.Logger) *WebHandler {
	return &WebHandler{
		issuer:       deps.Issuer,
		dashboard:    deps.Dashboard,
		patients:     deps.Patients,
		treatments:   deps.Treatments,
		stocks:       deps.Stocks,
		appointments: deps.Appointments,
		sessions:     deps.Sessions,
		clinicName:   deps.ClinicName,
		timezone:     deps.Timezone,
		log:          log,
	}
}

const pageLoadError = "Unable to load records. Please try again."

func (h *WebHandler) page(c *gin.Context, page, title string, extra gin.H) {
	data := gin.H{
		"Page":       page,
		"Title":      title,
		"ClinicName": h.clinicName,
		"Nav":        web.Nav,
		"Active":     "/" + page,
	}
	for k, v := range extra {
		data[k] = v
	}
	c.HTML(http.StatusOK, "base", data)
}

func (h *WebHandler) listed(c *gin.Context, err error, what string) string {
	if err == nil {
		return ""
	}
	h.log.Error("unable to load "+what, zap.Error(err), zap.String("path", c.Request.URL.Path))
	return pageLoadError
}

// Root sends signed-in admins to the dashboard and everyone else to login.
func (h *WebHandler) Root(c *gin.Context) {
	if _, present, err := h.issuer.FromRequest(c); present && err == nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *WebHandler) Login(c *gin.Context) {
	h.page(c, "login", "Sign in", nil)
}

func (h *WebHandler) Dashboard(c *gin.Context) {
	h.page(c, "dashboard", "Dashboard", gin.H{
		"Summary": h.dashboard.Summary(c.Request.Context()),
	})
}

func (h *WebHandler) Patients(c *gin.Context) {
	p := pagination.FromContext(c)
	query := strings.TrimSpace(c.Query("query"))

	rows, total, err := h.patients.list(c.Request.Context(), query, p)
	h.page(c, "patients", "Patients", gin.H{
		"Rows":  rows,
		"Meta":  httpresp.NewMeta(p, total, query),
		"Query": query,
		"Error": h.listed(c, err, "patients"),
	})
}

func (h *WebHandler) Treatments(c *gin.Context) {
	p := pagination.FromContext(c)
	query := strings.TrimSpace(c.Query("query"))

	rows, total, err := h.treatments.list(c.Request.Context(), query, p)
	h.page(c, "treatments", "Treatments", gin.H{
		"Rows":  rows,
		"Meta":  httpresp.NewMeta(p, total, query),
		"Query": query,
		"Error": h.listed(c, err, "treatments"),
	})
}

func (h *WebHandler) Appointments(c *gin.Context) {
	p := pagination.FromContext(c)
	query := strings.TrimSpace(c.Query("query"))

	rows, total, err := h.appointments.Execute(c.Request.Context(), ucAppointment.ListAppointmentsInput{
		Query: query,
		Page:  p,
	})
	h.page(c, "appointments", "Appointments", gin.H{
		"Rows":  dto.NewAppointments(rows),
		"Meta":  httpresp.NewMeta(p, total, query),
		"Query": query,
		"Error": h.listed(c, err, "appointments"),
	})
}

func (h *WebHandler) Sessions(c *gin.Context) {
	p := pagination.FromContext(c)
	query := strings.TrimSpace(c.Query("query"))

	rows, total, err := h.sessions.Execute(c.Request.Context(), query, p)
	h.page(c, "sessions", "Billing Sessions", gin.H{
		"Rows":  dto.NewSessions(rows),
		"Meta":  httpresp.NewMeta(p, total, query),
		"Query": query,
		"Error": h.listed(c, err, "sessions"),
	})
}

func (h *WebHandler) Stocks(c *gin.Context) {
	p := pagination.FromContext(c)
	query := strings.TrimSpace(c.Query("query"))
	ctx := c.Request.Context()

	rows, total, err := h.stocks.list(ctx, StockFilter{Query: query}, p)
	data := gin.H{
		"Rows":  rows,
		"Meta":  httpresp.NewMeta(p, total, query),
		"Query": query,
	}
	if err == nil {
		var v valuation
		if v, err = h.stocks.valuation(ctx); err == nil {
			data["Valuation"] = &v
		}
	}
	data["Error"] = h.listed(c, err, "stocks")

	h.page(c, "stocks", "Stocks", data)
}

func (h *WebHandler) Reporting(c *gin.Context) {
	r := report.ParseRange(c.Query("from"), c.Query("to"), timezone.TodayIn(h.timezone))
	h.page(c, "reporting", "Reporting", gin.H{
		"From": r.From.Format(domain.DateLayout),
		"To":   r.To.AddDate(0, 0, -1).Format(domain.DateLayout),
	})
}

package routes

import (
	"html/template"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-admin/internal/archive"
	"github.com/BruksfildServices01/clinic-admin/internal/audit"
	"github.com/BruksfildServices01/clinic-admin/internal/auth"
	"github.com/BruksfildServices01/clinic-admin/internal/cache"
	"github.com/BruksfildServices01/clinic-admin/internal/config"
	"github.com/BruksfildServices01/clinic-admin/internal/dashboard"
	"github.com/BruksfildServices01/clinic-admin/internal/handlers"
	infraRepo "github.com/BruksfildServices01/clinic-admin/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-admin/internal/middleware"
	"github.com/BruksfildServices01/clinic-admin/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-admin/internal/usecase/appointment"
	ucBilling "github.com/BruksfildServices01/clinic-admin/internal/usecase/billing"
)

// Deps are the long-lived collaborators built by the serve command.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Log       *zap.Logger
	Audit     *audit.Dispatcher
	Cache     cache.Store
	Uploads   *archive.Background
	Templates *template.Template
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	db := d.DB

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.SessionTTL, cfg.IsProduction())

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.CORSMiddleware(),
		middleware.PageGuard(issuer),
	)

	if d.Templates != nil {
		r.SetHTMLTemplate(d.Templates)
	}

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	sessionRepo := infraRepo.NewSessionGormRepository(db)

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit, cfg.ClinicTimezone)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(appointmentRepo, cfg.ClinicTimezone)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(appointmentRepo, d.Audit)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	listTodayUC := ucAppointment.NewListTodayAppointments(appointmentRepo, cfg.ClinicTimezone)

	createSessionUC := ucBilling.NewCreateSession(sessionRepo, d.Audit)
	setSessionPaidUC := ucBilling.NewSetSessionPaid(sessionRepo, d.Audit)
	listSessionsUC := ucBilling.NewListSessions(sessionRepo)
	getSessionUC := ucBilling.NewGetSession(sessionRepo)

	dashboardSvc := dashboard.NewService(db, listTodayUC, sessionRepo, d.Cache, d.Log)

	// ======================================================
	// HANDLERS
	// ======================================================
	invoiceSettings := handlers.InvoiceSettings{
		ClinicName: cfg.ClinicName,
		Currency:   cfg.Currency,
		Location:   timezone.Location(cfg.ClinicTimezone),
	}

	authHandler := handlers.NewAuthHandler(db, issuer, d.Audit, d.Log)
	patientHandler := handlers.NewPatientHandler(db, d.Log)
	treatmentHandler := handlers.NewTreatmentHandler(db, d.Log)
	stockHandler := handlers.NewStockHandler(db, d.Log)
	stockTypeHandler := handlers.NewStockTypeHandler(db, d.Log)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		deleteAppointmentUC,
		listAppointmentsUC,
		d.Log,
	)

	sessionHandler := handlers.NewSessionHandler(
		createSessionUC,
		setSessionPaidUC,
		listSessionsUC,
		getSessionUC,
		d.Uploads,
		invoiceSettings,
		d.Log,
	)

	reportHandler := handlers.NewReportHandler(db, invoiceSettings, cfg.ClinicTimezone, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(db, d.Log)
	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc)

	webHandler := handlers.NewWebHandler(handlers.WebDeps{
		Issuer:       issuer,
		Dashboard:    dashboardSvc,
		Patients:     patientHandler,
		Treatments:   treatmentHandler,
		Stocks:       stockHandler,
		Appointments: listAppointmentsUC,
		Sessions:     listSessionsUC,
		ClinicName:   cfg.ClinicName,
		Timezone:     cfg.ClinicTimezone,
	}, d.Log)

	// ======================================================
	// PAGES (HTML)
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", webHandler.Root)
	r.GET("/login", webHandler.Login)
	r.GET("/dashboard", webHandler.Dashboard)
	r.GET("/patients", webHandler.Patients)
	r.GET("/treatments", webHandler.Treatments)
	r.GET("/appointments", webHandler.Appointments)
	r.GET("/sessions", webHandler.Sessions)
	r.GET("/stocks", webHandler.Stocks)
	r.GET("/reporting", webHandler.Reporting)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(
			middleware.APIGuard(issuer),
			middleware.InvalidateOnWrite(dashboardSvc.Invalidate),
		)
		{
			secured.GET("/auth/me", authHandler.Me)
			secured.GET("/dashboard", dashboardHandler.Summary)

			secured.GET("/patients", patientHandler.List)
			secured.POST("/patients", patientHandler.Create)
			secured.PATCH("/patients/:id", patientHandler.Update)

			secured.GET("/treatments", treatmentHandler.List)
			secured.POST("/treatments", treatmentHandler.Create)
			secured.PATCH("/treatments/:id", treatmentHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			// ------------------------------
			// BILLING
			// ------------------------------
			secured.GET("/sessions", sessionHandler.List)
			secured.POST("/sessions", sessionHandler.Create)
			secured.GET("/sessions/:id", sessionHandler.Get)
			secured.PATCH("/sessions/:id", sessionHandler.SetPaid)
			secured.GET("/sessions/:id/invoice", sessionHandler.Invoice)

			// ------------------------------
			// INVENTORY
			// ------------------------------
			secured.GET("/stocks", stockHandler.List)
			secured.POST("/stocks", stockHandler.Create)
			secured.PATCH("/stocks/:id", stockHandler.Update)

			secured.GET("/stock-types", stockTypeHandler.List)
			secured.POST("/stock-types", stockTypeHandler.Create)
			secured.PATCH("/stock-types/:id", stockTypeHandler.Update)

			// ------------------------------
			// REPORTS
			// ------------------------------
			secured.GET("/reports/sessions", reportHandler.Sessions)
			secured.GET("/reports/sessions/pdf", reportHandler.SessionsPDF)
			secured.GET("/reports/sessions/xlsx", reportHandler.SessionsXLSX)
			secured.GET("/reports/medicines", reportHandler.Medicines)
			secured.GET("/reports/medicines/pdf", reportHandler.MedicinesPDF)
			secured.GET("/reports/medicines/xlsx", reportHandler.MedicinesXLSX)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}

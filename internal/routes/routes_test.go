package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-admin/internal/auth"
	"github.com/BruksfildServices01/clinic-admin/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-admin/internal/db"
	"github.com/BruksfildServices01/clinic-admin/internal/dbtest"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
	"github.com/BruksfildServices01/clinic-admin/internal/timezone"
	"github.com/BruksfildServices01/clinic-admin/internal/web"
)

const testTimezone = "Asia/Colombo"

type server struct {
	t      *testing.T
	r      *gin.Engine
	db     *gorm.DB
	cookie *http.Cookie
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t)
	cfg := &config.Config{
		Env:            "development",
		JWTSecret:      "test-secret",
		SessionTTL:     time.Hour,
		ClinicName:     "Test Clinic",
		ClinicTimezone: testTimezone,
		Currency:       "LKR",
	}

	tpl, err := web.Templates(cfg.Currency, timezone.Location(cfg.ClinicTimezone))
	if err != nil {
		t.Fatalf("templates: %v", err)
	}

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:        db,
		Config:    cfg,
		Log:       zap.NewNop(),
		Templates: tpl,
	})

	return &server{t: t, r: r, db: db}
}

func (s *server) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	rec := httptest.NewRecorder()
	s.r.ServeHTTP(rec, req)
	return rec
}

func (s *server) login() {
	s.t.Helper()

	if _, err := dbpkg.SeedAdmin(context.Background(), s.db, "admin", "admin123"); err != nil {
		s.t.Fatalf("seed admin: %v", err)
	}
	rec := s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "admin123"})
	if rec.Code != http.StatusOK {
		s.t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			s.cookie = c
		}
	}
	if s.cookie == nil {
		s.t.Fatal("login did not set the session cookie")
	}
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	if dst != nil {
		if err := json.Unmarshal(env.Data, dst); err != nil {
			t.Fatalf("decode data %s: %v", env.Data, err)
		}
	}
	return env
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

// ------------------------------------------------------
// Auth
// ------------------------------------------------------

func TestAuthFlow(t *testing.T) {
	s := newServer(t)

	expectStatus(t, s.do(http.MethodGet, "/health", nil), http.StatusOK)
	expectStatus(t, s.do(http.MethodGet, "/api/patients", nil), http.StatusUnauthorized)

	rec := s.do(http.MethodGet, "/dashboard", nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Errorf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = s.do(http.MethodGet, "/", nil)
	if rec.Header().Get("Location") != "/login" {
		t.Errorf("expected / to redirect to /login, got %q", rec.Header().Get("Location"))
	}

	expectStatus(t, s.do(http.MethodGet, "/login", nil), http.StatusOK)

	rec = s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin"})
	expectStatus(t, rec, http.StatusBadRequest)
	if env := decode(t, rec, nil); env.Message != "Username and password are required." {
		t.Errorf("unexpected message %q", env.Message)
	}

	if _, err := dbpkg.SeedAdmin(context.Background(), s.db, "admin", "admin123"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	rec = s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "nope"})
	expectStatus(t, rec, http.StatusUnauthorized)
	if env := decode(t, rec, nil); env.Message != "Invalid username or password." {
		t.Errorf("unexpected message %q", env.Message)
	}

	s.login()

	rec = s.do(http.MethodGet, "/login", nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/dashboard" {
		t.Errorf("expected /login to redirect to /dashboard, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = s.do(http.MethodGet, "/dashboard", nil)
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Dashboard Overview") {
		t.Error("dashboard page not rendered")
	}

	var me struct {
		Username string `json:"username"`
	}
	rec = s.do(http.MethodGet, "/api/auth/me", nil)
	expectStatus(t, rec, http.StatusOK)
	decode(t, rec, &me)
	if me.Username != "admin" {
		t.Errorf("unexpected admin %q", me.Username)
	}

	rec = s.do(http.MethodPost, "/api/auth/logout", nil)
	expectStatus(t, rec, http.StatusOK)
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("logout did not clear the cookie")
	}
}

// ------------------------------------------------------
// Patients
// ------------------------------------------------------

func TestPatientsAPI(t *testing.T) {
	s := newServer(t)
	s.login()

	rec := s.do(http.MethodPost, "/api/patients", map[string]string{
		"name": "Kasun Perera", "phone": "077 123 4567", "email": "kasun@example.com",
	})
	expectStatus(t, rec, http.StatusCreated)

	var created models.Patient
	decode(t, rec, &created)
	if created.Phone != "0771234567" {
		t.Errorf("phone not normalized: %q", created.Phone)
	}

	rec = s.do(http.MethodPost, "/api/patients", map[string]string{"name": "Other", "phone": "077-123-4567"})
	expectStatus(t, rec, http.StatusConflict)
	if env := decode(t, rec, nil); env.Message != "A patient with that phone already exists." {
		t.Errorf("unexpected message %q", env.Message)
	}

	rec = s.do(http.MethodPost, "/api/patients", map[string]string{"phone": "123"})
	expectStatus(t, rec, http.StatusBadRequest)
	if env := decode(t, rec, nil); len(env.Errors) != 2 {
		t.Errorf("expected both validation errors, got %v", env.Errors)
	}

	s.do(http.MethodPost, "/api/patients", map[string]string{"name": "Nimal Silva", "phone": "0712345678"})

	rec = s.do(http.MethodGet, "/api/patients?query=kasun", nil)
	expectStatus(t, rec, http.StatusOK)
	var meta struct {
		TotalCount int64  `json:"totalCount"`
		TotalPages int    `json:"totalPages"`
		Query      string `json:"query"`
	}
	env := decode(t, rec, nil)
	if err := json.Unmarshal(env.Meta, &meta); err != nil {
		t.Fatalf("meta: %v", err)
	}
	if meta.TotalCount != 1 || meta.TotalPages != 1 || meta.Query != "kasun" {
		t.Errorf("unexpected meta %+v", meta)
	}

	rec = s.do(http.MethodPatch, fmt.Sprintf("/api/patients/%d", created.ID), map[string]string{
		"name": "Kasun P", "phone": "0712345678",
	})
	expectStatus(t, rec, http.StatusConflict)

	rec = s.do(http.MethodPatch, fmt.Sprintf("/api/patients/%d", created.ID), map[string]string{
		"name": "Kasun P", "phone": "0771234567",
	})
	expectStatus(t, rec, http.StatusOK)

	expectStatus(t, s.do(http.MethodPatch, "/api/patients/999", map[string]string{
		"name": "Ghost", "phone": "0700000000",
	}), http.StatusNotFound)
	expectStatus(t, s.do(http.MethodPatch, "/api/patients/abc", map[string]string{}), http.StatusBadRequest)

	rec = s.do(http.MethodGet, "/patients?query=nimal", nil)
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Nimal Silva") || strings.Contains(rec.Body.String(), "Kasun P") {
		t.Error("patients page did not apply the search")
	}
}

func TestSearchMatchesWildcardsLiterally(t *testing.T) {
	s := newServer(t)
	s.login()

	for _, tr := range []models.Treatment{
		{Code: "OIL", Name: "Oil Massage", Price: decimal.NewFromInt(1500)},
		{Code: "A_B", Name: "Acupuncture Basic", Price: decimal.NewFromInt(2000)},
		{Code: "HRB", Name: "100% Herbal Wrap", Price: decimal.NewFromInt(2500)},
	} {
		if err := s.db.Create(&tr).Error; err != nil {
			t.Fatalf("seed treatment: %v", err)
		}
	}

	tests := []struct {
		query string
		want  int64
	}{
		{"%25", 1},
		{"_", 1},
		{"a_b", 1},
		{"oil", 1},
		{"%5C", 0},
	}
	for _, tt := range tests {
		rec := s.do(http.MethodGet, "/api/treatments?query="+tt.query, nil)
		expectStatus(t, rec, http.StatusOK)

		var meta struct {
			TotalCount int64 `json:"totalCount"`
		}
		env := decode(t, rec, nil)
		if err := json.Unmarshal(env.Meta, &meta); err != nil {
			t.Fatalf("meta: %v", err)
		}
		if meta.TotalCount != tt.want {
			t.Errorf("query %q: expected %d rows, got %d", tt.query, tt.want, meta.TotalCount)
		}
	}

	rec := s.do(http.MethodGet, "/api/stocks?query=%25", nil)
	expectStatus(t, rec, http.StatusOK)
	var stocks []models.MedicineStock
	decode(t, rec, &stocks)
	if len(stocks) != 0 {
		t.Errorf("expected no stock rows for %%, got %d", len(stocks))
	}
}

func TestOversizedAmountsAreRejected(t *testing.T) {
	s := newServer(t)
	s.login()

	for _, body := range []string{
		`{"code":"BIG","name":"Big","price":1e20}`,
		`{"code":"BIG","name":"Big","price":"100000000"}`,
	} {
		rec := s.do(http.MethodPost, "/api/treatments", body)
		expectStatus(t, rec, http.StatusBadRequest)
		if env := decode(t, rec, nil); len(env.Errors) != 1 {
			t.Errorf("%s: expected one validation error, got %v", body, env.Errors)
		}
	}
}

// ------------------------------------------------------
// Inventory and billing
// ------------------------------------------------------

func TestBillingAPI(t *testing.T) {
	s := newServer(t)
	s.login()

	patient := models.Patient{Name: "Kasun Perera", Phone: "0771234567"}
	s.db.Create(&patient)
	treatment := models.Treatment{Code: "CONS", Name: "Consultation", Price: decimal.NewFromInt(1000)}
	s.db.Create(&treatment)

	// Stock types and stock.
	rec := s.do(http.MethodPost, "/api/stock-types", map[string]string{"name": "Tablets"})
	expectStatus(t, rec, http.StatusCreated)
	var stockType struct {
		ID uint `json:"id"`
	}
	decode(t, rec, &stockType)

	expectStatus(t, s.do(http.MethodPost, "/api/stock-types", map[string]string{"name": "Tablets"}), http.StatusConflict)

	stockBody := func(typeID uint, code string) string {
		return fmt.Sprintf(`{"medicineTypeId":%d,"code":%q,"name":"Paracetamol","quantity":5,"incomingPrice":"300","sellingPrice":"450.50"}`, typeID, code)
	}

	rec = s.do(http.MethodPost, "/api/stocks", stockBody(999, "PCM"))
	expectStatus(t, rec, http.StatusBadRequest)
	if env := decode(t, rec, nil); env.Message != "Please select a valid medicine type." {
		t.Errorf("unexpected message %q", env.Message)
	}

	rec = s.do(http.MethodPost, "/api/stocks", stockBody(stockType.ID, "pcm"))
	expectStatus(t, rec, http.StatusCreated)
	var stock models.MedicineStock
	decode(t, rec, &stock)
	if stock.Code != "PCM" || stock.Type.Name != "Tablets" {
		t.Errorf("unexpected stock %+v", stock)
	}

	expectStatus(t, s.do(http.MethodPost, "/api/stocks", stockBody(stockType.ID, "PCM")), http.StatusConflict)

	rec = s.do(http.MethodGet, "/api/stocks", nil)
	expectStatus(t, rec, http.StatusOK)
	var stockMeta struct {
		InventoryValue  float64 `json:"inventoryValue"`
		ExpectedRevenue float64 `json:"expectedRevenue"`
	}
	if err := json.Unmarshal(decode(t, rec, nil).Meta, &stockMeta); err != nil {
		t.Fatalf("meta: %v", err)
	}
	if stockMeta.InventoryValue != 1500 || stockMeta.ExpectedRevenue != 2252.5 {
		t.Errorf("unexpected valuation %+v", stockMeta)
	}

	rec = s.do(http.MethodGet, "/api/stock-types", nil)
	var types []struct {
		Name       string `json:"name"`
		StockCount int64  `json:"stockCount"`
	}
	decode(t, rec, &types)
	if len(types) != 1 || types[0].StockCount != 1 {
		t.Errorf("unexpected types %+v", types)
	}

	// Session totals: 2 x 1000 less a 200 session discount.
	rec = s.do(http.MethodPost, "/api/sessions", fmt.Sprintf(
		`{"patientId":%d,"discount":200,"items":[{"treatmentId":%d,"quantity":2,"unitPrice":1000,"discount":0}]}`,
		patient.ID, treatment.ID,
	))
	expectStatus(t, rec, http.StatusCreated)
	var session struct {
		ID         uint    `json:"id"`
		Total      float64 `json:"total"`
		ItemsTotal float64 `json:"itemsTotal"`
	}
	decode(t, rec, &session)
	if session.Total != 1800 || session.ItemsTotal != 2000 {
		t.Errorf("unexpected totals %+v", session)
	}

	rec = s.do(http.MethodPost, "/api/sessions", fmt.Sprintf(
		`{"patientId":%d,"items":[{"treatmentId":424242,"unitPrice":10}]}`, patient.ID,
	))
	expectStatus(t, rec, http.StatusBadRequest)

	// Medicine session settles stock once.
	rec = s.do(http.MethodPost, "/api/sessions", fmt.Sprintf(
		`{"patientId":%d,"medicines":[{"medicineId":%d,"quantity":2,"unitPrice":"450.50"}]}`,
		patient.ID, stock.ID,
	))
	expectStatus(t, rec, http.StatusCreated)
	var medSession struct {
		ID uint `json:"id"`
	}
	decode(t, rec, &medSession)

	path := fmt.Sprintf("/api/sessions/%d", medSession.ID)
	rec = s.do(http.MethodPatch, path, map[string]string{})
	expectStatus(t, rec, http.StatusBadRequest)
	if env := decode(t, rec, nil); env.Message != "isPaid boolean is required." {
		t.Errorf("unexpected message %q", env.Message)
	}

	for i := 0; i < 2; i++ {
		expectStatus(t, s.do(http.MethodPatch, path, map[string]bool{"isPaid": true}), http.StatusOK)
	}

	var p models.Patient
	s.db.First(&p, patient.ID)
	if p.LoyaltyPoints != 901 {
		t.Errorf("expected 901 loyalty points, got %d", p.LoyaltyPoints)
	}
	var st models.MedicineStock
	s.db.First(&st, stock.ID)
	if st.Quantity != 3 {
		t.Errorf("expected 3 units left, got %d", st.Quantity)
	}

	expectStatus(t, s.do(http.MethodGet, "/api/sessions/9999", nil), http.StatusNotFound)
	expectStatus(t, s.do(http.MethodPatch, "/api/sessions/9999", map[string]bool{"isPaid": true}), http.StatusNotFound)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/sessions/%d/invoice", session.ID), nil)
	expectStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("unexpected content type %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("invoice is not a PDF")
	}

	rec = s.do(http.MethodGet, "/api/sessions?query="+fmt.Sprint(session.ID), nil)
	expectStatus(t, rec, http.StatusOK)

	// Reports.
	rec = s.do(http.MethodGet, "/api/reports/medicines", nil)
	expectStatus(t, rec, http.StatusOK)
	var medRows []struct {
		Code     string  `json:"code"`
		Quantity int     `json:"quantity"`
		Revenue  float64 `json:"revenue"`
	}
	decode(t, rec, &medRows)
	if len(medRows) != 1 || medRows[0].Quantity != 2 || medRows[0].Revenue != 901 {
		t.Errorf("unexpected medicine report %+v", medRows)
	}

	rec = s.do(http.MethodGet, "/api/reports/sessions/xlsx", nil)
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Header().Get("Content-Disposition"), ".xlsx") {
		t.Errorf("unexpected disposition %q", rec.Header().Get("Content-Disposition"))
	}

	rec = s.do(http.MethodGet, "/api/reports/sessions/pdf", nil)
	expectStatus(t, rec, http.StatusOK)

	rec = s.do(http.MethodGet, "/api/audit-logs?entity=session", nil)
	expectStatus(t, rec, http.StatusOK)
}

// ------------------------------------------------------
// Appointments and dashboard
// ------------------------------------------------------

func TestAppointmentsAPI(t *testing.T) {
	s := newServer(t)
	s.login()

	patient := models.Patient{Name: "Ruwan", Phone: "0779876543"}
	s.db.Create(&patient)

	tomorrow := timezone.TodayIn(testTimezone).AddDate(0, 0, 1).Format("2006-01-02")

	rec := s.do(http.MethodPost, "/api/appointments", map[string]any{
		"patientId": patient.ID, "date": tomorrow, "time": "09:30",
	})
	expectStatus(t, rec, http.StatusCreated)
	var ap struct {
		ID     uint   `json:"id"`
		Date   string `json:"date"`
		Status string `json:"status"`
	}
	decode(t, rec, &ap)
	if ap.Date != tomorrow || ap.Status != "PENDING" {
		t.Errorf("unexpected appointment %+v", ap)
	}

	rec = s.do(http.MethodGet, "/api/appointments?date=2026-02-30", nil)
	expectStatus(t, rec, http.StatusBadRequest)
	if env := decode(t, rec, nil); env.Message != "Invalid date filter. Use YYYY-MM-DD format." {
		t.Errorf("unexpected message %q", env.Message)
	}

	rec = s.do(http.MethodGet, "/api/appointments?date="+tomorrow, nil)
	expectStatus(t, rec, http.StatusOK)
	var list []struct {
		ID uint `json:"id"`
	}
	decode(t, rec, &list)
	if len(list) != 1 {
		t.Errorf("expected one appointment, got %d", len(list))
	}

	rec = s.do(http.MethodPatch, fmt.Sprintf("/api/appointments/%d", ap.ID), map[string]any{
		"patientId": patient.ID, "date": tomorrow, "time": "10:00", "status": "CONFIRMED",
	})
	expectStatus(t, rec, http.StatusOK)

	path := fmt.Sprintf("/api/appointments/%d", ap.ID)
	expectStatus(t, s.do(http.MethodDelete, path, nil), http.StatusNoContent)
	expectStatus(t, s.do(http.MethodDelete, path, nil), http.StatusNotFound)
	expectStatus(t, s.do(http.MethodDelete, "/api/appointments/x", nil), http.StatusBadRequest)

	rec = s.do(http.MethodGet, "/api/dashboard", nil)
	expectStatus(t, rec, http.StatusOK)
	var sum struct {
		Counts struct {
			Patients int64 `json:"patients"`
		} `json:"counts"`
		HasError bool `json:"hasError"`
	}
	decode(t, rec, &sum)
	if sum.Counts.Patients != 1 || sum.HasError {
		t.Errorf("unexpected summary %+v", sum)
	}
}

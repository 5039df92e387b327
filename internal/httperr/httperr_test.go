package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrBusinessMsg("session_not_found", "Session not found."))

	if !IsBusiness(err, "session_not_found") {
		t.Error("expected wrapped business error to match")
	}
	if IsBusiness(err, "patient_not_found") {
		t.Error("expected different code not to match")
	}
	if err.Error() != "wrapped: Session not found." {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestAsValidation(t *testing.T) {
	err := fmt.Errorf("create: %w", NewValidation([]string{"Name is required.", "Phone number is required."}))

	ve, ok := AsValidation(err)
	if !ok {
		t.Fatal("expected validation error")
	}
	if len(ve.Errors) != 2 {
		t.Errorf("expected 2 errors, got %d", len(ve.Errors))
	}
}

func TestGormErrorClassification(t *testing.T) {
	if !IsNotFound(fmt.Errorf("x: %w", gorm.ErrRecordNotFound)) {
		t.Error("expected not found")
	}
	if !IsUniqueViolation(gorm.ErrDuplicatedKey) {
		t.Error("expected unique violation")
	}
	if !IsForeignKeyViolation(gorm.ErrForeignKeyViolated) {
		t.Error("expected fk violation")
	}
	if IsUniqueViolation(errors.New("boom")) {
		t.Error("plain error must not classify")
	}
}

func TestValidationBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Validation(c, []string{"Name is required."})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body HTTPError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "Validation failed." || len(body.Errors) != 1 {
		t.Errorf("unexpected body %+v", body)
	}
}

package validators

import (
	"regexp"
	"strings"
)

var (
	nonDigits    = regexp.MustCompile(`\D`)
	localPhoneRe = regexp.MustCompile(`^0\d{9}$`)
)

type PatientPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type PatientValues struct {
	Name    string
	Phone   string
	Email   *string
	Address *string
}

// NormalizePhone strips everything but digits.
func NormalizePhone(v string) string {
	return nonDigits.ReplaceAllString(v, "")
}

func ValidatePatient(p PatientPayload) (PatientValues, []string) {
	var errs []string

	v := PatientValues{
		Name:    strings.TrimSpace(p.Name),
		Phone:   NormalizePhone(p.Phone),
		Email:   optional(p.Email),
		Address: optional(p.Address),
	}

	if v.Name == "" {
		errs = append(errs, "Name is required.")
	}

	if v.Phone == "" {
		errs = append(errs, "Phone number is required.")
	} else if !localPhoneRe.MatchString(v.Phone) {
		errs = append(errs, "Phone number must be a valid Sri Lankan 10 digit number.")
	}

	if v.Email != nil && !IsEmailValid(*v.Email) {
		errs = append(errs, "Email address is invalid.")
	}

	return v, errs
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw         string
		want        string
		wantPresent bool
		wantErr     bool
	}{
		{``, "0", false, false},
		{`null`, "0", false, false},
		{`"  "`, "0", false, false},
		{`1000`, "1000", true, false},
		{`12.5`, "12.5", true, false},
		{`"1,250.75"`, "1250.75", true, false},
		{`"abc"`, "0", true, true},
		{`true`, "0", true, true},
		{`1e20`, "0", true, true},
		{`"2.5E3"`, "0", true, true},
		{`123456789012345678901234567890123`, "0", true, true},
	}

	for _, tt := range tests {
		d, present, err := Parse(json.RawMessage(tt.raw))
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%s) err = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if present != tt.wantPresent {
			t.Errorf("Parse(%s) present = %v, want %v", tt.raw, present, tt.wantPresent)
		}
		if !tt.wantErr && !d.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("Parse(%s) = %s, want %s", tt.raw, d, tt.want)
		}
	}
}

func TestWithinLimit(t *testing.T) {
	tests := map[string]bool{
		"0":            true,
		"99999999.99":  true,
		"-99999999.99": true,
		"100000000":    false,
		"99999999.991": false,
	}
	for in, want := range tests {
		if got := WithinLimit(decimal.RequireFromString(in)); got != want {
			t.Errorf("WithinLimit(%s) = %v, want %v", in, got, want)
		}
	}
}

func TestHasAtMostCents(t *testing.T) {
	if !HasAtMostCents(decimal.RequireFromString("10.25")) {
		t.Error("10.25 should be accepted")
	}
	if HasAtMostCents(decimal.RequireFromString("10.255")) {
		t.Error("10.255 should be rejected")
	}
}

func TestParseID(t *testing.T) {
	cases := map[string]uint{`3`: 3, `"42"`: 42}
	for raw, want := range cases {
		got, ok := ParseID(json.RawMessage(raw))
		if !ok || got != want {
			t.Errorf("ParseID(%s) = %d, %v", raw, got, ok)
		}
	}

	for _, raw := range []string{``, `0`, `-1`, `"x"`, `2.5`} {
		if _, ok := ParseID(json.RawMessage(raw)); ok {
			t.Errorf("ParseID(%s) should fail", raw)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := map[string]string{
		"0":         "LKR 0.00",
		"1800":      "LKR 1,800.00",
		"1234567.5": "LKR 1,234,567.50",
		"999.999":   "LKR 1,000.00",
		"-25":       "LKR -25.00",
	}
	for in, want := range tests {
		if got := Format("LKR", decimal.RequireFromString(in)); got != want {
			t.Errorf("Format(%s) = %q, want %q", in, got, want)
		}
	}
}

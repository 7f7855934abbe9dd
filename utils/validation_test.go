package utils

import (
	"testing"

	"github.com/LovationAdmin/wealth-sync/models"
)

type sample struct {
	Name     string  `json:"name" validate:"required,min=2"`
	Kind     string  `json:"kind" validate:"required,oneof=cash bank"`
	Balance  float64 `json:"balance" validate:"gte=0"`
	Amount   float64 `json:"amount" validate:"gt=0"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Day      string  `json:"day" validate:"required,datetime=2006-01-02"`
	Currency *string `json:"currency,omitempty" validate:"omitempty,len=3,alpha,uppercase"`
}

type defaulted struct {
	Kind string `json:"kind" validate:"required"`
}

func (d *defaulted) ApplyDefaults() {
	if d.Kind == "" {
		d.Kind = "cash"
	}
}

func TestValidateMessages(t *testing.T) {
	bad := "not-an-email"
	cur := "eur"
	fe := Validate(sample{
		Name:     "A",
		Kind:     "gold",
		Balance:  -1,
		Amount:   0,
		Email:    &bad,
		Day:      "01/02/2024",
		Currency: &cur,
	})

	want := map[string]string{
		"name":     "must be at least 2 characters",
		"kind":     "must be one of {cash, bank}",
		"balance":  "must be a non-negative number",
		"amount":   "must be a positive number",
		"email":    "must be a valid email address",
		"day":      "must be a date formatted as YYYY-MM-DD",
		"currency": "must be upper-case",
	}
	for field, msg := range want {
		got := fe[field]
		if len(got) == 0 || got[0] != msg {
			t.Errorf("%s: got %v, want %q", field, got, msg)
		}
	}
}

func TestCurrencyCodeIsThreeUpperCaseLetters(t *testing.T) {
	tests := []struct {
		currency string
		want     string
	}{
		{"EUR", ""},
		{"eur", "must be upper-case"},
		{"123", "must contain only letters"},
		{"$$$", "must contain only letters"},
		{"EU", "must be exactly 3 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			cur := tt.currency
			fe := Validate(models.ProfilePatch{Currency: &cur})
			if tt.want == "" {
				if fe != nil {
					t.Fatalf("unexpected errors %v", fe)
				}
				return
			}
			if got := fe["currency"]; len(got) == 0 || got[0] != tt.want {
				t.Fatalf("got %v, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateAcceptsValid(t *testing.T) {
	if fe := Validate(sample{Name: "Main", Kind: "bank", Amount: 1, Day: "2024-02-29"}); fe != nil {
		t.Fatalf("unexpected errors %v", fe)
	}
}

func TestValidateNonObject(t *testing.T) {
	fe := Validate(42)
	if len(fe["_"]) == 0 {
		t.Fatalf("expected a shape error, got %v", fe)
	}
}

func TestValidateInputAppliesDefaults(t *testing.T) {
	in, fe := ValidateInput(defaulted{})
	if fe != nil {
		t.Fatalf("unexpected errors %v", fe)
	}
	if in.Kind != "cash" {
		t.Fatalf("default not applied: %+v", in)
	}
}

func TestValidateEachKeysByIndex(t *testing.T) {
	items := []defaulted{{Kind: "a"}, {}}
	fe := ValidateEach(items)
	if len(fe["[1].kind"]) == 0 || len(fe) != 1 {
		t.Fatalf("unexpected errors %v", fe)
	}
}

func TestRequired(t *testing.T) {
	if Required("owner_id", "u1") != nil {
		t.Fatal("non-blank value reported")
	}
	if fe := Required("owner_id", "  "); fe["owner_id"][0] != "is required" {
		t.Fatalf("unexpected %v", fe)
	}
}

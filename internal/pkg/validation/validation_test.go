package validation

import "testing"

type signup struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Consent bool   `json:"consent" validate:"required"`
}

func TestStruct(t *testing.T) {
	if errs := Struct(signup{Name: "Ana", Email: "ana@example.com", Consent: true}); errs != nil {
		t.Fatalf("expected valid, got %v", errs)
	}

	errs := Struct(signup{Name: "A", Email: "nope"})
	if len(errs) != 3 {
		t.Fatalf("expected 3 field errors, got %v", errs)
	}
	if errs["email"] != "enter a valid email" {
		t.Fatalf("unexpected email message: %q", errs["email"])
	}
	if errs["name"] != "name must be at least 2 characters" {
		t.Fatalf("unexpected name message: %q", errs["name"])
	}
	if errs["consent"] != "consent must be accepted" {
		t.Fatalf("unexpected consent message: %q", errs["consent"])
	}
}

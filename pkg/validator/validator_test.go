package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type testPayload struct {
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
	Password    string `json:"password" validate:"required,min=8"`
}

func TestValidateStructSuccess(t *testing.T) {
	payload := testPayload{
		FullName:    "Sokha Chan",
		PhoneNumber: "+85512345678",
		Password:    "correct-horse",
	}

	if err := ValidateStruct(payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateStructFailures(t *testing.T) {
	payload := testPayload{
		FullName:    "",
		PhoneNumber: "not-a-phone",
		Password:    "short",
	}

	err := ValidateStruct(payload)
	if err == nil {
		t.Fatal("expected validation error")
	}

	vErrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}

	if len(vErrs) != 3 {
		t.Fatalf("expected 3 validation errors, got %d", len(vErrs))
	}

	foundPhone := false
	for _, v := range vErrs {
		if v.Field == "phone_number" {
			foundPhone = true
		}
	}

	if !foundPhone {
		t.Fatal("expected phone_number field to be present in validation errors")
	}
}

func TestPhoneRule(t *testing.T) {
	type payload struct {
		Phone string `validate:"phone"`
	}

	valid := []string{"+85512345678", "012 345 678", "012-345-678", "85512345678"}
	for _, phone := range valid {
		if err := ValidateStruct(payload{Phone: phone}); err != nil {
			t.Fatalf("expected %q to validate, got %v", phone, err)
		}
	}

	invalid := []string{"", "12345", "phone", "+855 call me", "123456789012345678"}
	for _, phone := range invalid {
		if err := ValidateStruct(payload{Phone: phone}); err == nil {
			t.Fatalf("expected %q to fail validation", phone)
		}
	}
}

func TestRegisterValidation(t *testing.T) {
	err := RegisterValidation("sixdigits", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) == 6
	})
	if err != nil {
		t.Fatalf("register validation: %v", err)
	}

	type custom struct {
		Value string `validate:"sixdigits"`
	}

	if err := ValidateStruct(custom{Value: "482913"}); err != nil {
		t.Fatalf("expected validation to pass, got %v", err)
	}
	if err := ValidateStruct(custom{Value: "1234"}); err == nil {
		t.Fatal("expected validation to fail for non-matching value")
	}
}

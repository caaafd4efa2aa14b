package validator_test

import (
	"marigold/shared/validator"
	"strings"
	"testing"
)

type guestTestStruct struct {
	Name   string `validate:"required" json:"name"`
	Email  string `validate:"required,email" json:"email"`
	Guests int    `validate:"gte=1,lte=10" json:"guests"`
	Status string `validate:"oneof=pending confirmed cancelled" json:"status"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *guestTestStruct
		expectError bool
	}{
		{
			name: "valid struct",
			data: &guestTestStruct{
				Name:   "Ayesha Khan",
				Email:  "ayesha@example.com",
				Guests: 2,
				Status: "confirmed",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &guestTestStruct{
				Email:  "ayesha@example.com",
				Guests: 2,
				Status: "confirmed",
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &guestTestStruct{
				Name:   "Ayesha Khan",
				Email:  "not-an-email",
				Guests: 2,
				Status: "confirmed",
			},
			expectError: true,
		},
		{
			name: "guests out of range",
			data: &guestTestStruct{
				Name:   "Ayesha Khan",
				Email:  "ayesha@example.com",
				Guests: 25,
				Status: "confirmed",
			},
			expectError: true,
		},
		{
			name: "invalid status",
			data: &guestTestStruct{
				Name:   "Ayesha Khan",
				Email:  "ayesha@example.com",
				Guests: 2,
				Status: "archived",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "deluxe",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid email",
			field:       "guest@example.com",
			tag:         "email",
			expectError: false,
		},
		{
			name:        "invalid email",
			field:       "guest@",
			tag:         "email",
			expectError: true,
		},
		{
			name:        "valid number in range",
			field:       3,
			tag:         "gte=0,lte=10",
			expectError: false,
		},
		{
			name:        "number out of range",
			field:       42,
			tag:         "gte=0,lte=10",
			expectError: true,
		},
		{
			name:        "valid oneof",
			field:       "confirmed",
			tag:         "oneof=pending confirmed cancelled",
			expectError: false,
		},
		{
			name:        "invalid oneof",
			field:       "archived",
			tag:         "oneof=pending confirmed cancelled",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"name":"Ayesha Khan","email":"ayesha@example.com","guests":2,"status":"confirmed"}`,
			expectError: false,
		},
		{
			name:        "invalid field value",
			jsonBody:    `{"name":"Ayesha Khan","email":"not-an-email","guests":2,"status":"confirmed"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":"Ayesha Khan","email":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data guestTestStruct
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	data := &guestTestStruct{}
	err := validator.ValidateStruct(data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "required") {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}

func TestValidationErrorHandling(t *testing.T) {
	data := &guestTestStruct{
		Name:   "",
		Email:  "invalid",
		Guests: 0,
		Status: "archived",
	}

	err := validator.ValidateStruct(data)
	if err == nil {
		t.Fatal("expected validation error")
	}

	if err.Error() == "" {
		t.Error("expected non-empty error message")
	}
}

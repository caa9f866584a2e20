package validation

import (
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name        string
		errors      []FieldError
		expectError string
	}{
		{"No errors", []FieldError{}, "validation error"},
		{"Single error", []FieldError{{Field: "title", Message: "title is required"}}, "validation error for field 'title': title is required"},
		{"Multiple errors", []FieldError{
			{Field: "title", Message: "too long"},
			{Field: "title", Message: "contains invalid characters"},
		}, "multiple validation errors: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := (&ValidationError{Errors: tt.errors}).Error()
			if !strings.HasPrefix(result, tt.expectError) {
				t.Errorf("ValidationError.Error() = %v, expected prefix %v", result, tt.expectError)
			}
		})
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	ve := NewValidationError()
	if got := ve.GetUserFriendlyMessage(); got != "Input validation failed" {
		t.Errorf("GetUserFriendlyMessage() = %q", got)
	}

	ve.AddRequiredError("title")
	if got := ve.GetUserFriendlyMessage(); got != "title is required" {
		t.Errorf("GetUserFriendlyMessage() = %q", got)
	}

	ve.AddInvalidLengthError("title", "x", 3)
	want := "Multiple validation errors occurred:\n- title is required\n- title must be at most 3 characters long"
	if got := ve.GetUserFriendlyMessage(); got != want {
		t.Errorf("GetUserFriendlyMessage() = %q, want %q", got, want)
	}
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("title")

	if !IsValidationError(ve) {
		t.Error("IsValidationError should be true for *ValidationError")
	}
	if !IsValidationError(fmt.Errorf("add task: %w", ve)) {
		t.Error("IsValidationError should see through wrapping")
	}
	if IsValidationError(fmt.Errorf("plain")) {
		t.Error("IsValidationError should be false for other errors")
	}
}

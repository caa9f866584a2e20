package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "42")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: 42" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "task not found: 42")
	}
	if err.Code != "NOT_FOUND" {
		t.Errorf("NewNotFoundError code = %v, want %v", err.Code, "NOT_FOUND")
	}

	resource, ok := err.GetContext("resource")
	if !ok || resource != "task" {
		t.Errorf("NewNotFoundError should set resource context")
	}
	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "42" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := NewDatabaseError("insert task", cause)

	if err.Type != ErrorTypeDatabase {
		t.Errorf("NewDatabaseError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Message != "database operation failed: insert task" {
		t.Errorf("NewDatabaseError message = %v", err.Message)
	}
	if err.Cause != cause {
		t.Errorf("NewDatabaseError cause = %v, want %v", err.Cause, cause)
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewDatabaseError should unwrap to its cause")
	}
}

func TestNewFetchError(t *testing.T) {
	cause := errors.New("no such table: tasks")
	err := NewFetchError(cause)

	if err.Type != ErrorTypeFetch {
		t.Errorf("NewFetchError type = %v, want %v", err.Type, ErrorTypeFetch)
	}
	if err.Code != "FETCH_FAILED" {
		t.Errorf("NewFetchError code = %v, want %v", err.Code, "FETCH_FAILED")
	}
	if err.Error() != "fetch: could not load tasks (caused by: no such table: tasks)" {
		t.Errorf("NewFetchError Error() = %q", err.Error())
	}
}

func TestNewCommitError(t *testing.T) {
	cause := errors.New("database is locked")
	err := NewCommitError("flush", cause)

	if err.Type != ErrorTypeCommit {
		t.Errorf("NewCommitError type = %v, want %v", err.Type, ErrorTypeCommit)
	}
	if err.Message != "could not save changes: flush" {
		t.Errorf("NewCommitError message = %v", err.Message)
	}
	operation, ok := err.GetContext("operation")
	if !ok || operation != "flush" {
		t.Errorf("NewCommitError should set operation context")
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewCommitError should unwrap to its cause")
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("id", "abc", "must be a number")

	if err.Message != "invalid input for id: must be a number" {
		t.Errorf("NewInvalidInputError message = %v", err.Message)
	}
	value, ok := err.GetContext("value")
	if !ok || value != "abc" {
		t.Errorf("NewInvalidInputError should set value context")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original error")
	err := WrapError(cause, ErrorTypeDatabase, "wrapped message")

	if err.Code != "database" {
		t.Errorf("WrapError code = %v, want %v", err.Code, "database")
	}
	if err.Cause != cause {
		t.Errorf("WrapError cause = %v, want %v", err.Cause, cause)
	}
}

func TestIsErrorType(t *testing.T) {
	wrapped := WrapError(NewCommitError("flush", nil), ErrorTypeDatabase, "outer")

	if !IsErrorType(NewFetchError(nil), ErrorTypeFetch) {
		t.Errorf("IsErrorType should return true for matching type")
	}
	if IsErrorType(errors.New("plain"), ErrorTypeFetch) {
		t.Errorf("IsErrorType should return false for regular error")
	}
	if !IsErrorType(wrapped, ErrorTypeDatabase) {
		t.Errorf("IsErrorType should match the outermost AppError")
	}
	if IsAppError(nil) {
		t.Errorf("IsAppError should return false for nil")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Validation error", NewValidationError("title is required", nil), "title is required"},
		{"Not found error", NewNotFoundError("task", "7"), "task not found: 7"},
		{"Database error", NewDatabaseError("query", errors.New("boom")), "A database error occurred. Please try again."},
		{"Timeout error", NewTimeoutError("query", "5s"), "The operation timed out. Please try again."},
		{"Fetch error", NewFetchError(errors.New("boom")), "Tasks could not be loaded. Showing the last known list."},
		{"Commit error", NewCommitError("flush", errors.New("boom")), "Your change could not be saved and was undone. Please try again."},
		{"Own user message", friendlyError{}, "title is required"},
		{"Wrapped own user message", fmt.Errorf("add task: %w", friendlyError{}), "title is required"},
		{"Regular error", errors.New("regular error"), "regular error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := GetUserMessage(tt.err); result != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// friendlyError stands in for error types that carry their own user-facing text
type friendlyError struct{}

func (friendlyError) Error() string                  { return "validation failed: title: required" }
func (friendlyError) GetUserFriendlyMessage() string { return "title is required" }

func TestHasUserMessage(t *testing.T) {
	if !HasUserMessage(NewCommitError("flush", nil)) {
		t.Error("HasUserMessage should accept AppErrors")
	}
	if !HasUserMessage(fmt.Errorf("wrapped: %w", friendlyError{})) {
		t.Error("HasUserMessage should accept wrapped errors with their own message")
	}
	if HasUserMessage(errors.New("plain")) {
		t.Error("HasUserMessage should reject plain errors")
	}
}

func TestGetErrorCode(t *testing.T) {
	if GetErrorCode(NewCommitError("flush", nil)) != "COMMIT_FAILED" {
		t.Errorf("GetErrorCode should return correct code for AppError")
	}
	if GetErrorCode(errors.New("regular error")) != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode should return UNKNOWN_ERROR for regular error")
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Validation error", NewValidationError("invalid", nil), false},
		{"Not found error", NewNotFoundError("task", "1"), false},
		{"Invalid input error", NewInvalidInputError("id", "x", "format"), false},
		{"Fetch error", NewFetchError(nil), true},
		{"Commit error", NewCommitError("flush", nil), true},
		{"Regular error", errors.New("regular error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ShouldLogError(tt.err); result != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", result, tt.expected)
			}
		})
	}
}

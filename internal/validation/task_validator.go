package validation

import (
	"task-list/internal/config"
)

// TaskValidator guards task input before it reaches the store.
// The store accepts any title; keeping titles non-empty is this layer's job.
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator with default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTitle validates a task title for creation or edit
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	normalized := tv.validator.NormalizeString(title)
	if !tv.validator.IsNonEmptyString(normalized) {
		validationError.AddRequiredError("title")
		return validationError
	}

	if max := tv.validator.TitleMaxLength(); !tv.validator.IsWithinMaxLength(normalized, max) {
		validationError.AddInvalidLengthError("title", normalized, max)
	}

	if tv.validator.HasControlCharacters(normalized) {
		validationError.AddInvalidCharacterError("title", normalized)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// GetValidTitle returns the normalized title if it is valid
func (tv *TaskValidator) GetValidTitle(title string) (string, error) {
	if err := tv.ValidateTitle(title); err != nil {
		return "", err
	}
	return tv.validator.NormalizeString(title), nil
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidTaskID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

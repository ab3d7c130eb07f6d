package contract

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrStore           = errors.New("store operation failed")
	ErrModelInvoke     = errors.New("model invoke failed")
	ErrSchemaViolation = errors.New("model response violates schema")
	ErrPromptMissing   = errors.New("required prompt is missing")
	ErrValidation      = errors.New("validation failed")
)

package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/stageboard/internal/domain/board"
)

// Error codes returned in tool error results.
const (
	CodeProjectNotFound = "PROJECT_NOT_FOUND"
	CodeStageNotFound   = "STAGE_NOT_FOUND"
	CodeDuplicateName   = "DUPLICATE_NAME"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeInternal        = "INTERNAL"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
	err          error
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.err
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, board.ErrProjectNotFound):
		return &APIError{Code: CodeProjectNotFound, Message: err.Error(), RecoveryHint: "Call list_projects for valid ids", err: err}
	case errors.Is(err, board.ErrStageNotFound):
		return &APIError{Code: CodeStageNotFound, Message: err.Error(), RecoveryHint: "Call get_project for valid stage ids", err: err}
	case errors.Is(err, board.ErrDuplicateName):
		return &APIError{Code: CodeDuplicateName, Message: err.Error(), RecoveryHint: "Pick another project name", err: err}
	case errors.Is(err, board.ErrInvalidInput):
		return &APIError{Code: CodeInvalidInput, Message: err.Error(), err: err}
	default:
		return &APIError{Code: CodeInternal, Message: err.Error(), err: err}
	}
}

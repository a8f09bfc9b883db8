package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeMissingSource indicates a code-mode request without source text.
	ErrCodeMissingSource ErrorCode = "missing_source"
	// ErrCodeMissingPrompt indicates a prompt-mode request without a prompt.
	ErrCodeMissingPrompt ErrorCode = "missing_prompt"
	// ErrCodeConfiguration indicates absent or invalid synthesis credentials.
	ErrCodeConfiguration ErrorCode = "configuration"
	// ErrCodeUpstream indicates the generative service failed or returned unusable content.
	ErrCodeUpstream ErrorCode = "upstream"
	// ErrCodeGenerationInvalid indicates synthesized code lacks a detectable scene class.
	ErrCodeGenerationInvalid ErrorCode = "generation_invalid"
	// ErrCodeSceneNotDetected indicates no scene class could be resolved from supplied code.
	ErrCodeSceneNotDetected ErrorCode = "scene_not_detected"
	// ErrCodeTimeout indicates the render exceeded its wall-clock bound.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeRenderFailed indicates the renderer exited non-zero.
	ErrCodeRenderFailed ErrorCode = "render_failed"
	// ErrCodeArtifactNotFound indicates the renderer succeeded but no output was located.
	ErrCodeArtifactNotFound ErrorCode = "artifact_not_found"
	// ErrCodeNotFound indicates a requested resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
	// ErrCodeConflict indicates a conflict with existing data.
	ErrCodeConflict ErrorCode = "conflict"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Log is captured diagnostic output, e.g. a renderer stderr tail (optional)
	Log string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// MissingSource creates a new MissingSource error.
func MissingSource(message string) *AppError {
	return &AppError{Code: ErrCodeMissingSource, Message: message}
}

// MissingPrompt creates a new MissingPrompt error.
func MissingPrompt(message string) *AppError {
	return &AppError{Code: ErrCodeMissingPrompt, Message: message}
}

// Configuration creates a new Configuration error.
func Configuration(message string) *AppError {
	return &AppError{Code: ErrCodeConfiguration, Message: message}
}

// Upstream creates a new Upstream error.
func Upstream(message string) *AppError {
	return &AppError{Code: ErrCodeUpstream, Message: message}
}

// Upstreamf creates a new Upstream error with formatted message.
func Upstreamf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeUpstream, Message: fmt.Sprintf(format, args...)}
}

// GenerationInvalid creates a new GenerationInvalid error.
func GenerationInvalid(message string) *AppError {
	return &AppError{Code: ErrCodeGenerationInvalid, Message: message}
}

// SceneNotDetected creates a new SceneNotDetected error.
func SceneNotDetected(message string) *AppError {
	return &AppError{Code: ErrCodeSceneNotDetected, Message: message}
}

// Timeout creates a new Timeout error.
func Timeout(message string) *AppError {
	return &AppError{Code: ErrCodeTimeout, Message: message}
}

// RenderFailed creates a new RenderFailed error carrying a diagnostic log tail.
func RenderFailed(message, log string) *AppError {
	return &AppError{Code: ErrCodeRenderFailed, Message: message, Log: log}
}

// ArtifactNotFound creates a new ArtifactNotFound error.
func ArtifactNotFound(message string) *AppError {
	return &AppError{Code: ErrCodeArtifactNotFound, Message: message}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsMissingSource checks if an error is a MissingSource error.
func IsMissingSource(err error) bool {
	return isCode(err, ErrCodeMissingSource)
}

// IsMissingPrompt checks if an error is a MissingPrompt error.
func IsMissingPrompt(err error) bool {
	return isCode(err, ErrCodeMissingPrompt)
}

// IsConfiguration checks if an error is a Configuration error.
func IsConfiguration(err error) bool {
	return isCode(err, ErrCodeConfiguration)
}

// IsUpstream checks if an error is an Upstream error.
func IsUpstream(err error) bool {
	return isCode(err, ErrCodeUpstream)
}

// IsGenerationInvalid checks if an error is a GenerationInvalid error.
func IsGenerationInvalid(err error) bool {
	return isCode(err, ErrCodeGenerationInvalid)
}

// IsSceneNotDetected checks if an error is a SceneNotDetected error.
func IsSceneNotDetected(err error) bool {
	return isCode(err, ErrCodeSceneNotDetected)
}

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool {
	return isCode(err, ErrCodeTimeout)
}

// IsRenderFailed checks if an error is a RenderFailed error.
func IsRenderFailed(err error) bool {
	return isCode(err, ErrCodeRenderFailed)
}

// IsArtifactNotFound checks if an error is an ArtifactNotFound error.
func IsArtifactNotFound(err error) bool {
	return isCode(err, ErrCodeArtifactNotFound)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool {
	return isCode(err, ErrCodeInternal)
}

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool {
	return isCode(err, ErrCodeCanceled)
}

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool {
	return isCode(err, ErrCodeConflict)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetMessage returns the client-safe message from an error, or empty string
// if not an AppError.
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}

// GetLog returns the diagnostic log from an error, or empty string if none is attached.
func GetLog(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Log
	}
	return ""
}

package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCategory represents different categories of analysis errors
type ErrorCategory string

const (
	CategoryInput         ErrorCategory = "input"
	CategoryLoad          ErrorCategory = "load"
	CategorySchema        ErrorCategory = "schema"
	CategoryComputation   ErrorCategory = "computation"
	CategoryConfiguration ErrorCategory = "configuration"
)

// ErrorCode represents specific error codes within categories
type ErrorCode string

const (
	// Input errors
	CodeMissingRequiredInput ErrorCode = "missing_required_input"

	// Load errors
	CodeFileNotFound     ErrorCode = "file_not_found"
	CodeFileUnparseable  ErrorCode = "file_unparseable"
	CodeUnsupportedInput ErrorCode = "unsupported_input"
	CodeEmptyTable       ErrorCode = "empty_table"

	// Schema errors
	CodeColumnOutOfRange ErrorCode = "column_out_of_range"

	// Computation errors
	CodeUnexpectedError ErrorCode = "unexpected_error"

	// Configuration errors
	CodeInvalidConfig ErrorCode = "invalid_config"
)

// AnalysisError is the base error type for all application errors.
// A failed run surfaces exactly one of these at the run boundary.
type AnalysisError struct {
	Category   ErrorCategory     `json:"category"`
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	Context    Context           `json:"context,omitempty"`
	Cause      error             `json:"-"`
	StackTrace errors.StackTrace `json:"-"`
}

// Context provides additional information about the error
type Context map[string]interface{}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (suggestion: %s)", e.Message, e.Suggestion)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// GetExitCode returns an appropriate process exit code for the error
func (e *AnalysisError) GetExitCode() int {
	switch e.Category {
	case CategoryInput:
		return 2
	case CategoryLoad, CategorySchema:
		return 3
	case CategoryConfiguration:
		return 4
	case CategoryComputation:
		return 5
	default:
		return 1
	}
}

// WithContext adds context information to the error
func (e *AnalysisError) WithContext(key string, value interface{}) *AnalysisError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *AnalysisError) WithSuggestion(suggestion string) *AnalysisError {
	e.Suggestion = suggestion
	return e
}

// New creates a new AnalysisError
func New(category ErrorCategory, code ErrorCode, message string) *AnalysisError {
	return &AnalysisError{
		Category:   category,
		Code:       code,
		Message:    message,
		StackTrace: errors.New("").(stackTracer).StackTrace(),
	}
}

// Wrap wraps an existing error with AnalysisError context
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *AnalysisError {
	if err == nil {
		return nil
	}

	return &AnalysisError{
		Category:   category,
		Code:       code,
		Message:    message,
		Cause:      err,
		StackTrace: errors.WithStack(err).(stackTracer).StackTrace(),
	}
}

// stackTracer interface for extracting stack traces
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Specific error constructors

// MissingRequiredInput reports a mandatory source file the user did not supply.
// The run is blocked before any computation is attempted.
func MissingRequiredInput(source string) *AnalysisError {
	return New(CategoryInput, CodeMissingRequiredInput,
		fmt.Sprintf("required input file for source '%s' was not provided", source)).
		WithSuggestion("supply the file path and run the analysis again").
		WithContext("source", source)
}

// LoadError reports a file that could not be read or parsed into a table
func LoadError(code ErrorCode, path string, err error) *AnalysisError {
	var message string
	var suggestion string

	switch code {
	case CodeFileNotFound:
		message = fmt.Sprintf("file not found: %s", path)
		suggestion = "check if the file path is correct and the file exists"
	case CodeFileUnparseable:
		message = fmt.Sprintf("file could not be parsed: %s", path)
		suggestion = "verify the file is a valid CSV or xlsx workbook"
	case CodeUnsupportedInput:
		message = fmt.Sprintf("unsupported input format: %s", path)
		suggestion = "supply a .csv or .xlsx file"
	case CodeEmptyTable:
		message = fmt.Sprintf("file contains no data rows: %s", path)
		suggestion = "ensure the file has at least one data row"
	default:
		message = fmt.Sprintf("load error: %s", path)
		suggestion = "check the file and try again"
	}

	var result *AnalysisError
	if err != nil {
		result = Wrap(err, CategoryLoad, code, message)
	} else {
		result = New(CategoryLoad, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("file_path", path)
}

// SchemaError reports a table narrower than a configured column position
func SchemaError(source string, requiredIndex, columnCount int) *AnalysisError {
	return New(CategorySchema, CodeColumnOutOfRange,
		fmt.Sprintf("source '%s' requires column index %d but the table has only %d columns",
			source, requiredIndex, columnCount)).
		WithSuggestion("check that the file layout matches the configured column mapping").
		WithContext("source", source).
		WithContext("required_index", requiredIndex).
		WithContext("column_count", columnCount)
}

// ComputationError reports an unexpected failure inside the engine.
// It is caught at the run boundary; no partial result is committed.
func ComputationError(operation string, err error) *AnalysisError {
	message := fmt.Sprintf("unexpected error during %s", operation)

	var result *AnalysisError
	if err != nil {
		result = Wrap(err, CategoryComputation, CodeUnexpectedError, message)
	} else {
		result = New(CategoryComputation, CodeUnexpectedError, message)
	}

	return result.
		WithSuggestion("this is likely a bug - please report it with the error details").
		WithContext("operation", operation)
}

// ConfigurationError reports an invalid setting
func ConfigurationError(setting string, value interface{}, err error) *AnalysisError {
	message := fmt.Sprintf("invalid configuration for '%s': %v", setting, value)

	var result *AnalysisError
	if err != nil {
		result = Wrap(err, CategoryConfiguration, CodeInvalidConfig, message)
	} else {
		result = New(CategoryConfiguration, CodeInvalidConfig, message)
	}

	return result.
		WithSuggestion("check the configuration documentation for valid values").
		WithContext("setting", setting).
		WithContext("value", value)
}

// Utility functions

// AsAnalysisError extracts an AnalysisError from an error chain
func AsAnalysisError(err error) (*AnalysisError, bool) {
	var analysisErr *AnalysisError
	if errors.As(err, &analysisErr) {
		return analysisErr, true
	}
	return nil, false
}

// HasCategory reports whether err belongs to the given category
func HasCategory(err error, category ErrorCategory) bool {
	if analysisErr, ok := AsAnalysisError(err); ok {
		return analysisErr.Category == category
	}
	return false
}

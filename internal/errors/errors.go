package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionInvalidTransition ErrorCode = "SESSION-001"
	ErrCodeSessionEmptyDraw         ErrorCode = "SESSION-002"
	ErrCodeSessionInvalidOptions    ErrorCode = "SESSION-003"

	// Catalog errors (CATALOG-001 to CATALOG-099)
	ErrCodeCatalogLoad        ErrorCode = "CATALOG-001"
	ErrCodeCatalogInvalid     ErrorCode = "CATALOG-002"
	ErrCodeCatalogDuplicateID ErrorCode = "CATALOG-003"

	// Feedback rule errors (RULES-001 to RULES-099)
	ErrCodeRulesInvalid ErrorCode = "RULES-001"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigLoad    ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid ErrorCode = "CONFIG-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
)

const docsBase = "https://github.com/felixgeelhaar/rehearse"

// RehearseError is an error carrying a stable code, recovery suggestions and
// an optional documentation link.
type RehearseError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *RehearseError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *RehearseError) Unwrap() error {
	return e.Cause
}

// Is reports a match when target is a RehearseError with the same code, so
// sentinel values built with New can be compared with errors.Is.
func (e *RehearseError) Is(target error) bool {
	t, ok := target.(*RehearseError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new RehearseError
func New(code ErrorCode, message string) *RehearseError {
	return &RehearseError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new RehearseError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *RehearseError {
	return &RehearseError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *RehearseError) WithSuggestion(suggestion string) *RehearseError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *RehearseError) WithSuggestions(suggestions ...string) *RehearseError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *RehearseError) WithDocs(url string) *RehearseError {
	e.DocsURL = url
	return e
}

// CodeOf returns the code of the first RehearseError in err's chain, or an
// empty code.
func CodeOf(err error) ErrorCode {
	var re *RehearseError
	if stderrors.As(err, &re) {
		return re.Code
	}
	return ""
}

// HasCode reports whether err's chain contains a RehearseError with code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// Common error constructors for frequently used errors

// NewInvalidTransitionError reports an operation attempted in a phase that
// does not allow it.
func NewInvalidTransitionError(op, phase string) *RehearseError {
	return New(ErrCodeSessionInvalidTransition, fmt.Sprintf("cannot %s while session is %s", op, phase))
}

// NewEmptyDrawError reports a start request whose filters match no questions.
func NewEmptyDrawError(questionType, difficulty string) *RehearseError {
	if difficulty == "" {
		difficulty = "any"
	}
	return New(ErrCodeSessionEmptyDraw, fmt.Sprintf("no questions match type %q and difficulty %q", questionType, difficulty)).
		WithSuggestion("Run 'rehearse questions' to see the available questions").
		WithSuggestion("Choose a different type or difficulty, or use --type mixed").
		WithDocs(docsBase + "#question-catalog")
}

// NewInvalidOptionsError reports unusable session start options.
func NewInvalidOptionsError(details string) *RehearseError {
	return New(ErrCodeSessionInvalidOptions, fmt.Sprintf("invalid session options: %s", details)).
		WithSuggestion("Use --type technical|behavioral|hr|design|mixed").
		WithSuggestion("Use --difficulty beginner|intermediate|advanced").
		WithSuggestion("Use a --count of at least 1")
}

// NewCatalogInvalidError reports a catalog entry that fails validation.
func NewCatalogInvalidError(id string, cause error) *RehearseError {
	return Wrap(ErrCodeCatalogInvalid, fmt.Sprintf("invalid question %q", id), cause).
		WithSuggestion("Check the question fields against the catalog schema").
		WithDocs(docsBase + "#custom-catalogs")
}

// NewCatalogDuplicateIDError reports two catalog entries sharing an id.
func NewCatalogDuplicateIDError(id string) *RehearseError {
	return New(ErrCodeCatalogDuplicateID, fmt.Sprintf("duplicate question id %q", id)).
		WithSuggestion("Give every question a unique id")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *RehearseError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewFileReadError creates a read failure error
func NewFileReadError(path string, cause error) *RehearseError {
	return Wrap(ErrCodeFileReadFailed, fmt.Sprintf("failed to read file: %s", path), cause)
}

// NewFileWriteError creates a write failure error
func NewFileWriteError(path string, cause error) *RehearseError {
	return Wrap(ErrCodeFileWriteFailed, fmt.Sprintf("failed to write file: %s", path), cause).
		WithSuggestion("Check that the directory exists and is writable")
}

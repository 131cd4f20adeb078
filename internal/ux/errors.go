package ux

import (
	"errors"
	"fmt"
	"io"
	"strings"

	rerrors "github.com/felixgeelhaar/rehearse/internal/errors"
)

// ErrorWithSuggestion wraps an error with helpful recovery suggestions
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\nSuggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError adds a suggestion to errors that carry none. Coded errors
// already bring their own and are returned unchanged.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}
	var rerr *rerrors.RehearseError
	if errors.As(err, &rerr) {
		return err
	}

	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "no such file or directory"):
		return NewErrorWithSuggestion(err, "Check the path, or pass '-' to read from stdin")
	case strings.Contains(errMsg, "permission denied"):
		return NewErrorWithSuggestion(err, "Check file permissions and ensure you have access to the required files")
	case strings.Contains(errMsg, "unknown format"):
		return NewErrorWithSuggestion(err, "Use --format with one of: "+strings.Join(Formats, ", "))
	case strings.Contains(errMsg, "unknown flag"), strings.Contains(errMsg, "unknown command"):
		return NewErrorWithSuggestion(err, "Run 'rehearse --help' for usage")
	}
	return err
}

// FormatError provides consistent error formatting with context
func FormatError(err error, context string) error {
	if err == nil {
		return nil
	}

	enhanced := EnhanceError(err)
	if context != "" {
		return fmt.Errorf("%s: %w", context, enhanced)
	}
	return enhanced
}

// RenderError writes err for a terminal user: the message, then any
// suggestions and documentation link carried by a coded error.
func RenderError(w io.Writer, err error, styles Styles) {
	if err == nil {
		return
	}
	err = EnhanceError(err)

	var rerr *rerrors.RehearseError
	if !errors.As(err, &rerr) {
		var sugg *ErrorWithSuggestion
		if errors.As(err, &sugg) {
			fmt.Fprintf(w, "%s %v\n", styles.Error.Render("Error:"), sugg.Err)
			fmt.Fprintf(w, "\n%s %s\n", styles.Warning.Render("Suggestion:"), sugg.Suggestion)
			return
		}
		fmt.Fprintf(w, "%s %v\n", styles.Error.Render("Error:"), err)
		return
	}

	fmt.Fprintf(w, "%s %s\n", styles.Error.Render("Error ["+string(rerr.Code)+"]:"), rerr.Message)
	if rerr.Cause != nil {
		fmt.Fprintf(w, "  %s %v\n", styles.Muted.Render("cause:"), rerr.Cause)
	}
	if len(rerr.Suggestions) > 0 {
		fmt.Fprintf(w, "\n%s\n", styles.Warning.Render("Suggestions:"))
		for _, s := range rerr.Suggestions {
			fmt.Fprintf(w, "  %s %s\n", styles.Bullet.Render("•"), s)
		}
	}
	if rerr.DocsURL != "" {
		fmt.Fprintf(w, "\n%s %s\n", styles.Muted.Render("Docs:"), rerr.DocsURL)
	}
}

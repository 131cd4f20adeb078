package exitcode

import (
	"context"
	"errors"
	"os"
	"strings"

	rerrors "github.com/felixgeelhaar/rehearse/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, invalid session options)
	UsageError = 2

	// ConfigError indicates the configuration could not be loaded or failed validation
	ConfigError = 3

	// CatalogError indicates the question catalog or feedback rules are unusable
	CatalogError = 4

	// EmptyDraw indicates no catalog question matched the requested session filter
	EmptyDraw = 5

	// Interrupted indicates the run was cancelled by a signal (128 + SIGINT)
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error to an exit code. Coded errors map by code
// prefix; cobra's usage errors carry no code and are recognised by message.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}
	if errors.Is(err, context.Canceled) {
		return Interrupted
	}

	switch code := rerrors.CodeOf(err); {
	case code == rerrors.ErrCodeSessionInvalidOptions:
		return UsageError
	case code == rerrors.ErrCodeSessionEmptyDraw:
		return EmptyDraw
	case strings.HasPrefix(string(code), "CONFIG-"):
		return ConfigError
	case strings.HasPrefix(string(code), "CATALOG-"), strings.HasPrefix(string(code), "RULES-"):
		return CatalogError
	case code != "":
		return GeneralError
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "unknown shorthand flag") ||
		strings.Contains(errMsg, "invalid argument") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "accepts ") ||
		strings.Contains(errMsg, "requires at least") || strings.Contains(errMsg, "flag needs an argument") {
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags, arguments or session options)"
	case ConfigError:
		return "Configuration error"
	case CatalogError:
		return "Question catalog or feedback rules error"
	case EmptyDraw:
		return "No questions match the requested filter"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}

package ux

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	rerrors "github.com/felixgeelhaar/rehearse/internal/errors"
)

func TestErrorWithSuggestion(t *testing.T) {
	base := errors.New("base error")

	err := NewErrorWithSuggestion(base, "try this")
	if !strings.Contains(err.Error(), "base error") || !strings.Contains(err.Error(), "Suggestion: try this") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("Unwrap should expose the wrapped error")
	}

	noSuggestion := NewErrorWithSuggestion(base, "")
	if noSuggestion.Error() != "base error" {
		t.Errorf("Error() without suggestion = %q", noSuggestion.Error())
	}

	if NewErrorWithSuggestion(nil, "x") != nil {
		t.Error("nil error should stay nil")
	}
}

func TestEnhanceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantSuggestion string
	}{
		{
			name:           "missing file",
			err:            errors.New("open job.txt: no such file or directory"),
			wantSuggestion: "Check the path",
		},
		{
			name:           "permission denied",
			err:            errors.New("open /etc/shadow: permission denied"),
			wantSuggestion: "Check file permissions",
		},
		{
			name:           "unknown format",
			err:            errors.New("unknown format: xml (supported: text, json, yaml)"),
			wantSuggestion: "--format",
		},
		{
			name:           "unknown flag",
			err:            errors.New("unknown flag: --colour"),
			wantSuggestion: "rehearse --help",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enhanced := EnhanceError(tt.err)
			var sugg *ErrorWithSuggestion
			if !errors.As(enhanced, &sugg) {
				t.Fatalf("EnhanceError(%v) added no suggestion", tt.err)
			}
			if !strings.Contains(sugg.Suggestion, tt.wantSuggestion) {
				t.Errorf("suggestion = %q, want it to contain %q", sugg.Suggestion, tt.wantSuggestion)
			}
		})
	}
}

func TestEnhanceErrorLeavesOthersAlone(t *testing.T) {
	if EnhanceError(nil) != nil {
		t.Error("nil should stay nil")
	}

	plain := errors.New("something unexpected")
	if EnhanceError(plain) != plain {
		t.Error("errors without a known pattern should be returned unchanged")
	}

	coded := rerrors.NewFileNotFoundError("job.txt")
	if EnhanceError(coded) != error(coded) {
		t.Error("coded errors should be returned unchanged")
	}
}

func TestFormatError(t *testing.T) {
	err := FormatError(errors.New("open x: no such file or directory"), "read job description")
	if !strings.HasPrefix(err.Error(), "read job description: ") {
		t.Errorf("context missing: %q", err.Error())
	}
	var sugg *ErrorWithSuggestion
	if !errors.As(err, &sugg) {
		t.Error("FormatError should enhance the error")
	}
	if FormatError(nil, "ctx") != nil {
		t.Error("nil should stay nil")
	}
}

func TestRenderError(t *testing.T) {
	t.Run("coded error", func(t *testing.T) {
		var buf bytes.Buffer
		err := fmt.Errorf("practice: %w", rerrors.NewEmptyDrawError("hr", "advanced"))
		RenderError(&buf, err, PlainStyles())

		out := buf.String()
		for _, want := range []string{"Error [SESSION-002]:", "Suggestions:", "•", "Docs:"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("coded error with cause", func(t *testing.T) {
		var buf bytes.Buffer
		RenderError(&buf, rerrors.NewFileReadError("job.txt", errors.New("is a directory")), PlainStyles())
		if !strings.Contains(buf.String(), "cause: is a directory") {
			t.Errorf("cause missing:\n%s", buf.String())
		}
	})

	t.Run("enhanced plain error", func(t *testing.T) {
		var buf bytes.Buffer
		RenderError(&buf, errors.New("unknown flag: --colour"), PlainStyles())
		out := buf.String()
		if !strings.Contains(out, "Error: unknown flag: --colour") || !strings.Contains(out, "Suggestion: Run 'rehearse --help'") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("nil error", func(t *testing.T) {
		var buf bytes.Buffer
		RenderError(&buf, nil, PlainStyles())
		if buf.Len() != 0 {
			t.Errorf("nil error rendered %q", buf.String())
		}
	})
}

package ux

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAnswer(t *testing.T) {
	in := strings.NewReader("First line\n  second line  \n.\nnext answer\n")
	p := NewPrompter(in, io.Discard)
	ctx := context.Background()

	got, err := p.ReadAnswer(ctx)
	require.NoError(t, err)
	assert.Equal(t, "First line\n  second line", got)

	// End of input terminates the last answer.
	got, err = p.ReadAnswer(ctx)
	require.NoError(t, err)
	assert.Equal(t, "next answer", got)

	_, err = p.ReadAnswer(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestPromptInt(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("80\n\nabc\n150\n"), &out)
	ctx := context.Background()

	tests := []int{80, 50, 50, 50}
	for i, want := range tests {
		got, err := p.PromptInt(ctx, "Confidence", 50, 0, 100)
		require.NoError(t, err)
		assert.Equal(t, want, got, "prompt %d", i)
	}
	assert.Contains(t, out.String(), "Confidence [50]: ")

	got, err := p.PromptInt(ctx, "Confidence", 50, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, 50, got, "exhausted input yields the default")
}

func TestConfirm(t *testing.T) {
	p := NewPrompter(strings.NewReader("y\nNO\n\n"), io.Discard)
	ctx := context.Background()

	for _, want := range []bool{true, false, true} {
		got, err := p.Confirm(ctx, "Continue?", true)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestReadLineHonoursCancellation(t *testing.T) {
	r, w := io.Pipe()
	t.Cleanup(func() { w.Close() })

	p := NewPrompter(r, io.Discard)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.ReadLine(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

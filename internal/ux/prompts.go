package ux

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// AnswerTerminator on a line of its own ends a multi-line answer.
const AnswerTerminator = "."

// Prompter reads line-oriented input for the non-interactive practice mode.
// Reads honour context cancellation even while the underlying reader blocks.
type Prompter struct {
	out io.Writer

	start sync.Once
	in    io.Reader
	lines chan string
	err   error
}

// NewPrompter reads from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out, lines: make(chan string)}
}

func (p *Prompter) scan() {
	defer close(p.lines)
	sc := bufio.NewScanner(p.in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		p.lines <- sc.Text()
	}
	p.err = sc.Err()
}

// ReadLine returns the next input line without its newline. It returns
// io.EOF when input is exhausted.
func (p *Prompter) ReadLine(ctx context.Context) (string, error) {
	p.start.Do(func() { go p.scan() })
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			if p.err != nil {
				return "", p.err
			}
			return "", io.EOF
		}
		return line, nil
	}
}

// ReadAnswer reads lines until AnswerTerminator or end of input and returns
// them joined by newlines. io.EOF is returned only when nothing was read.
func (p *Prompter) ReadAnswer(ctx context.Context) (string, error) {
	var lines []string
	for {
		line, err := p.ReadLine(ctx)
		if err == io.EOF {
			if len(lines) == 0 {
				return "", io.EOF
			}
			break
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == AnswerTerminator {
			break
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// PromptInt asks for an integer in [lo,hi], returning def on empty or
// invalid input.
func (p *Prompter) PromptInt(ctx context.Context, message string, def, lo, hi int) (int, error) {
	fmt.Fprintf(p.out, "%s [%d]: ", message, def)
	line, err := p.ReadLine(ctx)
	if err == io.EOF {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil || n < lo || n > hi {
		return def, nil
	}
	return n, nil
}

// Confirm prompts the user for yes/no confirmation
func (p *Prompter) Confirm(ctx context.Context, message string, defaultYes bool) (bool, error) {
	prompt := message
	if defaultYes {
		prompt += " (Y/n): "
	} else {
		prompt += " (y/N): "
	}
	fmt.Fprint(p.out, prompt)

	response, err := p.ReadLine(ctx)
	if err == io.EOF {
		return defaultYes, nil
	}
	if err != nil {
		return defaultYes, err
	}

	response = strings.TrimSpace(strings.ToLower(response))
	if response == "" {
		return defaultYes, nil
	}
	return response == "y" || response == "yes", nil
}

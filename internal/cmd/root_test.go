package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/rehearse/internal/errors"
	"github.com/felixgeelhaar/rehearse/internal/exitcode"
)

const backendPosting = "Senior Backend Engineer at Acme Corp\nRequires 5+ years experience with Python, Docker, and AWS.\n"

type result struct {
	stdout string
	stderr string
	err    error
}

// isolate runs the test in an empty working directory and home so that no
// config file is discovered.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	return dir
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func decode[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), s)
	return v
}

func TestRootCommand_Tree(t *testing.T) {
	root := NewRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"practice", "questions", "parse", "score", "tips", "config", "version", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	isolate(t)

	res := execute(t, "", "tips", "--format", "xml")
	require.Error(t, res.err)
	assert.True(t, errors.HasCode(res.err, errors.ErrCodeConfigInvalid))
	assert.Equal(t, exitcode.ConfigError, exitcode.DetermineExitCode(res.err))
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("practice:\n  count: 0\n"), 0o644))

	res := execute(t, "", "questions", "--config", path)
	require.Error(t, res.err)
	assert.Equal(t, exitcode.ConfigError, exitcode.DetermineExitCode(res.err))
}

func TestRootCommand_MissingCatalog(t *testing.T) {
	isolate(t)

	res := execute(t, "", "questions", "--catalog", "missing.yaml")
	require.Error(t, res.err)
	assert.NotEqual(t, exitcode.Success, exitcode.DetermineExitCode(res.err))
}

func TestRootCommand_UnknownFlag(t *testing.T) {
	isolate(t)

	res := execute(t, "", "questions", "--bogus")
	require.Error(t, res.err)
	assert.Equal(t, exitcode.UsageError, exitcode.DetermineExitCode(res.err))
}

func TestRootCommand_MetricsTextfile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "rehearse.prom")

	res := execute(t, "", "questions", "--metrics-out", path)
	require.NoError(t, res.err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rehearse_command_executions_total")
	assert.Contains(t, string(data), `command="questions"`)
}

func TestRootCommand_DebugLogsGoToStderr(t *testing.T) {
	isolate(t)

	res := execute(t, "", "questions", "--log-level", "debug", "--format", "json")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "configuration loaded")
	assert.Contains(t, res.stderr, "fingerprint=")
	decode[map[string]any](t, res.stdout)
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	res := execute(t, "", "version")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "rehearse "))

	res = execute(t, "", "version", "--verbose")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, " built ")

	res = execute(t, "", "version", "--format", "json")
	require.NoError(t, res.err)
	info := decode[map[string]any](t, res.stdout)
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "go_version")
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			res := execute(t, "", "completion", shell)
			require.NoError(t, res.err)
			assert.Contains(t, res.stdout, "rehearse")
		})
	}

	res := execute(t, "", "completion", "tcsh")
	assert.Error(t, res.err)
}

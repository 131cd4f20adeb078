package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/rehearse/internal/catalog"
	"github.com/felixgeelhaar/rehearse/internal/errors"
	"github.com/felixgeelhaar/rehearse/internal/exitcode"
)

type sessionSummary struct {
	JobRole      string `json:"job_role"`
	Type         string `json:"type"`
	Difficulty   string `json:"difficulty"`
	OverallScore int    `json:"overall_score"`
	Band         string `json:"band"`
	Questions    []struct {
		QuestionID string `json:"question_id"`
		Score      int    `json:"score"`
		Confidence int    `json:"confidence"`
	} `json:"questions"`
	Answers []struct {
		Text string `json:"text"`
	} `json:"answers"`
}

// answers builds line-mode input: each answer ends with "." and is followed
// by a confidence line.
func answers(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(pairs[i] + "\n.\n" + pairs[i+1] + "\n")
	}
	return b.String()
}

func TestPracticeCommand_LineMode(t *testing.T) {
	isolate(t)

	input := answers("I don't know", "40", "I don't know", "")
	res := execute(t, input,
		"practice", "--type", "hr", "--difficulty", "beginner", "--count", "2",
		"--seed", "7", "--role", "Recruiter", "-o", "json", "--show-answers")
	require.NoError(t, res.err, res.stderr)

	sum := decode[sessionSummary](t, res.stdout)
	assert.Equal(t, "Recruiter", sum.JobRole)
	assert.Equal(t, "hr", sum.Type)
	assert.Equal(t, "beginner", sum.Difficulty)
	assert.Equal(t, 25, sum.OverallScore)
	assert.Equal(t, "needs_work", sum.Band)
	require.Len(t, sum.Questions, 2)
	assert.Equal(t, 40, sum.Questions[0].Confidence)
	assert.Equal(t, 50, sum.Questions[1].Confidence)
	require.Len(t, sum.Answers, 2)
	assert.Equal(t, "I don't know", sum.Answers[0].Text)

	// Prompts and per-answer feedback stay off stdout for json output.
	assert.Contains(t, res.stderr, "Question 1/2")
	assert.Contains(t, res.stderr, "Score: 25/100")
}

func TestPracticeCommand_SeedIsReproducible(t *testing.T) {
	isolate(t)

	order := func() []string {
		input := answers("a", "", "b", "", "c", "")
		res := execute(t, input, "practice", "--type", "technical", "--difficulty", "beginner",
			"--count", "3", "--seed", "42", "-o", "json")
		require.NoError(t, res.err, res.stderr)
		var ids []string
		for _, q := range decode[sessionSummary](t, res.stdout).Questions {
			ids = append(ids, q.QuestionID)
		}
		return ids
	}

	first := order()
	assert.Len(t, first, 3)
	assert.Equal(t, first, order())
}

func TestPracticeCommand_TextOutput(t *testing.T) {
	isolate(t)

	res := execute(t, answers("I don't know", ""),
		"practice", "--type", "hr", "--difficulty", "beginner", "--count", "1", "--no-color")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Question 1/1")
	assert.Contains(t, res.stdout, "Score: 25/100 (needs_work)")
	assert.Contains(t, res.stdout, "Session complete: beginner hr interview")
	assert.Contains(t, res.stdout, "Overall score: 25/100")
}

func TestPracticeCommand_FewerQuestionsThanRequested(t *testing.T) {
	isolate(t)

	res := execute(t, answers("a", "", "b", ""),
		"practice", "--type", "hr", "--difficulty", "beginner", "--count", "10", "-o", "json")
	require.NoError(t, res.err, res.stderr)
	assert.Len(t, decode[sessionSummary](t, res.stdout).Questions, 2)
}

func TestPracticeCommand_ConfigFileDefaults(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rehearse.yaml"),
		[]byte("practice:\n  type: design\n  difficulty: advanced\n  count: 1\n"), 0o644))

	res := execute(t, answers("x", ""), "practice", "-o", "json")
	require.NoError(t, res.err, res.stderr)

	sum := decode[sessionSummary](t, res.stdout)
	assert.Equal(t, "design", sum.Type)
	require.Len(t, sum.Questions, 1)
	assert.Equal(t, "design-002", sum.Questions[0].QuestionID)
}

func TestPracticeCommand_JobDescription(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "job.txt")
	require.NoError(t, os.WriteFile(path, []byte(backendPosting), 0o644))

	res := execute(t, answers("a", "", "b", "", "c", "", "d", "", "e", ""),
		"practice", "--job", path, "--difficulty", "any", "-o", "json")
	require.NoError(t, res.err, res.stderr)

	sum := decode[sessionSummary](t, res.stdout)
	assert.Equal(t, "Senior Backend Engineer at Acme Corp", sum.JobRole)
	assert.NotEmpty(t, sum.Questions)
}

func TestPracticeCommand_Errors(t *testing.T) {
	isolate(t)

	t.Run("empty draw", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`questions:
  - id: only-1
    text: Describe a cache.
    type: technical
    difficulty: beginner
`), 0o644))

		res := execute(t, "", "practice", "--catalog", path, "--type", "hr")
		require.Error(t, res.err)
		assert.True(t, errors.HasCode(res.err, errors.ErrCodeSessionEmptyDraw))
		assert.Equal(t, exitcode.EmptyDraw, exitcode.DetermineExitCode(res.err))
	})

	t.Run("input ends early", func(t *testing.T) {
		res := execute(t, answers("only one", ""),
			"practice", "--type", "hr", "--difficulty", "beginner", "--count", "2", "-o", "json")
		require.Error(t, res.err)
		assert.True(t, errors.HasCode(res.err, errors.ErrCodeFileReadFailed))

		// The partial session is still summarised.
		assert.Len(t, decode[sessionSummary](t, res.stdout).Questions, 1)
	})

	t.Run("job on stdin in line mode", func(t *testing.T) {
		res := execute(t, backendPosting, "practice", "--job", "-")
		require.Error(t, res.err)
		assert.Equal(t, exitcode.UsageError, exitcode.DetermineExitCode(res.err))
	})

	t.Run("count out of range", func(t *testing.T) {
		res := execute(t, "", "practice", "--count", "0")
		require.Error(t, res.err)
		assert.Equal(t, exitcode.ConfigError, exitcode.DetermineExitCode(res.err))
	})
}

func TestQuestionLine(t *testing.T) {
	q := catalog.Question{
		ID:               "behav-001",
		Type:             catalog.TypeBehavioral,
		Difficulty:       catalog.DifficultyIntermediate,
		Category:         "Teamwork",
		TimeLimitSeconds: 240,
		ExpectedFormat:   catalog.FormatSTAR,
	}
	assert.Equal(t, "behavioral · intermediate · Teamwork · 240s · answer in STAR format", questionLine(q))
}

package feedback

import (
	"math"
	"strings"

	"github.com/felixgeelhaar/rehearse/internal/catalog"
)

const baseScore = 50

// Messages emitted by the scoring rules.
const (
	MsgTooBrief        = "Answer is too brief - provide more detail and examples"
	MsgTooLengthy      = "Answer is too lengthy - focus on key points and be more concise"
	MsgGoodLength      = "Good answer length and detail level"
	MsgRichExamples    = "Rich in relevant examples and specific outcomes"
	MsgSomeExamples    = "Includes some relevant examples"
	MsgAddExamples     = "Add more specific examples and concrete outcomes"
	MsgFollowsSTAR     = "Follows STAR method structure effectively"
	MsgUseSTAR         = "Structure your answer using the STAR method (Situation, Task, Action, Result)"
	MsgOverconfident   = "Your confidence level seems higher than your answer quality - practice more or be more realistic about your confidence"
	MsgUnderconfident  = "Your answer quality is good - you can be more confident in your responses"
	MsgBeConcise       = "Work on being more concise - practice timing your responses"
	MsgTakeMoreTime    = "Take more time to think through your answer before responding"
	MsgGoodTimeManaged = "Good time management for your response"
)

// GeneralSuggestions are appended to every Feedback.
var GeneralSuggestions = []string{
	"Review common interview questions: https://www.thebalancemoney.com/top-job-interview-questions-2061228",
	"Practice your responses out loud to improve fluency",
	"Research the company and role thoroughly before the interview",
}

// Feedback is the scoring result for one answer.
type Feedback struct {
	Score             int      `json:"score" yaml:"score"`
	Band              Band     `json:"band" yaml:"band"`
	Strengths         []string `json:"strengths" yaml:"strengths"`
	Improvements      []string `json:"improvements" yaml:"improvements"`
	STARCompliant     bool     `json:"star_method_compliance" yaml:"star_method_compliance"`
	Suggestions       []string `json:"suggestions" yaml:"suggestions"`
	OverallAssessment string   `json:"overall_assessment" yaml:"overall_assessment"`
}

// Engine scores answers against a fixed set of Rules. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	rules Rules
}

// NewEngine validates rules and returns an engine that scores with them.
func NewEngine(rules Rules) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &Engine{rules: rules.normalized()}, nil
}

// DefaultEngine returns an engine using DefaultRules.
func DefaultEngine() *Engine {
	return &Engine{rules: DefaultRules().normalized()}
}

// Rules returns the engine's rule tables.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Score evaluates an answer. Every input, including empty text and
// out-of-range numbers, yields a Feedback with a score in [0,100].
func (e *Engine) Score(text string, timeSpentSeconds, confidence int, format catalog.AnswerFormat) Feedback {
	fb := Feedback{
		Strengths:    []string{},
		Improvements: []string{},
		Suggestions:  []string{},
	}
	score := baseScore
	lower := strings.ToLower(text)

	switch words := len(strings.Fields(text)); {
	case words < e.rules.BriefWords:
		fb.Improvements = append(fb.Improvements, MsgTooBrief)
		score -= 15
	case words > e.rules.LengthyWords:
		fb.Improvements = append(fb.Improvements, MsgTooLengthy)
		score -= 10
	default:
		fb.Strengths = append(fb.Strengths, MsgGoodLength)
		score += 10
	}

	switch hits := countPresent(lower, e.rules.EvidenceKeywords); {
	case hits >= 3:
		fb.Strengths = append(fb.Strengths, MsgRichExamples)
		score += 15
	case hits > 0:
		fb.Strengths = append(fb.Strengths, MsgSomeExamples)
		score += 5
	default:
		fb.Improvements = append(fb.Improvements, MsgAddExamples)
		score -= 10
	}

	if format == catalog.FormatSTAR {
		fb.STARCompliant = e.starGroupsHit(lower) >= e.rules.STARThreshold
		if fb.STARCompliant {
			fb.Strengths = append(fb.Strengths, MsgFollowsSTAR)
			score += 20
		} else {
			fb.Improvements = append(fb.Improvements, MsgUseSTAR)
			if e.rules.STARReference != "" {
				fb.Suggestions = append(fb.Suggestions, "Learn more about the STAR method: "+e.rules.STARReference)
			}
			score -= 15
		}
	}

	// Informational only; compares against the running score.
	if confidence > 80 && score < 60 {
		fb.Improvements = append(fb.Improvements, MsgOverconfident)
	} else if confidence < 50 && score > 70 {
		fb.Strengths = append(fb.Strengths, MsgUnderconfident)
	}

	switch {
	case timeSpentSeconds > e.rules.SlowSeconds:
		fb.Improvements = append(fb.Improvements, MsgBeConcise)
	case timeSpentSeconds < e.rules.QuickSeconds:
		fb.Improvements = append(fb.Improvements, MsgTakeMoreTime)
	default:
		fb.Strengths = append(fb.Strengths, MsgGoodTimeManaged)
	}

	fb.Score = clamp(score)
	fb.Band = BandFor(fb.Score)
	fb.OverallAssessment = fb.Band.Assessment()
	fb.Suggestions = append(fb.Suggestions, GeneralSuggestions...)

	return fb
}

func (e *Engine) starGroupsHit(lower string) int {
	hit := 0
	for _, g := range e.rules.STARGroups {
		if containsAny(lower, g.Synonyms) {
			hit++
		}
	}
	return hit
}

// countPresent counts the keywords occurring at least once in s.
func countPresent(s string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(s, k) {
			n++
		}
	}
	return n
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func clamp(score int) int {
	return max(0, min(100, score))
}

// OverallScore returns the arithmetic mean of scores rounded half up, or 0
// for no scores.
func OverallScore(scores ...int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return int(math.Floor(float64(sum)/float64(len(scores)) + 0.5))
}

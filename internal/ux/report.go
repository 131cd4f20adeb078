package ux

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/felixgeelhaar/rehearse/internal/catalog"
	"github.com/felixgeelhaar/rehearse/internal/feedback"
	"github.com/felixgeelhaar/rehearse/internal/jobdesc"
	"github.com/felixgeelhaar/rehearse/internal/resources"
	"github.com/felixgeelhaar/rehearse/internal/session"
)

// The report types below are the structured results of rehearse commands.
// Each renders as text and marshals cleanly to JSON and YAML.

// FeedbackReport is the review of one answer.
type FeedbackReport struct {
	QuestionID       string            `json:"question_id,omitempty" yaml:"question_id,omitempty"`
	Question         string            `json:"question,omitempty" yaml:"question,omitempty"`
	TimeSpentSeconds int               `json:"time_spent_seconds" yaml:"time_spent_seconds"`
	Confidence       int               `json:"confidence" yaml:"confidence"`
	Feedback         feedback.Feedback `json:"feedback" yaml:"feedback"`
	FollowUps        []string          `json:"follow_ups,omitempty" yaml:"follow_ups,omitempty"`
}

// NewFeedbackReport builds the review of a submitted answer to q.
func NewFeedbackReport(q catalog.Question, a session.Answer) FeedbackReport {
	return FeedbackReport{
		QuestionID:       q.ID,
		Question:         q.Text,
		TimeSpentSeconds: a.TimeSpentSeconds,
		Confidence:       a.Confidence,
		Feedback:         a.Feedback,
		FollowUps:        q.FollowUps,
	}
}

// RenderText implements TextRenderer.
func (r FeedbackReport) RenderText(w io.Writer, s Styles) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d/100 (%s)\n", s.Title.Render("Score:"), r.Feedback.Score, s.Band(r.Feedback.Band))
	if r.Feedback.OverallAssessment != "" {
		fmt.Fprintf(&b, "%s\n", s.Subtitle.Render(r.Feedback.OverallAssessment))
	}
	writeList(&b, s, s.Success.Render("Strengths"), r.Feedback.Strengths)
	writeList(&b, s, s.Warning.Render("Areas for improvement"), r.Feedback.Improvements)
	writeList(&b, s, s.Label.Render("Suggestions"), r.Feedback.Suggestions)
	writeList(&b, s, s.Label.Render("Possible follow-up questions"), r.FollowUps)
	_, err := io.WriteString(w, b.String())
	return err
}

// SummaryItem is one question's line in a SessionSummary.
type SummaryItem struct {
	Number           int           `json:"number" yaml:"number"`
	QuestionID       string        `json:"question_id" yaml:"question_id"`
	Question         string        `json:"question" yaml:"question"`
	Score            int           `json:"score" yaml:"score"`
	Band             feedback.Band `json:"band" yaml:"band"`
	TimeSpentSeconds int           `json:"time_spent_seconds" yaml:"time_spent_seconds"`
	Confidence       int           `json:"confidence" yaml:"confidence"`
}

// SessionSummary reports a finished practice session.
type SessionSummary struct {
	ID           string           `json:"id" yaml:"id"`
	JobRole      string           `json:"job_role" yaml:"job_role"`
	Type         catalog.Type     `json:"type" yaml:"type"`
	Difficulty   string           `json:"difficulty" yaml:"difficulty"`
	Items        []SummaryItem    `json:"questions" yaml:"questions"`
	OverallScore int              `json:"overall_score" yaml:"overall_score"`
	Band         feedback.Band    `json:"band" yaml:"band"`
	Assessment   string           `json:"assessment" yaml:"assessment"`
	StartTime    time.Time        `json:"start_time" yaml:"start_time"`
	EndTime      *time.Time       `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Duration     string           `json:"duration" yaml:"duration"`
	Answers      []session.Answer `json:"answers,omitempty" yaml:"answers,omitempty"`
}

// NewSessionSummary summarises s. Questions without an answer are omitted,
// so a summary of an abandoned session lists only what was answered.
func NewSessionSummary(s *session.Session, includeAnswers bool) SessionSummary {
	sum := SessionSummary{
		ID:         s.ID,
		JobRole:    s.JobRole,
		Type:       s.Type,
		Difficulty: s.Difficulty.String(),
		Items:      make([]SummaryItem, 0, len(s.Answers)),
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Duration:   s.Duration().Round(time.Second).String(),
	}

	scores := make([]int, 0, len(s.Answers))
	for i, a := range s.Answers {
		q := s.Questions[i]
		sum.Items = append(sum.Items, SummaryItem{
			Number:           i + 1,
			QuestionID:       q.ID,
			Question:         q.Text,
			Score:            a.Feedback.Score,
			Band:             a.Feedback.Band,
			TimeSpentSeconds: a.TimeSpentSeconds,
			Confidence:       a.Confidence,
		})
		scores = append(scores, a.Feedback.Score)
	}

	if s.Score != nil {
		sum.OverallScore = *s.Score
	} else {
		sum.OverallScore = feedback.OverallScore(scores...)
	}
	sum.Band = feedback.BandFor(sum.OverallScore)
	sum.Assessment = sum.Band.Assessment()
	if includeAnswers {
		sum.Answers = s.Answers
	}
	return sum
}

// RenderText implements TextRenderer.
func (r SessionSummary) RenderText(w io.Writer, s Styles) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.Title.Render("Session complete: "+r.JobRole))
	fmt.Fprintf(&b, "%s %d/100 (%s)\n", s.Label.Render("Overall score:"), r.OverallScore, s.Band(r.Band))
	fmt.Fprintf(&b, "%s\n", s.Subtitle.Render(r.Assessment))
	fmt.Fprintf(&b, "%s %s\n\n", s.Label.Render("Duration:"), r.Duration)

	for _, it := range r.Items {
		fmt.Fprintf(&b, "%2d. [%3d %-10s] %s\n", it.Number, it.Score, s.Band(it.Band), it.Question)
		fmt.Fprintf(&b, "    %s\n", s.Muted.Render(fmt.Sprintf("%ds, confidence %d%%", it.TimeSpentSeconds, it.Confidence)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// JobReport is a parsed job description together with research tips.
type JobReport struct {
	Source       string                 `json:"source,omitempty" yaml:"source,omitempty"`
	Job          jobdesc.JobDescription `json:"job_description" yaml:"job_description"`
	ResearchTips []string               `json:"research_tips" yaml:"research_tips"`
	Questions    []string               `json:"industry_questions,omitempty" yaml:"industry_questions,omitempty"`
}

// NewJobReport builds the report for job parsed from source.
func NewJobReport(source string, job jobdesc.JobDescription) JobReport {
	return JobReport{
		Source:       source,
		Job:          job,
		ResearchTips: jobdesc.ResearchTips(job),
		Questions:    resources.QuestionsFor(job.Industry),
	}
}

// RenderText implements TextRenderer.
func (r JobReport) RenderText(w io.Writer, s Styles) error {
	var b strings.Builder
	if r.Source != "" {
		fmt.Fprintf(&b, "%s\n", s.Muted.Render("# "+r.Source))
	}
	fmt.Fprintf(&b, "%s at %s\n", s.Title.Render(r.Job.Title), s.Subtitle.Render(r.Job.Company))
	fmt.Fprintf(&b, "%s %s\n", s.Label.Render("Industry:"), r.Job.Industry)
	fmt.Fprintf(&b, "%s %s\n", s.Label.Render("Experience:"), r.Job.Experience)
	skills := "none detected"
	if len(r.Job.Skills) > 0 {
		skills = strings.Join(r.Job.Skills, ", ")
	}
	fmt.Fprintf(&b, "%s %s\n", s.Label.Render("Skills:"), skills)
	writeList(&b, s, s.Label.Render("Research tips"), r.ResearchTips)
	writeList(&b, s, s.Label.Render("Questions common in "+string(r.Job.Industry)), r.Questions)
	_, err := io.WriteString(w, b.String())
	return err
}

// JobReports renders several reports separated by blank lines.
type JobReports []JobReport

// RenderText implements TextRenderer.
func (rs JobReports) RenderText(w io.Writer, s Styles) error {
	for i, r := range rs {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.RenderText(w, s); err != nil {
			return err
		}
	}
	return nil
}

// QuestionList is a filtered view of the catalog.
type QuestionList struct {
	Fingerprint string             `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Count       int                `json:"count" yaml:"count"`
	Questions   []catalog.Question `json:"questions" yaml:"questions"`
}

// RenderText implements TextRenderer.
func (r QuestionList) RenderText(w io.Writer, s Styles) error {
	var b strings.Builder
	for _, q := range r.Questions {
		meta := fmt.Sprintf("%s · %s · %s · %ds", q.Type, q.Difficulty, q.Format(), q.TimeLimit())
		if q.Category != "" {
			meta += " · " + q.Category
		}
		fmt.Fprintf(&b, "%s %s\n", s.Key.Render(fmt.Sprintf("%-10s", q.ID)), q.Text)
		fmt.Fprintf(&b, "%s %s\n", strings.Repeat(" ", 10), s.Muted.Render(meta))
	}
	fmt.Fprintf(&b, "\n%s\n", s.Label.Render(fmt.Sprintf("%d question(s)", r.Count)))
	if r.Fingerprint != "" {
		fmt.Fprintf(&b, "%s %s\n", s.Label.Render("Fingerprint:"), r.Fingerprint)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// TipsReport is the preparation material.
type TipsReport struct {
	resources.Bundle `yaml:",inline"`
}

// RenderText implements TextRenderer.
func (r TipsReport) RenderText(w io.Writer, s Styles) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", s.Label.Render("STAR method:"), r.STARMethod)
	fmt.Fprintf(&b, "%s %s\n", s.Label.Render("Common interview questions:"), r.CommonQuestions)
	writeList(&b, s, s.Title.Render("Salary negotiation"), r.SalaryNegotiation)
	writeList(&b, s, s.Title.Render("Body language"), r.BodyLanguage)
	for _, iq := range r.Industries {
		writeList(&b, s, s.Title.Render(string(iq.Industry)+" questions"), iq.Questions)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeList(b *strings.Builder, s Styles, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", heading)
	for _, it := range items {
		fmt.Fprintf(b, "  %s %s\n", s.Bullet.Render("•"), it)
	}
}

var (
	_ TextRenderer = FeedbackReport{}
	_ TextRenderer = SessionSummary{}
	_ TextRenderer = JobReport{}
	_ TextRenderer = JobReports{}
	_ TextRenderer = QuestionList{}
	_ TextRenderer = TipsReport{}
)

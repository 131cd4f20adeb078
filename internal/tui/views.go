package tui

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/rehearse/internal/catalog"
	"github.com/felixgeelhaar/rehearse/internal/session"
	"github.com/felixgeelhaar/rehearse/internal/ux"
)

// View implements tea.Model.
func (m *PracticeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	switch m.state.Phase() {
	case session.PhaseAnswering:
		b.WriteString(m.renderAnswering())
	case session.PhaseReviewing:
		b.WriteString(m.renderHeader())
		b.WriteString(m.review.View())
		b.WriteString("\n")
	case session.PhaseComplete:
		b.WriteString(m.review.View())
		b.WriteString("\n")
	default:
		b.WriteString(m.styles.Muted.Render("No session."))
		b.WriteString("\n")
	}

	if m.lastErr != nil {
		b.WriteString(m.styles.Error.Render("Error: "+m.lastErr.Error()) + "\n")
	}
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *PracticeModel) renderHeader() string {
	s := m.state.Session
	q, ok := s.CurrentQuestion()
	if !ok {
		return ""
	}

	var b strings.Builder
	title := fmt.Sprintf("%s · Question %d/%d", s.JobRole, s.CurrentIndex+1, len(s.Questions))
	b.WriteString(m.styles.Title.Render(title) + "\n")
	b.WriteString(m.styles.Muted.Render(describe(q)) + "\n\n")
	b.WriteString(m.styles.Border.Render(q.Text) + "\n\n")
	return b.String()
}

func (m *PracticeModel) renderAnswering() string {
	q, _ := m.state.Session.CurrentQuestion()

	var b strings.Builder
	b.WriteString(m.renderHeader())

	limit := q.TimeLimit()
	frac := 0.0
	if limit > 0 {
		frac = float64(m.state.TimeLeft) / float64(limit)
	}
	b.WriteString(m.countdown.ViewAs(frac) + " ")
	switch {
	case m.state.Expired():
		b.WriteString(m.styles.Warning.Render("Time is up, submit when ready"))
	case m.state.Paused:
		b.WriteString(m.styles.Warning.Render(clock(m.state.TimeLeft) + " paused"))
	default:
		b.WriteString(m.styles.Label.Render(clock(m.state.TimeLeft) + " left"))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %d%%\n\n", m.styles.Label.Render("Confidence:"), m.state.Confidence)
	b.WriteString(m.editor.View())
	b.WriteString("\n")
	return b.String()
}

func describe(q catalog.Question) string {
	parts := []string{q.Type.String(), q.Difficulty.String()}
	if q.Format() == catalog.FormatSTAR {
		parts = append(parts, "answer in STAR format")
	}
	if q.Category != "" {
		parts = append(parts, q.Category)
	}
	return strings.Join(parts, " · ")
}

func clock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func renderText(r ux.TextRenderer, s ux.Styles) string {
	var b strings.Builder
	if err := r.RenderText(&b, s); err != nil {
		return err.Error()
	}
	return b.String()
}

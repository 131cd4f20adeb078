package session

// State is an immutable snapshot of a practice run together with the
// presentation flags that drive it. Every transition returns a new State and
// leaves the receiver untouched.
type State struct {
	Session      *Session
	TimeLeft     int
	Answering    bool
	ShowFeedback bool
	Paused       bool
	Draft        string
	Confidence   int
}

// Reset discards any session and returns to configuring.
func Reset() State {
	return State{Confidence: DefaultConfidence}
}

// Phase derives the observable phase from the flags.
func (s State) Phase() Phase {
	switch {
	case s.Session == nil:
		return PhaseConfiguring
	case s.Session.IsComplete():
		return PhaseComplete
	case s.ShowFeedback:
		return PhaseReviewing
	default:
		return PhaseAnswering
	}
}

// TimerActive reports whether ticks currently have an effect.
func (s State) TimerActive() bool {
	return s.Phase() == PhaseAnswering && s.Answering && !s.Paused && s.TimeLeft > 0
}

// Expired reports whether the countdown ran out on an unsubmitted answer.
// Expiry is soft: submission is still required and still accepted.
func (s State) Expired() bool {
	return s.Phase() == PhaseAnswering && s.Answering && s.TimeLeft == 0
}

// Tick advances the countdown by one second when the timer is active.
func (s State) Tick() State {
	if !s.TimerActive() {
		return s
	}
	s.TimeLeft--
	return s
}

// Pause stops ticks from having an effect.
func (s State) Pause() State {
	if s.Session == nil {
		return s
	}
	s.Paused = true
	return s
}

// Resume lets ticks take effect again.
func (s State) Resume() State {
	s.Paused = false
	return s
}

// WithDraft replaces the answer draft while answering.
func (s State) WithDraft(text string) State {
	if s.Phase() != PhaseAnswering {
		return s
	}
	s.Draft = text
	return s
}

// WithConfidence sets the draft confidence, clamped to [0,100].
func (s State) WithConfidence(confidence int) State {
	if s.Phase() != PhaseAnswering {
		return s
	}
	s.Confidence = clampConfidence(confidence)
	return s
}

// LastAnswer returns the most recently submitted answer.
func (s State) LastAnswer() (Answer, bool) {
	if s.Session == nil || len(s.Session.Answers) == 0 {
		return Answer{}, false
	}
	return s.Session.Answers[len(s.Session.Answers)-1], true
}

func clampConfidence(c int) int {
	return max(0, min(100, c))
}

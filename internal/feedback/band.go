package feedback

// Band is a qualitative grade derived from a clamped score.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandAdequate  Band = "adequate"
	BandNeedsWork Band = "needs_work"
)

// BandFor maps a score to its band: [80,100] excellent, [60,80) good,
// [40,60) adequate, below 40 needs work.
func BandFor(score int) Band {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 60:
		return BandGood
	case score >= 40:
		return BandAdequate
	default:
		return BandNeedsWork
	}
}

// String returns the string representation of the band
func (b Band) String() string {
	return string(b)
}

// Assessment returns the overall assessment sentence for the band.
func (b Band) Assessment() string {
	switch b {
	case BandExcellent:
		return "Excellent response! You demonstrate strong communication skills and relevant experience."
	case BandGood:
		return "Good response with room for improvement. Focus on the suggested areas to strengthen your answer."
	case BandAdequate:
		return "Adequate response but needs significant improvement. Practice with the suggested resources."
	default:
		return "Response needs substantial work. Consider practicing more and reviewing interview best practices."
	}
}

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for rehearse
type Metrics struct {
	// Command execution metrics
	CommandExecutions *prometheus.CounterVec
	CommandDuration   *prometheus.HistogramVec

	// Session metrics
	SessionsStarted     *prometheus.CounterVec
	SessionsCompleted   *prometheus.CounterVec
	SessionsAbandoned   *prometheus.CounterVec
	SessionDuration     *prometheus.HistogramVec
	SessionScore        *prometheus.HistogramVec
	DrawRejections      *prometheus.CounterVec
	RejectedTransitions *prometheus.CounterVec

	// Answer metrics
	AnswersScored *prometheus.CounterVec
	AnswerScore   *prometheus.HistogramVec
	AnswerTime    *prometheus.HistogramVec

	// Job description metrics
	JobDescriptionsParsed *prometheus.CounterVec

	// Error metrics (by error code from structured errors)
	Errors *prometheus.CounterVec
}

var scoreBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// NewMetrics creates a new Metrics instance with all metrics registered
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		CommandExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rehearse_command_executions_total",
				Help: "Total number of command executions",
			},
			[]string{"command", "success"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rehearse_command_duration_seconds",
				Help:    "Command execution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),

		SessionsStarted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rehearse_sessions_started_total",
				Help: "Total number of practice sessions started",
			},
			[]string{"type", "difficulty"},
		),
		SessionsCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rehearse_sessions_completed_total",
				Help: "Total number of practice sessions completed",
			},
			[]string{"type", "band"},
		),
		SessionsAbandoned: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rehearse_sessions_abandoned_total",
				Help: "Total number of sessions reset or replaced before completion",
			},
			[]string{"phase"},
		),
		SessionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rehearse_session_duration_seconds",
				Help:    "Practice session duration in seconds",
				Buckets: []float64{60, 300, 600, 1200, 1800, 3600},
			},
			[]string{"type"},
		),
		SessionScore: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rehearse_session_score",
				Help:    "Overall score of completed sessions",
				Buckets: scoreBuckets,
			},
			[]string{"type"},
		),
		DrawRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rehearse_draw_rejections_total",
				Help: "Total number of session starts rejected because no question matched",
			},
			[]string{"type", "difficulty"},
		),
		RejectedTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rehearse_rejected_transitions_total",
				Help: "Total number of operations rejected in the current phase",
			},
			[]string{"operation", "phase"},
		),

		AnswersScored: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rehearse_answers_scored_total",
				Help: "Total number of answers scored",
			},
			[]string{"format", "band"},
		),
		AnswerScore: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rehearse_answer_score",
				Help:    "Score of individual answers",
				Buckets: scoreBuckets,
			},
			[]string{"format"},
		),
		AnswerTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rehearse_answer_time_seconds",
				Help:    "Time spent on individual answers in seconds",
				Buckets: []float64{15, 30, 60, 120, 180, 300, 600, 900},
			},
			[]string{"format"},
		),

		JobDescriptionsParsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rehearse_job_descriptions_parsed_total",
				Help: "Total number of job descriptions parsed",
			},
			[]string{"industry"},
		),

		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rehearse_errors_total",
				Help: "Total number of errors by error code",
			},
			[]string{"error_code", "component"},
		),
	}
}

// The Record helpers are no-ops on a nil *Metrics so callers can run
// without instrumentation.

// RecordCommand records one command execution
func (m *Metrics) RecordCommand(command string, success bool, d time.Duration) {
	if m == nil {
		return
	}
	m.CommandExecutions.WithLabelValues(command, strconv.FormatBool(success)).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(d.Seconds())
}

// RecordSessionStarted records a session start
func (m *Metrics) RecordSessionStarted(sessionType, difficulty string) {
	if m == nil {
		return
	}
	m.SessionsStarted.WithLabelValues(sessionType, difficulty).Inc()
}

// RecordDrawRejected records a start rejected for an empty draw
func (m *Metrics) RecordDrawRejected(sessionType, difficulty string) {
	if m == nil {
		return
	}
	m.DrawRejections.WithLabelValues(sessionType, difficulty).Inc()
}

// RecordTransitionRejected records an operation refused in phase
func (m *Metrics) RecordTransitionRejected(operation, phase string) {
	if m == nil {
		return
	}
	m.RejectedTransitions.WithLabelValues(operation, phase).Inc()
}

// RecordAnswer records one scored answer
func (m *Metrics) RecordAnswer(format, band string, score, timeSpentSeconds int) {
	if m == nil {
		return
	}
	m.AnswersScored.WithLabelValues(format, band).Inc()
	m.AnswerScore.WithLabelValues(format).Observe(float64(score))
	m.AnswerTime.WithLabelValues(format).Observe(float64(timeSpentSeconds))
}

// RecordSessionCompleted records a completed session
func (m *Metrics) RecordSessionCompleted(sessionType, band string, score int, d time.Duration) {
	if m == nil {
		return
	}
	m.SessionsCompleted.WithLabelValues(sessionType, band).Inc()
	m.SessionScore.WithLabelValues(sessionType).Observe(float64(score))
	m.SessionDuration.WithLabelValues(sessionType).Observe(d.Seconds())
}

// RecordSessionAbandoned records a session discarded before completion
func (m *Metrics) RecordSessionAbandoned(phase string) {
	if m == nil {
		return
	}
	m.SessionsAbandoned.WithLabelValues(phase).Inc()
}

// RecordJobDescription records one parsed job description
func (m *Metrics) RecordJobDescription(industry string) {
	if m == nil {
		return
	}
	m.JobDescriptionsParsed.WithLabelValues(industry).Inc()
}

// RecordError records a coded error
func (m *Metrics) RecordError(code, component string) {
	if m == nil || code == "" {
		return
	}
	m.Errors.WithLabelValues(code, component).Inc()
}

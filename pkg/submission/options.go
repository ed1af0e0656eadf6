package submission

import (
	"log/slog"
	"time"

	"github.com/goliatone/go-regform/pkg/metrics"
)

// Default outcome texts.
const (
	DefaultSuccessText = "Registration successful! Your information has been saved."
	DefaultFailureText = "Error saving your information. Please try again."
)

type config struct {
	logger      *slog.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
	sessionID   string
	successText string
	failureText string
}

// Option configures a Controller.
type Option func(*config)

// WithLogger sets the structured logger. Nil keeps the discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records edits, submissions and restores on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithClock overrides the clock used to stamp submission records.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithSessionID sets the identifier attached to every log line. A random
// UUID is used when omitted.
func WithSessionID(id string) Option {
	return func(c *config) {
		if id != "" {
			c.sessionID = id
		}
	}
}

// WithMessages overrides the success and failure texts. Empty values keep
// the defaults.
func WithMessages(success, failure string) Option {
	return func(c *config) {
		if success != "" {
			c.successText = success
		}
		if failure != "" {
			c.failureText = failure
		}
	}
}

package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/zirospace/zirospace-cms/internal/logging"
	"github.com/zirospace/zirospace-cms/pkg/interfaces"
)

// Settings carries the collaborators shared by every entity repository.
type Settings struct {
	Now    func() time.Time
	NewID  func() string
	Logger interfaces.Logger
}

// Option configures a repository at construction time.
type Option func(*Settings)

// WithClock overrides the clock used to stamp created_at/updated_at.
func WithClock(clock func() time.Time) Option {
	return func(s *Settings) {
		if clock != nil {
			s.Now = clock
		}
	}
}

// WithIDGenerator overrides the row identifier generator.
func WithIDGenerator(generator func() string) Option {
	return func(s *Settings) {
		if generator != nil {
			s.NewID = generator
		}
	}
}

// WithLogger sets the logger used for store failures and skipped rows.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Settings) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// ResolveSettings applies opts over the defaults: UTC wall clock truncated to
// microseconds (Postgres timestamp precision), random UUIDs, no-op logger.
func ResolveSettings(opts ...Option) Settings {
	s := Settings{
		Now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		NewID:  uuid.NewString,
		Logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

package wizard

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-policygen/pkg/answers"
)

// Option configures a Wizard.
type Option func(*Wizard)

// WithLogger sets the logger for transition tracing. The session id is
// attached as a field.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(w *Wizard) {
		if id != "" {
			w.sessionID = id
		}
	}
}

// WithNonSkippable replaces the catalog's non-skippable ids.
func WithNonSkippable(ids ...int) Option {
	return func(w *Wizard) {
		w.nonSkippable = make(map[int]struct{}, len(ids))
		for _, id := range ids {
			w.nonSkippable[id] = struct{}{}
		}
	}
}

// WithRecord seeds the answer record, e.g. from a settings file. Seeded
// fields are not marked answered.
func WithRecord(rec answers.Record) Option {
	return func(w *Wizard) {
		w.record = answers.Derive(rec)
	}
}

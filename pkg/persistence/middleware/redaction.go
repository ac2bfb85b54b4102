package middleware

import (
	"context"
	"regexp"

	"github.com/edulab/stepwise/pkg/domain"
	"github.com/edulab/stepwise/pkg/ports"
)

const maskedValue = "***"

type redactionMiddleware struct {
	next     ports.TimelineStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware creates a middleware that masks the values of
// variables whose names match any of the patterns before persisting.
// Traced snippets sometimes carry credentials in literals; this keeps
// them out of the session store.
func NewRedactionMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.TimelineStore) ports.TimelineStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}
}

func (m *redactionMiddleware) Save(ctx context.Context, sessionID string, snap *domain.TimelineSnapshot) error {
	// Clone first so the in-memory snapshot used by the controller is
	// never mutated.
	cloned := snap.Clone()

	for name, v := range cloned.Variables {
		if m.matches(name) {
			v.Value = maskedValue
			for i := range v.History {
				v.History[i].Value = maskedValue
			}
		}
	}
	for i := range cloned.Steps {
		d := cloned.Steps[i].Details
		if d == nil {
			continue
		}
		maskValues(d.Before, m.patterns)
		maskValues(d.After, m.patterns)
	}

	return m.next.Save(ctx, sessionID, cloned)
}

func (m *redactionMiddleware) Load(ctx context.Context, sessionID string) (*domain.TimelineSnapshot, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *redactionMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *redactionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *redactionMiddleware) matches(name string) bool {
	for _, p := range m.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

func maskValues(values map[string]any, patterns []*regexp.Regexp) {
	for name := range values {
		for _, p := range patterns {
			if p.MatchString(name) {
				values[name] = maskedValue
				break
			}
		}
	}
}

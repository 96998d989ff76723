package middleware

import (
	"context"
	"regexp"

	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
	"github.com/Ernest-Sab/IPR-Tool/pkg/ports"
)

type redactionMiddleware struct {
	next     ports.OperationStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware creates a middleware that masks asset names matching
// the patterns before records are persisted. Unreleased character and prop
// names are confidential in most productions; the shared history store does
// not need them.
func NewRedactionMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.OperationStore) ports.OperationStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}
}

func (m *redactionMiddleware) Save(ctx context.Context, rec *domain.OperationRecord) error {
	// Clone to avoid side effects on the record the engine still holds.
	masked := *rec
	masked.BaseObject = m.mask(masked.BaseObject)
	masked.DeformerName = m.mask(masked.DeformerName)
	masked.Error = m.mask(masked.Error)
	return m.next.Save(ctx, &masked)
}

func (m *redactionMiddleware) Get(ctx context.Context, id string) (*domain.OperationRecord, error) {
	return m.next.Get(ctx, id)
}

func (m *redactionMiddleware) List(ctx context.Context) ([]*domain.OperationRecord, error) {
	return m.next.List(ctx)
}

func (m *redactionMiddleware) mask(value string) string {
	for _, p := range m.patterns {
		value = p.ReplaceAllString(value, "***")
	}
	return value
}

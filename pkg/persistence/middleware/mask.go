package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/valence/pkg/domain"
	"github.com/aretw0/valence/pkg/ports"
)

// Mask replaces masked values before they reach the store.
const Mask = "***"

type maskMiddleware struct {
	next     ports.DocumentStore
	patterns []*regexp.Regexp
}

// NewMaskMiddleware creates a middleware that masks node data values whose
// keys match any of the patterns. Nested maps are masked too. Masking is
// one-way: Load returns whatever was stored.
func NewMaskMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &maskMiddleware{next: next, patterns: patterns}
	}
}

func (m *maskMiddleware) Save(ctx context.Context, id string, doc domain.Document) error {
	// Clone so the live document keeps its values.
	masked := doc.Clone()
	for _, n := range masked.Nodes {
		maskMap(n.Data, m.patterns)
	}
	return m.next.Save(ctx, id, masked)
}

func (m *maskMiddleware) Load(ctx context.Context, id string) (domain.Document, error) {
	return m.next.Load(ctx, id)
}

func (m *maskMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *maskMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func maskMap(m map[string]any, patterns []*regexp.Regexp) {
	for k, v := range m {
		for _, p := range patterns {
			if p.MatchString(k) {
				m[k] = Mask
				break
			}
		}

		if subMap, ok := v.(map[string]any); ok {
			maskMap(subMap, patterns)
		}
	}
}

package app

import (
	"context"
	"strings"

	"github.com/nkwalker/agentdb/internal/storage"
)

// blockedKeywords reject a statement outright when any of them appears in
// the lower-cased text. This is a substring scan, not a parse: a legitimate
// column literally named "update" is over-rejected, and tricks that hide a
// keyword are under-rejected. The limitation is accepted for a tool surface
// whose caller can simply rephrase.
var blockedKeywords = []string{
	"insert", "update", "delete", "drop", "alter", "truncate", "create", "grant",
}

// QueryGate is the read-only execution path. It shares the storage engine
// with the other services but consults neither the registry nor the
// protected set: acceptance is decided by keyword scan alone.
type QueryGate struct {
	tables storage.TableRepository
}

func NewQueryGate(tables storage.TableRepository) *QueryGate {
	return &QueryGate{tables: tables}
}

func (g *QueryGate) Execute(ctx context.Context, raw string) (*storage.ResultSet, error) {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	for _, keyword := range blockedKeywords {
		if strings.Contains(lowered, keyword) {
			return nil, ErrUnsafeQuery
		}
	}
	return g.tables.Query(ctx, raw)
}

package mcptools

import (
	"strings"

	"github.com/nkwalker/agentdb/internal/storage"
)

// maxSafeQueryChars caps the combined text output of the safe-query tool.
const maxSafeQueryChars = 1500

// defaultQueryLimit applies when query_table is called without a limit.
const defaultQueryLimit = 10

const truncationMarker = "...\n(Results truncated)"

// renderResultSet formats rows as a pipe-separated table: a header of
// column names, a dash rule, then one line per row.
func renderResultSet(rs *storage.ResultSet) string {
	var b strings.Builder
	header := strings.Join(rs.Columns, " | ")
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(header)))
	for _, row := range rs.Rows {
		b.WriteString("\n")
		b.WriteString(strings.Join(row, " | "))
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + truncationMarker
}

package store

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
)

// AdHocQuery executes user-supplied SQL and returns up to 100 rows as
// heterogeneous tuples. Only text whose trimmed, case-insensitive form starts
// with "select" is accepted. This is an advisory allow-list, not a parser: it
// does not defeat multi-statement or comment tricks. The row cap is appended
// by plain concatenation.
func (s *Store) AdHocQuery(ctx context.Context, query string) ([][]any, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || !strings.HasPrefix(strings.ToLower(trimmed), "select") {
		return nil, fmt.Errorf("%w: only SELECT queries are allowed", contractx.ErrInvalidArgument)
	}

	limited := fmt.Sprintf("%s LIMIT %d", strings.TrimSuffix(trimmed, ";"), adHocResultLimit)

	rows, err := s.db.QueryContext(ctx, limited)
	if err != nil {
		return nil, fmt.Errorf("%w: execute query: %v", contractx.ErrStore, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: read result columns: %v", contractx.ErrStore, err)
	}

	out := make([][]any, 0, 16)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: scan result row: %v", contractx.ErrStore, err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate result rows: %v", contractx.ErrStore, err)
	}

	return out, nil
}

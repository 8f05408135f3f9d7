// Package sqlutil holds helpers for assembling parameterized PostgreSQL
// statements.
package sqlutil

import (
	"fmt"
	"strconv"
	"strings"

	"jobly/pkg/utils"
)

// Field is one column assignment of a partial update, named in the caller's
// convention.
type Field struct {
	Name  string
	Value any
}

// PartialUpdate builds the SET clause of an UPDATE for the given fields.
//
// columns translates caller names to column names; names without an entry
// are used as-is. The clause is `"col1"=$1, "col2"=$2, ...` in the order of
// fields, and values[i] is bound to $i+1. Values never appear in the clause.
//
// An empty fields slice returns utils.ErrNoData.
func PartialUpdate(fields []Field, columns map[string]string) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, utils.ErrNoData
	}

	cols := make([]string, 0, len(fields))
	values := make([]any, 0, len(fields))
	for idx, f := range fields {
		col := f.Name
		if mapped, ok := columns[f.Name]; ok && mapped != "" {
			col = mapped
		}
		cols = append(cols, fmt.Sprintf("%s=%s", QuoteIdent(col), Placeholder(idx+1)))
		values = append(values, f.Value)
	}

	return strings.Join(cols, ", "), values, nil
}

// Placeholder returns the positional parameter marker for position n (1-based)
func Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// QuoteIdent wraps an identifier in double quotes, doubling embedded quotes
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

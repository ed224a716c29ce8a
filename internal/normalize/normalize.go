// Package normalize rewrites CSV column names into snake_case.
package normalize

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Header normalizes a single column name: surrounding whitespace is trimmed
// and the rest is rewritten to snake_case. The transformation is idempotent,
// so re-processing an already staged file leaves its header unchanged.
func Header(s string) string {
	return strcase.ToSnake(strings.TrimSpace(s))
}

// Row normalizes every column of a header row. The input slice is not
// modified.
func Row(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = Header(c)
	}
	return out
}

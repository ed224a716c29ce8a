// Package refresh holds the incremental-refresh engine: change selection,
// the fetch-transform-persist pipeline, and the orchestrator that ties them
// to the run ledger.
package refresh

import (
	"time"

	"dataset-refresh/internal/catalog"
)

// Select returns the entries tagged with theme whose modified timestamp is
// strictly after cutoff (UTC). Entries with an unparsable timestamp are
// excluded one by one and reported in skipped; a bad entry never aborts the
// rest of the selection.
//
// Deterministic, no side effects. Result order follows input order, but
// downstream processing does not depend on it.
func Select(entries []catalog.Entry, theme string, cutoff time.Time) (selected []catalog.Entry, skipped []error) {
	for _, e := range entries {
		if !e.HasTheme(theme) {
			continue
		}
		modified, err := e.ModifiedTime()
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		if modified.After(cutoff) {
			selected = append(selected, e)
		}
	}
	return selected, skipped
}

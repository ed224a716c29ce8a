// Package catalog models the remote dataset metadata catalog and fetches it
// with a local-snapshot fallback.
package catalog

import (
	"encoding/json"
	"fmt"
	"time"
)

// Entry is one item of the dataset catalog.
type Entry struct {
	Identifier   string         `json:"identifier"`
	Theme        []string       `json:"theme"`
	Modified     string         `json:"modified"`
	Distribution []Distribution `json:"distribution"`
}

type Distribution struct {
	DownloadURL string `json:"downloadURL"`
}

// DownloadURL returns the first distribution's download URL, or "" when the
// entry has none.
func (e Entry) DownloadURL() string {
	if len(e.Distribution) == 0 {
		return ""
	}
	return e.Distribution[0].DownloadURL
}

// HasTheme reports whether the entry is tagged with the given theme.
func (e Entry) HasTheme(name string) bool {
	for _, t := range e.Theme {
		if t == name {
			return true
		}
	}
	return false
}

// modifiedLayouts covers the ISO-8601 shapes the catalog emits: full
// timestamps with an offset, offset-less timestamps, and bare dates.
var modifiedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ModifiedTime parses the entry's last-change marker. Values without an
// offset are taken as UTC; everything is normalized to UTC.
func (e Entry) ModifiedTime() (time.Time, error) {
	for _, layout := range modifiedLayouts {
		if ts, err := time.Parse(layout, e.Modified); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("catalog: unparsable modified timestamp %q (entry %s)", e.Modified, e.Identifier)
}

// DecodeCatalog accepts either a bare JSON array of entries or an object
// wrapping the array in a "dataset" field. Any other shape is a format error.
func DecodeCatalog(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err == nil {
		return entries, nil
	}

	var wrapped struct {
		Dataset []Entry `json:"dataset"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Dataset != nil {
		return wrapped.Dataset, nil
	}

	return nil, fmt.Errorf("catalog: unexpected metadata format")
}

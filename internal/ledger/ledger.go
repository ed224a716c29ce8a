// Package ledger keeps the append-only run history that incremental
// refreshes derive their cutoff from.
package ledger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Delimiter separates the fields of one ledger line:
// <timestamp> | <message> | <invocation>
const Delimiter = " | "

// Ledger reads and appends the run history file. Single writer assumed; the
// orchestrator appends only after all workers have joined.
type Ledger struct {
	Path string
	Log  *zerolog.Logger

	// Now and Invocation exist for tests; zero values use the real clock
	// and the process command line.
	Now        func() time.Time
	Invocation func() string
}

// timestampLayouts accepts what Append writes plus older hand-edited lines
// without an offset.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// LastRunTime returns the timestamp of the most recent run, or the epoch
// floor (zero time, UTC) when the ledger is missing, empty, or its last line
// does not parse. Earlier lines are never scanned for a fallback.
func (l *Ledger) LastRunTime() time.Time {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.log().Warn().Err(err).Str("path", l.Path).Msg("could not read run ledger, using epoch floor")
		}
		return time.Time{}
	}

	var last string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			last = strings.TrimSpace(line)
		}
	}
	if last == "" {
		l.log().Warn().Str("path", l.Path).Msg("run ledger is empty, using epoch floor")
		return time.Time{}
	}

	field := strings.SplitN(last, Delimiter, 2)[0]
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, field); err == nil {
			return ts.UTC()
		}
	}

	l.log().Warn().Str("line", last).Msg("could not parse timestamp from run ledger, using epoch floor")
	return time.Time{}
}

// Append writes one run record: the current UTC timestamp, the message, and
// the invocation that produced the run. Existing content is never truncated
// or reordered.
func (l *Ledger) Append(message string) error {
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	invocation := defaultInvocation
	if l.Invocation != nil {
		invocation = l.Invocation
	}

	line := strings.Join([]string{
		now().UTC().Format(time.RFC3339Nano),
		message,
		invocation(),
	}, Delimiter) + "\n"

	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("ledger: open %s: %w", l.Path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("ledger: append to %s: %w", l.Path, err)
	}
	return nil
}

func defaultInvocation() string {
	return strings.Join(os.Args, " ")
}

func (l *Ledger) log() *zerolog.Logger {
	if l.Log != nil {
		return l.Log
	}
	nop := zerolog.Nop()
	return &nop
}

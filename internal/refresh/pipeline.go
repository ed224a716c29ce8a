package refresh

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"

	"dataset-refresh/internal/catalog"
	"dataset-refresh/internal/httpx"
	"dataset-refresh/internal/normalize"
)

// Pipeline downloads one entry's CSV, normalizes its header row, and writes
// it under OutputDir. Safe to run concurrently across distinct entries: the
// only shared state is the output directory, and MkdirAll is idempotent.
type Pipeline struct {
	OutputDir string
	HTTP      *http.Client
	Log       *zerolog.Logger
}

// Process handles a single entry. It returns the saved path, or "" when the
// entry was skipped (empty payload) and an error when it failed. Either way
// sibling entries are unaffected.
func (p *Pipeline) Process(ctx context.Context, entry catalog.Entry) (string, error) {
	filename, err := targetFilename(entry.DownloadURL())
	if err != nil {
		p.log().Warn().Str("identifier", entry.Identifier).Err(err).Msg("skipping entry")
		return "", err
	}

	p.log().Info().Str("file", filename).Msg("downloading")

	body, err := httpx.Get(ctx, p.HTTP, entry.DownloadURL())
	if err != nil {
		p.log().Warn().Str("file", filename).Err(err).Msg("download failed")
		return "", fmt.Errorf("download %s: %w", filename, err)
	}

	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	rows, err := reader.ReadAll()
	if err != nil {
		p.log().Warn().Str("file", filename).Err(err).Msg("csv parse failed")
		return "", fmt.Errorf("parse %s: %w", filename, err)
	}

	if len(rows) == 0 {
		// A skip, not a failure.
		p.log().Info().Str("file", filename).Msg("empty csv, skipping")
		return "", nil
	}

	rows[0] = normalize.Row(rows[0])

	if err := os.MkdirAll(p.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", p.OutputDir, err)
	}

	savePath := filepath.Join(p.OutputDir, filename)
	if err := writeRows(savePath, rows); err != nil {
		p.log().Warn().Str("file", filename).Err(err).Msg("write failed")
		return "", err
	}

	p.log().Info().Str("path", savePath).Msg("saved")
	return savePath, nil
}

func writeRows(savePath string, rows [][]string) error {
	f, err := os.Create(savePath)
	if err != nil {
		return fmt.Errorf("create %s: %w", savePath, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", savePath, err)
	}
	return nil
}

// targetFilename derives the local filename from the trailing path segment
// of the download URL. Last write wins when two entries map to the same
// name.
func targetFilename(rawURL string) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("entry has no download URL")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid download URL %q: %w", rawURL, err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("download URL %q has no file segment", rawURL)
	}
	return name, nil
}

func (p *Pipeline) log() *zerolog.Logger {
	if p.Log != nil {
		return p.Log
	}
	nop := zerolog.Nop()
	return &nop
}

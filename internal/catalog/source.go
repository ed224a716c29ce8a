package catalog

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"dataset-refresh/internal/httpx"
)

// Origin says where a fetched catalog actually came from.
type Origin int

const (
	// OriginRemote: the metadata endpoint answered with a well-formed catalog.
	OriginRemote Origin = iota
	// OriginFallback: the endpoint failed and the local snapshot was used.
	OriginFallback
	// OriginUnavailable: both failed; the catalog is empty.
	OriginUnavailable
)

func (o Origin) String() string {
	switch o {
	case OriginRemote:
		return "remote"
	case OriginFallback:
		return "fallback"
	default:
		return "unavailable"
	}
}

// Result is a fetched catalog plus its origin, so callers can tell the three
// outcomes apart without inspecting errors.
type Result struct {
	Entries []Entry
	Origin  Origin
}

// Source fetches the dataset catalog from a remote endpoint, falling back to
// a local cached snapshot of the same shape.
type Source struct {
	URL          string
	FallbackPath string
	Timeout      time.Duration
	HTTP         *http.Client
	Log          *zerolog.Logger
}

const defaultTimeout = 10 * time.Second

// Fetch never returns an error: a dead endpoint degrades to the fallback
// file, and a dead fallback degrades to an empty catalog the caller treats
// as "nothing to process".
func (s *Source) Fetch(ctx context.Context) Result {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.log().Info().Str("url", s.URL).Msg("fetching metadata catalog")

	body, err := httpx.Get(reqCtx, s.HTTP, s.URL)
	if err == nil {
		entries, decErr := DecodeCatalog(body)
		if decErr == nil {
			return Result{Entries: entries, Origin: OriginRemote}
		}
		err = decErr
	}

	s.log().Warn().Err(err).Str("fallback", s.FallbackPath).Msg("metadata fetch failed, falling back to local snapshot")

	data, readErr := os.ReadFile(s.FallbackPath)
	if readErr != nil {
		s.log().Warn().Err(readErr).Msg("fallback metadata unavailable, using empty catalog")
		return Result{Origin: OriginUnavailable}
	}

	entries, decErr := DecodeCatalog(data)
	if decErr != nil {
		s.log().Warn().Err(decErr).Msg("fallback metadata malformed, using empty catalog")
		return Result{Origin: OriginUnavailable}
	}

	return Result{Entries: entries, Origin: OriginFallback}
}

func (s *Source) log() *zerolog.Logger {
	if s.Log != nil {
		return s.Log
	}
	nop := zerolog.Nop()
	return &nop
}

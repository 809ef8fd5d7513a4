package driven

import (
	"context"
	"time"

	"github.com/openownership/boexplorer/internal/core/domain"
)

// Request is one registry call as the fetch engine prepares it.
type Request struct {
	// URL is the endpoint.
	URL string
	// Params are the query/body parameters, or a raw body.
	Params domain.Params
	// Extra are fixed parameters merged alongside Params.
	Extra map[string]any
	// Shape selects method and response decoding.
	Shape domain.PhaseShape
	// PostPagination merges paging values into the nested POST body.
	PostPagination bool
	// Headers are sent verbatim.
	Headers map[string]string
	// Auth describes credentials for the call.
	Auth domain.Authenticator
	// Session is the per-visit cookie identity, if any.
	Session domain.Session
	// Timeout bounds the call; 0 means the downloader default.
	Timeout time.Duration
	// InsecureTLS skips certificate verification, for registries with
	// broken chains on their ownership endpoints.
	InsecureTLS bool
	// Scheme names the calling registry, for rate limiting and logs.
	Scheme string
}

// Downloader performs registry HTTP calls. Implementations decode JSON
// bodies and pass HTML through; transport and HTTP-status failures surface
// as errors wrapping domain.ErrUpstream so callers can degrade them.
type Downloader interface {
	Fetch(ctx context.Context, req Request) (domain.Payload, error)
}

// ResponseCache stores raw response bodies keyed by request fingerprint.
// Lookups and writes are best effort; a cache that fails must never fail a
// fetch.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, body []byte) error
	Close() error
}

// Package download implements the Downloader port over net/http: request
// shaping for GET/POST/raw-body registries, per-registry rate limiting,
// credential handling and best-effort response caching.
package download

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
	"github.com/openownership/boexplorer/internal/logger"
)

// Ensure Downloader implements the port.
var _ driven.Downloader = (*Downloader)(nil)

// DefaultTimeout bounds requests for adapters that do not set their own.
const DefaultTimeout = 15 * time.Second

// Registries tolerate polite scraping; keep the per-registry rate modest.
const (
	requestsPerSecond = 2
	requestBurst      = 4
)

// Downloader performs registry HTTP calls. A nil cache disables caching.
type Downloader struct {
	client         *http.Client
	insecureClient *http.Client
	cache          driven.ResponseCache
	tokens         *tokenCache

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates a Downloader. cache may be nil.
func New(cache driven.ResponseCache) *Downloader {
	insecureTransport := http.DefaultTransport.(*http.Transport).Clone()
	insecureTransport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	return &Downloader{
		client:         &http.Client{},
		insecureClient: &http.Client{Transport: insecureTransport},
		cache:          cache,
		tokens:         newTokenCache(),
		limiters:       make(map[string]*rate.Limiter),
	}
}

// Fetch implements driven.Downloader.
func (d *Downloader) Fetch(ctx context.Context, req driven.Request) (domain.Payload, error) {
	key := cacheKey(req)
	if d.cache != nil {
		if body, ok := d.cache.Get(ctx, key); ok {
			logger.Debug("%s: cache hit for %s", req.Scheme, req.URL)
			return decode(body, req.Shape.JSON), nil
		}
	}

	if err := d.limiter(req.Scheme).Wait(ctx); err != nil {
		return domain.Payload{}, fmt.Errorf("waiting for rate limit: %w", err)
	}

	httpReq, err := d.build(ctx, req)
	if err != nil {
		return domain.Payload{}, err
	}

	// Per-request timeout via a shallow client copy; the transports stay
	// shared.
	client := *d.client
	if req.InsecureTLS {
		client = *d.insecureClient
	}
	client.Timeout = req.Timeout
	if client.Timeout <= 0 {
		client.Timeout = DefaultTimeout
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Payload{}, fmt.Errorf("%w: %s returned %d", domain.ErrUpstream, req.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("%w: reading body: %v", domain.ErrUpstream, err)
	}

	if d.cache != nil {
		if err := d.cache.Put(ctx, key, body); err != nil {
			logger.Warn("%s: cache write failed: %v", req.Scheme, err)
		}
	}
	return decode(body, req.Shape.JSON), nil
}

// build assembles the http.Request for one registry call.
func (d *Downloader) build(ctx context.Context, req driven.Request) (*http.Request, error) {
	var httpReq *http.Request
	var err error
	switch {
	case req.Shape.Post && req.Params.IsRaw():
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewBufferString(req.Params.Raw))
	case req.Shape.Post:
		body := postBody(req)
		encoded, merr := json.Marshal(body)
		if merr != nil {
			return nil, fmt.Errorf("encoding request body: %w", merr)
		}
		target := req.URL
		if !req.PostPagination && len(req.Extra) > 0 {
			target = req.URL + "?" + encodeQuery(req.Extra)
		}
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewBuffer(encoded))
	default:
		merged := make(map[string]any, len(req.Params.Values)+len(req.Extra))
		for k, v := range req.Params.Values {
			merged[k] = v
		}
		for k, v := range req.Extra {
			merged[k] = v
		}
		target := req.URL
		if len(merged) > 0 {
			target = req.URL + "?" + encodeQuery(merged)
		}
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
		if err == nil {
			httpReq.URL, err = url.Parse(target)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	d.setHeaders(httpReq, req)
	if err := d.authenticate(ctx, httpReq, req.Auth); err != nil {
		return nil, err
	}
	return httpReq, nil
}

// postBody merges pagination values into the POST body. Registries whose
// search command nests under a single envelope key get the paging merged
// into that envelope.
func postBody(req driven.Request) map[string]any {
	values := req.Params.Values
	if !req.PostPagination || len(req.Extra) == 0 {
		return values
	}
	out := make(map[string]any, len(values)+len(req.Extra))
	for k, v := range values {
		out[k] = v
	}
	if len(values) == 1 {
		for key, v := range values {
			if nested, ok := v.(map[string]any); ok {
				inner := make(map[string]any, len(nested)+len(req.Extra))
				for k, nv := range nested {
					inner[k] = nv
				}
				for k, ev := range req.Extra {
					inner[k] = ev
				}
				out[key] = inner
				return out
			}
		}
	}
	for k, v := range req.Extra {
		out[k] = v
	}
	return out
}

func (d *Downloader) setHeaders(httpReq *http.Request, req driven.Request) {
	if req.Shape.JSON {
		httpReq.Header.Set("Accept", "application/json")
		httpReq.Header.Set("Content-Type", "application/json")
	} else {
		httpReq.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.Session.UserAgent != "" {
		httpReq.Header.Set("User-Agent", req.Session.UserAgent)
	} else {
		httpReq.Header.Set("User-Agent", randomUserAgent())
	}
	if req.Session.Cookie != "" {
		httpReq.Header.Set("Cookie", req.Session.Cookie)
	}
}

func (d *Downloader) limiter(scheme string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.limiters[scheme]
	if !ok {
		l = rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst)
		d.limiters[scheme] = l
	}
	return l
}

// decode turns a response body into a payload. Bodies that fail to decode
// degrade to an empty payload, which reads as end-of-results upstream.
func decode(body []byte, isJSON bool) domain.Payload {
	if !isJSON {
		return domain.Payload{HTML: string(body)}
	}
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return domain.Payload{}
	}
	return domain.Payload{JSON: data}
}

// encodeQuery renders a parameter map as a query string with deterministic
// key order. List values repeat the key.
func encodeQuery(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	q := url.Values{}
	for _, k := range keys {
		switch v := params[k].(type) {
		case []any:
			for _, item := range v {
				q.Add(k, fmt.Sprint(item))
			}
		default:
			q.Add(k, fmt.Sprint(v))
		}
	}
	return q.Encode()
}

// cacheKey fingerprints a request by URL and canonicalised parameters.
func cacheKey(req driven.Request) string {
	params, _ := json.Marshal(req.Params.Values)
	if req.Params.IsRaw() {
		params = []byte(req.Params.Raw)
	}
	extra, _ := json.Marshal(req.Extra)
	sum := sha256.Sum256(fmt.Appendf(nil, "%s%s%s", req.URL, params, extra))
	return hex.EncodeToString(sum[:])
}

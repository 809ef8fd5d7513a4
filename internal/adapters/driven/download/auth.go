package download

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/openownership/boexplorer/internal/core/domain"
)

// bearerTokenLifetime is assumed when the login endpoint does not say.
const bearerTokenLifetime = 30 * time.Minute

// authenticate applies an adapter's credential recipe to a request.
func (d *Downloader) authenticate(ctx context.Context, httpReq *http.Request, auth domain.Authenticator) error {
	switch auth.Kind {
	case domain.AuthNone:
		return nil
	case domain.AuthBasic:
		httpReq.SetBasicAuth(auth.Username, auth.Password)
		return nil
	case domain.AuthHeaders:
		for k, v := range auth.Headers {
			httpReq.Header.Set(k, v)
		}
		return nil
	case domain.AuthBearer:
		token, err := d.tokens.token(ctx, auth)
		if err != nil {
			return fmt.Errorf("obtaining bearer token: %w", err)
		}
		token.SetAuthHeader(httpReq)
		return nil
	}
	return nil
}

// tokenCache holds one reusable token source per login endpoint, so a
// multi-page search logs in once.
type tokenCache struct {
	mu      sync.Mutex
	sources map[string]oauth2.TokenSource
}

func newTokenCache() *tokenCache {
	return &tokenCache{sources: make(map[string]oauth2.TokenSource)}
}

func (c *tokenCache) token(ctx context.Context, auth domain.Authenticator) (*oauth2.Token, error) {
	c.mu.Lock()
	source, ok := c.sources[auth.LoginURL]
	if !ok {
		source = oauth2.ReuseTokenSource(nil, &loginTokenSource{ctx: ctx, auth: auth})
		c.sources[auth.LoginURL] = source
	}
	c.mu.Unlock()
	return source.Token()
}

// loginTokenSource logs in with username and password and reads the issued
// token, the way the INPI SSO endpoint works.
type loginTokenSource struct {
	ctx  context.Context
	auth domain.Authenticator
}

func (s *loginTokenSource) Token() (*oauth2.Token, error) {
	body, err := json.Marshal(map[string]string{
		"username": s.auth.Username,
		"password": s.auth.Password,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(s.ctx, http.MethodPost, s.auth.LoginURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: login returned %d", domain.ErrUpstream, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}
	if payload.Token == "" {
		return nil, domain.ErrAuthRequired
	}
	return &oauth2.Token{
		AccessToken: payload.Token,
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(bearerTokenLifetime),
	}, nil
}

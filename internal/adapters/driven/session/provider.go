// Package session supplies per-visit request identity for registries that
// gate access on a browser-established cookie. Cookies are harvested out of
// band (a stealth-browser helper writes them into the config file); this
// provider only reads them back.
package session

import (
	"context"

	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
)

// Provider reads a registry's session cookie from configuration.
type Provider struct {
	store      driven.ConfigStore
	source     string
	cookieName string
}

// NewProvider creates a Provider for one configured source. cookieName is
// the cookie the registry expects, e.g. "S9SESSIONID".
func NewProvider(store driven.ConfigStore, source, cookieName string) *Provider {
	return &Provider{store: store, source: source, cookieName: cookieName}
}

// Session returns the configured identity. An unconfigured source yields
// the zero session; the registry then sees anonymous requests.
func (p *Provider) Session(_ context.Context) (domain.Session, error) {
	if p == nil || p.store == nil {
		return domain.Session{}, nil
	}
	value := p.store.GetString("sources." + p.source + ".session.cookie")
	if value == "" {
		return domain.Session{}, nil
	}
	return domain.Session{
		UserAgent: p.store.GetString("sources." + p.source + ".session.user_agent"),
		Cookie:    p.cookieName + "=" + value,
	}, nil
}

// Package registry carries the pieces shared by every registry adapter:
// default method implementations for the quiet parts of the contract and a
// few date helpers. Adapters embed Base and override what their registry
// actually has.
package registry

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/openownership/boexplorer/internal/core/domain"
)

// Base supplies neutral defaults for the optional corners of the adapter
// contract: no credentials, no static headers, no session, no additional
// identifiers, no business address and an official-register source type.
type Base struct{}

// Authenticator returns no credentials.
func (Base) Authenticator() domain.Authenticator { return domain.Authenticator{} }

// HTTPTimeout defers to the downloader default.
func (Base) HTTPTimeout() time.Duration { return 0 }

// HTTPHeaders returns no static headers.
func (Base) HTTPHeaders() map[string]string { return nil }

// Session returns the zero session.
func (Base) Session(context.Context) (domain.Session, error) {
	return domain.Session{}, nil
}

// AdditionalIdentifiers returns none.
func (Base) AdditionalIdentifiers(domain.RawItem) []domain.Identifier { return nil }

// BusinessAddress returns no trading address.
func (Base) BusinessAddress(domain.RawItem) (domain.RawItem, bool) {
	return domain.RawItem{}, false
}

// SourceType classifies the registry as an official register.
func (Base) SourceType(domain.RawItem) []string {
	return []string{domain.SourceOfficialRegister}
}

// Today is the current date in ISO 8601, for registries that publish no
// record update date.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// ISODate truncates a timestamp to its date part.
func ISODate(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}

// SplitFullName splits a plain full name into components: first token as
// given name, last token as family name.
func SplitFullName(full string) domain.NameComponents {
	fields := strings.Fields(full)
	c := domain.NameComponents{FullName: full}
	if len(fields) > 0 {
		c.GivenName = fields[0]
		c.FamilyName = fields[len(fields)-1]
	}
	return c
}

// FormatNumber renders a JSON number as the registry printed it, without a
// decimal point for whole values.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Stringish reads a field a registry serves as either string or number.
func Stringish(item domain.RawItem, key string) string {
	if s := item.String(key); s != "" {
		return s
	}
	if f, ok := domain.DigFloat(item.Data, key); ok {
		return FormatNumber(f)
	}
	return ""
}

// JoinNonEmpty joins the non-empty parts with the separator.
func JoinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}

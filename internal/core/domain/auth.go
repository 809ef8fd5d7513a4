package domain

// AuthKind selects how requests to a registry are authenticated.
type AuthKind int

// Authentication kinds.
const (
	// AuthNone sends no credentials.
	AuthNone AuthKind = iota
	// AuthBasic sends HTTP basic auth.
	AuthBasic
	// AuthBearer logs in at LoginURL first and sends the returned token
	// as a bearer Authorization header.
	AuthBearer
	// AuthHeaders sends the literal Headers with every request.
	AuthHeaders
)

// Authenticator is the credential recipe an adapter hands to the downloader.
// The zero value means unauthenticated.
type Authenticator struct {
	Kind     AuthKind
	Username string
	Password string
	LoginURL string
	Headers  map[string]string
}

// Session carries per-visit request identity for registries that gate access
// on a browser-established cookie.
type Session struct {
	UserAgent string
	Cookie    string
}

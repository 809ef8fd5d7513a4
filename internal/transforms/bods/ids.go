// Package bods shapes raw registry items into BODS v0.4 statements.
package bods

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Statement roles feeding the statement-id seed.
const (
	roleEntity = "entityStatement"
	rolePerson = "person"
)

// StatementID derives a deterministic statement id from a record identity
// and role. The seed hashes to an MD5-based UUID, so re-running a search
// over unchanged registry data reproduces identical ids.
func StatementID(name, role, version string) string {
	parts := []string{name, role}
	if version != "" {
		parts = append(parts, version)
	}
	seed := strings.Join(parts, "-")
	return uuid.NewMD5(uuid.NameSpaceDNS, []byte(seed)).String()
}

// FormatDate normalises a registry date to ISO 8601 (date only). Dotted
// dates read as day.month.year; anything else is parsed as ISO 8601.
// Unparseable values pass through unchanged rather than losing data.
func FormatDate(d string) string {
	if d == "" {
		return ""
	}
	if strings.Contains(d, ".") {
		if t, err := time.Parse("2.1.2006", d); err == nil {
			return t.Format("2006-01-02")
		}
		return d
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04:05",
		"2006-01-02",
		"2006-01",
		"2006",
	} {
		if t, err := time.Parse(layout, d); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return d
}

// now is swapped in tests for stable statement dates.
var now = time.Now

// CurrentDate is today in ISO 8601, used for annotation creation and
// publication dates.
func CurrentDate() string {
	return now().Format("2006-01-02")
}

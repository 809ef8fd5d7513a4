package estoniarik

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/openownership/boexplorer/internal/core/domain"
)

// BulkOwnersURL is the registry's open-data dump of beneficial owners, a
// zipped JSON array of companies each carrying a kasusaajad list.
const BulkOwnersURL = "https://avaandmed.ariregister.rik.ee/sites/default/files/avaandmed/ettevotja_rekvisiidid__kasusaajad.json.zip"

// BulkOwners is the in-memory index of the open-data beneficial-owners
// dump, keyed by registry code. Read-only after construction.
type BulkOwners struct {
	byCompany map[string][]domain.RawItem
}

type bulkCompany struct {
	Code   json.Number      `json:"ariregistri_kood"`
	Owners []map[string]any `json:"kasusaajad"`
}

// DownloadBulkOwners fetches and indexes the open-data dump. The dump runs
// to a few hundred megabytes unpacked, so callers should do this once per
// process, not per search.
func DownloadBulkOwners(ctx context.Context, client *http.Client) (*BulkOwners, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BulkOwnersURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building bulk owners request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading bulk owners: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading bulk owners: %w (status %d)", domain.ErrUpstream, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading bulk owners: %w", err)
	}
	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("opening bulk owners archive: %w", err)
	}
	for _, file := range archive.File {
		if !strings.HasSuffix(file.Name, ".json") {
			continue
		}
		r, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", file.Name, err)
		}
		defer r.Close()
		return NewBulkOwners(r)
	}
	return nil, fmt.Errorf("bulk owners archive: %w: no JSON entry", domain.ErrNoData)
}

// NewBulkOwners indexes a beneficial-owners dump read from r.
func NewBulkOwners(r io.Reader) (*BulkOwners, error) {
	dec := json.NewDecoder(r)
	var companies []bulkCompany
	if err := dec.Decode(&companies); err != nil {
		return nil, fmt.Errorf("decoding bulk owners: %w", err)
	}
	byCompany := make(map[string][]domain.RawItem, len(companies))
	for _, company := range companies {
		code := company.Code.String()
		if code == "" || len(company.Owners) == 0 {
			continue
		}
		items := make([]domain.RawItem, 0, len(company.Owners))
		for _, owner := range company.Owners {
			// Carry the company code on each owner so person record
			// ids stay unique across companies.
			owner["ariregistri_kood"] = code
			items = append(items, domain.Item(owner))
		}
		byCompany[code] = items
	}
	return &BulkOwners{byCompany: byCompany}, nil
}

// Owners returns the indexed beneficial owners for a registry code.
func (b *BulkOwners) Owners(code string) []domain.RawItem {
	if b == nil {
		return nil
	}
	return b.byCompany[code]
}

// Len reports how many companies have indexed owners.
func (b *BulkOwners) Len() int {
	if b == nil {
		return 0
	}
	return len(b.byCompany)
}

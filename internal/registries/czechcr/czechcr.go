// Package czechcr adapts the Czech Commercial Register at or.justice.cz.
// There is no JSON API: searches fetch the public results page and the
// records are scraped out of its details tables, keyed by the row headers
// as printed ("IČO:", "Sídlo:" and so on).
package czechcr

import (
	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
	"github.com/openownership/boexplorer/internal/registries/registry"
	"github.com/openownership/boexplorer/internal/scrape"
)

// Ensure Adapter implements the contract.
var _ driven.Adapter = (*Adapter)(nil)

const searchURL = "https://or.justice.cz/ias/ui/rejstrik-$firma"

// Adapter scrapes the or.justice.cz search results page.
type Adapter struct {
	registry.Base
}

// New creates the Czech Commercial Register adapter.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) Scheme() string            { return "CZ-CR" }
func (a *Adapter) SchemeName() string        { return "Commercial Register" }
func (a *Adapter) SourceDescription() string { return "Commercial Register (CZ)" }
func (a *Adapter) PublicSearchURL() string   { return searchURL }

func (a *Adapter) Protocol() domain.Protocol {
	return domain.Protocol{
		CompanySearch: &domain.PhaseShape{Post: false, JSON: false},
	}
}

func (a *Adapter) Pagination() domain.Pagination {
	return domain.Pagination{
		SizeParam:   "limit",
		NumberParam: "page",
		Origin:      1,
		MaxPageSize: 25,
	}
}

func (a *Adapter) CompanySearchURL() string { return searchURL }

func (a *Adapter) CompanyNameParams(text string) domain.Params {
	return domain.MapParams(map[string]any{
		"jenPlatne":  "PLATNE",
		"nazev":      text,
		"polozek":    50,
		"typHledani": "STARTS_WITH",
	})
}

func (a *Adapter) CompanyNameExtra() map[string]any { return nil }

func (a *Adapter) CheckResult(p domain.Payload, _ domain.Query) bool {
	return len(scrape.ExtractItems(p.HTML)) > 0
}

func (a *Adapter) FilterResult(domain.RawItem, domain.Query) bool { return true }

func (a *Adapter) ExtractData(p domain.Payload) []domain.RawItem {
	var items []domain.RawItem
	for _, record := range scrape.ExtractItems(p.HTML) {
		data := make(map[string]any, len(record))
		for k, v := range record {
			data[k] = v
		}
		items = append(items, domain.Item(data))
	}
	return items
}

func (a *Adapter) ExtractItem(item domain.RawItem) domain.RawItem { return item }

func (a *Adapter) Identifier(item domain.RawItem) string {
	return item.String("IČO:")
}

func (a *Adapter) RecordID(item domain.RawItem) string {
	return "CZ-CR-" + a.Identifier(item)
}

func (a *Adapter) EntityName(item domain.RawItem) string {
	return item.String("Název subjektu:")
}

func (a *Adapter) Jurisdiction(domain.RawItem) string { return "CZ" }

func (a *Adapter) RegisteredAddress(item domain.RawItem) (domain.RawItem, bool) {
	seat := item.String("Sídlo:")
	if seat == "" {
		return domain.RawItem{}, false
	}
	return domain.Item(map[string]any{"address": seat}), true
}

func (a *Adapter) AddressString(addr domain.RawItem) string {
	return addr.String("address")
}

func (a *Adapter) AddressCountry(domain.RawItem) string { return "CZ" }

func (a *Adapter) AddressPostcode(domain.RawItem) string { return "" }

func (a *Adapter) CreationDate(item domain.RawItem) string {
	created := item.String("Den zápisu:")
	if created == "" {
		return ""
	}
	return registry.ISODate(created)
}

func (a *Adapter) RegistrationStatus(domain.RawItem) string { return "" }

// UpdateDate is today: the results page prints no update stamp.
func (a *Adapter) UpdateDate(domain.RawItem) string { return registry.Today() }

func (a *Adapter) Annotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "Czech Commercial Register data for this entity: " + a.Identifier(item) +
			"; Registration Status: " + a.RegistrationStatus(item),
		Pointer: "/",
	}
}

// Package polandkrs adapts the Polish National Court Register (KRS). The
// search API is a POST endpoint with the whole query, pagination included,
// in the request body; listings carry little more than the KRS number, so
// every hit is followed up with a full current-extract (odpis) fetch from
// the open-data API. KRS numbers are zero-padded to ten digits everywhere.
package polandkrs

import (
	"fmt"
	"strconv"

	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
	"github.com/openownership/boexplorer/internal/registries/registry"
)

// Ensure Adapter implements the contract and its capabilities.
var (
	_ driven.Adapter         = (*Adapter)(nil)
	_ driven.CompanyDetailer = (*Adapter)(nil)
)

const (
	searchURL = "https://prs-openapi2-prs-prod.apps.ocp.prod.ms.gov.pl/api/wyszukiwarka/krs"
	detailURL = "https://api-krs.ms.gov.pl/api/krs/OdpisAktualny/"
)

// Adapter speaks the KRS search and open-data extract APIs.
type Adapter struct {
	registry.Base
}

// New creates the Polish National Court Register adapter.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) Scheme() string            { return "PL-KRS" }
func (a *Adapter) SchemeName() string        { return "The National Court Register" }
func (a *Adapter) SourceDescription() string { return "The National Court Register (Poland)" }
func (a *Adapter) PublicSearchURL() string {
	return "https://wyszukiwarka-krs.ms.gov.pl/"
}

func (a *Adapter) Protocol() domain.Protocol {
	return domain.Protocol{
		CompanySearch: &domain.PhaseShape{Post: true, JSON: true},
		CompanyDetail: &domain.PhaseShape{Post: false, JSON: true},
	}
}

// Pagination: the page ride inside the search body, so no external paging
// parameters exist and only the first hundred hits are reachable.
func (a *Adapter) Pagination() domain.Pagination {
	return domain.Pagination{MaxPageSize: 100}
}

func (a *Adapter) CompanySearchURL() string { return searchURL }

func (a *Adapter) CompanyNameParams(text string) domain.Params {
	return domain.MapParams(map[string]any{
		"rejestr": []any{"P"},
		"podmiot": map[string]any{
			"krs":         nil,
			"nip":         nil,
			"regon":       nil,
			"nazwa":       text,
			"wojewodztwo": nil,
			"powiat":      "",
			"gmina":       "",
			"miejscowosc": "",
		},
		"status": map[string]any{
			"czyOpp": nil,
			"czyWpisDotyczacyPostepowaniaUpadlosciowego": nil,
			"dataPrzyznaniaStatutuOppOd":                 nil,
			"dataPrzyznaniaStatutuOppDo":                 nil,
		},
		"paginacja": map[string]any{
			"liczbaElementowNaStronie": 100,
			"maksymalnaLiczbaWynikow":  100,
			"numerStrony":              1,
		},
	})
}

func (a *Adapter) CompanyNameExtra() map[string]any { return nil }

func (a *Adapter) CompanyDetailURL(item domain.RawItem) (string, bool) {
	krs := padKRS(registry.Stringish(item, "numer"))
	if krs == "" {
		return "", false
	}
	return detailURL + krs, true
}

func (a *Adapter) CompanyDetailParams(domain.RawItem) domain.Params {
	return domain.MapParams(map[string]any{"rejestr": "P", "format": "json"})
}

func (a *Adapter) CompanyDetailExtra() map[string]any { return nil }

// PreprocessDetail: the extract is consumed directly, no field table.
func (a *Adapter) PreprocessDetail(domain.Payload) domain.Fields { return nil }

func (a *Adapter) CheckResult(p domain.Payload, q domain.Query) bool {
	if q.Detail {
		_, ok := p.Object()["odpis"]
		return ok
	}
	_, ok := p.Object()["listaPodmiotow"]
	return ok
}

func (a *Adapter) FilterResult(domain.RawItem, domain.Query) bool { return true }

func (a *Adapter) ExtractData(p domain.Payload) []domain.RawItem {
	var items []domain.RawItem
	for _, element := range domain.DigList(p.JSON, "listaPodmiotow") {
		items = append(items, domain.Item(element))
	}
	return items
}

func (a *Adapter) ExtractItem(item domain.RawItem) domain.RawItem { return item }

func (a *Adapter) Identifier(item domain.RawItem) string {
	return padKRS(header(item, "numerKRS"))
}

func (a *Adapter) RecordID(item domain.RawItem) string {
	return "PL-KRS-" + a.Identifier(item)
}

func (a *Adapter) EntityName(item domain.RawItem) string {
	return domain.DigString(item.Data, "odpis", "dane", "dzial1", "danePodmiotu", "nazwa")
}

func (a *Adapter) Jurisdiction(domain.RawItem) string { return "PL" }

func (a *Adapter) RegisteredAddress(domain.RawItem) (domain.RawItem, bool) {
	return domain.RawItem{}, false
}

// BusinessAddress is the seat address from section one of the extract.
func (a *Adapter) BusinessAddress(item domain.RawItem) (domain.RawItem, bool) {
	addr := domain.DigMap(item.Data, "odpis", "dane", "dzial1", "siedzibaIAdres", "adres")
	return domain.Item(addr), addr != nil
}

func (a *Adapter) AddressString(addr domain.RawItem) string {
	return registry.JoinNonEmpty(", ",
		addr.String("nrDomu"),
		addr.String("ulica"),
		addr.String("miejscowosc"))
}

func (a *Adapter) AddressCountry(addr domain.RawItem) string {
	return addr.String("kraj")
}

func (a *Adapter) AddressPostcode(addr domain.RawItem) string {
	return addr.String("kodPocztowy")
}

func (a *Adapter) CreationDate(item domain.RawItem) string {
	created := header(item, "dataRejestracjiWKRS")
	if created == "" {
		return ""
	}
	return registry.ISODate(created)
}

func (a *Adapter) RegistrationStatus(domain.RawItem) string { return "" }

// UpdateDate is the extract's last-entry date; listings that never got a
// detail fetch fall back to today.
func (a *Adapter) UpdateDate(item domain.RawItem) string {
	if updated := header(item, "dataOstatniegoWpisu"); updated != "" {
		return registry.ISODate(updated)
	}
	return registry.Today()
}

func (a *Adapter) Annotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "Polish National Court Register data for this entity: " + a.Identifier(item) +
			"; Registration Status: " + a.RegistrationStatus(item),
		Pointer: "/",
	}
}

// header reads a field of the extract's naglowekA header, which mixes
// string and numeric values.
func header(item domain.RawItem, key string) string {
	if s := domain.DigString(item.Data, "odpis", "naglowekA", key); s != "" {
		return s
	}
	if f, ok := domain.DigFloat(item.Data, "odpis", "naglowekA", key); ok {
		return registry.FormatNumber(f)
	}
	return ""
}

// padKRS zero-pads a KRS number to its canonical ten digits.
func padKRS(number string) string {
	if number == "" {
		return ""
	}
	n, err := strconv.Atoi(number)
	if err != nil {
		return number
	}
	return fmt.Sprintf("%010d", n)
}

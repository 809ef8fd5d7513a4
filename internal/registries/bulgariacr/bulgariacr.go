// Package bulgariacr adapts the Bulgarian Commercial Register run by the
// Registry Agency. The register indexes in Cyrillic, so search text is
// transliterated on the way in. Deed summaries are thin; the useful fields
// (seat address, first entry date) live in per-deed detail responses as
// HTML snippets keyed by field code, flattened here into a field table.
package bulgariacr

import (
	"regexp"
	"strings"
	"time"

	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
	"github.com/openownership/boexplorer/internal/registries/registry"
	"github.com/openownership/boexplorer/internal/scrape"
	"github.com/openownership/boexplorer/internal/translit"
)

// Ensure Adapter implements the contract and its capabilities.
var (
	_ driven.Adapter         = (*Adapter)(nil)
	_ driven.CompanyDetailer = (*Adapter)(nil)
	_ driven.PersonSearcher  = (*Adapter)(nil)
	_ driven.Transliterator  = (*Adapter)(nil)
)

const baseURL = "https://portal.registryagency.bg/CR/api/Deeds"

// Field codes in the deed detail response.
const (
	fieldFirstEntry = "CR_F_1_L"
	fieldSeat       = "CR_F_5_L"
)

// Adapter speaks the portal.registryagency.bg deeds API.
type Adapter struct {
	registry.Base
}

// New creates the Bulgarian Commercial Register adapter.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) Scheme() string            { return "BG-EIK" }
func (a *Adapter) SchemeName() string        { return "Commercial Register (Bulgaria)" }
func (a *Adapter) SourceDescription() string { return "Bulgaria (Commercial Register)" }
func (a *Adapter) PublicSearchURL() string {
	return "https://portal.registryagency.bg/CR/en/Reports/VerificationPersonOrg"
}

func (a *Adapter) Protocol() domain.Protocol {
	return domain.Protocol{
		CompanySearch: &domain.PhaseShape{Post: false, JSON: true},
		CompanyDetail: &domain.PhaseShape{Post: false, JSON: true},
		PersonSearch:  &domain.PhaseShape{Post: false, JSON: true},
	}
}

func (a *Adapter) Pagination() domain.Pagination {
	return domain.Pagination{
		SizeParam:   "pageSize",
		NumberParam: "page",
		Origin:      1,
		MaxPageSize: 25,
	}
}

func (a *Adapter) ToLocal(text string) string   { return translit.BulgarianToCyrillic(text) }
func (a *Adapter) FromLocal(text string) string { return translit.BulgarianToLatin(text) }

func (a *Adapter) CompanySearchURL() string { return baseURL + "/Summary" }

func (a *Adapter) CompanyNameParams(text string) domain.Params {
	return domain.MapParams(map[string]any{"name": text})
}

func (a *Adapter) CompanyNameExtra() map[string]any {
	return map[string]any{"selectedSearchFilter": 1}
}

func (a *Adapter) CompanyDetailURL(item domain.RawItem) (string, bool) {
	ident := registry.Stringish(item, "ident")
	if ident == "" {
		return "", false
	}
	return baseURL + "/" + ident, true
}

func (a *Adapter) CompanyDetailParams(domain.RawItem) domain.Params {
	return domain.MapParams(map[string]any{})
}

func (a *Adapter) CompanyDetailExtra() map[string]any {
	return map[string]any{
		"entryDate":                   time.Now().UTC().Format("2006-01-02T15:04:05.000000Z"),
		"loadFieldsFromAllLegalForms": "true",
	}
}

// PreprocessDetail flattens the deed's sectioned HTML fields into one table
// keyed by field code.
func (a *Adapter) PreprocessDetail(p domain.Payload) domain.Fields {
	fields := domain.Fields{}
	for _, section := range domain.DigList(p.JSON, "sections") {
		for _, subdeed := range domain.DigList(section, "subDeeds") {
			for _, group := range domain.DigList(subdeed, "groups") {
				for _, field := range domain.DigList(group, "fields") {
					entry := domain.Item(field)
					code := entry.String("nameCode")
					if code == "" {
						continue
					}
					fields[code] = domain.Field{
						Text: scrape.Flatten(entry.String("htmlData")),
						Date: entry.String("fieldEntryDate"),
					}
				}
			}
		}
	}
	return fields
}

func (a *Adapter) PersonSearchURL() string { return baseURL + "/Subjects" }

func (a *Adapter) PersonNameParams(text string) domain.Params {
	return domain.MapParams(map[string]any{"name": text, "selectedSearchFilter": 0})
}

func (a *Adapter) PersonNameExtra() map[string]any { return nil }

func (a *Adapter) CheckResult(p domain.Payload, q domain.Query) bool {
	if q.Detail {
		_, ok := p.Object()["companyName"]
		return ok
	}
	return p.List() != nil
}

func (a *Adapter) FilterResult(domain.RawItem, domain.Query) bool { return true }

// ExtractData: summary responses are a bare list of deeds.
func (a *Adapter) ExtractData(p domain.Payload) []domain.RawItem {
	var items []domain.RawItem
	for _, element := range p.List() {
		items = append(items, domain.Item(element))
	}
	return items
}

func (a *Adapter) ExtractItem(item domain.RawItem) domain.RawItem { return item }

func (a *Adapter) Identifier(item domain.RawItem) string {
	return registry.Stringish(item, "uic")
}

func (a *Adapter) RecordID(item domain.RawItem) string {
	if uic := a.Identifier(item); uic != "" {
		return "BG-EIK-" + uic
	}
	return a.PersonRecordID(item)
}

func (a *Adapter) EntityName(item domain.RawItem) string {
	return item.String("companyName")
}

func (a *Adapter) Jurisdiction(domain.RawItem) string { return "BG" }

// RegisteredAddress parses the seat field out of the preprocessed detail
// table; listings without detail data carry no address.
func (a *Adapter) RegisteredAddress(item domain.RawItem) (domain.RawItem, bool) {
	seat, ok := item.Fields[fieldSeat]
	if !ok {
		return domain.RawItem{}, false
	}
	return domain.Item(parseSeat(seat.Text)), true
}

func (a *Adapter) AddressString(addr domain.RawItem) string {
	return addr.String("address")
}

func (a *Adapter) AddressCountry(addr domain.RawItem) string {
	if country := addr.String("country"); country != "БЪЛГАРИЯ" {
		return country
	}
	return "BG"
}

var postcodeRe = regexp.MustCompile(`[0-9]{4}`)

func (a *Adapter) AddressPostcode(addr domain.RawItem) string {
	return postcodeRe.FindString(addr.String("address"))
}

func (a *Adapter) CreationDate(item domain.RawItem) string {
	if first, ok := item.Fields[fieldFirstEntry]; ok && first.Date != "" {
		return registry.ISODate(first.Date)
	}
	return ""
}

func (a *Adapter) RegistrationStatus(domain.RawItem) string { return "" }

// UpdateDate is the newest field entry date in the deed, falling back to
// today for detail-less listings.
func (a *Adapter) UpdateDate(item domain.RawItem) string {
	updated := ""
	for _, field := range item.Fields {
		if date := registry.ISODate(field.Date); date > updated {
			updated = date
		}
	}
	if updated == "" {
		return registry.Today()
	}
	return updated
}

func (a *Adapter) Annotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "Bulgarian Commercial Register data for this entity: " + a.Identifier(item) +
			"; Registration Status: " + a.RegistrationStatus(item),
		Pointer: "/",
	}
}

func (a *Adapter) ExtractPersonItem(item domain.RawItem) domain.RawItem { return item }

func (a *Adapter) PersonIdentifier(item domain.RawItem) string {
	return strings.ReplaceAll(strings.TrimSpace(item.String("name")), " ", "-")
}

func (a *Adapter) PersonRecordID(item domain.RawItem) string {
	return "BG-EIK-PER-" + a.PersonIdentifier(item)
}

func (a *Adapter) PersonName(item domain.RawItem) domain.NameComponents {
	return registry.SplitFullName(item.String("name"))
}

func (a *Adapter) PersonBirthDate(domain.RawItem) string { return "" }

func (a *Adapter) PersonTaxResidency(item domain.RawItem) string {
	return item.String("taxResidencyOrJurisdiction")
}

// PersonAddress: subject records carry their address fields inline.
func (a *Adapter) PersonAddress(item domain.RawItem) (domain.RawItem, bool) {
	return item, item.Map() != nil
}

func (a *Adapter) PersonUpdateDate(domain.RawItem) string { return registry.Today() }

func (a *Adapter) PersonAnnotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "Bulgarian EIK data for this person: " + a.PersonRecordID(item),
		Pointer:     "/",
	}
}

func (a *Adapter) Unspecified(item domain.RawItem) bool {
	return strings.TrimSpace(item.String("name")) == ""
}

// parseSeat splits the flattened seat text on its Cyrillic labels:
// country, district, municipality, then the street address up to the
// telephone and fax entries.
func parseSeat(text string) map[string]any {
	rest := text
	next := func(label string) string {
		before, after, found := strings.Cut(rest, label)
		if found {
			rest = after
		} else {
			before, rest = rest, ""
		}
		return strings.TrimSpace(before)
	}
	next("Държава:")
	country := next("Област:")
	district := next("Община:")
	municipality := next("място:")
	address := next("Телефон:")
	telephone := next("Факс:")
	return map[string]any{
		"country":      country,
		"district":     district,
		"municipality": municipality,
		"address":      address,
		"telephone":    telephone,
		"fax":          strings.TrimSpace(rest),
	}
}

// Package slovakiaorsr adapts the Slovak Register of Legal Entities (RPO)
// API run by the Statistical Office. The register versions every field:
// names, identifiers and addresses arrive as histories, and the current
// value is the entry without a validTo date. Person searches go through the
// same endpoint and are narrowed to natural-person records.
package slovakiaorsr

import (
	"strings"

	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
	"github.com/openownership/boexplorer/internal/registries/registry"
)

// Ensure Adapter implements the contract and its capabilities.
var (
	_ driven.Adapter          = (*Adapter)(nil)
	_ driven.CompanyPersonser = (*Adapter)(nil)
	_ driven.PersonSearcher   = (*Adapter)(nil)
)

const baseURL = "https://api.statistics.sk/rpo/v1"

// Adapter speaks the api.statistics.sk RPO API.
type Adapter struct {
	registry.Base
}

// New creates the Slovak Business Register adapter.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) Scheme() string            { return "SK-ORSR" }
func (a *Adapter) SchemeName() string        { return "Business Register" }
func (a *Adapter) SourceDescription() string { return "Business Register (SK)" }
func (a *Adapter) PublicSearchURL() string   { return "https://www.orsr.sk/search_subjekt.asp?lan=en" }

func (a *Adapter) Protocol() domain.Protocol {
	return domain.Protocol{
		CompanySearch:  &domain.PhaseShape{Post: false, JSON: true},
		CompanyPersons: &domain.PhaseShape{Post: false, JSON: true},
		PersonSearch:   &domain.PhaseShape{Post: false, JSON: true},
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

func (a *Adapter) CompanySearchURL() string { return baseURL + "/search" }

func (a *Adapter) CompanyNameParams(text string) domain.Params {
	return domain.MapParams(map[string]any{"fullName": text})
}

func (a *Adapter) CompanyNameExtra() map[string]any { return nil }

func (a *Adapter) PersonSearchURL() string { return baseURL + "/search" }

func (a *Adapter) PersonNameParams(text string) domain.Params {
	return domain.MapParams(map[string]any{"fullName": text})
}

func (a *Adapter) PersonNameExtra() map[string]any { return nil }

func (a *Adapter) CheckResult(p domain.Payload, _ domain.Query) bool {
	_, ok := p.Object()["results"]
	return ok
}

// FilterResult narrows person searches to natural-person records; the
// search endpoint returns both kinds for either query.
func (a *Adapter) FilterResult(item domain.RawItem, q domain.Query) bool {
	if q.Phase == domain.PhasePersonSearch {
		return isPerson(item)
	}
	return true
}

func (a *Adapter) ExtractData(p domain.Payload) []domain.RawItem {
	var items []domain.RawItem
	for _, element := range domain.DigList(p.JSON, "results") {
		items = append(items, domain.Item(element))
	}
	return items
}

func (a *Adapter) ExtractItem(item domain.RawItem) domain.RawItem { return item }

func (a *Adapter) Identifier(item domain.RawItem) string {
	latest := latestOf(item, "identifiers")
	return latest.String("value")
}

func (a *Adapter) RecordID(item domain.RawItem) string {
	if !isPerson(item) {
		return "SK-ORSR-" + a.Identifier(item)
	}
	return a.PersonRecordID(item)
}

func (a *Adapter) EntityName(item domain.RawItem) string {
	latest := latestOf(item, "fullNames")
	return latest.String("value")
}

func (a *Adapter) Jurisdiction(domain.RawItem) string { return "SK" }

func (a *Adapter) RegisteredAddress(item domain.RawItem) (domain.RawItem, bool) {
	addresses := domain.DigList(item.Data, "addresses")
	if len(addresses) == 0 {
		return domain.RawItem{}, false
	}
	return domain.Item(addresses[0]), true
}

func (a *Adapter) AddressString(addr domain.RawItem) string {
	var postcode string
	if codes := domain.DigList(addr.Data, "postalCodes"); len(codes) > 0 {
		postcode, _ = codes[0].(string)
	}
	return registry.JoinNonEmpty(" ",
		addr.String("buildingNumber"),
		registry.JoinNonEmpty(", ",
			addr.String("street"),
			domain.DigString(addr.Data, "municipality", "value"),
			postcode))
}

func (a *Adapter) AddressCountry(addr domain.RawItem) string {
	return domain.DigString(addr.Data, "country", "value")
}

func (a *Adapter) AddressPostcode(addr domain.RawItem) string {
	if codes := domain.DigList(addr.Data, "postalCodes"); len(codes) > 0 {
		if s, ok := codes[0].(string); ok {
			return s
		}
	}
	return ""
}

func (a *Adapter) CreationDate(item domain.RawItem) string {
	created := item.String("establishment")
	if created == "" {
		return ""
	}
	return registry.ISODate(created)
}

func (a *Adapter) RegistrationStatus(item domain.RawItem) string {
	if _, terminated := item.Map()["termination"]; terminated {
		return "Terminated"
	}
	return "Active"
}

// UpdateDate is today: result records expose no update stamp.
func (a *Adapter) UpdateDate(domain.RawItem) string { return registry.Today() }

func (a *Adapter) Annotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "Slovakian Business Register data for this entity: " + a.Identifier(item) +
			"; Registration Status: " + a.RegistrationStatus(item),
		Pointer: "/",
	}
}

// CompanyPersonsURL is the full entity record; beneficial owners ride in
// its kuvPersonsInfo section.
func (a *Adapter) CompanyPersonsURL(item domain.RawItem) (string, bool) {
	id := registry.Stringish(item, "id")
	if id == "" {
		return "", false
	}
	return baseURL + "/entity/" + id, true
}

func (a *Adapter) CompanyPersonsParams(domain.RawItem) domain.Params {
	return domain.MapParams(map[string]any{"showHistoricalData": true})
}

func (a *Adapter) ExtractPersonsItems(p domain.Payload) []domain.RawItem {
	var items []domain.RawItem
	for _, element := range domain.DigList(p.JSON, "kuvPersonsInfo") {
		items = append(items, domain.Item(element))
	}
	return items
}

func (a *Adapter) ExtractPersonItem(item domain.RawItem) domain.RawItem { return item }

func (a *Adapter) PersonIdentifier(item domain.RawItem) string {
	name := domain.DigString(item.Data, "personName", "formatedName")
	if name == "" {
		name = latestName(item)
	}
	return strings.ReplaceAll(name, " ", "-")
}

func (a *Adapter) PersonRecordID(item domain.RawItem) string {
	return "SK-ORSR-PER-" + a.PersonIdentifier(item)
}

func (a *Adapter) PersonName(item domain.RawItem) domain.NameComponents {
	if person := domain.DigMap(item.Data, "personName"); person != nil {
		p := domain.Item(person)
		return domain.NameComponents{
			FullName:   p.String("formatedName"),
			GivenName:  p.String("givenNames"),
			FamilyName: p.String("familyNames"),
		}
	}
	return registry.SplitFullName(latestName(item))
}

func (a *Adapter) PersonBirthDate(domain.RawItem) string { return "" }

func (a *Adapter) PersonTaxResidency(item domain.RawItem) string {
	return domain.DigString(item.Data, "country", "value")
}

// PersonAddress: person records carry the same versioned address history;
// the newest entry is last.
func (a *Adapter) PersonAddress(item domain.RawItem) (domain.RawItem, bool) {
	addresses := domain.DigList(item.Data, "addresses")
	if len(addresses) == 0 {
		return domain.RawItem{}, false
	}
	return domain.Item(addresses[len(addresses)-1]), true
}

func (a *Adapter) PersonUpdateDate(domain.RawItem) string { return registry.Today() }

func (a *Adapter) PersonAnnotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "Slovakian Business Register data for this person: " + a.PersonRecordID(item),
		Pointer:     "/",
	}
}

func (a *Adapter) Unspecified(item domain.RawItem) bool {
	if domain.DigMap(item.Data, "personName") != nil {
		return false
	}
	return len(domain.DigList(item.Data, "fullNames")) == 0
}

func isPerson(item domain.RawItem) bool {
	if domain.DigMap(item.Data, "personName") != nil {
		return true
	}
	return domain.DigString(item.Data, "sourceRegister", "value", "code") == "2"
}

// latestOf picks the entry of a versioned history that has no validTo.
func latestOf(item domain.RawItem, key string) domain.RawItem {
	for _, element := range domain.DigList(item.Data, key) {
		entry, ok := element.(map[string]any)
		if !ok {
			continue
		}
		if _, closed := entry["validTo"]; !closed {
			return domain.Item(entry)
		}
	}
	return domain.RawItem{}
}

// latestName is the newest fullNames entry, which the register appends.
func latestName(item domain.RawItem) string {
	names := domain.DigList(item.Data, "fullNames")
	if len(names) == 0 {
		return ""
	}
	return domain.Item(names[len(names)-1]).String("value")
}

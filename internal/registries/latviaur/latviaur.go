// Package latviaur adapts the Latvian Register of Enterprises (Uzņēmumu
// reģistrs) info.ur.gov.lv API. The search endpoint is broad full-text, so
// results are filtered down to names that actually resemble the query;
// beneficial owners come from a per-entity beneficiaries endpoint.
package latviaur

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
	"github.com/openownership/boexplorer/internal/registries/registry"
)

// Ensure Adapter implements the contract and its capabilities.
var (
	_ driven.Adapter          = (*Adapter)(nil)
	_ driven.CompanyPersonser = (*Adapter)(nil)
)

const baseURL = "https://info.ur.gov.lv/api"

// Adapter speaks the info.ur.gov.lv legal-entity API.
type Adapter struct {
	registry.Base
}

// New creates the Latvian Register of Enterprises adapter.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) Scheme() string            { return "LV-RE" }
func (a *Adapter) SchemeName() string        { return "Commerce Register" }
func (a *Adapter) SourceDescription() string { return "Commerce Register (Latvia)" }
func (a *Adapter) PublicSearchURL() string   { return "https://info.ur.gov.lv/#/data-search" }

func (a *Adapter) Protocol() domain.Protocol {
	return domain.Protocol{
		CompanySearch:  &domain.PhaseShape{Post: false, JSON: true},
		CompanyPersons: &domain.PhaseShape{Post: false, JSON: true},
	}
}

func (a *Adapter) Pagination() domain.Pagination {
	return domain.Pagination{
		SizeParam:   "pageSize",
		NumberParam: "page",
		Origin:      0,
		MaxPageSize: 25,
	}
}

func (a *Adapter) CompanySearchURL() string { return baseURL + "/legalentity/search" }

func (a *Adapter) CompanyNameParams(text string) domain.Params {
	return domain.MapParams(map[string]any{"q": text})
}

func (a *Adapter) CompanyNameExtra() map[string]any { return nil }

func (a *Adapter) CheckResult(p domain.Payload, q domain.Query) bool {
	if q.Phase == domain.PhaseCompanyPersons {
		return p.Object() != nil
	}
	_, ok := p.Object()["responseHeader"]
	return ok
}

// FilterResult keeps only results whose name actually resembles the search
// text; the endpoint matches on every indexed field.
func (a *Adapter) FilterResult(item domain.RawItem, q domain.Query) bool {
	if q.Phase != domain.PhaseCompanySearch || q.Text == "" {
		return true
	}
	name := a.EntityName(item)
	if name == "" {
		return true
	}
	return nameRatio(q.Text, name) > 50
}

func (a *Adapter) ExtractData(p domain.Payload) []domain.RawItem {
	var items []domain.RawItem
	for _, element := range domain.DigList(p.JSON, "response", "docs") {
		items = append(items, domain.Item(element))
	}
	return items
}

func (a *Adapter) ExtractItem(item domain.RawItem) domain.RawItem { return item }

func (a *Adapter) Identifier(item domain.RawItem) string {
	return registry.Stringish(item, "regnumber")
}

func (a *Adapter) RecordID(item domain.RawItem) string {
	if reg := a.Identifier(item); reg != "" {
		return "LV-RE-" + reg
	}
	return a.PersonRecordID(item)
}

func (a *Adapter) EntityName(item domain.RawItem) string {
	return item.String("name")
}

func (a *Adapter) Jurisdiction(domain.RawItem) string { return "LV" }

// RegisteredAddress: the doc carries its address fields inline.
func (a *Adapter) RegisteredAddress(item domain.RawItem) (domain.RawItem, bool) {
	return item, item.Map() != nil
}

func (a *Adapter) AddressString(addr domain.RawItem) string {
	return addr.String("address")
}

func (a *Adapter) AddressCountry(domain.RawItem) string { return "Latvia" }

func (a *Adapter) AddressPostcode(addr domain.RawItem) string {
	return addr.String("postalCode")
}

func (a *Adapter) CreationDate(item domain.RawItem) string {
	created := item.String("registration_date")
	if created == "" {
		return ""
	}
	return registry.ISODate(created)
}

func (a *Adapter) RegistrationStatus(item domain.RawItem) string {
	return item.String("status")
}

// UpdateDate is today: the search index exposes no per-record update stamp.
func (a *Adapter) UpdateDate(domain.RawItem) string { return registry.Today() }

func (a *Adapter) Annotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "Latvian Commerce Register data for this entity: " + a.Identifier(item) +
			"; Registration Status: " + a.RegistrationStatus(item),
		Pointer: "/",
	}
}

func (a *Adapter) CompanyPersonsURL(item domain.RawItem) (string, bool) {
	code := registry.Stringish(item, "code")
	if code == "" {
		return "", false
	}
	return fmt.Sprintf("%s/legalentity/api/%s/persons/beneficiaries", baseURL, code), true
}

func (a *Adapter) CompanyPersonsParams(domain.RawItem) domain.Params {
	return domain.MapParams(map[string]any{"lang": "LV", "fillForeignerData": true})
}

func (a *Adapter) ExtractPersonsItems(p domain.Payload) []domain.RawItem {
	var items []domain.RawItem
	for _, element := range domain.DigList(p.JSON, "records") {
		items = append(items, domain.Item(element))
	}
	return items
}

func (a *Adapter) ExtractPersonItem(item domain.RawItem) domain.RawItem { return item }

func (a *Adapter) PersonIdentifier(item domain.RawItem) string {
	if code := registry.Stringish(item, "personCode"); code != "" {
		return code
	}
	return registry.JoinNonEmpty("-", item.String("firstname"), item.String("lastname"))
}

func (a *Adapter) PersonRecordID(item domain.RawItem) string {
	return "LV-RE-PER-" + a.PersonIdentifier(item)
}

func (a *Adapter) PersonName(item domain.RawItem) domain.NameComponents {
	given := item.String("firstname")
	family := item.String("lastname")
	return domain.NameComponents{
		FullName:   registry.JoinNonEmpty(" ", given, family),
		GivenName:  given,
		FamilyName: family,
	}
}

func (a *Adapter) PersonBirthDate(item domain.RawItem) string {
	born := item.String("birthDate")
	if born == "" {
		return ""
	}
	return registry.ISODate(born)
}

func (a *Adapter) PersonTaxResidency(item domain.RawItem) string {
	return domain.DigString(item.Data, "country", "value")
}

func (a *Adapter) PersonAddress(domain.RawItem) (domain.RawItem, bool) {
	return domain.RawItem{}, false
}

func (a *Adapter) PersonUpdateDate(domain.RawItem) string { return registry.Today() }

func (a *Adapter) PersonAnnotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "Latvian Commerce Register data for this person: " + a.PersonRecordID(item),
		Pointer:     "/",
	}
}

func (a *Adapter) Unspecified(item domain.RawItem) bool {
	return item.String("lastname") == ""
}

// nameRatio is the classic SequenceMatcher similarity on characters, scaled
// to 0-100.
func nameRatio(a, b string) int {
	m := difflib.NewMatcher(chars(a), chars(b))
	return int(m.Ratio() * 100)
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range strings.ToLower(s) {
		out = append(out, string(r))
	}
	return out
}

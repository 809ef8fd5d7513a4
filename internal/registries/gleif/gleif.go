// Package gleif adapts the Global Legal Entity Identifier Foundation API.
// GLEIF is the one supranational registry: its records carry an XI-LEI
// scheme, and where the LEI record repeats the local registration number
// the record id prefers the local scheme so results line up with national
// registries.
package gleif

import (
	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
	"github.com/openownership/boexplorer/internal/registries/registry"
)

// Ensure Adapter implements the contract.
var _ driven.Adapter = (*Adapter)(nil)

const baseURL = "https://api.gleif.org/api/v1"

// noRegistrationAuthority marks LEI records without a backing local
// register.
const noRegistrationAuthority = "RA999999"

// Adapter speaks the GLEIF lei-records API.
type Adapter struct {
	registry.Base
}

// New creates the GLEIF adapter.
func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Scheme() string            { return "XI-LEI" }
func (a *Adapter) SchemeName() string        { return "Global Legal Entity Identifier Index" }
func (a *Adapter) SourceDescription() string { return "GLEIF" }
func (a *Adapter) PublicSearchURL() string   { return "https://search.gleif.org/#/search/" }

func (a *Adapter) Protocol() domain.Protocol {
	return domain.Protocol{
		CompanySearch: &domain.PhaseShape{Post: false, JSON: true},
	}
}

func (a *Adapter) Pagination() domain.Pagination {
	return domain.Pagination{
		SizeParam:   "page[size]",
		NumberParam: "page[number]",
		Origin:      1,
		MaxPageSize: 100,
	}
}

func (a *Adapter) CompanySearchURL() string { return baseURL + "/lei-records" }

func (a *Adapter) CompanyNameParams(text string) domain.Params {
	return domain.MapParams(map[string]any{"filter[entity.names]": text})
}

func (a *Adapter) CompanyNameExtra() map[string]any { return nil }

func (a *Adapter) CheckResult(p domain.Payload, _ domain.Query) bool {
	_, ok := p.Object()["data"]
	return ok
}

func (a *Adapter) FilterResult(domain.RawItem, domain.Query) bool { return true }

func (a *Adapter) ExtractData(p domain.Payload) []domain.RawItem {
	var items []domain.RawItem
	for _, element := range domain.DigList(p.JSON, "data") {
		items = append(items, domain.Item(element))
	}
	return items
}

func (a *Adapter) ExtractItem(item domain.RawItem) domain.RawItem {
	return domain.Item(domain.Dig(item.Data, "attributes", "entity"))
}

func (a *Adapter) Identifier(item domain.RawItem) string {
	return item.String("attributes", "lei")
}

// RecordID prefers the local registration scheme when the LEI record
// names a known registration authority, so the same company found via its
// national registry merges with the GLEIF record.
func (a *Adapter) RecordID(item domain.RawItem) string {
	additional := a.AdditionalIdentifiers(a.ExtractItem(item))
	if len(additional) > 0 && additional[0].Scheme != "" && additional[0].ID != "" {
		return additional[0].Scheme + "-" + additional[0].ID
	}
	return "XI-LEI-" + a.Identifier(item)
}

func (a *Adapter) EntityName(item domain.RawItem) string {
	return item.String("legalName", "name")
}

func (a *Adapter) Jurisdiction(item domain.RawItem) string {
	return item.String("jurisdiction")
}

func (a *Adapter) AdditionalIdentifiers(item domain.RawItem) []domain.Identifier {
	registeredAs := item.String("registeredAs")
	if registeredAs == "" {
		return nil
	}
	raID := item.String("registeredAt", "id")
	if raID == noRegistrationAuthority {
		return nil
	}
	scheme, schemeName, ok := lookupAuthority(raID)
	if !ok {
		return []domain.Identifier{{ID: registeredAs}}
	}
	return []domain.Identifier{{ID: registeredAs, Scheme: scheme, SchemeName: schemeName}}
}

func (a *Adapter) RegisteredAddress(item domain.RawItem) (domain.RawItem, bool) {
	addr := domain.DigMap(item.Data, "legalAddress")
	return domain.Item(addr), addr != nil
}

func (a *Adapter) BusinessAddress(item domain.RawItem) (domain.RawItem, bool) {
	addr := domain.DigMap(item.Data, "headquartersAddress")
	return domain.Item(addr), addr != nil
}

func (a *Adapter) AddressString(addr domain.RawItem) string {
	var lines []string
	for _, line := range domain.DigList(addr.Data, "addressLines") {
		if s, ok := line.(string); ok && s != "" {
			lines = append(lines, s)
		}
	}
	if city := addr.String("city"); city != "" {
		lines = append(lines, city)
	}
	return registry.JoinNonEmpty(", ", lines...)
}

func (a *Adapter) AddressCountry(addr domain.RawItem) string {
	return addr.String("country")
}

func (a *Adapter) AddressPostcode(addr domain.RawItem) string {
	return addr.String("postalCode")
}

func (a *Adapter) CreationDate(item domain.RawItem) string {
	created := item.String("creationDate")
	if created == "" {
		return ""
	}
	return registry.ISODate(created)
}

func (a *Adapter) RegistrationStatus(item domain.RawItem) string {
	return item.String("attributes", "registration", "status")
}

// SourceType marks fully corroborated LEI records as verified.
func (a *Adapter) SourceType(item domain.RawItem) []string {
	if item.String("attributes", "registration", "corroborationLevel") == "FULLY_CORROBORATED" {
		return []string{domain.SourceOfficialRegister, domain.SourceVerified}
	}
	return []string{domain.SourceOfficialRegister}
}

func (a *Adapter) UpdateDate(item domain.RawItem) string {
	return item.String("attributes", "registration", "lastUpdateDate")
}

func (a *Adapter) Annotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "GLEIF data for this entity - LEI: " + a.Identifier(item) +
			"; Registration Status: " + a.RegistrationStatus(item),
		Pointer: "/",
	}
}

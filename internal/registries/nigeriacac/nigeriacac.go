// Package nigeriacac adapts the Nigerian Corporate Affairs Commission:
// company search against the public search app and beneficial owners
// against the Beneficial Ownership Register (BOR). Both are slow POST
// endpoints, so requests run with a long timeout. The BOR issues no person
// identifiers; person records are keyed by name plus street address.
package nigeriacac

import (
	"strings"
	"time"

	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
	"github.com/openownership/boexplorer/internal/registries/registry"
)

// Ensure Adapter implements the contract and its capabilities.
var (
	_ driven.Adapter        = (*Adapter)(nil)
	_ driven.PersonSearcher = (*Adapter)(nil)
	_ driven.PersonDetailer = (*Adapter)(nil)
)

const (
	companySearchURL = "https://searchapp.cac.gov.ng/api/public/public-search/company-business-name-it"
	personSearchURL  = "https://borapp.cac.gov.ng/borapp/api/bor-search/get_psc"
	personDetailURL  = "https://borapp.cac.gov.ng/borapp/api/bor-search/get_psc_details"
)

// Adapter speaks the CAC search app and BOR APIs.
type Adapter struct {
	registry.Base
}

// New creates the Nigerian Corporate Affairs Commission adapter.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) Scheme() string            { return "NG-CAC" }
func (a *Adapter) SchemeName() string        { return "Corporate Affairs Commission" }
func (a *Adapter) SourceDescription() string { return "Corporate Affairs Commission (Nigeria)" }
func (a *Adapter) PublicSearchURL() string   { return "https://bor.cac.gov.ng/" }

func (a *Adapter) Protocol() domain.Protocol {
	return domain.Protocol{
		CompanySearch: &domain.PhaseShape{Post: true, JSON: true},
		PersonSearch:  &domain.PhaseShape{Post: true, JSON: true},
		PersonDetail:  &domain.PhaseShape{Post: true, JSON: true},
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

// HTTPTimeout: both endpoints routinely take over a minute.
func (a *Adapter) HTTPTimeout() time.Duration { return 90 * time.Second }

func (a *Adapter) CompanySearchURL() string { return companySearchURL }

func (a *Adapter) CompanyNameParams(text string) domain.Params {
	return domain.MapParams(map[string]any{"searchTerm": text})
}

func (a *Adapter) CompanyNameExtra() map[string]any { return nil }

func (a *Adapter) PersonSearchURL() string { return personSearchURL }

func (a *Adapter) PersonNameParams(text string) domain.Params {
	return domain.MapParams(map[string]any{
		"searchItem": text,
		"searchType": "PSC FULLNAME",
	})
}

func (a *Adapter) PersonNameExtra() map[string]any { return nil }

func (a *Adapter) PersonDetailURL(item domain.RawItem) (string, bool) {
	if registry.Stringish(item, "companyId") == "" {
		return "", false
	}
	return personDetailURL, true
}

func (a *Adapter) PersonDetailParams(item domain.RawItem) domain.Params {
	return domain.MapParams(map[string]any{"id": registry.Stringish(item, "companyId")})
}

// PreprocessPersonDetail: detail responses are consumed directly.
func (a *Adapter) PreprocessPersonDetail(domain.Payload) domain.Fields { return nil }

func (a *Adapter) CheckResult(p domain.Payload, q domain.Query) bool {
	if q.Detail {
		if _, ok := p.Object()["companyName"]; ok {
			return true
		}
		if list := p.List(); len(list) > 0 {
			first := domain.Item(list[0])
			return first.String("affiliatesFirstname") != ""
		}
		return false
	}
	return domain.DigString(p.JSON, "status") == "OK"
}

// FilterResult drops corporate affiliates from person results and
// unregistered name reservations from company results.
func (a *Adapter) FilterResult(item domain.RawItem, q domain.Query) bool {
	if q.Phase == domain.PhasePersonSearch {
		return item.String("affiliatesSurname") != ""
	}
	return registry.Stringish(item, "rcNumber") != ""
}

func (a *Adapter) ExtractData(p domain.Payload) []domain.RawItem {
	var items []domain.RawItem
	if list := domain.DigList(p.JSON, "data", "data"); list != nil {
		for _, element := range list {
			items = append(items, domain.Item(element))
		}
		return items
	}
	for _, element := range p.List() {
		items = append(items, domain.Item(element))
	}
	return items
}

func (a *Adapter) ExtractItem(item domain.RawItem) domain.RawItem { return item }

func (a *Adapter) Identifier(item domain.RawItem) string {
	rc := registry.Stringish(item, "rcNumber")
	if rc == "" {
		return ""
	}
	return "RC" + rc
}

func (a *Adapter) RecordID(item domain.RawItem) string {
	if item.String("affiliatesSurname") == "" {
		return "NG-CAC-" + a.Identifier(item)
	}
	return a.PersonRecordID(item)
}

func (a *Adapter) EntityName(item domain.RawItem) string {
	return item.String("approvedName")
}

func (a *Adapter) Jurisdiction(domain.RawItem) string { return "NG" }

// RegisteredAddress: company listings carry no address fields, so this
// yields nothing for entities; the accessors exist for the shared address
// shape with person records.
func (a *Adapter) RegisteredAddress(item domain.RawItem) (domain.RawItem, bool) {
	return item, item.Map() != nil
}

func (a *Adapter) AddressString(addr domain.RawItem) string {
	return strings.TrimSpace(registry.JoinNonEmpty(" ",
		strings.TrimSpace(addr.String("affiliatesStreetNumber")),
		strings.TrimSpace(addr.String("affiliatesAddress"))))
}

func (a *Adapter) AddressCountry(domain.RawItem) string { return "NG" }

func (a *Adapter) AddressPostcode(addr domain.RawItem) string {
	return addr.String("affiliatesPostcode")
}

func (a *Adapter) CreationDate(item domain.RawItem) string {
	created := item.String("registrationDate")
	if created == "" {
		return ""
	}
	return registry.ISODate(created)
}

func (a *Adapter) RegistrationStatus(item domain.RawItem) string {
	return item.String("status")
}

// UpdateDate is today: neither endpoint exposes an update stamp.
func (a *Adapter) UpdateDate(domain.RawItem) string { return registry.Today() }

func (a *Adapter) Annotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "Nigerian CAC data for this entity: " + a.Identifier(item) +
			"; Registration Status: " + a.RegistrationStatus(item),
		Pointer: "/",
	}
}

func (a *Adapter) ExtractPersonItem(item domain.RawItem) domain.RawItem { return item }

// PersonIdentifier keys a BOR affiliate by name and the leading components
// of their street address, the only stable handles the register offers.
func (a *Adapter) PersonIdentifier(item domain.RawItem) string {
	first := strings.TrimSpace(item.String("affiliatesFirstname"))
	if first == "" {
		return registry.Stringish(item, "id")
	}
	surname := strings.ReplaceAll(strings.TrimSpace(item.String("affiliatesSurname")), " ", "-")
	parts := strings.Fields(item.String("affiliatesStreetNumber"))
	if len(parts) > 1 {
		parts = parts[len(parts)-1:]
	}
	parts = append(parts, strings.Fields(item.String("affiliatesAddress"))...)
	key := registry.JoinNonEmpty("-", first, surname)
	if len(parts) >= 2 {
		key = registry.JoinNonEmpty("-", key, parts[0], parts[1])
	}
	return key
}

func (a *Adapter) PersonRecordID(item domain.RawItem) string {
	return "NG-CAC-BOR-" + a.PersonIdentifier(item)
}

func (a *Adapter) PersonName(item domain.RawItem) domain.NameComponents {
	given := item.String("affiliatesFirstname")
	family := item.String("affiliatesSurname")
	return domain.NameComponents{
		FullName:   registry.JoinNonEmpty(" ", given, item.String("otherName"), family),
		GivenName:  given,
		FamilyName: family,
	}
}

func (a *Adapter) PersonBirthDate(item domain.RawItem) string {
	return item.String("dateOfBirth")
}

func (a *Adapter) PersonTaxResidency(item domain.RawItem) string {
	return item.String("taxResidencyOrJurisdiction")
}

func (a *Adapter) PersonAddress(item domain.RawItem) (domain.RawItem, bool) {
	return item, item.Map() != nil
}

func (a *Adapter) PersonUpdateDate(domain.RawItem) string { return registry.Today() }

func (a *Adapter) PersonAnnotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "Nigerian CAC BOR data for this person: " + a.PersonRecordID(item),
		Pointer:     "/",
	}
}

func (a *Adapter) Unspecified(item domain.RawItem) bool {
	for _, key := range []string{"affiliatesFirstname", "affiliatesSurname", "otherName"} {
		if item.String(key) != "" {
			return false
		}
	}
	return true
}

// Package ukcoh adapts the UK Companies House advanced-search API. The API
// wants the account's API key as the basic-auth username; records carry no
// update date, so today's date stands in and statement ids change day to
// day for this registry.
package ukcoh

import (
	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
	"github.com/openownership/boexplorer/internal/registries/registry"
)

// Ensure Adapter implements the contract.
var _ driven.Adapter = (*Adapter)(nil)

const searchURL = "https://api.company-information.service.gov.uk/advanced-search/companies"

// Adapter speaks the Companies House advanced-search API.
type Adapter struct {
	registry.Base
	config driven.ConfigStore
}

// New creates the Companies House adapter. Credentials are read from the
// sources.uk_coh.credentials config table at request time.
func New(config driven.ConfigStore) *Adapter {
	return &Adapter{config: config}
}

func (a *Adapter) Scheme() string            { return "GB-COH" }
func (a *Adapter) SchemeName() string        { return "Companies House" }
func (a *Adapter) SourceDescription() string { return "Companies House (UK)" }
func (a *Adapter) PublicSearchURL() string {
	return "https://find-and-update.company-information.service.gov.uk/advanced-search"
}

func (a *Adapter) Authenticator() domain.Authenticator {
	if a.config == nil {
		return domain.Authenticator{}
	}
	return domain.Authenticator{
		Kind:     domain.AuthBasic,
		Username: a.config.GetString("sources.uk_coh.credentials.user"),
		Password: a.config.GetString("sources.uk_coh.credentials.pass"),
	}
}

func (a *Adapter) Protocol() domain.Protocol {
	return domain.Protocol{
		CompanySearch: &domain.PhaseShape{Post: false, JSON: true},
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
	return domain.MapParams(map[string]any{"company_name_includes": text})
}

func (a *Adapter) CompanyNameExtra() map[string]any { return nil }

func (a *Adapter) CheckResult(p domain.Payload, q domain.Query) bool {
	if q.Detail {
		_, ok := p.Object()["companyName"]
		return ok
	}
	_, ok := p.Object()["etag"]
	return ok
}

func (a *Adapter) FilterResult(domain.RawItem, domain.Query) bool { return true }

func (a *Adapter) ExtractData(p domain.Payload) []domain.RawItem {
	var items []domain.RawItem
	for _, element := range domain.DigList(p.JSON, "items") {
		items = append(items, domain.Item(element))
	}
	return items
}

func (a *Adapter) ExtractItem(item domain.RawItem) domain.RawItem { return item }

func (a *Adapter) Identifier(item domain.RawItem) string {
	return item.String("company_number")
}

func (a *Adapter) RecordID(item domain.RawItem) string {
	return "GB-COH-" + a.Identifier(item)
}

func (a *Adapter) EntityName(item domain.RawItem) string {
	return item.String("company_name")
}

func (a *Adapter) Jurisdiction(domain.RawItem) string { return "UK" }

func (a *Adapter) RegisteredAddress(item domain.RawItem) (domain.RawItem, bool) {
	addr := domain.DigMap(item.Data, "registered_office_address")
	return domain.Item(addr), addr != nil
}

func (a *Adapter) AddressString(addr domain.RawItem) string {
	return registry.JoinNonEmpty(", ",
		addr.String("address_line_1"),
		addr.String("address_line_2"),
		addr.String("locality"),
		addr.String("region"))
}

func (a *Adapter) AddressCountry(addr domain.RawItem) string {
	return addr.String("country")
}

func (a *Adapter) AddressPostcode(addr domain.RawItem) string {
	return addr.String("postal_code")
}

func (a *Adapter) CreationDate(item domain.RawItem) string {
	created := item.String("date_of_creation")
	if created == "" {
		return ""
	}
	return registry.ISODate(created)
}

func (a *Adapter) RegistrationStatus(item domain.RawItem) string {
	return item.String("company_status")
}

// UpdateDate is today: the advanced-search API exposes no per-record
// update stamp.
func (a *Adapter) UpdateDate(domain.RawItem) string { return registry.Today() }

func (a *Adapter) Annotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "UK Companies House data for this entity: " + a.Identifier(item) +
			"; Registration Status: " + a.RegistrationStatus(item),
		Pointer: "/",
	}
}

// Package denmarkcvr adapts the Danish Central Business Register (Det
// Centrale Virksomhedsregister). The gateway is a browser-facing endpoint:
// searches POST a fritekstCommand envelope with the paging fields merged
// into it, requests need browser-shaped headers and a session cookie
// harvested out of band.
package denmarkcvr

import (
	"context"

	"github.com/openownership/boexplorer/internal/adapters/driven/session"
	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
	"github.com/openownership/boexplorer/internal/registries/registry"
)

// Ensure Adapter implements the contract and its capabilities.
var (
	_ driven.Adapter        = (*Adapter)(nil)
	_ driven.PersonSearcher = (*Adapter)(nil)
)

const gatewayURL = "https://datacvr.virk.dk/gateway/soeg/fritekst"

// Adapter speaks the datacvr.virk.dk free-text search gateway.
type Adapter struct {
	registry.Base
	sessions *session.Provider
}

// New creates the Danish CVR adapter. sessions may be nil; the registry
// then sees anonymous requests.
func New(sessions *session.Provider) *Adapter {
	return &Adapter{sessions: sessions}
}

func (a *Adapter) Scheme() string            { return "DK-CVR" }
func (a *Adapter) SchemeName() string        { return "Central Business Register" }
func (a *Adapter) SourceDescription() string { return "Central Business Register (DK)" }
func (a *Adapter) PublicSearchURL() string   { return "https://datacvr.virk.dk/" }

func (a *Adapter) Protocol() domain.Protocol {
	return domain.Protocol{
		CompanySearch: &domain.PhaseShape{Post: true, JSON: true},
		PersonSearch:  &domain.PhaseShape{Post: true, JSON: true},
	}
}

func (a *Adapter) Pagination() domain.Pagination {
	return domain.Pagination{
		SizeParam:      "size",
		WrapSizeInList: true,
		NumberParam:    "sideIndex",
		Origin:         0,
		MaxPageSize:    10,
		PostPagination: true,
	}
}

// HTTPHeaders mimics the browser front end; the gateway rejects plainer
// requests.
func (a *Adapter) HTTPHeaders() map[string]string {
	return map[string]string{
		"Accept":             "application/json, text/plain, */*",
		"Accept-Language":    "en-GB,en;q=0.8",
		"Cache-Control":      "no-cache",
		"Origin":             "https://datacvr.virk.dk",
		"Referer":            "https://datacvr.virk.dk/soegeresultater?fritekst=&sideIndex=0&size=10",
		"Sec-Fetch-Dest":     "empty",
		"Sec-Fetch-Mode":     "cors",
		"Sec-Fetch-Site":     "same-origin",
		"X-Requested-With":   "XMLHttpRequest",
		"Sec-Ch-Ua-Mobile":   "?0",
		"Sec-Ch-Ua-Platform": "Linux",
	}
}

func (a *Adapter) Session(ctx context.Context) (domain.Session, error) {
	return a.sessions.Session(ctx)
}

func (a *Adapter) CompanySearchURL() string { return gatewayURL }

func (a *Adapter) CompanyNameParams(text string) domain.Params {
	return domain.MapParams(map[string]any{
		"fritekstCommand": freetextCommand("virksomhed", text),
	})
}

func (a *Adapter) CompanyNameExtra() map[string]any { return nil }

func (a *Adapter) PersonSearchURL() string { return gatewayURL }

func (a *Adapter) PersonNameParams(text string) domain.Params {
	return domain.MapParams(map[string]any{
		"fritekstCommand": freetextCommand("person", text),
	})
}

func (a *Adapter) PersonNameExtra() map[string]any { return nil }

// freetextCommand is the gateway's search envelope; the paging fields are
// merged into it by POST pagination.
func freetextCommand(unitType, text string) map[string]any {
	return map[string]any{
		"enhedstype":           unitType,
		"soegOrd":              text,
		"antalAnsatte":         []any{},
		"branchekode":          "",
		"kommune":              []any{},
		"ophoersdatoFra":       "",
		"ophoersdatoTil":       "",
		"personrolle":          []any{},
		"region":               []any{},
		"sortering":            "",
		"startdatoFra":         "",
		"startdatoTil":         "",
		"virksomhedsform":      []any{},
		"virksomhedsmarkering": []any{},
		"virksomhedsstatus":    []any{},
	}
}

func (a *Adapter) CheckResult(p domain.Payload, _ domain.Query) bool {
	_, ok := p.Object()["enheder"]
	return ok
}

func (a *Adapter) FilterResult(domain.RawItem, domain.Query) bool { return true }

func (a *Adapter) ExtractData(p domain.Payload) []domain.RawItem {
	var items []domain.RawItem
	for _, element := range domain.DigList(p.JSON, "enheder") {
		items = append(items, domain.Item(element))
	}
	return items
}

func (a *Adapter) ExtractItem(item domain.RawItem) domain.RawItem { return item }

func (a *Adapter) Identifier(item domain.RawItem) string {
	return registry.Stringish(item, "cvr")
}

func (a *Adapter) RecordID(item domain.RawItem) string {
	if cvr := a.Identifier(item); cvr != "" {
		return "DK-CVR-" + cvr
	}
	return a.PersonRecordID(item)
}

func (a *Adapter) EntityName(item domain.RawItem) string {
	return item.String("senesteNavn")
}

func (a *Adapter) Jurisdiction(domain.RawItem) string { return "DK" }

// RegisteredAddress: the unit record carries its address fields inline.
func (a *Adapter) RegisteredAddress(item domain.RawItem) (domain.RawItem, bool) {
	return item, item.Map() != nil
}

func (a *Adapter) AddressString(addr domain.RawItem) string {
	return registry.JoinNonEmpty(", ",
		addr.String("beliggenhedsadresse"),
		addr.String("by"))
}

func (a *Adapter) AddressCountry(addr domain.RawItem) string {
	return addr.String("country")
}

func (a *Adapter) AddressPostcode(addr domain.RawItem) string {
	return registry.Stringish(addr, "postnummer")
}

func (a *Adapter) CreationDate(item domain.RawItem) string {
	created := item.String("startDato")
	if created == "" {
		return ""
	}
	return registry.ISODate(created)
}

func (a *Adapter) RegistrationStatus(item domain.RawItem) string {
	switch item.String("status") {
	case "Ophørt":
		return "Ceased"
	case "Aktiv":
		return "Active"
	}
	return ""
}

// UpdateDate is today: the gateway exposes no per-record update stamp.
func (a *Adapter) UpdateDate(domain.RawItem) string { return registry.Today() }

func (a *Adapter) Annotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "DK Central Business Register data for this entity: " + a.Identifier(item) +
			"; Registration Status: " + a.RegistrationStatus(item),
		Pointer: "/",
	}
}

func (a *Adapter) ExtractPersonItem(item domain.RawItem) domain.RawItem { return item }

func (a *Adapter) PersonIdentifier(item domain.RawItem) string {
	return registry.Stringish(item, "enhedsnummer")
}

func (a *Adapter) PersonRecordID(item domain.RawItem) string {
	return "DK-CVR-PER-" + a.PersonIdentifier(item)
}

func (a *Adapter) PersonName(item domain.RawItem) domain.NameComponents {
	full := item.String("senesteNavn")
	return registry.SplitFullName(full)
}

func (a *Adapter) PersonBirthDate(domain.RawItem) string { return "" }

func (a *Adapter) PersonTaxResidency(item domain.RawItem) string {
	return item.String("taxResidencyOrJurisdiction")
}

// PersonAddress: person units carry the same inline address fields.
func (a *Adapter) PersonAddress(item domain.RawItem) (domain.RawItem, bool) {
	return item, item.Map() != nil
}

func (a *Adapter) PersonUpdateDate(domain.RawItem) string { return registry.Today() }

func (a *Adapter) PersonAnnotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "DK Central Business Register data for this person: " + a.PersonRecordID(item),
		Pointer:     "/",
	}
}

func (a *Adapter) Unspecified(item domain.RawItem) bool {
	return item.String("senesteNavn") == ""
}

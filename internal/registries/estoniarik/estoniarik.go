// Package estoniarik adapts the Estonian e-Business Register (Centre of
// Registers and Information Systems). Company search goes through the
// ariregxmlv6 X-Road SOAP endpoint with credentials embedded in the
// envelope; the service answers JSON when asked to. Beneficial owners come
// from the registry's open-data bulk dataset, downloaded on first use and
// indexed in memory.
package estoniarik

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
	"github.com/openownership/boexplorer/internal/logger"
	"github.com/openownership/boexplorer/internal/registries/registry"
)

// Ensure Adapter implements the contract and its capabilities.
var (
	_ driven.Adapter           = (*Adapter)(nil)
	_ driven.EmbeddedPersonser = (*Adapter)(nil)
)

const soapURL = "https://ariregxmlv6.rik.ee"

// Adapter speaks the ariregxmlv6 SOAP service plus the open-data bulk
// beneficiaries dataset.
type Adapter struct {
	registry.Base
	config driven.ConfigStore

	bulkOnce sync.Once
	bulk     *BulkOwners
}

// New creates the Estonian RIK adapter. bulk may be non-nil to inject a
// prebuilt beneficial-owners index; otherwise the open-data dump is
// downloaded the first time a search yields Estonian entities.
func New(config driven.ConfigStore, bulk *BulkOwners) *Adapter {
	a := &Adapter{config: config, bulk: bulk}
	if bulk != nil {
		a.bulkOnce.Do(func() {})
	}
	return a
}

func (a *Adapter) Scheme() string     { return "EE-RIK" }
func (a *Adapter) SchemeName() string { return "Centre of Registers and Information Systems (RIK)" }
func (a *Adapter) SourceDescription() string {
	return "Centre of Registers and Information Systems (EE)"
}
func (a *Adapter) PublicSearchURL() string { return "https://ariregister.rik.ee/eng" }

func (a *Adapter) Protocol() domain.Protocol {
	return domain.Protocol{
		// The envelope is a raw body; responses are JSON by request.
		CompanySearch: &domain.PhaseShape{Post: true, JSON: true},
	}
}

// Pagination: the SOAP service takes a fixed result count inside the
// envelope and has no page parameters.
func (a *Adapter) Pagination() domain.Pagination {
	return domain.Pagination{MaxPageSize: 10}
}

func (a *Adapter) HTTPHeaders() map[string]string {
	return map[string]string{"Content-Type": "text/xml; charset=utf-8"}
}

func (a *Adapter) CompanySearchURL() string { return soapURL }

// CompanyNameParams builds the lihtandmed_v2 envelope. Credentials ride in
// the body, not in HTTP auth.
func (a *Adapter) CompanyNameParams(text string) domain.Params {
	user, pass := "", ""
	if a.config != nil {
		user = a.config.GetString("sources.estonia_rik.credentials.user")
		pass = a.config.GetString("sources.estonia_rik.credentials.pass")
	}
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"
xmlns:iden="http://x-road.eu/xsd/identifiers"
xmlns:prod="http://arireg.x-road.eu/producer/" xmlns:xro="http://x-road.eu/xsd/xroad.xsd">
<soapenv:Body>
<prod:lihtandmed_v2>
<prod:keha>`)
	fmt.Fprintf(&b, "<prod:ariregister_kasutajanimi>%s</prod:ariregister_kasutajanimi>", user)
	fmt.Fprintf(&b, "<prod:ariregister_parool>%s</prod:ariregister_parool>", pass)
	fmt.Fprintf(&b, "<prod:evnimi>%s</prod:evnimi>", xmlEscape(text))
	b.WriteString(`<prod:ariregister_valjundi_formaat>json</prod:ariregister_valjundi_formaat>
<prod:keel>eng</prod:keel>
<prod:evarv>10</prod:evarv>
</prod:keha>
</prod:lihtandmed_v2>
</soapenv:Body>
</soapenv:Envelope>`)
	return domain.RawParams(b.String())
}

func (a *Adapter) CompanyNameExtra() map[string]any { return nil }

func (a *Adapter) CheckResult(p domain.Payload, _ domain.Query) bool {
	_, ok := p.Object()["keha"]
	return ok
}

func (a *Adapter) FilterResult(domain.RawItem, domain.Query) bool { return true }

func (a *Adapter) ExtractData(p domain.Payload) []domain.RawItem {
	var items []domain.RawItem
	for _, element := range domain.DigList(p.JSON, "keha", "ettevotjad", "item") {
		items = append(items, domain.Item(element))
	}
	return items
}

func (a *Adapter) ExtractItem(item domain.RawItem) domain.RawItem { return item }

func (a *Adapter) Identifier(item domain.RawItem) string {
	return registry.Stringish(item, "ariregistri_kood")
}

func (a *Adapter) RecordID(item domain.RawItem) string {
	return "EE-RIK-" + a.Identifier(item)
}

func (a *Adapter) EntityName(item domain.RawItem) string {
	return item.String("evnimi")
}

func (a *Adapter) Jurisdiction(domain.RawItem) string { return "EE" }

func (a *Adapter) BusinessAddress(item domain.RawItem) (domain.RawItem, bool) {
	addr := domain.DigMap(item.Data, "evaadressid")
	return domain.Item(addr), addr != nil
}

func (a *Adapter) RegisteredAddress(domain.RawItem) (domain.RawItem, bool) {
	return domain.RawItem{}, false
}

func (a *Adapter) AddressString(addr domain.RawItem) string {
	return addr.String("aadress_ads__ads_normaliseeritud_taisaadress")
}

func (a *Adapter) AddressCountry(addr domain.RawItem) string {
	return addr.String("aadress_riik_tekstina")
}

func (a *Adapter) AddressPostcode(domain.RawItem) string { return "" }

func (a *Adapter) CreationDate(item domain.RawItem) string {
	created := item.String("esmakande_aeg")
	if created == "" {
		return ""
	}
	return registry.ISODate(created)
}

func (a *Adapter) RegistrationStatus(item domain.RawItem) string {
	switch item.String("staatus") {
	case "R":
		return "Registered"
	case "L":
		return "Liquidation"
	case "N":
		return "Bankrupt"
	case "K":
		return "Deleted"
	}
	return ""
}

// UpdateDate is today: the simple-data response has no update stamp.
func (a *Adapter) UpdateDate(domain.RawItem) string { return registry.Today() }

func (a *Adapter) Annotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "EE Centre of Registers data for this entity: " + a.Identifier(item) +
			"; Registration Status: " + a.RegistrationStatus(item),
		Pointer: "/",
	}
}

// EmbeddedPersons looks each entity up in the bulk beneficial-owners index
// by registry code, downloading the index first if it was never loaded.
func (a *Adapter) EmbeddedPersons(items []domain.RawItem) []domain.RawItem {
	a.bulkOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
		defer cancel()
		bulk, err := DownloadBulkOwners(ctx, nil)
		if err != nil {
			logger.Warn("estonia: bulk beneficial owners unavailable: %v", err)
			return
		}
		logger.Debug("estonia: indexed beneficial owners for %d companies", bulk.Len())
		a.bulk = bulk
	})
	if a.bulk == nil {
		return nil
	}
	var persons []domain.RawItem
	for _, item := range items {
		persons = append(persons, a.bulk.Owners(a.Identifier(item))...)
	}
	return persons
}

func (a *Adapter) ExtractPersonItem(item domain.RawItem) domain.RawItem { return item }

func (a *Adapter) PersonIdentifier(item domain.RawItem) string {
	if code := registry.Stringish(item, "isikukood_registrikood"); code != "" {
		return code
	}
	// Unidentified owners fall back to a name-and-company key.
	name := strings.ToLower(registry.JoinNonEmpty("-",
		item.String("eesnimi"), item.String("nimi")))
	return registry.JoinNonEmpty("-", strings.ReplaceAll(name, " ", "-"),
		registry.Stringish(item, "ariregistri_kood"))
}

func (a *Adapter) PersonRecordID(item domain.RawItem) string {
	return "EE-RIK-PER-" + a.PersonIdentifier(item)
}

func (a *Adapter) PersonName(item domain.RawItem) domain.NameComponents {
	given := item.String("eesnimi")
	family := item.String("nimi")
	return domain.NameComponents{
		FullName:   registry.JoinNonEmpty(" ", given, family),
		GivenName:  given,
		FamilyName: family,
	}
}

func (a *Adapter) PersonBirthDate(item domain.RawItem) string {
	born := item.String("synniaeg")
	if born == "" {
		return ""
	}
	return registry.ISODate(born)
}

func (a *Adapter) PersonTaxResidency(item domain.RawItem) string {
	return item.String("valisriik")
}

func (a *Adapter) PersonAddress(domain.RawItem) (domain.RawItem, bool) {
	return domain.RawItem{}, false
}

func (a *Adapter) PersonUpdateDate(domain.RawItem) string { return registry.Today() }

func (a *Adapter) PersonAnnotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "EE Centre of Registers beneficial-owner data for this person: " +
			a.PersonRecordID(item),
		Pointer: "/",
	}
}

func (a *Adapter) Unspecified(item domain.RawItem) bool {
	return item.String("eesnimi") == "" && item.String("nimi") == ""
}

func xmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}

// Package franceinpi adapts the French Registre National des Entreprises
// run by INPI. Access needs an account: a bearer token is obtained from the
// SSO login endpoint with credentials from configuration. Beneficial owners
// (bénéficiaires effectifs) arrive embedded in the company records, so no
// extra request is needed for persons.
package franceinpi

import (
	"strings"

	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
	"github.com/openownership/boexplorer/internal/registries/registry"
)

// Ensure Adapter implements the contract and its capabilities.
var (
	_ driven.Adapter           = (*Adapter)(nil)
	_ driven.EmbeddedPersonser = (*Adapter)(nil)
)

const (
	searchURL = "https://registre-national-entreprises.inpi.fr/api/companies"
	loginURL  = "https://registre-national-entreprises.inpi.fr/api/sso/login"
)

// Adapter speaks the registre-national-entreprises.inpi.fr API.
type Adapter struct {
	registry.Base
	config driven.ConfigStore
}

// New creates the French INPI adapter. Credentials are read from the
// sources.france_inpi.credentials config table.
func New(config driven.ConfigStore) *Adapter {
	return &Adapter{config: config}
}

func (a *Adapter) Scheme() string            { return "FR-RCS" }
func (a *Adapter) SchemeName() string        { return "Register of Companies (Sirene)" }
func (a *Adapter) SourceDescription() string { return "Register of Companies (FR)" }
func (a *Adapter) PublicSearchURL() string {
	return "https://registre-national-entreprises.inpi.fr/login"
}

func (a *Adapter) Authenticator() domain.Authenticator {
	if a.config == nil {
		return domain.Authenticator{}
	}
	return domain.Authenticator{
		Kind:     domain.AuthBearer,
		Username: a.config.GetString("sources.france_inpi.credentials.user"),
		Password: a.config.GetString("sources.france_inpi.credentials.pass"),
		LoginURL: loginURL,
	}
}

func (a *Adapter) Protocol() domain.Protocol {
	return domain.Protocol{
		CompanySearch: &domain.PhaseShape{Post: false, JSON: true},
	}
}

// Pagination: the API caps result pages at five companies.
func (a *Adapter) Pagination() domain.Pagination {
	return domain.Pagination{
		SizeParam:   "pageSize",
		NumberParam: "page",
		Origin:      1,
		MaxPageSize: 5,
	}
}

func (a *Adapter) CompanySearchURL() string { return searchURL }

func (a *Adapter) CompanyNameParams(text string) domain.Params {
	return domain.MapParams(map[string]any{"companyName": text})
}

func (a *Adapter) CompanyNameExtra() map[string]any { return nil }

// CheckResult: search responses are a bare list of companies.
func (a *Adapter) CheckResult(p domain.Payload, _ domain.Query) bool {
	return p.List() != nil
}

func (a *Adapter) FilterResult(domain.RawItem, domain.Query) bool { return true }

func (a *Adapter) ExtractData(p domain.Payload) []domain.RawItem {
	var items []domain.RawItem
	for _, element := range p.List() {
		items = append(items, domain.Item(element))
	}
	return items
}

func (a *Adapter) ExtractItem(item domain.RawItem) domain.RawItem { return item }

func (a *Adapter) Identifier(item domain.RawItem) string {
	return domain.DigString(item.Data, "formality", "siren")
}

func (a *Adapter) RecordID(item domain.RawItem) string {
	if siren := a.Identifier(item); siren != "" {
		return "FR-RCS-" + siren
	}
	return a.PersonRecordID(item)
}

// EntityName: sole traders file under exploitation, companies under
// personneMorale.
func (a *Adapter) EntityName(item domain.RawItem) string {
	for _, kind := range []string{"exploitation", "personneMorale"} {
		name := domain.DigString(item.Data,
			"formality", "content", kind, "identite", "entreprise", "denomination")
		if name != "" {
			return name
		}
	}
	return ""
}

func (a *Adapter) Jurisdiction(domain.RawItem) string { return "FR" }

func (a *Adapter) RegisteredAddress(item domain.RawItem) (domain.RawItem, bool) {
	return contentAddress(item, "etablissementPrincipal")
}

func (a *Adapter) BusinessAddress(item domain.RawItem) (domain.RawItem, bool) {
	return contentAddress(item, "adresseEntreprise")
}

func (a *Adapter) AddressString(addr domain.RawItem) string {
	return registry.JoinNonEmpty(" ",
		addr.String("numVoie"),
		addr.String("typeVoie"),
		addr.String("voie"),
		addr.String("commune"))
}

func (a *Adapter) AddressCountry(addr domain.RawItem) string {
	return addr.String("pays")
}

func (a *Adapter) AddressPostcode(addr domain.RawItem) string {
	return addr.String("codePostal")
}

func (a *Adapter) CreationDate(item domain.RawItem) string {
	created := domain.DigString(item.Data, "formality", "content", "natureCreation", "dateCreation")
	if created == "" {
		return ""
	}
	return registry.ISODate(created)
}

func (a *Adapter) RegistrationStatus(domain.RawItem) string { return "" }

func (a *Adapter) UpdateDate(item domain.RawItem) string {
	if updated := item.String("updatedAt"); updated != "" {
		return registry.ISODate(updated)
	}
	return registry.Today()
}

func (a *Adapter) Annotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "FR Register of Companies data for this entity: " + a.Identifier(item) +
			"; Registration Status: " + a.RegistrationStatus(item),
		Pointer: "/",
	}
}

// EmbeddedPersons collects the bénéficiaires effectifs filed inside each
// company record.
func (a *Adapter) EmbeddedPersons(items []domain.RawItem) []domain.RawItem {
	var persons []domain.RawItem
	for _, item := range items {
		owners := domain.DigList(item.Data,
			"formality", "content", "personneMorale", "beneficiairesEffectifs")
		for _, owner := range owners {
			persons = append(persons, domain.Item(owner))
		}
	}
	return persons
}

func (a *Adapter) ExtractPersonItem(item domain.RawItem) domain.RawItem { return item }

func (a *Adapter) PersonIdentifier(item domain.RawItem) string {
	c := a.PersonName(item)
	return strings.ReplaceAll(c.FullName, " ", "-")
}

func (a *Adapter) PersonRecordID(item domain.RawItem) string {
	return "FR-RCS-PER-" + a.PersonIdentifier(item)
}

func (a *Adapter) PersonName(item domain.RawItem) domain.NameComponents {
	family := domain.DigString(item.Data, "beneficiaire", "descriptionPersonne", "nom")
	var givens []string
	for _, name := range domain.DigList(item.Data, "beneficiaire", "descriptionPersonne", "prenoms") {
		if s, ok := name.(string); ok && s != "" {
			givens = append(givens, s)
		}
	}
	given := ""
	if len(givens) > 0 {
		given = givens[0]
	}
	return domain.NameComponents{
		FullName:   registry.JoinNonEmpty(" ", append(givens, family)...),
		GivenName:  given,
		FamilyName: family,
	}
}

func (a *Adapter) PersonBirthDate(item domain.RawItem) string {
	return domain.DigString(item.Data, "beneficiaire", "descriptionPersonne", "dateDeNaissance")
}

func (a *Adapter) PersonTaxResidency(item domain.RawItem) string {
	return domain.DigString(item.Data, "beneficiaire", "adresseDomicile", "pays")
}

func (a *Adapter) PersonAddress(domain.RawItem) (domain.RawItem, bool) {
	return domain.RawItem{}, false
}

func (a *Adapter) PersonUpdateDate(domain.RawItem) string { return registry.Today() }

func (a *Adapter) PersonAnnotation(item domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{
		Description: "FR Register of Companies data for this person: " + a.PersonRecordID(item),
		Pointer:     "/",
	}
}

func (a *Adapter) Unspecified(item domain.RawItem) bool {
	return domain.DigString(item.Data, "beneficiaire", "descriptionPersonne", "nom") == ""
}

// contentAddress digs an address block under either filing kind.
func contentAddress(item domain.RawItem, block string) (domain.RawItem, bool) {
	for _, kind := range []string{"exploitation", "personneMorale"} {
		addr := domain.DigMap(item.Data, "formality", "content", kind, block, "adresse")
		if addr != nil {
			return domain.Item(addr), true
		}
	}
	return domain.RawItem{}, false
}

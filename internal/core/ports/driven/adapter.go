package driven

import (
	"context"
	"time"

	"github.com/openownership/boexplorer/internal/core/domain"
)

// Adapter is the contract every registry adapter implements. It is a pure
// description-and-mapping surface: adapters never perform I/O themselves
// (session setup and eager bulk downloads at construction excepted), the
// fetch engine drives every HTTP call through the Downloader.
//
// Adapters must be safe for concurrent use; anything a detail fetch learns
// is returned as domain.Fields on the item, never kept as adapter state.
type Adapter interface {
	// Scheme is the org-id scheme this registry issues, e.g. "GB-COH".
	Scheme() string

	// SchemeName is the human name of the scheme.
	SchemeName() string

	// SourceDescription describes the registry for statement sources and
	// summary rows.
	SourceDescription() string

	// PublicSearchURL is the registry's human-facing search page.
	PublicSearchURL() string

	// Protocol declares which phases exist and how each speaks HTTP.
	Protocol() domain.Protocol

	// Pagination declares how search results page.
	Pagination() domain.Pagination

	// Authenticator describes the registry's credentials. Zero value
	// means unauthenticated.
	Authenticator() domain.Authenticator

	// HTTPTimeout bounds each request; 0 means the downloader default.
	HTTPTimeout() time.Duration

	// HTTPHeaders are static headers sent with every request.
	HTTPHeaders() map[string]string

	// Session establishes per-visit request identity for registries that
	// gate on a browser cookie. Most return the zero Session.
	Session(ctx context.Context) (domain.Session, error)

	// CompanySearchURL is the company-search endpoint.
	CompanySearchURL() string

	// CompanyNameParams builds the company-search parameters for a name.
	CompanyNameParams(text string) domain.Params

	// CompanyNameExtra are fixed extra parameters merged into every
	// company search.
	CompanyNameExtra() map[string]any

	// CheckResult reports whether a payload is well-formed for the given
	// query stage. A false return stops paging.
	CheckResult(p domain.Payload, q domain.Query) bool

	// FilterResult reports whether an extracted item should be kept.
	FilterResult(item domain.RawItem, q domain.Query) bool

	// ExtractData unwraps the payload envelope into result items.
	ExtractData(p domain.Payload) []domain.RawItem

	EntityMapper
}

// EntityMapper turns a raw company item into statement raw material. Every
// accessor tolerates missing data and returns its zero value.
type EntityMapper interface {
	// ExtractItem peels the per-item envelope (some registries nest the
	// entity under attributes) before field access.
	ExtractItem(item domain.RawItem) domain.RawItem

	// Identifier is the registry's identifier for the entity.
	Identifier(item domain.RawItem) string

	// RecordID is the stable cross-registry record id, normally
	// "{scheme}-{identifier}".
	RecordID(item domain.RawItem) string

	// EntityName is the registered name.
	EntityName(item domain.RawItem) string

	// Jurisdiction is the ISO 3166 country or subdivision code.
	Jurisdiction(item domain.RawItem) string

	// AdditionalIdentifiers are further identifiers the registry repeats
	// from other schemes.
	AdditionalIdentifiers(item domain.RawItem) []domain.Identifier

	// RegisteredAddress returns the registered-office address item.
	RegisteredAddress(item domain.RawItem) (domain.RawItem, bool)

	// BusinessAddress returns the trading address item.
	BusinessAddress(item domain.RawItem) (domain.RawItem, bool)

	// AddressString flattens an address item into one line.
	AddressString(addr domain.RawItem) string

	// AddressCountry is the address country name or code.
	AddressCountry(addr domain.RawItem) string

	// AddressPostcode is the postal code.
	AddressPostcode(addr domain.RawItem) string

	// CreationDate is the founding date, ISO 8601.
	CreationDate(item domain.RawItem) string

	// RegistrationStatus is the registry's status string.
	RegistrationStatus(item domain.RawItem) string

	// SourceType classifies the source reliability.
	SourceType(item domain.RawItem) []string

	// UpdateDate is the record's last-update date, ISO 8601. It feeds the
	// statement id, so it must be deterministic for unchanged records.
	UpdateDate(item domain.RawItem) string

	// Annotation describes the entity record's provenance.
	Annotation(item domain.RawItem) domain.AnnotationText
}

// PersonMapper turns a raw person item into statement raw material. It is
// implemented by every adapter that yields persons, whether from a person
// search, a company-persons endpoint or embedded detail data.
type PersonMapper interface {
	// ExtractPersonItem peels the per-item envelope.
	ExtractPersonItem(item domain.RawItem) domain.RawItem

	// PersonIdentifier is the registry's identifier for the person.
	PersonIdentifier(item domain.RawItem) string

	// PersonRecordID is the person's stable record id.
	PersonRecordID(item domain.RawItem) string

	// PersonName is the person's name split.
	PersonName(item domain.RawItem) domain.NameComponents

	// PersonBirthDate is the birth date, ISO 8601 (possibly year-month).
	PersonBirthDate(item domain.RawItem) string

	// PersonTaxResidency is the person's tax-residency country code.
	PersonTaxResidency(item domain.RawItem) string

	// PersonAddress returns the person's address item.
	PersonAddress(item domain.RawItem) (domain.RawItem, bool)

	// PersonUpdateDate is the person record's last-update date.
	PersonUpdateDate(item domain.RawItem) string

	// PersonAnnotation describes the person record's provenance.
	PersonAnnotation(item domain.RawItem) domain.AnnotationText

	// Unspecified reports a beneficial owner the registry knows exists
	// but does not name.
	Unspecified(item domain.RawItem) bool
}

// CompanyDetailer is implemented by adapters whose search listing is too
// thin and needs a follow-up detail fetch per entity.
type CompanyDetailer interface {
	// CompanyDetailURL is the detail endpoint for one search item; false
	// when the item carries no usable link.
	CompanyDetailURL(item domain.RawItem) (string, bool)

	// CompanyDetailParams builds the detail-request parameters.
	CompanyDetailParams(item domain.RawItem) domain.Params

	// CompanyDetailExtra are fixed extra parameters for detail requests.
	CompanyDetailExtra() map[string]any

	// PreprocessDetail derives the preprocessed field table from a detail
	// payload. It may return nil when the registry needs none.
	PreprocessDetail(p domain.Payload) domain.Fields
}

// CompanyPersonser is implemented by adapters with a per-entity remote
// endpoint listing the entity's beneficial owners.
type CompanyPersonser interface {
	// CompanyPersonsURL is the persons endpoint for one entity; false
	// when the entity carries no usable link.
	CompanyPersonsURL(item domain.RawItem) (string, bool)

	// CompanyPersonsParams builds the persons-request parameters.
	CompanyPersonsParams(item domain.RawItem) domain.Params

	// ExtractPersonsItems unwraps the persons payload into person items.
	ExtractPersonsItems(p domain.Payload) []domain.RawItem

	PersonMapper
}

// EmbeddedPersonser is implemented by adapters whose beneficial owners
// arrive inside the entity data itself (or a local bulk dataset) with no
// extra request.
type EmbeddedPersonser interface {
	// EmbeddedPersons extracts person items from already-fetched entity
	// items.
	EmbeddedPersons(items []domain.RawItem) []domain.RawItem

	PersonMapper
}

// PersonSearcher is implemented by adapters whose registry can be searched
// by person name directly.
type PersonSearcher interface {
	// PersonSearchURL is the person-search endpoint.
	PersonSearchURL() string

	// PersonNameParams builds the person-search parameters for a name.
	PersonNameParams(text string) domain.Params

	// PersonNameExtra are fixed extra parameters merged into every
	// person search.
	PersonNameExtra() map[string]any

	PersonMapper
}

// PersonDetailer is implemented by person-searchable adapters whose person
// listing needs a follow-up detail fetch.
type PersonDetailer interface {
	// PersonDetailURL is the detail endpoint for one person item; false
	// when the item carries no usable link.
	PersonDetailURL(item domain.RawItem) (string, bool)

	// PersonDetailParams builds the person-detail parameters.
	PersonDetailParams(item domain.RawItem) domain.Params

	// PreprocessPersonDetail derives the preprocessed field table from a
	// person-detail payload.
	PreprocessPersonDetail(p domain.Payload) domain.Fields
}

// Transliterator is implemented by adapters for registries that index in a
// non-Latin script. Search text is converted to the local script on the way
// in; extracted values are romanised on the way out.
type Transliterator interface {
	ToLocal(text string) string
	FromLocal(text string) string
}

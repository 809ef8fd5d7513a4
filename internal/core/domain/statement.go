// Package domain contains the core types of the beneficial-ownership
// explorer: BODS v0.4 statements, raw registry items, search results and the
// value objects that describe how each registry speaks HTTP.
package domain

// RecordType distinguishes the two kinds of BODS statement produced here.
type RecordType string

// Record types.
const (
	RecordEntity RecordType = "entity"
	RecordPerson RecordType = "person"
)

// Person types within recordDetails.
const (
	PersonKnown       = "knownPerson"
	PersonUnspecified = "unknownPerson"
)

// Statement is a BODS v0.4 statement. Field names follow the published
// schema, so the struct marshals directly into interchange JSON.
type Statement struct {
	StatementID        string             `json:"statementId"`
	DeclarationSubject string             `json:"declarationSubject"`
	StatementDate      string             `json:"statementDate"`
	RecordID           string             `json:"recordId"`
	RecordStatus       string             `json:"recordStatus"`
	RecordType         RecordType         `json:"recordType"`
	RecordDetails      RecordDetails      `json:"recordDetails"`
	Annotations        []Annotation       `json:"annotations"`
	PublicationDetails PublicationDetails `json:"publicationDetails"`
	Source             Source             `json:"source"`
}

// RecordDetails carries the subject of a statement. Entity statements use
// Name/AlternateNames/Jurisdiction/FoundingDate; person statements use
// PersonType/Names/BirthDate/TaxResidencies. Identifiers and Addresses are
// shared.
type RecordDetails struct {
	IsComponent    bool          `json:"isComponent"`
	EntityType     *EntityType   `json:"entityType,omitempty"`
	PersonType     string        `json:"personType,omitempty"`
	Name           string        `json:"name,omitempty"`
	AlternateNames []string      `json:"alternateNames,omitzero"`
	Names          []Name        `json:"names,omitzero"`
	Jurisdiction   *Jurisdiction `json:"jurisdiction,omitempty"`
	Identifiers    []Identifier  `json:"identifiers"`
	FoundingDate   string        `json:"foundingDate,omitempty"`
	BirthDate      string        `json:"birthDate,omitempty"`
	TaxResidencies []string      `json:"taxResidencies,omitzero"`
	Addresses      []Address     `json:"addresses"`
}

// EntityType classifies an entity record.
type EntityType struct {
	Type string `json:"type"`
}

// Name is a structured person name.
type Name struct {
	Type           string `json:"type,omitempty"`
	FullName       string `json:"fullName,omitempty"`
	GivenName      string `json:"givenName,omitempty"`
	FamilyName     string `json:"familyName,omitempty"`
	PatronymicName string `json:"patronymicName,omitempty"`
}

// NameComponents is the raw name split an adapter extracts before it is
// shaped into a Name.
type NameComponents struct {
	FullName   string
	GivenName  string
	FamilyName string
	Patronymic string
}

// Jurisdiction names the governing jurisdiction of an entity.
type Jurisdiction struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Identifier is a scheme-qualified registry identifier.
type Identifier struct {
	ID         string `json:"id"`
	Scheme     string `json:"scheme,omitempty"`
	SchemeName string `json:"schemeName,omitempty"`
}

// Address is a postal address attached to a record.
type Address struct {
	Type     string `json:"type"`
	Address  string `json:"address"`
	Country  string `json:"country,omitempty"`
	PostCode string `json:"postCode,omitempty"`
}

// Address types.
const (
	AddressRegistered = "registered"
	AddressBusiness   = "business"
	AddressResidence  = "residence"
)

// Annotation is a free-text note attached to a statement, pointing at the
// part of the record it describes.
type Annotation struct {
	Motivation             string `json:"motivation"`
	Description            string `json:"description"`
	StatementPointerTarget string `json:"statementPointerTarget"`
	CreationDate           string `json:"creationDate"`
	CreatedBy              Agent  `json:"createdBy"`
}

// AnnotationText is the adapter-supplied raw material for an Annotation.
type AnnotationText struct {
	Description string
	Pointer     string
}

// Agent identifies who created an annotation.
type Agent struct {
	Name string `json:"name"`
	URI  string `json:"uri,omitempty"`
}

// Publisher identifies who published a statement.
type Publisher struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// PublicationDetails records when, by whom and under which licence a
// statement was published.
type PublicationDetails struct {
	PublicationDate string    `json:"publicationDate"`
	BodsVersion     string    `json:"bodsVersion"`
	License         string    `json:"license"`
	Publisher       Publisher `json:"publisher"`
}

// Source records where the underlying data came from and how reliable the
// registry claims it to be.
type Source struct {
	Type        []string `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	RetrievedAt string   `json:"retrievedAt,omitempty"`
}

// Source types.
const (
	SourceOfficialRegister = "officialRegister"
	SourceVerified         = "verified"
)

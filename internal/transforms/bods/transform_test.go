package bods

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
)

func TestStatementID_Deterministic(t *testing.T) {
	a := StatementID("01234567_2024-03-01", "entityStatement", "")
	b := StatementID("01234567_2024-03-01", "entityStatement", "")

	assert.Equal(t, a, b)
	assert.Len(t, a, 36)
}

func TestStatementID_VariesWithInputs(t *testing.T) {
	base := StatementID("01234567_2024-03-01", "entityStatement", "")

	assert.NotEqual(t, base, StatementID("01234567_2024-03-02", "entityStatement", ""))
	assert.NotEqual(t, base, StatementID("01234567_2024-03-01", "person", ""))
	assert.NotEqual(t, base, StatementID("01234567_2024-03-01", "entityStatement", "2"))
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"2024-03-01", "2024-03-01"},
		{"2024-03-01T12:30:45Z", "2024-03-01"},
		{"2024-03-01T12:30:45", "2024-03-01"},
		{"2024-03", "2024-03-01"},
		{"2024", "2024-01-01"},
		{"5.3.2024", "2024-03-05"},
		{"15.11.2024", "2024-11-15"},
		{"not a date", "not a date"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}

// fakeAdapter maps a fixed company and person; the embedded interfaces
// panic on anything the transform should not touch.
type fakeAdapter struct {
	driven.Adapter
	driven.PersonMapper
	unspecified bool
}

func (f *fakeAdapter) AdditionalIdentifiers(domain.RawItem) []domain.Identifier { return nil }
func (f *fakeAdapter) BusinessAddress(domain.RawItem) (domain.RawItem, bool) {
	return domain.RawItem{}, false
}
func (f *fakeAdapter) SourceType(domain.RawItem) []string {
	return []string{domain.SourceOfficialRegister}
}

func (f *fakeAdapter) Scheme() string            { return "DK-CVR" }
func (f *fakeAdapter) SchemeName() string        { return "Danish Central Business Register" }
func (f *fakeAdapter) SourceDescription() string { return "Danish Central Business Register" }

func (f *fakeAdapter) ExtractItem(item domain.RawItem) domain.RawItem { return item }
func (f *fakeAdapter) Identifier(domain.RawItem) string               { return "10403782" }
func (f *fakeAdapter) RecordID(domain.RawItem) string                 { return "DK-CVR-10403782" }
func (f *fakeAdapter) EntityName(domain.RawItem) string               { return "EXAMPLE A/S" }
func (f *fakeAdapter) Jurisdiction(domain.RawItem) string             { return "DK" }
func (f *fakeAdapter) RegisteredAddress(domain.RawItem) (domain.RawItem, bool) {
	return domain.Item("addr"), true
}
func (f *fakeAdapter) AddressString(domain.RawItem) string      { return "Testvej 1, Copenhagen" }
func (f *fakeAdapter) AddressCountry(domain.RawItem) string     { return "Denmark" }
func (f *fakeAdapter) AddressPostcode(domain.RawItem) string    { return "1050" }
func (f *fakeAdapter) CreationDate(domain.RawItem) string       { return "1999-04-12" }
func (f *fakeAdapter) RegistrationStatus(domain.RawItem) string { return "Active" }
func (f *fakeAdapter) UpdateDate(domain.RawItem) string         { return "2024-03-01" }
func (f *fakeAdapter) Annotation(domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{Description: "Danish Central Business Register data for this entity", Pointer: "/"}
}

func (f *fakeAdapter) ExtractPersonItem(item domain.RawItem) domain.RawItem { return item }
func (f *fakeAdapter) PersonIdentifier(domain.RawItem) string               { return "4000123" }
func (f *fakeAdapter) PersonRecordID(domain.RawItem) string                 { return "DK-CVR-PER-4000123" }
func (f *fakeAdapter) PersonName(domain.RawItem) domain.NameComponents {
	return domain.NameComponents{FullName: "Jane Smith", GivenName: "Jane", FamilyName: "Smith"}
}
func (f *fakeAdapter) PersonBirthDate(domain.RawItem) string    { return "1980-06" }
func (f *fakeAdapter) PersonTaxResidency(domain.RawItem) string { return "DK" }
func (f *fakeAdapter) PersonAddress(domain.RawItem) (domain.RawItem, bool) {
	return domain.RawItem{}, false
}
func (f *fakeAdapter) PersonUpdateDate(domain.RawItem) string { return "2024-03-01" }
func (f *fakeAdapter) PersonAnnotation(domain.RawItem) domain.AnnotationText {
	return domain.AnnotationText{Description: "Beneficial owner", Pointer: "/"}
}
func (f *fakeAdapter) Unspecified(domain.RawItem) bool { return f.unspecified }

func fixedNow(t *testing.T) {
	t.Helper()
	original := now
	now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = original })
}

func TestEntity(t *testing.T) {
	fixedNow(t)
	a := &fakeAdapter{}

	st := Entity(a, domain.Item(map[string]any{}))

	assert.Equal(t, "DK-CVR-10403782", st.RecordID)
	assert.Equal(t, "DK-CVR-10403782", st.DeclarationSubject)
	assert.Equal(t, "2024-03-01", st.StatementDate)
	assert.Equal(t, domain.RecordEntity, st.RecordType)
	assert.Equal(t, "new", st.RecordStatus)
	assert.Equal(t, "EXAMPLE A/S", st.RecordDetails.Name)
	assert.Equal(t, "registeredEntity", st.RecordDetails.EntityType.Type)
	require.NotNil(t, st.RecordDetails.Jurisdiction)
	assert.Equal(t, "DK", st.RecordDetails.Jurisdiction.Code)
	assert.Equal(t, "Denmark", st.RecordDetails.Jurisdiction.Name)
	assert.Equal(t, "1999-04-12", st.RecordDetails.FoundingDate)

	require.Len(t, st.RecordDetails.Identifiers, 1)
	assert.Equal(t, "10403782", st.RecordDetails.Identifiers[0].ID)
	assert.Equal(t, "DK-CVR", st.RecordDetails.Identifiers[0].Scheme)

	require.Len(t, st.RecordDetails.Addresses, 1)
	addr := st.RecordDetails.Addresses[0]
	assert.Equal(t, domain.AddressRegistered, addr.Type)
	assert.Equal(t, "Testvej 1, Copenhagen", addr.Address)
	assert.Equal(t, "1050", addr.PostCode)

	require.Len(t, st.Annotations, 1)
	assert.Equal(t, "commenting", st.Annotations[0].Motivation)
	assert.Equal(t, "2024-03-15", st.Annotations[0].CreationDate)

	assert.Equal(t, "0.4", st.PublicationDetails.BodsVersion)
	assert.Equal(t, "Open Ownership", st.PublicationDetails.Publisher.Name)
	assert.Equal(t, []string{domain.SourceOfficialRegister}, st.Source.Type)
}

func TestEntity_Deterministic(t *testing.T) {
	a := &fakeAdapter{}

	first := Entity(a, domain.Item(map[string]any{}))
	second := Entity(a, domain.Item(map[string]any{}))

	assert.Equal(t, first.StatementID, second.StatementID)
}

func TestPerson_Known(t *testing.T) {
	fixedNow(t)
	a := &fakeAdapter{}

	st := Person(a, a, domain.Item(map[string]any{}))

	assert.Equal(t, "DK-CVR-PER-4000123", st.RecordID)
	assert.Equal(t, domain.RecordPerson, st.RecordType)
	assert.Equal(t, domain.PersonKnown, st.RecordDetails.PersonType)
	require.Len(t, st.RecordDetails.Names, 1)
	assert.Equal(t, "Jane Smith", st.RecordDetails.Names[0].FullName)
	assert.Equal(t, "1980-06", st.RecordDetails.BirthDate)
	assert.Equal(t, []string{"DK"}, st.RecordDetails.TaxResidencies)
	require.Len(t, st.RecordDetails.Identifiers, 1)
	assert.Equal(t, "4000123", st.RecordDetails.Identifiers[0].ID)
}

func TestPerson_Unspecified(t *testing.T) {
	a := &fakeAdapter{unspecified: true}

	st := Person(a, a, domain.Item(map[string]any{}))

	assert.Equal(t, domain.PersonUnspecified, st.RecordDetails.PersonType)
	assert.Empty(t, st.RecordDetails.Names)
	assert.Empty(t, st.RecordDetails.Identifiers)
	assert.Empty(t, st.RecordDetails.BirthDate)
}

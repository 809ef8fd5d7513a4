package bulgariacr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openownership/boexplorer/internal/core/domain"
)

const summaryResponse = `[
  {"ident": "20240101123456", "uic": 131071969, "companyName": "ПРИМЕР ЕООД"}
]`

const deedDetail = `{
  "companyName": "ПРИМЕР ЕООД",
  "sections": [
    {
      "subDeeds": [
        {
          "groups": [
            {
              "fields": [
                {
                  "nameCode": "CR_F_1_L",
                  "htmlData": "<p>Първоначална регистрация</p>",
                  "fieldEntryDate": "2008-02-14T00:00:00"
                },
                {
                  "nameCode": "CR_F_5_L",
                  "htmlData": "<p>Държава: БЪЛГАРИЯ Област: София Община: Столична място: гр. София ул. Примерна 1, 1000 Телефон: 029999999 Факс:</p>",
                  "fieldEntryDate": "2021-06-30T00:00:00"
                },
                {"htmlData": "<p>без код</p>"}
              ]
            }
          ]
        }
      ]
    }
  ]
}`

func summaryItem(t *testing.T) domain.RawItem {
	t.Helper()
	var data any
	require.NoError(t, json.Unmarshal([]byte(summaryResponse), &data))
	items := New().ExtractData(domain.Payload{JSON: data})
	require.Len(t, items, 1)
	return items[0]
}

func detailedItem(t *testing.T) domain.RawItem {
	t.Helper()
	var data any
	require.NoError(t, json.Unmarshal([]byte(deedDetail), &data))
	item := summaryItem(t)
	item.Fields = New().PreprocessDetail(domain.Payload{JSON: data})
	return item
}

func TestProtocol(t *testing.T) {
	a := New()

	assert.Equal(t, "BG-EIK", a.Scheme())
	require.NotNil(t, a.Protocol().CompanySearch)
	require.NotNil(t, a.Protocol().CompanyDetail)
	require.NotNil(t, a.Protocol().PersonSearch)
	assert.Equal(t, 25, a.Pagination().MaxPageSize)
	assert.Equal(t, 1, a.CompanyNameExtra()["selectedSearchFilter"])
}

// The register indexes in Cyrillic; Latin queries transliterate in and
// results transliterate back.
func TestTransliteration(t *testing.T) {
	a := New()

	assert.Equal(t, "примерна фирма", a.ToLocal("primerna firma"))
	assert.Equal(t, "primerna firma", a.FromLocal("примерна фирма"))
}

func TestCheckResult(t *testing.T) {
	a := New()

	assert.True(t, a.CheckResult(domain.Payload{JSON: []any{}}, domain.Query{}))
	assert.False(t, a.CheckResult(domain.Payload{JSON: map[string]any{}}, domain.Query{}))
	assert.True(t, a.CheckResult(domain.Payload{JSON: map[string]any{"companyName": "X"}}, domain.Query{Detail: true}))
}

func TestExtract(t *testing.T) {
	a := New()
	item := summaryItem(t)

	assert.Equal(t, "131071969", a.Identifier(item))
	assert.Equal(t, "BG-EIK-131071969", a.RecordID(item))
	assert.Equal(t, "ПРИМЕР ЕООД", a.EntityName(item))
	assert.Equal(t, "BG", a.Jurisdiction(item))
}

func TestCompanyDetailURL(t *testing.T) {
	a := New()

	url, ok := a.CompanyDetailURL(summaryItem(t))
	require.True(t, ok)
	assert.Equal(t, "https://portal.registryagency.bg/CR/api/Deeds/20240101123456", url)

	_, ok = a.CompanyDetailURL(domain.Item(map[string]any{}))
	assert.False(t, ok)

	extra := a.CompanyDetailExtra()
	assert.Equal(t, "true", extra["loadFieldsFromAllLegalForms"])
	assert.NotEmpty(t, extra["entryDate"])
}

func TestPreprocessDetail(t *testing.T) {
	var data any
	require.NoError(t, json.Unmarshal([]byte(deedDetail), &data))

	fields := New().PreprocessDetail(domain.Payload{JSON: data})

	require.Contains(t, fields, "CR_F_1_L")
	require.Contains(t, fields, "CR_F_5_L")
	assert.Len(t, fields, 2)
	assert.Equal(t, "Първоначална регистрация", fields["CR_F_1_L"].Text)
	assert.Equal(t, "2008-02-14T00:00:00", fields["CR_F_1_L"].Date)
}

func TestSeatAddress(t *testing.T) {
	a := New()
	item := detailedItem(t)

	addr, ok := a.RegisteredAddress(item)
	require.True(t, ok)
	assert.Equal(t, "гр. София ул. Примерна 1, 1000", a.AddressString(addr))
	assert.Equal(t, "BG", a.AddressCountry(addr))
	assert.Equal(t, "1000", a.AddressPostcode(addr))

	_, ok = a.RegisteredAddress(summaryItem(t))
	assert.False(t, ok)
}

func TestDates(t *testing.T) {
	a := New()
	item := detailedItem(t)

	assert.Equal(t, "2008-02-14", a.CreationDate(item))
	// The newest field entry date wins.
	assert.Equal(t, "2021-06-30", a.UpdateDate(item))
	// Listings without detail fields fall back to today.
	assert.NotEmpty(t, a.UpdateDate(summaryItem(t)))
}

func TestPersons(t *testing.T) {
	a := New()
	person := domain.Item(map[string]any{"name": "Иван Петров Иванов"})

	assert.Equal(t, "Иван-Петров-Иванов", a.PersonIdentifier(person))
	assert.Equal(t, "BG-EIK-PER-Иван-Петров-Иванов", a.PersonRecordID(person))
	name := a.PersonName(person)
	assert.Equal(t, "Иван", name.GivenName)
	assert.Equal(t, "Иванов", name.FamilyName)
	assert.False(t, a.Unspecified(person))
	assert.True(t, a.Unspecified(domain.Item(map[string]any{"name": "  "})))

	params := a.PersonNameParams("иванов")
	assert.Equal(t, 0, params.Values["selectedSearchFilter"])
}

func TestParseSeat(t *testing.T) {
	seat := parseSeat("Държава: БЪЛГАРИЯ Област: София Община: Столична място: гр. София ул. Примерна 1, 1000 Телефон: 029999999 Факс: 028888888")

	assert.Equal(t, "БЪЛГАРИЯ", seat["country"])
	assert.Equal(t, "София", seat["district"])
	assert.Equal(t, "Столична", seat["municipality"])
	assert.Equal(t, "гр. София ул. Примерна 1, 1000", seat["address"])
	assert.Equal(t, "029999999", seat["telephone"])
	assert.Equal(t, "028888888", seat["fax"])
}

package estoniarik

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openownership/boexplorer/internal/adapters/driven/config/memory"
	"github.com/openownership/boexplorer/internal/core/domain"
)

const searchResponse = `{
  "keha": {
    "ettevotjad": {
      "item": [
        {
          "ariregistri_kood": 10060701,
          "evnimi": "Näidis AS",
          "staatus": "R",
          "esmakande_aeg": "1999-04-12T00:00:00",
          "evaadressid": {
            "aadress_ads__ads_normaliseeritud_taisaadress": "Näite tn 1, Tallinn",
            "aadress_riik_tekstina": "Eesti"
          }
        }
      ]
    }
  }
}`

const bulkDump = `[
  {
    "ariregistri_kood": 10060701,
    "kasusaajad": [
      {
        "eesnimi": "Mari",
        "nimi": "Maasikas",
        "isikukood_registrikood": "47101010033",
        "synniaeg": "1971-01-01",
        "valisriik": ""
      },
      {
        "eesnimi": "",
        "nimi": ""
      }
    ]
  },
  {"ariregistri_kood": 10000000, "kasusaajad": []}
]`

func searchItem(t *testing.T) domain.RawItem {
	t.Helper()
	var data any
	require.NoError(t, json.Unmarshal([]byte(searchResponse), &data))
	items := New(nil, nil).ExtractData(domain.Payload{JSON: data})
	require.Len(t, items, 1)
	return items[0]
}

func bulkIndex(t *testing.T) *BulkOwners {
	t.Helper()
	bulk, err := NewBulkOwners(strings.NewReader(bulkDump))
	require.NoError(t, err)
	return bulk
}

func TestProtocol(t *testing.T) {
	a := New(nil, nil)

	assert.Equal(t, "EE-RIK", a.Scheme())
	require.NotNil(t, a.Protocol().CompanySearch)
	assert.True(t, a.Protocol().CompanySearch.Post)
	assert.True(t, a.Protocol().CompanySearch.JSON)
	// All paging rides inside the envelope.
	assert.Empty(t, a.Pagination().NumberParam)
	assert.Equal(t, "text/xml; charset=utf-8", a.HTTPHeaders()["Content-Type"])
}

// The search envelope carries the configured credentials and the escaped
// query text.
func TestCompanyNameParams(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"sources.estonia_rik.credentials.user": "someuser",
		"sources.estonia_rik.credentials.pass": "somepass",
	})
	a := New(store, nil)

	params := a.CompanyNameParams(`Näidis & "Pojad"`)

	require.True(t, params.IsRaw())
	body := params.Raw
	assert.Contains(t, body, "<prod:ariregister_kasutajanimi>someuser</prod:ariregister_kasutajanimi>")
	assert.Contains(t, body, "<prod:ariregister_parool>somepass</prod:ariregister_parool>")
	assert.Contains(t, body, "<prod:evnimi>Näidis &amp; &quot;Pojad&quot;</prod:evnimi>")
	assert.Contains(t, body, "<prod:ariregister_valjundi_formaat>json</prod:ariregister_valjundi_formaat>")
	assert.Contains(t, body, "<prod:lihtandmed_v2>")
}

func TestCompanyNameParams_NoConfig(t *testing.T) {
	params := New(nil, nil).CompanyNameParams("x")

	assert.Contains(t, params.Raw, "<prod:ariregister_kasutajanimi></prod:ariregister_kasutajanimi>")
}

func TestCheckResult(t *testing.T) {
	a := New(nil, nil)

	assert.True(t, a.CheckResult(domain.Payload{JSON: map[string]any{"keha": map[string]any{}}}, domain.Query{}))
	assert.False(t, a.CheckResult(domain.Payload{JSON: map[string]any{"fault": "x"}}, domain.Query{}))
}

func TestExtract(t *testing.T) {
	a := New(nil, nil)
	item := searchItem(t)

	assert.Equal(t, "10060701", a.Identifier(item))
	assert.Equal(t, "EE-RIK-10060701", a.RecordID(item))
	assert.Equal(t, "Näidis AS", a.EntityName(item))
	assert.Equal(t, "EE", a.Jurisdiction(item))
	assert.Equal(t, "1999-04-12", a.CreationDate(item))
	assert.Equal(t, "Registered", a.RegistrationStatus(item))

	addr, ok := a.BusinessAddress(item)
	require.True(t, ok)
	assert.Equal(t, "Näite tn 1, Tallinn", a.AddressString(addr))
	assert.Equal(t, "Eesti", a.AddressCountry(addr))
}

func TestRegistrationStatus(t *testing.T) {
	a := New(nil, nil)
	tests := []struct {
		code string
		want string
	}{
		{"R", "Registered"},
		{"L", "Liquidation"},
		{"N", "Bankrupt"},
		{"K", "Deleted"},
		{"?", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, a.RegistrationStatus(domain.Item(map[string]any{"staatus": tt.code})))
	}
}

func TestNewBulkOwners(t *testing.T) {
	bulk := bulkIndex(t)

	// Companies without owners are not indexed.
	assert.Equal(t, 1, bulk.Len())
	assert.Len(t, bulk.Owners("10060701"), 2)
	assert.Empty(t, bulk.Owners("10000000"))
	assert.Empty(t, bulk.Owners("99999999"))

	var nilBulk *BulkOwners
	assert.Zero(t, nilBulk.Len())
	assert.Nil(t, nilBulk.Owners("10060701"))
}

func TestEmbeddedPersons(t *testing.T) {
	a := New(nil, bulkIndex(t))

	persons := a.EmbeddedPersons([]domain.RawItem{searchItem(t)})

	require.Len(t, persons, 2)
	owner := persons[0]
	assert.Equal(t, "47101010033", a.PersonIdentifier(owner))
	assert.Equal(t, "EE-RIK-PER-47101010033", a.PersonRecordID(owner))
	name := a.PersonName(owner)
	assert.Equal(t, "Mari Maasikas", name.FullName)
	assert.Equal(t, "1971-01-01", a.PersonBirthDate(owner))
	assert.False(t, a.Unspecified(owner))
	assert.True(t, a.Unspecified(persons[1]))
}

// Owners without a personal code key on name plus company code.
func TestPersonIdentifier_NoCode(t *testing.T) {
	a := New(nil, nil)
	owner := domain.Item(map[string]any{
		"eesnimi":          "Jaan",
		"nimi":             "Tamm Sepp",
		"ariregistri_kood": "10060701",
	})

	assert.Equal(t, "jaan-tamm-sepp-10060701", a.PersonIdentifier(owner))
}

func TestXMLEscape(t *testing.T) {
	assert.Equal(t, "a &amp; b &lt;c&gt; &quot;d&quot; &apos;e&apos;", xmlEscape(`a & b <c> "d" 'e'`))
	assert.Equal(t, "plain", xmlEscape("plain"))
}

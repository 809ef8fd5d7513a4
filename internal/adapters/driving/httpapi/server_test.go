package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openownership/boexplorer/internal/core/domain"
)

type mockExplorer struct {
	result  *domain.Result
	sources []domain.SourceSummary
	err     error

	lastText string
	lastOpts domain.SearchOptions
}

func (m *mockExplorer) SearchCompanies(_ context.Context, text string, opts domain.SearchOptions) (*domain.Result, error) {
	m.lastText = text
	m.lastOpts = opts
	return m.result, m.err
}

func (m *mockExplorer) SearchPersons(_ context.Context, text string, opts domain.SearchOptions) (*domain.Result, error) {
	m.lastText = text
	m.lastOpts = opts
	return m.result, m.err
}

func (m *mockExplorer) Sources() []domain.SourceSummary {
	return m.sources
}

func doRequest(t *testing.T, explorer *mockExplorer, target string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, target, nil)
	NewServer(explorer).Routes().ServeHTTP(recorder, request)
	return recorder
}

func TestSearchCompanies(t *testing.T) {
	result := domain.NewResult()
	result.AddEntity("GB-COH-01234567", domain.Statement{RecordID: "GB-COH-01234567"})
	explorer := &mockExplorer{result: result}

	recorder := doRequest(t, explorer, "/v0/search/companies?q=acme&limit=5&source=GB-COH&source=XI-LEI")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "acme", explorer.lastText)
	assert.Equal(t, 5, explorer.lastOpts.MaxResults)
	assert.Equal(t, []string{"GB-COH", "XI-LEI"}, explorer.lastOpts.Sources)

	var body domain.Result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Len(t, body.Entities["GB-COH-01234567"], 1)
}

func TestSearchCompanies_MissingQuery(t *testing.T) {
	recorder := doRequest(t, &mockExplorer{result: domain.NewResult()}, "/v0/search/companies")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "missing q parameter")
}

func TestSearchCompanies_BadLimit(t *testing.T) {
	recorder := doRequest(t, &mockExplorer{result: domain.NewResult()}, "/v0/search/companies?q=acme&limit=nope")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSearchCompanies_UpstreamError(t *testing.T) {
	explorer := &mockExplorer{err: errors.New("connection refused")}

	recorder := doRequest(t, explorer, "/v0/search/companies?q=acme")

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
}

func TestSearchPersons(t *testing.T) {
	result := domain.NewResult()
	result.AddPerson("DK-CVR-PER-4000123", domain.Statement{RecordID: "DK-CVR-PER-4000123"})
	explorer := &mockExplorer{result: result}

	recorder := doRequest(t, explorer, "/v0/search/persons?q=jensen")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "jensen", explorer.lastText)

	var body domain.Result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Len(t, body.Persons["DK-CVR-PER-4000123"], 1)
}

func TestSources(t *testing.T) {
	explorer := &mockExplorer{sources: []domain.SourceSummary{
		{Name: "GLEIF", Country: "International"},
	}}

	recorder := doRequest(t, explorer, "/v0/sources")

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Sources []domain.SourceSummary `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Sources, 1)
	assert.Equal(t, "GLEIF", body.Sources[0].Name)
}

func TestHealth(t *testing.T) {
	recorder := doRequest(t, &mockExplorer{}, "/healthz")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

package domain

// Phase names one step of the fetch cycle against a registry.
type Phase string

// Fetch phases.
const (
	PhaseCompanySearch  Phase = "company_search"
	PhaseCompanyDetail  Phase = "company_detail"
	PhaseCompanyPersons Phase = "company_persons"
	PhasePersonSearch   Phase = "person_search"
	PhasePersonDetail   Phase = "person_detail"
)

// PhaseShape describes how one phase speaks HTTP: request method and
// whether the response body is JSON (false means an HTML page to scrape).
type PhaseShape struct {
	Post bool
	JSON bool
}

// Protocol maps each phase to its shape. A nil entry means the registry has
// no remote endpoint for that phase.
type Protocol struct {
	CompanySearch  *PhaseShape
	CompanyDetail  *PhaseShape
	CompanyPersons *PhaseShape
	PersonSearch   *PhaseShape
	PersonDetail   *PhaseShape
}

// Shape returns the shape for a phase, or nil when the phase is absent.
func (p Protocol) Shape(phase Phase) *PhaseShape {
	switch phase {
	case PhaseCompanySearch:
		return p.CompanySearch
	case PhaseCompanyDetail:
		return p.CompanyDetail
	case PhaseCompanyPersons:
		return p.CompanyPersons
	case PhasePersonSearch:
		return p.PersonSearch
	case PhasePersonDetail:
		return p.PersonDetail
	}
	return nil
}

// Pagination describes how a registry pages search results. Registries that
// do not page leave the parameter names empty.
type Pagination struct {
	// SizeParam is the page-size parameter name; empty when the registry
	// has no size parameter.
	SizeParam string
	// WrapSizeInList wraps the size value in a single-element list, for
	// registries whose query schema demands it.
	WrapSizeInList bool
	// NumberParam is the page-number parameter name; empty when the
	// registry has no page parameter.
	NumberParam string
	// Origin is the number of the first page, 0 or 1.
	Origin int
	// MaxPageSize caps the page size the registry accepts; 0 means no cap.
	MaxPageSize int
	// PostPagination signals that paging fields live inside the POST body
	// rather than the query string, merged into the body template.
	PostPagination bool
}

// Params is a prepared request payload: either a map of query/body
// parameters or a raw body (SOAP registries build the envelope themselves).
type Params struct {
	Values map[string]any
	Raw    string
}

// MapParams wraps a parameter map.
func MapParams(values map[string]any) Params {
	return Params{Values: values}
}

// RawParams wraps a prebuilt request body.
func RawParams(body string) Params {
	return Params{Raw: body}
}

// IsRaw reports whether the params are a prebuilt body.
func (p Params) IsRaw() bool {
	return p.Raw != ""
}

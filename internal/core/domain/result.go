package domain

// SearchKind distinguishes the two search entry points.
type SearchKind int

// Search kinds.
const (
	SearchCompanies SearchKind = iota
	SearchPersons
)

// Query is the search request as the adapters see it while checking and
// filtering results: what was asked for and which stage the item came from.
type Query struct {
	Kind  SearchKind
	Phase Phase
	Text  string
	// Detail is true once the payload being checked came from a detail
	// fetch rather than the search listing.
	Detail bool
}

// SearchOptions bound a search.
type SearchOptions struct {
	// MaxResults stops paging once at least this many records were
	// accepted from one registry. Zero means the default limit.
	MaxResults int
	// PageSize is the requested page size, capped per registry.
	PageSize int
	// Sources restricts the search to the named schemes; empty means all
	// configured registries.
	Sources []string
}

// Default search bounds.
const (
	DefaultMaxResults = 100
	DefaultPageSize   = 25
)

// Limit returns MaxResults with the default applied.
func (o SearchOptions) Limit() int {
	if o.MaxResults <= 0 {
		return DefaultMaxResults
	}
	return o.MaxResults
}

// EffectivePageSize returns PageSize with the default applied.
func (o SearchOptions) EffectivePageSize() int {
	if o.PageSize <= 0 {
		return DefaultPageSize
	}
	return o.PageSize
}

// SourceSummary is the per-registry row of a search result.
type SourceSummary struct {
	Description string `json:"description"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	SearchURL   string `json:"searchUrl"`
	EntityCount int    `json:"entityCount"`
	PersonCount int    `json:"personCount"`
}

// Result aggregates one search across all registries. Entities and Persons
// key statements by recordId; a record found by several registries keeps one
// statement per registry, in arrival order.
type Result struct {
	Entities map[string][]Statement   `json:"entities"`
	Persons  map[string][]Statement   `json:"persons"`
	Sources  map[string]SourceSummary `json:"sources"`
}

// NewResult returns an empty, ready-to-merge Result.
func NewResult() *Result {
	return &Result{
		Entities: make(map[string][]Statement),
		Persons:  make(map[string][]Statement),
		Sources:  make(map[string]SourceSummary),
	}
}

// AddEntity appends an entity statement under its recordId.
func (r *Result) AddEntity(recordID string, st Statement) {
	r.Entities[recordID] = append(r.Entities[recordID], st)
}

// AddPerson appends a person statement under its recordId.
func (r *Result) AddPerson(recordID string, st Statement) {
	r.Persons[recordID] = append(r.Persons[recordID], st)
}

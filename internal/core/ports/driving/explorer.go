package driving

import (
	"context"

	"github.com/openownership/boexplorer/internal/core/domain"
)

// Explorer is the search surface the driving adapters consume.
type Explorer interface {
	// SearchCompanies searches every configured registry by company name
	// and aggregates the results as BODS statements.
	SearchCompanies(ctx context.Context, text string, opts domain.SearchOptions) (*domain.Result, error)

	// SearchPersons searches the person-searchable registries by person
	// name and aggregates the results as BODS statements.
	SearchPersons(ctx context.Context, text string, opts domain.SearchOptions) (*domain.Result, error)

	// Sources lists the configured registries as summary rows.
	Sources() []domain.SourceSummary
}

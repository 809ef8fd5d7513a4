// Package services implements the core search pipeline: the per-registry
// fetch cycle and the cross-registry orchestration that aggregates raw
// records into BODS statements.
package services

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
	"github.com/openownership/boexplorer/internal/core/ports/driving"
	"github.com/openownership/boexplorer/internal/jurisdictions"
	"github.com/openownership/boexplorer/internal/logger"
	"github.com/openownership/boexplorer/internal/transforms/bods"
)

// Ensure Explorer implements the driving port.
var _ driving.Explorer = (*Explorer)(nil)

// maxConcurrentRegistries caps the registry fan-out.
const maxConcurrentRegistries = 8

// Explorer fans a search out across every configured registry, waits for
// all of them, then aggregates statements in a single goroutine. Fetching
// is concurrent; merging never is.
type Explorer struct {
	fetcher  *Fetcher
	adapters []driven.Adapter
}

// NewExplorer creates an Explorer over the given registries. Adapter order
// fixes summary ordering and merge order for records found by several
// registries.
func NewExplorer(downloader driven.Downloader, adapters []driven.Adapter) *Explorer {
	return &Explorer{
		fetcher:  NewFetcher(downloader),
		adapters: adapters,
	}
}

// outcome is one registry's raw harvest, produced concurrently and merged
// after the join.
type outcome struct {
	adapter   driven.Adapter
	companies []domain.RawItem
	persons   []domain.RawItem
}

// SearchCompanies implements driving.Explorer.
func (e *Explorer) SearchCompanies(ctx context.Context, text string, opts domain.SearchOptions) (*domain.Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrInvalidInput
	}
	adapters := e.selected(opts.Sources)
	outcomes := make([]outcome, len(adapters))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRegistries)
	for i, a := range adapters {
		g.Go(func() error {
			defer recoverAdapter(a)
			logger.Section(a.Scheme())
			companies, persons := e.fetcher.FetchCompanies(gctx, a, text, opts)
			outcomes[i] = outcome{adapter: a, companies: companies, persons: persons}
			return nil
		})
	}
	// Fetch tasks absorb their own failures.
	_ = g.Wait()

	result := domain.NewResult()
	for i := range outcomes {
		if outcomes[i].adapter == nil {
			// The task panicked before recording anything.
			outcomes[i].adapter = adapters[i]
		}
		e.mergeCompanyOutcome(outcomes[i], text, result)
	}
	return result, nil
}

// SearchPersons implements driving.Explorer.
func (e *Explorer) SearchPersons(ctx context.Context, text string, opts domain.SearchOptions) (*domain.Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrInvalidInput
	}
	type personOutcome struct {
		adapter  driven.Adapter
		searcher driven.PersonSearcher
		persons  []domain.RawItem
	}
	var searchable []personOutcome
	for _, a := range e.selected(opts.Sources) {
		if ps, ok := a.(driven.PersonSearcher); ok {
			searchable = append(searchable, personOutcome{adapter: a, searcher: ps})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRegistries)
	for i := range searchable {
		g.Go(func() error {
			defer recoverAdapter(searchable[i].adapter)
			logger.Section(searchable[i].adapter.Scheme())
			searchable[i].persons = e.fetcher.FetchPersons(gctx, searchable[i].adapter, searchable[i].searcher, text, opts)
			return nil
		})
	}
	_ = g.Wait()

	result := domain.NewResult()
	for i := range searchable {
		a := searchable[i].adapter
		count := e.mergePersons(a, searchable[i].persons, domain.PhasePersonSearch, result)
		addSource(a, result, 0, count)
	}
	return result, nil
}

// Sources implements driving.Explorer.
func (e *Explorer) Sources() []domain.SourceSummary {
	out := make([]domain.SourceSummary, 0, len(e.adapters))
	for _, a := range e.adapters {
		out = append(out, summaryRow(a, 0, 0))
	}
	return out
}

// mergeCompanyOutcome transforms and merges one registry's harvest, then
// records its summary row. Failed registries still get a zero-count row.
func (e *Explorer) mergeCompanyOutcome(o outcome, text string, result *domain.Result) {
	a := o.adapter
	entityQuery := domain.Query{Kind: domain.SearchCompanies, Phase: domain.PhaseCompanySearch, Text: text}

	entitySeen := make(map[string]struct{})
	for _, item := range o.companies {
		if !a.FilterResult(item, entityQuery) {
			continue
		}
		st := bods.Entity(a, item)
		if st.RecordID == "" {
			continue
		}
		result.AddEntity(st.RecordID, st)
		entitySeen[st.RecordID] = struct{}{}
	}

	personCount := e.mergePersons(a, o.persons, domain.PhaseCompanyPersons, result)
	addSource(a, result, len(entitySeen), personCount)
}

// mergePersons transforms and merges person items, returning the number of
// distinct person records.
func (e *Explorer) mergePersons(a driven.Adapter, persons []domain.RawItem, phase domain.Phase, result *domain.Result) int {
	pm, ok := a.(driven.PersonMapper)
	if !ok {
		return 0
	}
	personQuery := domain.Query{Kind: domain.SearchPersons, Phase: phase}
	seen := make(map[string]struct{})
	for _, item := range persons {
		if !a.FilterResult(item, personQuery) {
			continue
		}
		st := bods.Person(a, pm, item)
		if st.RecordID == "" {
			continue
		}
		result.AddPerson(st.RecordID, st)
		seen[st.RecordID] = struct{}{}
	}
	return len(seen)
}

// selected returns the adapters matching the requested schemes, or all of
// them when no restriction was given.
func (e *Explorer) selected(schemes []string) []driven.Adapter {
	if len(schemes) == 0 {
		return e.adapters
	}
	want := make(map[string]struct{}, len(schemes))
	for _, s := range schemes {
		want[strings.ToUpper(s)] = struct{}{}
	}
	var out []driven.Adapter
	for _, a := range e.adapters {
		if _, ok := want[a.Scheme()]; ok {
			out = append(out, a)
		}
	}
	return out
}

func addSource(a driven.Adapter, result *domain.Result, entityCount, personCount int) {
	result.Sources[a.Scheme()] = summaryRow(a, entityCount, personCount)
}

func summaryRow(a driven.Adapter, entityCount, personCount int) domain.SourceSummary {
	return domain.SourceSummary{
		Description: a.SourceDescription(),
		Name:        a.SchemeName(),
		Country:     jurisdictions.CountryForScheme(a.Scheme()),
		SearchURL:   a.PublicSearchURL(),
		EntityCount: entityCount,
		PersonCount: personCount,
	}
}

// recoverAdapter isolates a misbehaving adapter to its own task.
func recoverAdapter(a driven.Adapter) {
	if r := recover(); r != nil {
		logger.Warn("%s: adapter panic: %v", a.Scheme(), r)
	}
}

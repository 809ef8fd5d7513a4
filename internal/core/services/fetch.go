package services

import (
	"context"

	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
	"github.com/openownership/boexplorer/internal/logger"
	"github.com/openownership/boexplorer/internal/query"
)

// Fetcher drives the fetch cycle against one registry: paged search, the
// optional per-record detail phase and the optional beneficial-owners
// phase. Registries are independent, so failures never propagate as
// errors - a broken page degrades to an empty one and the cycle moves on.
type Fetcher struct {
	downloader driven.Downloader
}

// NewFetcher creates a Fetcher over the given downloader.
func NewFetcher(downloader driven.Downloader) *Fetcher {
	return &Fetcher{downloader: downloader}
}

// FetchCompanies runs the company cycle for one registry and returns the
// raw entity items plus any beneficial-owner items found along the way.
func (f *Fetcher) FetchCompanies(ctx context.Context, a driven.Adapter, text string, opts domain.SearchOptions) ([]domain.RawItem, []domain.RawItem) {
	proto := a.Protocol()
	if proto.CompanySearch == nil {
		return nil, nil
	}
	session := f.session(ctx, a)
	pageSize := effectivePageSize(a, opts)

	raw := f.searchPages(ctx, a, session, pageSize, opts.Limit(),
		domain.Query{Kind: domain.SearchCompanies, Phase: domain.PhaseCompanySearch, Text: text},
		*proto.CompanySearch,
		func(page int) query.Search {
			return query.CompanyName(a, text, opts.EffectivePageSize(), page)
		})

	companies := f.companyDetails(ctx, a, session, raw)
	persons := f.companyPersons(ctx, a, session, text, companies)
	return companies, persons
}

// FetchPersons runs the person cycle for one person-searchable registry.
func (f *Fetcher) FetchPersons(ctx context.Context, a driven.Adapter, ps driven.PersonSearcher, text string, opts domain.SearchOptions) []domain.RawItem {
	proto := a.Protocol()
	if proto.PersonSearch == nil {
		return nil
	}
	session := f.session(ctx, a)
	pageSize := effectivePageSize(a, opts)

	raw := f.searchPages(ctx, a, session, pageSize, opts.Limit(),
		domain.Query{Kind: domain.SearchPersons, Phase: domain.PhasePersonSearch, Text: text},
		*proto.PersonSearch,
		func(page int) query.Search {
			return query.PersonName(a, ps, text, opts.EffectivePageSize(), page)
		})

	return f.personDetails(ctx, a, session, raw)
}

// searchPages pages through one search endpoint until the registry signals
// the end: a malformed payload, a short page, an empty page or enough
// accepted records.
func (f *Fetcher) searchPages(ctx context.Context, a driven.Adapter, session domain.Session, pageSize, limit int, q domain.Query, shape domain.PhaseShape, build func(page int) query.Search) []domain.RawItem {
	var raw []domain.RawItem
	count := 0
	for page := 1; ; page++ {
		sq := build(page)
		payload, err := f.downloader.Fetch(ctx, driven.Request{
			URL:            sq.URL,
			Params:         sq.Params,
			Extra:          sq.Paging,
			Shape:          shape,
			PostPagination: a.Pagination().PostPagination,
			Headers:        a.HTTPHeaders(),
			Auth:           a.Authenticator(),
			Session:        session,
			Timeout:        a.HTTPTimeout(),
			Scheme:         a.Scheme(),
		})
		if err != nil {
			logger.Warn("%s: search page %d failed: %v", a.Scheme(), page, err)
			break
		}
		if !a.CheckResult(payload, q) {
			break
		}
		data := a.ExtractData(payload)
		if len(data) == 0 {
			break
		}
		raw = append(raw, data...)
		count += len(data)
		logger.Debug("%s: page %d yielded %d items (%d total)", a.Scheme(), page, len(data), count)
		if len(data) < pageSize || count >= limit {
			break
		}
	}
	return raw
}

// companyDetails upgrades thin search items to full detail records for
// registries with a detail phase, attaching the preprocessed field table to
// each record. Registries without the phase keep their search items.
func (f *Fetcher) companyDetails(ctx context.Context, a driven.Adapter, session domain.Session, raw []domain.RawItem) []domain.RawItem {
	cd, ok := a.(driven.CompanyDetailer)
	if !ok || a.Protocol().CompanyDetail == nil || len(raw) == 0 {
		return raw
	}
	q := domain.Query{Kind: domain.SearchCompanies, Phase: domain.PhaseCompanyDetail, Detail: true}
	var companies []domain.RawItem
	for _, entity := range raw {
		url, params, ok := query.CompanyDetail(cd, entity)
		if !ok {
			continue
		}
		payload, err := f.downloader.Fetch(ctx, driven.Request{
			URL:     url,
			Params:  params,
			Shape:   *a.Protocol().CompanyDetail,
			Headers: a.HTTPHeaders(),
			Auth:    a.Authenticator(),
			Session: session,
			Timeout: a.HTTPTimeout(),
			Scheme:  a.Scheme(),
		})
		if err != nil {
			logger.Warn("%s: company detail failed: %v", a.Scheme(), err)
			continue
		}
		if !a.CheckResult(payload, q) {
			continue
		}
		companies = append(companies, domain.RawItem{
			Data:   payload.JSON,
			Fields: cd.PreprocessDetail(payload),
		})
	}
	return companies
}

// companyPersons collects beneficial owners: remotely for registries with a
// persons endpoint, locally for registries that embed owners in the entity
// data or a bulk dataset.
func (f *Fetcher) companyPersons(ctx context.Context, a driven.Adapter, session domain.Session, text string, companies []domain.RawItem) []domain.RawItem {
	if len(companies) == 0 {
		return nil
	}
	if cp, ok := a.(driven.CompanyPersonser); ok && a.Protocol().CompanyPersons != nil {
		return f.remotePersons(ctx, a, cp, session, text, companies)
	}
	if ep, ok := a.(driven.EmbeddedPersonser); ok {
		return ep.EmbeddedPersons(companies)
	}
	return nil
}

func (f *Fetcher) remotePersons(ctx context.Context, a driven.Adapter, cp driven.CompanyPersonser, session domain.Session, text string, companies []domain.RawItem) []domain.RawItem {
	gate := domain.Query{Kind: domain.SearchCompanies, Phase: domain.PhaseCompanyPersons, Text: text}
	var persons []domain.RawItem
	for _, entity := range companies {
		url, params, ok := query.CompanyPersons(cp, entity)
		if !ok || !a.FilterResult(entity, gate) {
			continue
		}
		payload, err := f.downloader.Fetch(ctx, driven.Request{
			URL:            url,
			Params:         params,
			Shape:          *a.Protocol().CompanyPersons,
			PostPagination: a.Pagination().PostPagination,
			Headers:        a.HTTPHeaders(),
			Auth:           a.Authenticator(),
			Session:        session,
			Timeout:        a.HTTPTimeout(),
			Scheme:         a.Scheme(),
			InsecureTLS:    true,
		})
		if err != nil {
			logger.Warn("%s: company persons failed: %v", a.Scheme(), err)
			continue
		}
		persons = append(persons, cp.ExtractPersonsItems(payload)...)
	}
	return persons
}

// personDetails upgrades person search items for registries with a person
// detail phase. A detail payload that is itself a list contributes one item
// per element.
func (f *Fetcher) personDetails(ctx context.Context, a driven.Adapter, session domain.Session, raw []domain.RawItem) []domain.RawItem {
	pd, ok := a.(driven.PersonDetailer)
	if !ok || a.Protocol().PersonDetail == nil || len(raw) == 0 {
		return raw
	}
	q := domain.Query{Kind: domain.SearchPersons, Phase: domain.PhasePersonDetail, Detail: true}
	var persons []domain.RawItem
	for _, person := range raw {
		url, params, ok := query.PersonDetail(pd, person)
		if !ok {
			continue
		}
		payload, err := f.downloader.Fetch(ctx, driven.Request{
			URL:     url,
			Params:  params,
			Shape:   *a.Protocol().PersonDetail,
			Headers: a.HTTPHeaders(),
			Auth:    a.Authenticator(),
			Session: session,
			Timeout: a.HTTPTimeout(),
			Scheme:  a.Scheme(),
		})
		if err != nil {
			logger.Warn("%s: person detail failed: %v", a.Scheme(), err)
			continue
		}
		if !a.CheckResult(payload, q) {
			continue
		}
		fields := pd.PreprocessPersonDetail(payload)
		if list := payload.List(); list != nil {
			for _, element := range list {
				persons = append(persons, domain.RawItem{Data: element, Fields: fields})
			}
		} else {
			persons = append(persons, domain.RawItem{Data: payload.JSON, Fields: fields})
		}
	}
	return persons
}

// session establishes the per-visit identity for cookie-gated registries.
// A failed session is logged and the cycle proceeds bare.
func (f *Fetcher) session(ctx context.Context, a driven.Adapter) domain.Session {
	session, err := a.Session(ctx)
	if err != nil {
		logger.Warn("%s: session setup failed: %v", a.Scheme(), err)
		return domain.Session{}
	}
	return session
}

// effectivePageSize is the size actually requested of the registry, used
// for short-page termination.
func effectivePageSize(a driven.Adapter, opts domain.SearchOptions) int {
	size := opts.EffectivePageSize()
	if cap := a.Pagination().MaxPageSize; cap > 0 && size > cap {
		return cap
	}
	return size
}

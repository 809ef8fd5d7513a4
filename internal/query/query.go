// Package query prepares registry requests from adapter descriptions:
// search-name parameters merged with fixed extras, pagination parameters
// placed per the registry's paging contract, and the follow-up detail and
// persons queries.
package query

import (
	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
)

// Search is one prepared search-page request. Paging stays separate from
// Params because POST-paginated registries need the paging values merged
// into the nested request body, not the query string.
type Search struct {
	URL    string
	Params domain.Params
	Paging map[string]any
}

// CompanyName builds one page of a company-name search. The page argument
// is 1-based; the registry's page origin is applied here.
func CompanyName(a driven.Adapter, text string, pageSize, page int) Search {
	params := a.CompanyNameParams(localised(a, text))
	return Search{
		URL:    a.CompanySearchURL(),
		Params: merged(params, a.CompanyNameExtra()),
		Paging: paging(a.Pagination(), pageSize, page),
	}
}

// PersonName builds one page of a person-name search.
func PersonName(a driven.Adapter, ps driven.PersonSearcher, text string, pageSize, page int) Search {
	params := ps.PersonNameParams(localised(a, text))
	return Search{
		URL:    ps.PersonSearchURL(),
		Params: merged(params, ps.PersonNameExtra()),
		Paging: paging(a.Pagination(), pageSize, page),
	}
}

// CompanyDetail builds the detail request for one search item. The false
// return means the item carries no detail link and the entity keeps its
// search-listing data.
func CompanyDetail(cd driven.CompanyDetailer, item domain.RawItem) (string, domain.Params, bool) {
	url, ok := cd.CompanyDetailURL(item)
	if !ok {
		return "", domain.Params{}, false
	}
	return url, merged(cd.CompanyDetailParams(item), cd.CompanyDetailExtra()), true
}

// CompanyPersons builds the beneficial-owners request for one entity.
func CompanyPersons(cp driven.CompanyPersonser, item domain.RawItem) (string, domain.Params, bool) {
	url, ok := cp.CompanyPersonsURL(item)
	if !ok {
		return "", domain.Params{}, false
	}
	return url, cp.CompanyPersonsParams(item), true
}

// PersonDetail builds the detail request for one person search item.
func PersonDetail(pd driven.PersonDetailer, item domain.RawItem) (string, domain.Params, bool) {
	url, ok := pd.PersonDetailURL(item)
	if !ok {
		return "", domain.Params{}, false
	}
	return url, pd.PersonDetailParams(item), true
}

// paging produces the pagination parameters for a 1-based page request.
func paging(pg domain.Pagination, pageSize, page int) map[string]any {
	out := make(map[string]any)
	if pg.SizeParam != "" {
		size := pageSize
		if pg.MaxPageSize > 0 && size > pg.MaxPageSize {
			size = pg.MaxPageSize
		}
		if pg.WrapSizeInList {
			out[pg.SizeParam] = []any{size}
		} else {
			out[pg.SizeParam] = size
		}
	}
	if pg.NumberParam != "" {
		if pg.Origin == 0 {
			page--
		}
		out[pg.NumberParam] = page
	}
	return out
}

// merged overlays fixed extras on the name parameters. Raw-body params pass
// through untouched.
func merged(params domain.Params, extra map[string]any) domain.Params {
	if params.IsRaw() || len(extra) == 0 {
		return params
	}
	values := make(map[string]any, len(params.Values)+len(extra))
	for k, v := range params.Values {
		values[k] = v
	}
	for k, v := range extra {
		values[k] = v
	}
	return domain.MapParams(values)
}

// localised converts search text to the registry's local script when the
// adapter transliterates.
func localised(a driven.Adapter, text string) string {
	if t, ok := a.(driven.Transliterator); ok {
		return t.ToLocal(text)
	}
	return text
}

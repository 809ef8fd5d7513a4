// Package jurisdictions resolves ISO 3166 codes to display names for
// statement jurisdictions and source summaries.
package jurisdictions

import (
	"strings"

	"github.com/biter777/countries"
)

// Name resolves a jurisdiction code to a display name. Subdivision codes
// ("US-DE") render as "Subdivision, Country"; unknown codes come back
// unchanged so statements never lose information.
func Name(code string) string {
	if code == "" {
		return ""
	}
	if strings.Contains(code, "-") {
		return subdivisionName(code)
	}
	if strings.Contains(code, "UK") {
		return "United Kingdom"
	}
	c := countries.ByName(code)
	if c == countries.Unknown {
		return code
	}
	return c.String()
}

// CountryForScheme resolves the country prefix of an org-id scheme
// ("GB-COH" -> "United Kingdom"). The XI prefix covers supranational
// registries and renders as "Global".
func CountryForScheme(scheme string) string {
	prefix, _, found := strings.Cut(scheme, "-")
	if !found || prefix == "" {
		return scheme
	}
	if prefix == "XI" {
		return "Global"
	}
	c := countries.ByName(prefix)
	if c == countries.Unknown {
		return prefix
	}
	return c.String()
}

func subdivisionName(code string) string {
	prefix, sub, _ := strings.Cut(code, "-")
	c := countries.ByName(prefix)
	if c == countries.Unknown {
		return code
	}
	if name, ok := subdivisions[code]; ok {
		return name + ", " + c.String()
	}
	// Unknown subdivision, fall back to "CODE, Country".
	return sub + ", " + c.String()
}

// subdivisions covers the codes the registries actually emit: US states and
// Canadian provinces (GLEIF legal jurisdictions) plus the UK nations.
var subdivisions = map[string]string{
	"US-AL": "Alabama", "US-AK": "Alaska", "US-AZ": "Arizona",
	"US-AR": "Arkansas", "US-CA": "California", "US-CO": "Colorado",
	"US-CT": "Connecticut", "US-DE": "Delaware", "US-FL": "Florida",
	"US-GA": "Georgia", "US-HI": "Hawaii", "US-ID": "Idaho",
	"US-IL": "Illinois", "US-IN": "Indiana", "US-IA": "Iowa",
	"US-KS": "Kansas", "US-KY": "Kentucky", "US-LA": "Louisiana",
	"US-ME": "Maine", "US-MD": "Maryland", "US-MA": "Massachusetts",
	"US-MI": "Michigan", "US-MN": "Minnesota", "US-MS": "Mississippi",
	"US-MO": "Missouri", "US-MT": "Montana", "US-NE": "Nebraska",
	"US-NV": "Nevada", "US-NH": "New Hampshire", "US-NJ": "New Jersey",
	"US-NM": "New Mexico", "US-NY": "New York", "US-NC": "North Carolina",
	"US-ND": "North Dakota", "US-OH": "Ohio", "US-OK": "Oklahoma",
	"US-OR": "Oregon", "US-PA": "Pennsylvania", "US-RI": "Rhode Island",
	"US-SC": "South Carolina", "US-SD": "South Dakota", "US-TN": "Tennessee",
	"US-TX": "Texas", "US-UT": "Utah", "US-VT": "Vermont",
	"US-VA": "Virginia", "US-WA": "Washington", "US-WV": "West Virginia",
	"US-WI": "Wisconsin", "US-WY": "Wyoming", "US-DC": "District of Columbia",

	"CA-AB": "Alberta", "CA-BC": "British Columbia", "CA-MB": "Manitoba",
	"CA-NB": "New Brunswick", "CA-NL": "Newfoundland and Labrador",
	"CA-NS": "Nova Scotia", "CA-NT": "Northwest Territories",
	"CA-NU": "Nunavut", "CA-ON": "Ontario", "CA-PE": "Prince Edward Island",
	"CA-QC": "Quebec", "CA-SK": "Saskatchewan", "CA-YT": "Yukon",

	"GB-ENG": "England", "GB-SCT": "Scotland", "GB-WLS": "Wales",
	"GB-NIR": "Northern Ireland",
}

package gleif

// registrationAuthorities maps GLEIF registration-authority codes to the
// org-id scheme of the underlying national register. Covers the authorities
// that actually appear in search results for the supported jurisdictions
// plus the most common European commercial registers.
var registrationAuthorities = map[string]struct {
	scheme string
	name   string
}{
	"RA000585": {"GB-COH", "Companies House"},
	"RA000189": {"DK-CVR", "Danish Central Business Register"},
	"RA000191": {"EE-RIK", "Estonian Commercial Register"},
	"RA000423": {"LV-RE", "Latvian Register of Enterprises"},
	"RA000526": {"SK-ORSR", "Slovakian Business Register"},
	"RA000511": {"BG-EIK", "Bulgarian Commercial Register"},
	"RA000163": {"CZ-CR", "Czech Commercial Register"},
	"RA000397": {"PL-KRS", "Polish National Court Register"},
	"RA000700": {"NG-CAC", "Nigerian Corporate Affairs Commission"},
	"RA000201": {"FR-RCS", "French Trade and Companies Register"},
	"RA000216": {"DE-HREG", "German Commercial Register"},
	"RA000407": {"NL-KVK", "Dutch Business Register"},
	"RA000490": {"SE-BLV", "Swedish Companies Registration Office"},
	"RA000401": {"NO-BRC", "Norwegian Register of Business Enterprises"},
	"RA000532": {"ES-RMC", "Spanish Commercial Registry"},
	"RA000326": {"IT-RI", "Italian Business Register"},
	"RA000402": {"IE-CRO", "Irish Companies Registration Office"},
	"RA000548": {"CH-FDJP", "Swiss Commercial Registry"},
	"RA000592": {"US-DE", "Delaware Division of Corporations"},
	"RA000665": {"AU-ACN", "Australian Securities and Investments Commission"},
}

func lookupAuthority(raID string) (scheme, name string, ok bool) {
	entry, ok := registrationAuthorities[raID]
	if !ok {
		return "", "", false
	}
	return entry.scheme, entry.name, true
}

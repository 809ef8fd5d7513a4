package scrape

import (
	"fmt"
	"strings"
	"time"
)

// Czech genitive month names as they appear in registry extracts
// ("6. listopadu 1992").
var czechMonths = map[string]time.Month{
	"ledna": time.January, "února": time.February, "března": time.March,
	"dubna": time.April, "května": time.May, "června": time.June,
	"července": time.July, "srpna": time.August, "září": time.September,
	"října": time.October, "listopadu": time.November, "prosince": time.December,
}

// isoDate normalises a scraped date ("6. listopadu 1992" or "06.11.1992")
// to ISO 8601. Unparseable values pass through unchanged.
func isoDate(s string) string {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2.1.2006", strings.ReplaceAll(s, " ", "")); err == nil {
		return t.Format("2006-01-02")
	}
	fields := strings.Fields(s)
	if len(fields) == 3 {
		if month, ok := czechMonths[strings.ToLower(fields[1])]; ok {
			day := strings.TrimSuffix(fields[0], ".")
			if t, err := time.Parse("2-1-2006", fmt.Sprintf("%s-%d-%s", day, int(month), fields[2])); err == nil {
				return t.Format("2006-01-02")
			}
		}
	}
	return s
}

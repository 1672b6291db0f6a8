package services

import (
	"strings"
	"time"
)

// dateLayouts are tried in order: ISO dates in extended (2006-01-02) and
// basic (20060102) form, alone or followed by a T or space separated time of
// hour, minute or second precision, in either form, with an optional Z or
// numeric offset. time.Parse accepts a fractional second after the seconds
// even when the layout has none. DD/MM/YYYY comes last.
var dateLayouts = buildDateLayouts()

func buildDateLayouts() []string {
	dates := []string{"2006-01-02", "20060102"}
	clocks := []string{"15:04:05", "150405", "15:04", "1504", "15"}
	zones := []string{"", "Z07:00", "Z0700", "Z07"}

	layouts := append([]string{}, dates...)
	for _, date := range dates {
		for _, sep := range []string{"T", " "} {
			for _, clock := range clocks {
				for _, zone := range zones {
					layouts = append(layouts, date+sep+clock+zone)
				}
			}
		}
	}
	return append(layouts, "02/01/2006")
}

// NormalizeDate returns raw as YYYY-MM-DD when it is an ISO date, an ISO
// date-time or a DD/MM/YYYY date. Anything else is returned trimmed and
// otherwise untouched. The calendar day is taken as written, without
// converting offsets.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return s
}

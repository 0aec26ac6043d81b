// Package locale resolves display month names for report periods.
package locale

import (
	"fmt"

	"golang.org/x/text/language"
)

// supported is ordered so the first entry is the fallback for unmatched tags.
var supported = []language.Tag{
	language.Spanish,
	language.English,
	language.Portuguese,
}

var monthNames = [][12]string{
	{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	{"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
}

// Resolver maps a locale tag and month number to a month name.
type Resolver struct {
	matcher language.Matcher
}

// NewResolver builds a resolver over the built-in month tables.
func NewResolver() *Resolver {
	return &Resolver{matcher: language.NewMatcher(supported)}
}

// MonthName returns the display name of month (1-12) for the locale tag.
// Malformed or unknown tags fall back to Spanish.
func (r *Resolver) MonthName(tag string, month int) (string, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("month %d out of range", month)
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		parsed = language.Und
	}
	_, index, _ := r.matcher.Match(parsed)
	return monthNames[index][month-1], nil
}

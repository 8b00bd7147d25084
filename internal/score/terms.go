package score

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TermDays is an optional payment-term length in calendar days.
// The zero value is "absent": no recognizable term applies.
// Days is never negative.
type TermDays struct {
	Days  int
	Valid bool
}

// NewTermDays creates a present TermDays.
func NewTermDays(days int) TermDays {
	return TermDays{Days: days, Valid: true}
}

// termRule classifies a payment-terms description. Rules are evaluated in a
// fixed priority order; the first rule that recognizes the text wins, so
// overlapping substring matches are unambiguous.
type termRule struct {
	name    string
	resolve func(text string, today time.Time) (TermDays, bool)
}

var (
	netDaysPattern    = regexp.MustCompile(`(?i)\b(\d+)\s*-?\s*days?\b`)
	annualDatePattern = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
)

var months = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// Priority order: no-vendor marker > fixed numeric term > annual calendar
// date > fallback (absent).
var termRules = []termRule{
	{name: "no-vendor", resolve: resolveNoVendor},
	{name: "net-days", resolve: resolveNetDays},
	{name: "annual-date", resolve: resolveAnnualDate},
}

// ResolveTerms derives the payment-term day count from a free-text terms
// description. It is deterministic in (raw, today): the wall clock is never
// consulted. Unrecognized or blank text resolves to absent.
func ResolveTerms(raw string, today time.Time) TermDays {
	text := strings.TrimSpace(raw)
	if text == "" {
		return TermDays{}
	}

	for _, rule := range termRules {
		if td, ok := rule.resolve(text, today); ok {
			return td
		}
	}
	return TermDays{}
}

// resolveNoVendor matches descriptions stating that no vendor contract is in
// place, so no payment term applies.
func resolveNoVendor(text string, _ time.Time) (TermDays, bool) {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "no current vendor") || strings.Contains(lower, "no vendor") {
		return TermDays{}, true
	}
	return TermDays{}, false
}

// resolveNetDays matches fixed numeric terms: "30 day net", "45 days", or a
// bare "30" anywhere in the text.
func resolveNetDays(text string, _ time.Time) (TermDays, bool) {
	if m := netDaysPattern.FindStringSubmatch(text); m != nil {
		days, err := strconv.Atoi(m[1])
		if err == nil && days >= 0 {
			return NewTermDays(days), true
		}
	}
	if strings.Contains(text, "30") {
		return NewTermDays(30), true
	}
	return TermDays{}, false
}

// resolveAnnualDate matches fixed annual due dates like "August 1st" and
// returns the day count to the next occurrence at or after today. A due date
// that already passed this year rolls over to next year; a same-day due date
// yields 0.
func resolveAnnualDate(text string, today time.Time) (TermDays, bool) {
	m := annualDatePattern.FindStringSubmatch(text)
	if m == nil {
		return TermDays{}, false
	}

	month := months[strings.ToLower(m[1])]
	day, err := strconv.Atoi(m[2])
	if err != nil {
		return TermDays{}, false
	}

	cur := civilDate(today.Year(), today.Month(), today.Day())
	due := civilDate(today.Year(), month, day)
	if due.Month() != month || due.Day() != day {
		// time.Date normalized an impossible date (e.g. "February 30").
		return TermDays{}, false
	}
	if due.Before(cur) {
		due = civilDate(today.Year()+1, month, day)
	}

	days := int(due.Sub(cur).Hours() / 24)
	return NewTermDays(days), true
}

// civilDate builds a calendar date at UTC midnight so day arithmetic is not
// affected by the time-of-day or zone of the input.
func civilDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

package availability

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// ErrInvalidRange is returned when a range has an unset end or From is after To.
var ErrInvalidRange = errors.New("invalid date range")

// Date is a calendar day with no time-of-day and no timezone.
// The zero value means "unset".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string. An empty string yields the zero Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for constants and tests.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats d as YYYY-MM-DD, or "" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// midnight anchors the day in UTC so day arithmetic never crosses a DST shift.
func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.midnight().AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool { return d.midnight().Before(o.midnight()) }
func (d Date) After(o Date) bool  { return d.midnight().After(o.midnight()) }

// DaysUntil returns the number of days from d to o (negative when o is earlier).
func (d Date) DaysUntil(o Date) int {
	return int(o.midnight().Sub(d.midnight()).Hours() / 24)
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	From Date
	To   Date
}

// ParseRange parses both ends; an empty to defaults to nothing (left unset).
func ParseRange(from, to string) (DateRange, error) {
	f, err := ParseDate(from)
	if err != nil {
		return DateRange{}, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{From: f, To: t}, nil
}

func (r DateRange) IsSet() bool {
	return !r.From.IsZero() && !r.To.IsZero()
}

func (r DateRange) IsSingleDay() bool {
	return r.IsSet() && r.From == r.To
}

// Days is the inclusive length of the range, or 0 when it is not expandable.
func (r DateRange) Days() int {
	if !r.IsSet() || r.From.After(r.To) {
		return 0
	}
	return r.From.DaysUntil(r.To) + 1
}

// Overlaps reports whether two valid inclusive ranges share at least one day.
func (r DateRange) Overlaps(o DateRange) bool {
	if r.Days() == 0 || o.Days() == 0 {
		return false
	}
	return !r.From.After(o.To) && !o.From.After(r.To)
}

// ExpandRange lists every calendar day from r.From through r.To as YYYY-MM-DD.
func ExpandRange(r DateRange) ([]string, error) {
	n := r.Days()
	if n == 0 {
		return nil, ErrInvalidRange
	}
	out := make([]string, 0, n)
	for d := r.From; !d.After(r.To); d = d.AddDays(1) {
		out = append(out, d.String())
	}
	return out, nil
}

// DateSet is a set of canonical YYYY-MM-DD strings.
type DateSet map[string]struct{}

func (s DateSet) Add(dates ...string) {
	for _, d := range dates {
		s[d] = struct{}{}
	}
}

func (s DateSet) Has(date string) bool {
	_, ok := s[date]
	return ok
}

// Sorted returns the members in calendar order.
func (s DateSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

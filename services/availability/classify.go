package availability

import "encoding/json"

// DefaultHorizonDays is how far ahead available dates are enumerated.
const DefaultHorizonDays = 365

// MaxHorizonDays bounds the available window of a single classification.
const MaxHorizonDays = 3650

// Booking is the read-only view of a stored booking the resolver works on.
type Booking struct {
	ID         string
	ResourceID string
	FromDate   string
	ToDate     string
	Time       string
	Status     Status
}

// Range parses the booking's dates. A missing or malformed end leaves it unset.
func (b Booking) Range() DateRange {
	from, _ := ParseDate(b.FromDate)
	to, _ := ParseDate(b.ToDate)
	return DateRange{From: from, To: to}
}

// DateState is how a single calendar cell is rendered.
type DateState string

const (
	StateBooked      DateState = "booked"
	StatePending     DateState = "pending"
	StateAvailable   DateState = "available"
	StateOutOfWindow DateState = "unavailable"
)

// Classification partitions the dates of one resource.
// Booked, Pending and Available are pairwise disjoint.
type Classification struct {
	Booked    DateSet
	Pending   DateSet
	Available DateSet
}

// StateOf checks Booked before Pending, so an approved claim always wins.
func (c Classification) StateOf(date string) DateState {
	switch {
	case c.Booked.Has(date):
		return StateBooked
	case c.Pending.Has(date):
		return StatePending
	case c.Available.Has(date):
		return StateAvailable
	default:
		return StateOutOfWindow
	}
}

func (c Classification) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Booked    []string `json:"booked_dates"`
		Pending   []string `json:"pending_dates"`
		Available []string `json:"available_dates"`
	}{c.Booked.Sorted(), c.Pending.Sorted(), c.Available.Sorted()})
}

// Calendar holds one classification per resource id.
type Calendar map[string]Classification

type classifyOptions struct {
	horizonDays int
	excludeID   string
}

// Option tunes Classify and ClassifyAll.
type Option func(*classifyOptions)

// WithHorizon sets the number of days, starting today, enumerated into Available.
// Non-positive values fall back to DefaultHorizonDays and values above
// MaxHorizonDays are clamped to it.
func WithHorizon(days int) Option {
	return func(o *classifyOptions) {
		switch {
		case days > MaxHorizonDays:
			o.horizonDays = MaxHorizonDays
		case days > 0:
			o.horizonDays = days
		}
	}
}

// Excluding ignores the booking being rescheduled so it does not block itself.
func Excluding(bookingID string) Option {
	return func(o *classifyOptions) { o.excludeID = bookingID }
}

func buildOptions(opts []Option) classifyOptions {
	o := classifyOptions{horizonDays: DefaultHorizonDays}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Classify computes the booked, pending and available dates of resourceID.
// Bookings of other resources, the excluded booking, rejected and cancelled
// bookings and bookings whose range cannot be expanded are ignored.
// The available window is [today, today+horizon).
func Classify(bookings []Booking, resourceID string, today Date, opts ...Option) Classification {
	o := buildOptions(opts)
	booked, pending := DateSet{}, DateSet{}
	for _, b := range bookings {
		if b.ResourceID != resourceID {
			continue
		}
		collect(b, o.excludeID, booked, pending)
	}
	return finish(booked, pending, today, o.horizonDays)
}

// ClassifyAll classifies every resource that appears in bookings.
func ClassifyAll(bookings []Booking, today Date, opts ...Option) Calendar {
	o := buildOptions(opts)
	type acc struct{ booked, pending DateSet }
	byResource := map[string]*acc{}
	for _, b := range bookings {
		a, ok := byResource[b.ResourceID]
		if !ok {
			a = &acc{booked: DateSet{}, pending: DateSet{}}
			byResource[b.ResourceID] = a
		}
		collect(b, o.excludeID, a.booked, a.pending)
	}
	cal := make(Calendar, len(byResource))
	for id, a := range byResource {
		cal[id] = finish(a.booked, a.pending, today, o.horizonDays)
	}
	return cal
}

func collect(b Booking, excludeID string, booked, pending DateSet) {
	if excludeID != "" && b.ID == excludeID {
		return
	}
	var target DateSet
	switch b.Status {
	case StatusApproved:
		target = booked
	case StatusPending:
		target = pending
	default:
		return
	}
	dates, err := ExpandRange(b.Range())
	if err != nil {
		return
	}
	target.Add(dates...)
}

func finish(booked, pending DateSet, today Date, horizonDays int) Classification {
	for d := range pending {
		if booked.Has(d) {
			delete(pending, d)
		}
	}
	available := DateSet{}
	for i := 0; i < horizonDays; i++ {
		d := today.AddDays(i).String()
		if !booked.Has(d) && !pending.Has(d) {
			available.Add(d)
		}
	}
	return Classification{Booked: booked, Pending: pending, Available: available}
}

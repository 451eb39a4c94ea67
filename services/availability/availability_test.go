package availability

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rng(from, to string) DateRange {
	return DateRange{From: MustParseDate(from), To: MustParseDate(to)}
}

func TestExpandRange_SingleDay(t *testing.T) {
	dates, err := ExpandRange(rng("2024-06-01", "2024-06-01"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-01"}, dates)
}

func TestExpandRange_MultiDayAcrossMonthAndLeapDay(t *testing.T) {
	dates, err := ExpandRange(rng("2024-02-27", "2024-03-02"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}, dates)
	assert.Equal(t, rng("2024-02-27", "2024-03-02").Days(), len(dates))
}

func TestExpandRange_ConsecutiveNoDuplicates(t *testing.T) {
	r := rng("2023-12-20", "2024-01-10")
	dates, err := ExpandRange(r)
	require.NoError(t, err)
	require.Len(t, dates, 22)

	seen := map[string]bool{}
	for i, d := range dates {
		assert.False(t, seen[d], "duplicate %s", d)
		seen[d] = true
		if i > 0 {
			prev := MustParseDate(dates[i-1])
			assert.Equal(t, prev.AddDays(1).String(), d)
		}
	}
}

func TestExpandRange_Invalid(t *testing.T) {
	_, err := ExpandRange(rng("2024-06-10", "2024-06-01"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = ExpandRange(DateRange{From: MustParseDate("2024-06-10")})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-07-03 ")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.July, Day: 3}, d)

	d, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDate("03/07/2024")
	assert.Error(t, err)
}

func TestDateOf_UsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	late := time.Date(2024, 6, 1, 23, 30, 0, 0, loc)
	assert.Equal(t, "2024-06-01", DateOf(late).String())
}

func TestClassify_FiltersByResource(t *testing.T) {
	bookings := []Booking{
		{ID: "1", ResourceID: "X", FromDate: "2024-07-01", ToDate: "2024-07-03", Status: StatusApproved},
		{ID: "2", ResourceID: "Y", FromDate: "2024-07-02", ToDate: "2024-07-02", Time: "09:00", Status: StatusApproved},
	}
	c := Classify(bookings, "X", MustParseDate("2024-06-15"), WithHorizon(60))

	assert.Equal(t, []string{"2024-07-01", "2024-07-02", "2024-07-03"}, c.Booked.Sorted())
	assert.Empty(t, c.Pending)

	y := Classify(bookings, "Y", MustParseDate("2024-06-15"), WithHorizon(60))
	assert.Equal(t, []string{"2024-07-02"}, y.Booked.Sorted())
	assert.True(t, y.Available.Has("2024-07-01"))
}

func TestClassify_PartitionsByStatus(t *testing.T) {
	bookings := []Booking{
		{ID: "a", ResourceID: "V", FromDate: "2024-06-03", ToDate: "2024-06-04", Status: StatusApproved},
		{ID: "p", ResourceID: "V", FromDate: "2024-06-06", ToDate: "2024-06-06", Time: "10:00", Status: StatusPending},
		{ID: "r", ResourceID: "V", FromDate: "2024-06-08", ToDate: "2024-06-08", Status: StatusRejected},
		{ID: "c", ResourceID: "V", FromDate: "2024-06-09", ToDate: "2024-06-09", Status: StatusCancelled},
	}
	c := Classify(bookings, "V", MustParseDate("2024-06-01"), WithHorizon(10))

	assert.Equal(t, []string{"2024-06-03", "2024-06-04"}, c.Booked.Sorted())
	assert.Equal(t, []string{"2024-06-06"}, c.Pending.Sorted())
	assert.Equal(t, []string{
		"2024-06-01", "2024-06-02", "2024-06-05", "2024-06-07",
		"2024-06-08", "2024-06-09", "2024-06-10",
	}, c.Available.Sorted())

	assert.Equal(t, StateBooked, c.StateOf("2024-06-03"))
	assert.Equal(t, StatePending, c.StateOf("2024-06-06"))
	assert.Equal(t, StateAvailable, c.StateOf("2024-06-08"))
	assert.Equal(t, StateOutOfWindow, c.StateOf("2024-06-11"))
}

func TestClassify_CoversHorizonExactlyOnce(t *testing.T) {
	today := MustParseDate("2024-12-20")
	bookings := []Booking{
		{ID: "1", ResourceID: "V", FromDate: "2024-12-24", ToDate: "2025-01-02", Status: StatusApproved},
		{ID: "2", ResourceID: "V", FromDate: "2025-01-05", ToDate: "2025-01-07", Status: StatusPending},
		{ID: "3", ResourceID: "V", FromDate: "2024-11-01", ToDate: "2024-11-03", Status: StatusApproved},
	}
	c := Classify(bookings, "V", today)

	for i := 0; i < DefaultHorizonDays; i++ {
		d := today.AddDays(i).String()
		n := 0
		for _, s := range []DateSet{c.Booked, c.Pending, c.Available} {
			if s.Has(d) {
				n++
			}
		}
		assert.Equal(t, 1, n, "date %s", d)
	}
	assert.Len(t, c.Available, DefaultHorizonDays-10-3)
	assert.False(t, c.Available.Has(today.AddDays(DefaultHorizonDays).String()))
}

func TestClassify_BookedWinsOverPending(t *testing.T) {
	bookings := []Booking{
		{ID: "1", ResourceID: "V", FromDate: "2024-06-02", ToDate: "2024-06-04", Status: StatusApproved},
		{ID: "2", ResourceID: "V", FromDate: "2024-06-04", ToDate: "2024-06-05", Status: StatusPending},
	}
	c := Classify(bookings, "V", MustParseDate("2024-06-01"), WithHorizon(7))

	assert.True(t, c.Booked.Has("2024-06-04"))
	assert.False(t, c.Pending.Has("2024-06-04"))
	assert.Equal(t, []string{"2024-06-05"}, c.Pending.Sorted())
	assert.Equal(t, StateBooked, c.StateOf("2024-06-04"))
}

func TestClassify_ExcludesRescheduledBooking(t *testing.T) {
	bookings := []Booking{
		{ID: "only", ResourceID: "V", FromDate: "2024-06-02", ToDate: "2024-06-03", Status: StatusApproved},
	}
	today := MustParseDate("2024-06-01")

	before := Classify(bookings, "V", today, WithHorizon(5))
	require.True(t, before.Booked.Has("2024-06-02"))

	after := Classify(bookings, "V", today, WithHorizon(5), Excluding("only"))
	assert.Empty(t, after.Booked)
	assert.Empty(t, after.Pending)
	assert.True(t, after.Available.Has("2024-06-02"))
	assert.True(t, after.Available.Has("2024-06-03"))
}

func TestClassify_SkipsMalformedRecords(t *testing.T) {
	bookings := []Booking{
		{ID: "1", ResourceID: "V", FromDate: "", ToDate: "2024-06-03", Status: StatusApproved},
		{ID: "2", ResourceID: "V", FromDate: "2024-06-05", ToDate: "not-a-date", Status: StatusPending},
		{ID: "3", ResourceID: "V", FromDate: "2024-06-07", ToDate: "2024-06-06", Status: StatusApproved},
		{ID: "4", ResourceID: "V", FromDate: "2024-06-02", ToDate: "2024-06-02", Status: StatusApproved},
	}
	c := Classify(bookings, "V", MustParseDate("2024-06-01"), WithHorizon(7))

	assert.Equal(t, []string{"2024-06-02"}, c.Booked.Sorted())
	assert.Empty(t, c.Pending)
	assert.Len(t, c.Available, 6)
}

func TestClassify_IdempotentAndDoesNotMutateInput(t *testing.T) {
	bookings := []Booking{
		{ID: "1", ResourceID: "V", FromDate: "2024-06-02", ToDate: "2024-06-04", Status: StatusApproved},
		{ID: "2", ResourceID: "V", FromDate: "2024-06-08", ToDate: "2024-06-08", Time: "08:00", Status: StatusPending},
	}
	snapshot := append([]Booking(nil), bookings...)
	today := MustParseDate("2024-06-01")

	first := Classify(bookings, "V", today, WithHorizon(30))
	second := Classify(bookings, "V", today, WithHorizon(30))

	assert.Equal(t, first.Booked.Sorted(), second.Booked.Sorted())
	assert.Equal(t, first.Pending.Sorted(), second.Pending.Sorted())
	assert.Equal(t, first.Available.Sorted(), second.Available.Sorted())
	assert.Equal(t, snapshot, bookings)
}

func TestClassify_NonPositiveHorizonUsesDefault(t *testing.T) {
	c := Classify(nil, "V", MustParseDate("2024-01-01"), WithHorizon(0))
	assert.Len(t, c.Available, DefaultHorizonDays)
}

func TestClassify_HorizonIsClamped(t *testing.T) {
	today := MustParseDate("2024-01-01")
	c := Classify(nil, "V", today, WithHorizon(3_000_000))
	assert.Len(t, c.Available, MaxHorizonDays)
	assert.False(t, c.Available.Has(today.AddDays(MaxHorizonDays).String()))
}

func TestClassifyAll_OneRecordPerResource(t *testing.T) {
	bookings := []Booking{
		{ID: "1", ResourceID: "X", FromDate: "2024-07-01", ToDate: "2024-07-03", Status: StatusApproved},
		{ID: "2", ResourceID: "Y", FromDate: "2024-07-02", ToDate: "2024-07-02", Status: StatusPending},
	}
	cal := ClassifyAll(bookings, MustParseDate("2024-06-30"), WithHorizon(10))

	require.Len(t, cal, 2)
	assert.Equal(t, []string{"2024-07-01", "2024-07-02", "2024-07-03"}, cal["X"].Booked.Sorted())
	assert.Empty(t, cal["X"].Pending)
	assert.Equal(t, []string{"2024-07-02"}, cal["Y"].Pending.Sorted())
	assert.True(t, cal["Y"].Available.Has("2024-07-01"))
}

func TestClassification_MarshalJSON(t *testing.T) {
	c := Classify([]Booking{
		{ID: "1", ResourceID: "V", FromDate: "2024-06-02", ToDate: "2024-06-02", Status: StatusApproved},
	}, "V", MustParseDate("2024-06-01"), WithHorizon(3))

	raw, err := c.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"booked_dates": ["2024-06-02"],
		"pending_dates": [],
		"available_dates": ["2024-06-01", "2024-06-03"]
	}`, string(raw))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  BookingRequest
		want error
	}{
		{
			name: "to unset",
			req:  BookingRequest{ResourceID: "V", Range: DateRange{From: MustParseDate("2024-06-01")}, Time: "09:00", FromPlace: "A", ToPlace: "B"},
			want: ErrMissingDate,
		},
		{
			name: "single day without time",
			req:  BookingRequest{ResourceID: "V", Range: rng("2024-06-01", "2024-06-01"), FromPlace: "A", ToPlace: "B"},
			want: ErrMissingTime,
		},
		{
			name: "inverted multi day",
			req:  BookingRequest{ResourceID: "V", Range: rng("2024-06-10", "2024-06-01"), FromPlace: "A", ToPlace: "B"},
			want: ErrInvertedRange,
		},
		{
			name: "empty from place",
			req:  BookingRequest{ResourceID: "V", Range: rng("2024-06-01", "2024-06-01"), Time: "09:00", ToPlace: "B"},
			want: ErrMissingPlace,
		},
		{
			name: "blank to place",
			req:  BookingRequest{ResourceID: "V", Range: rng("2024-06-01", "2024-06-03"), FromPlace: "A", ToPlace: "  "},
			want: ErrMissingPlace,
		},
		{
			name: "date checked before place",
			req:  BookingRequest{ResourceID: "V"},
			want: ErrMissingDate,
		},
		{
			name: "time checked before place",
			req:  BookingRequest{ResourceID: "V", Range: rng("2024-06-01", "2024-06-01")},
			want: ErrMissingTime,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.req, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestValidate_Success(t *testing.T) {
	single := BookingRequest{ResourceID: "V", Range: rng("2024-06-01", "2024-06-01"), Time: "09:00", FromPlace: "A", ToPlace: "B"}
	assert.NoError(t, Validate(single, nil))

	multi := BookingRequest{ResourceID: "V", Range: rng("2024-06-01", "2024-06-04"), FromPlace: "A", ToPlace: "B"}
	assert.NoError(t, Validate(multi, nil))
}

func TestValidate_IgnoresTakenDates(t *testing.T) {
	existing := []Booking{{ID: "1", ResourceID: "V", FromDate: "2024-06-01", ToDate: "2024-06-01", Status: StatusApproved}}
	req := BookingRequest{ResourceID: "V", Range: rng("2024-06-01", "2024-06-01"), Time: "09:00", FromPlace: "A", ToPlace: "B"}
	assert.NoError(t, Validate(req, existing))
}

func TestCheckConflicts(t *testing.T) {
	existing := []Booking{
		{ID: "a", ResourceID: "V", FromDate: "2024-06-03", ToDate: "2024-06-05", Status: StatusApproved},
		{ID: "p", ResourceID: "V", FromDate: "2024-06-10", ToDate: "2024-06-10", Status: StatusPending},
		{ID: "c", ResourceID: "V", FromDate: "2024-06-20", ToDate: "2024-06-21", Status: StatusCancelled},
		{ID: "o", ResourceID: "W", FromDate: "2024-06-15", ToDate: "2024-06-15", Status: StatusApproved},
	}
	req := func(from, to string) BookingRequest {
		return BookingRequest{ResourceID: "V", Range: rng(from, to)}
	}

	assert.ErrorIs(t, CheckConflicts(req("2024-06-05", "2024-06-06"), existing, ""), ErrDateUnavailable)
	assert.ErrorIs(t, CheckConflicts(req("2024-06-09", "2024-06-11"), existing, ""), ErrDateUnavailable)
	assert.NoError(t, CheckConflicts(req("2024-06-09", "2024-06-11"), existing, "", StatusApproved))
	assert.NoError(t, CheckConflicts(req("2024-06-15", "2024-06-15"), existing, ""))
	assert.NoError(t, CheckConflicts(req("2024-06-20", "2024-06-21"), existing, ""))
	assert.NoError(t, CheckConflicts(req("2024-06-04", "2024-06-04"), existing, "a"))
}

func TestTransition(t *testing.T) {
	assert.NoError(t, Transition(StatusPending, StatusApproved))
	assert.NoError(t, Transition(StatusPending, StatusRejected))
	assert.NoError(t, Transition(StatusPending, StatusCancelled))
	assert.NoError(t, Transition(StatusApproved, StatusCancelled))

	assert.Error(t, Transition(StatusApproved, StatusRejected))
	assert.Error(t, Transition(StatusRejected, StatusApproved))
	assert.Error(t, Transition(StatusCancelled, StatusPending))
	assert.Error(t, Transition(StatusPending, Status("archived")))

	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, StatusApproved.Terminal())
}

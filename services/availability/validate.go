package availability

import (
	"fmt"
	"strings"
)

// Reason identifies why a booking request was refused.
type Reason string

const (
	MissingDate     Reason = "missing_date"
	MissingTime     Reason = "missing_time"
	InvertedRange   Reason = "inverted_range"
	MissingPlace    Reason = "missing_place"
	DateUnavailable Reason = "date_unavailable"
)

// ValidationError is a user-correctable refusal of a booking request.
type ValidationError struct {
	Code    Reason
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches on Code so callers can use errors.Is against the exported values.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Code == e.Code
}

var (
	ErrMissingDate     = &ValidationError{Code: MissingDate, Message: "Please select both From and To dates."}
	ErrMissingTime     = &ValidationError{Code: MissingTime, Message: "Please select a time."}
	ErrInvertedRange   = &ValidationError{Code: InvertedRange, Message: "From date cannot be after To date."}
	ErrMissingPlace    = &ValidationError{Code: MissingPlace, Message: "Please enter both From and To places."}
	ErrDateUnavailable = &ValidationError{Code: DateUnavailable, Message: "Vehicle already booked for these dates"}
)

// BookingRequest is a candidate booking before it is submitted.
type BookingRequest struct {
	ResourceID string
	Range      DateRange
	Time       string
	FromPlace  string
	ToPlace    string
	Details    string
}

// Validate checks a request in a fixed order and returns the first failure.
// existing is accepted for symmetry with CheckConflicts but dates already
// taken are not refused here; use CheckConflicts for that.
func Validate(req BookingRequest, existing []Booking) error {
	if !req.Range.IsSet() {
		return ErrMissingDate
	}
	if req.Range.IsSingleDay() {
		if strings.TrimSpace(req.Time) == "" {
			return ErrMissingTime
		}
	} else if req.Range.From.After(req.Range.To) {
		return ErrInvertedRange
	}
	if strings.TrimSpace(req.FromPlace) == "" || strings.TrimSpace(req.ToPlace) == "" {
		return ErrMissingPlace
	}
	return nil
}

// CheckConflicts refuses a request whose range overlaps a booking of the same
// resource in one of the given statuses. With no statuses, approved and
// pending bookings both block. excludeID skips the booking being edited.
func CheckConflicts(req BookingRequest, existing []Booking, excludeID string, statuses ...Status) error {
	if len(statuses) == 0 {
		statuses = []Status{StatusApproved, StatusPending}
	}
	for _, b := range existing {
		if b.ResourceID != req.ResourceID || (excludeID != "" && b.ID == excludeID) {
			continue
		}
		if !hasStatus(b.Status, statuses) {
			continue
		}
		if req.Range.Overlaps(b.Range()) {
			return ErrDateUnavailable
		}
	}
	return nil
}

func hasStatus(s Status, in []Status) bool {
	for _, v := range in {
		if s == v {
			return true
		}
	}
	return false
}

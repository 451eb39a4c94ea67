package tourbooking

import (
	"tourbook/models"
)

func uniq(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// embed attaches tour references, and user summaries when withUser is set.
// detailed adds the description, duration and services of the tour.
func (s *DefaultTourBookingService) embed(bookings []models.TourBooking, detailed, withUser bool) ([]models.TourBookingView, error) {
	tourIDs, userIDs := make([]string, 0, len(bookings)), make([]string, 0, len(bookings))
	for _, b := range bookings {
		tourIDs = append(tourIDs, b.TourID)
		userIDs = append(userIDs, b.UserID)
	}

	tours, err := s.Tours.GetByIDs(uniq(tourIDs))
	if err != nil {
		return nil, err
	}
	destIDs := make([]string, 0, len(tours))
	for _, t := range tours {
		destIDs = append(destIDs, t.DestinationID)
	}
	dests, err := s.Destinations.GetByIDs(uniq(destIDs))
	if err != nil {
		return nil, err
	}
	destByID := make(map[string]models.Destination, len(dests))
	for _, d := range dests {
		destByID[d.ID] = d
	}

	refs := make(map[string]models.TourRef, len(tours))
	for _, t := range tours {
		ref := models.TourRef{ID: t.ID, Name: t.Name, ImageURL: t.ImageURL}
		if d, ok := destByID[t.DestinationID]; ok {
			dr := d.Ref()
			ref.Destination = &dr
		}
		if detailed {
			ref.Description = t.Description
			ref.DurationDays = t.DurationDays
			ref.IncludedServices = t.IncludedServices
		}
		refs[t.ID] = ref
	}

	users := map[string]models.UserSummary{}
	if withUser {
		found, err := s.Users.GetByIDs(uniq(userIDs))
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			users[u.ID] = u.Summary()
		}
	}

	views := make([]models.TourBookingView, 0, len(bookings))
	for _, b := range bookings {
		v := models.TourBookingView{TourBooking: b}
		if ref, ok := refs[b.TourID]; ok {
			v.Tour = &ref
		}
		if u, ok := users[b.UserID]; ok {
			v.User = &u
		}
		views = append(views, v)
	}
	return views, nil
}

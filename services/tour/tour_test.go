package tour

import (
	"testing"

	"tourbook/database/repository"
	"tourbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type memTours struct{ items map[string]models.Tour }

func (m *memTours) GetByID(id string) (*models.Tour, error) {
	t, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (m *memTours) GetAll() ([]models.Tour, error) {
	out := []models.Tour{}
	for _, t := range m.items {
		out = append(out, t)
	}
	return out, nil
}

func (m *memTours) GetByIDs([]string) ([]models.Tour, error) { return m.GetAll() }
func (m *memTours) GetByDestination(string) ([]models.Tour, error) { return m.GetAll() }
func (m *memTours) CountByDestination() (map[string]int64, error) { return nil, nil }
func (m *memTours) GetByDepartureID(string) (*models.Tour, *models.DepartureDate, error) {
	return nil, nil, repository.ErrNotFound
}
func (m *memTours) ReserveSeats(string, int) error { return nil }
func (m *memTours) ReleaseSeats(string, int) error { return nil }
func (m *memTours) Create(t *models.Tour) error { m.items[t.ID] = *t; return nil }

func (m *memTours) UpdateSetDocument(id string, doc bson.M) error {
	t, ok := m.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := doc["price"]; ok {
		t.Price = v.(float64)
	}
	if v, ok := doc["departure_dates"]; ok {
		t.DepartureDates = v.([]models.DepartureDate)
	}
	m.items[id] = t
	return nil
}

func (m *memTours) Delete(id string) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memTours) Count() (int64, error) { return int64(len(m.items)), nil }

type memDestinations struct{ items map[string]models.Destination }

func (m *memDestinations) GetByID(id string) (*models.Destination, error) {
	d, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}
func (m *memDestinations) GetAll() ([]models.Destination, error) { return nil, nil }
func (m *memDestinations) GetByIDs(ids []string) ([]models.Destination, error) {
	out := []models.Destination{}
	for _, id := range ids {
		if d, ok := m.items[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}
func (m *memDestinations) Search(string, string) ([]models.Destination, error) { return nil, nil }
func (m *memDestinations) Create(*models.Destination) error { return nil }
func (m *memDestinations) UpdateSetDocument(string, bson.M) error { return nil }
func (m *memDestinations) Delete(string) error { return nil }
func (m *memDestinations) Count() (int64, error) { return int64(len(m.items)), nil }

type memBookings struct {
	confirmed map[string]bool // userID+tourID
	deleted   []string
}

func (m *memBookings) GetByID(string) (*models.TourBooking, error) { return nil, repository.ErrNotFound }
func (m *memBookings) GetAll() ([]models.TourBooking, error) { return nil, nil }
func (m *memBookings) GetByUser(string) ([]models.TourBooking, error) { return nil, nil }
func (m *memBookings) HasConfirmed(userID, tourID string) (bool, error) {
	return m.confirmed[userID+tourID], nil
}
func (m *memBookings) Create(*models.TourBooking) error { return nil }
func (m *memBookings) UpdateSetDocument(string, bson.M) error { return nil }
func (m *memBookings) MarkCancelled(string) (bool, error) { return false, nil }
func (m *memBookings) DeleteByTour(tourID string) (int64, error) {
	m.deleted = append(m.deleted, tourID)
	return 1, nil
}
func (m *memBookings) Count() (int64, error) { return 0, nil }

type memReviews struct{ items []models.Review }

func (m *memReviews) GetByTour(tourID string) ([]models.Review, error) {
	out := []models.Review{}
	for _, r := range m.items {
		if r.TourID == tourID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReviews) Exists(userID, tourID string) (bool, error) {
	for _, r := range m.items {
		if r.UserID == userID && r.TourID == tourID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memReviews) Create(r *models.Review) error {
	m.items = append(m.items, *r)
	return nil
}

func (m *memReviews) DeleteByTour(tourID string) (int64, error) {
	kept := m.items[:0]
	for _, r := range m.items {
		if r.TourID != tourID {
			kept = append(kept, r)
		}
	}
	n := int64(len(m.items) - len(kept))
	m.items = kept
	return n, nil
}

type memUsers struct{}

func (memUsers) GetByID(id string) (*models.User, error) {
	return &models.User{ID: id, Name: "Asha"}, nil
}
func (memUsers) GetByEmail(string) (*models.User, error) { return nil, nil }
func (memUsers) GetAll() ([]models.User, error) { return nil, nil }
func (memUsers) GetByIDs([]string) ([]models.User, error) { return nil, nil }
func (memUsers) Create(*models.User) error { return nil }
func (memUsers) UpdateSetDocument(string, bson.M) error { return nil }
func (memUsers) Delete(string) error { return nil }
func (memUsers) Count() (int64, error) { return 0, nil }

func newService() (*DefaultTourService, *memTours, *memBookings, *memReviews) {
	tours := &memTours{items: map[string]models.Tour{
		"t1": {
			ID: "t1", Name: "Beach Week", DestinationID: "d1", Price: 200,
			DepartureDates: []models.DepartureDate{
				{ID: "dep1", DepartureDate: "2025-06-01", AvailableSeats: 4, PriceModifier: 1.25},
				{ID: "dep2", DepartureDate: "2025-07-01", AvailableSeats: 0, PriceModifier: 1},
			},
		},
	}}
	bookings := &memBookings{confirmed: map[string]bool{"u1t1": true}}
	reviews := &memReviews{}
	svc := &DefaultTourService{
		Tours:        tours,
		Destinations: &memDestinations{items: map[string]models.Destination{"d1": {ID: "d1", Name: "Goa", Country: "India", City: "Panaji"}}},
		Bookings:     bookings,
		Reviews:      reviews,
		Users:        memUsers{},
	}
	return svc, tours, bookings, reviews
}

func TestListToursHidesSoldOutDates(t *testing.T) {
	svc, _, _, _ := newService()

	views, err := svc.ListTours()
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].AvailableDates, 1)
	assert.Equal(t, "dep1", views[0].AvailableDates[0].ID)
	assert.InDelta(t, 250.0, views[0].AvailableDates[0].Price, 1e-9)
	require.NotNil(t, views[0].Destination)
	assert.Equal(t, "Goa", views[0].Destination.Name)
}

func TestGetTourWithReviews(t *testing.T) {
	svc, _, _, reviews := newService()

	detail, err := svc.GetTour("t1")
	require.NoError(t, err)
	assert.Len(t, detail.AvailableDates, 2)
	assert.Empty(t, detail.Reviews)
	assert.Zero(t, detail.AverageRating)
	assert.Equal(t, "Panaji", detail.Destination.City)

	reviews.items = append(reviews.items,
		models.Review{ID: "r1", TourID: "t1", UserID: "u1", Rating: 5},
		models.Review{ID: "r2", TourID: "t1", UserID: "u2", Rating: 2},
	)
	detail, err = svc.GetTour("t1")
	require.NoError(t, err)
	assert.Len(t, detail.Reviews, 2)
	assert.InDelta(t, 3.5, detail.AverageRating, 1e-9)

	_, err = svc.GetTour("missing")
	assert.ErrorIs(t, err, ErrTourNotFound)
}

func TestAddReviewRules(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.AddReview("u2", "t1", models.ReviewRequest{Rating: 4})
	assert.ErrorIs(t, err, ErrNotBooked)

	r, err := svc.AddReview("u1", "t1", models.ReviewRequest{Rating: 4, Comment: " lovely "})
	require.NoError(t, err)
	assert.Equal(t, "Asha", r.UserName)
	assert.Equal(t, "lovely", r.Comment)

	_, err = svc.AddReview("u1", "t1", models.ReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	_, err = svc.AddReview("u1", "t1", models.ReviewRequest{Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestCreateAndUpdateTour(t *testing.T) {
	svc, tours, _, _ := newService()
	name, desc, dest, days, price := "Hill Trek", "Three days up", "d1", 3, 150.0
	mod := 0.9

	created, err := svc.CreateTour(models.TourInput{
		Name: &name, Description: &desc, DestinationID: &dest, DurationDays: &days, Price: &price,
		DepartureDates: []models.DepartureInput{
			{Date: "2025-09-01", AvailableSeats: 10},
			{Date: "2025-10-01", AvailableSeats: 8, PriceModifier: &mod},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.DepartureDates, 2)
	assert.Equal(t, 1.0, created.DepartureDates[0].PriceModifier)
	assert.Equal(t, 0.9, created.DepartureDates[1].PriceModifier)
	assert.NotEmpty(t, created.DepartureDates[0].ID)

	bad := "nowhere"
	_, err = svc.CreateTour(models.TourInput{Name: &name, Description: &desc, DestinationID: &bad, DurationDays: &days, Price: &price})
	assert.ErrorIs(t, err, ErrDestinationNotFound)

	_, err = svc.CreateTour(models.TourInput{Name: &name})
	assert.ErrorIs(t, err, ErrMissingFields)

	newPrice := 175.0
	updated, err := svc.UpdateTour(created.ID, models.TourInput{
		Price:          &newPrice,
		DepartureDates: []models.DepartureInput{{Date: "2025-11-01", AvailableSeats: 6}},
	})
	require.NoError(t, err)
	assert.Equal(t, 175.0, updated.Price)
	assert.Len(t, tours.items[created.ID].DepartureDates, 3, "new departures are appended")
}

func TestDeleteTourCascades(t *testing.T) {
	svc, tours, bookings, reviews := newService()
	reviews.items = append(reviews.items, models.Review{ID: "r1", TourID: "t1", UserID: "u1", Rating: 5})

	require.NoError(t, svc.DeleteTour("t1"))
	assert.Empty(t, tours.items)
	assert.Equal(t, []string{"t1"}, bookings.deleted)
	assert.Empty(t, reviews.items)

	assert.ErrorIs(t, svc.DeleteTour("t1"), ErrTourNotFound)
}

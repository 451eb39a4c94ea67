package vehiclebooking

import (
	"context"
	"fmt"
	"testing"

	"tourbook/database/repository"
	"tourbook/models"
	"tourbook/services/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type memBookings struct{ items []models.VehicleBooking }

func (m *memBookings) GetByID(id string) (*models.VehicleBooking, error) {
	for _, b := range m.items {
		if b.ID == id {
			cp := b
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("vehicle booking with id %s: %w", id, repository.ErrNotFound)
}

func (m *memBookings) filter(keep func(models.VehicleBooking) bool) []models.VehicleBooking {
	out := []models.VehicleBooking{}
	for _, b := range m.items {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func (m *memBookings) GetAll() ([]models.VehicleBooking, error) {
	return m.filter(func(models.VehicleBooking) bool { return true }), nil
}

func (m *memBookings) GetByUser(userID string) ([]models.VehicleBooking, error) {
	return m.filter(func(b models.VehicleBooking) bool { return b.UserID == userID }), nil
}

func (m *memBookings) GetByVehicle(vehicleID string) ([]models.VehicleBooking, error) {
	return m.filter(func(b models.VehicleBooking) bool { return b.VehicleID == vehicleID }), nil
}

func (m *memBookings) Create(b *models.VehicleBooking) error {
	m.items = append(m.items, *b)
	return nil
}

func (m *memBookings) Replace(b *models.VehicleBooking) error {
	for i := range m.items {
		if m.items[i].ID == b.ID {
			m.items[i] = *b
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memBookings) DeleteByVehicle(vehicleID string) (int64, error) {
	before := len(m.items)
	m.items = m.filter(func(b models.VehicleBooking) bool { return b.VehicleID != vehicleID })
	return int64(before - len(m.items)), nil
}

func (m *memBookings) Count() (int64, error) { return int64(len(m.items)), nil }

type memVehicles struct{ items map[string]models.Vehicle }

func (m *memVehicles) GetByID(id string) (*models.Vehicle, error) {
	v, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (m *memVehicles) GetAll() ([]models.Vehicle, error) {
	out := []models.Vehicle{}
	for _, v := range m.items {
		out = append(out, v)
	}
	return out, nil
}

func (m *memVehicles) GetByIDs(ids []string) ([]models.Vehicle, error) {
	out := []models.Vehicle{}
	for _, id := range ids {
		if v, ok := m.items[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memVehicles) Create(v *models.Vehicle) error { m.items[v.ID] = *v; return nil }
func (m *memVehicles) UpdateSetDocument(string, bson.M) error { return nil }
func (m *memVehicles) Delete(id string) error { delete(m.items, id); return nil }
func (m *memVehicles) Count() (int64, error) { return int64(len(m.items)), nil }

type memUsers struct{ items map[string]models.User }

func (m *memUsers) GetByID(id string) (*models.User, error) {
	u, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}
func (m *memUsers) GetByEmail(string) (*models.User, error) { return nil, nil }
func (m *memUsers) GetAll() ([]models.User, error) { return nil, nil }
func (m *memUsers) GetByIDs(ids []string) ([]models.User, error) {
	out := []models.User{}
	for _, id := range ids {
		if u, ok := m.items[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}
func (m *memUsers) Create(*models.User) error { return nil }
func (m *memUsers) UpdateSetDocument(string, bson.M) error { return nil }
func (m *memUsers) Delete(string) error { return nil }
func (m *memUsers) Count() (int64, error) { return int64(len(m.items)), nil }

type recordingNotifier struct{ statuses []models.BookingStatusPayload }

func (n *recordingNotifier) SendPasswordReset(context.Context, models.PasswordResetPayload) error {
	return nil
}

func (n *recordingNotifier) SendBookingStatus(_ context.Context, p models.BookingStatusPayload) error {
	n.statuses = append(n.statuses, p)
	return nil
}

var (
	owner = Actor{UserID: "u1"}
	other = Actor{UserID: "u2"}
	admin = Actor{UserID: "admin", IsAdmin: true}
)

func newService() (*DefaultVehicleBookingService, *memBookings, *recordingNotifier) {
	bookings := &memBookings{}
	notifier := &recordingNotifier{}
	svc := &DefaultVehicleBookingService{
		Bookings: bookings,
		Vehicles: &memVehicles{items: map[string]models.Vehicle{
			"v1": {ID: "v1", Name: "Innova", Type: "car"},
			"v2": {ID: "v2", Name: "Tempo", Type: "van"},
		}},
		Users: &memUsers{items: map[string]models.User{
			"u1": {ID: "u1", Name: "Asha", Email: "asha@example.com"},
			"u2": {ID: "u2", Name: "Ravi", Email: "ravi@example.com"},
		}},
		Notifier: notifier,
	}
	return svc, bookings, notifier
}

func request(vehicle, from, to string) models.VehicleBookingRequest {
	return models.VehicleBookingRequest{
		VehicleID: vehicle,
		FromDate:  from,
		ToDate:    to,
		Time:      "09:00",
		FromPlace: "Airport",
		ToPlace:   "Hotel",
	}
}

func status(s availability.Status) *availability.Status { return &s }
func str(s string) *string { return &s }

func TestCreateDefaultsToDateAndStartsPending(t *testing.T) {
	svc, _, _ := newService()

	b, err := svc.Create(context.Background(), "u1", request("v1", "2025-03-10", ""))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", b.FromDate)
	assert.Equal(t, "2025-03-10", b.ToDate)
	assert.Equal(t, availability.StatusPending, b.Status)
	assert.Equal(t, "u1", b.UserID)
	assert.NotEmpty(t, b.ID)
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	noTime := request("v1", "2025-03-10", "2025-03-10")
	noTime.Time = ""
	_, err := svc.Create(ctx, "u1", noTime)
	assert.ErrorIs(t, err, availability.ErrMissingTime)

	_, err = svc.Create(ctx, "u1", request("v1", "", ""))
	assert.ErrorIs(t, err, availability.ErrMissingDate)

	_, err = svc.Create(ctx, "u1", request("v1", "2025-03-12", "2025-03-10"))
	assert.ErrorIs(t, err, availability.ErrInvertedRange)

	noPlace := request("v1", "2025-03-10", "2025-03-12")
	noPlace.ToPlace = " "
	_, err = svc.Create(ctx, "u1", noPlace)
	assert.ErrorIs(t, err, availability.ErrMissingPlace)

	_, err = svc.Create(ctx, "u1", request("v1", "10/03/2025", ""))
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.Create(ctx, "u1", request("nope", "2025-03-10", ""))
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestBookingSpanIsBounded(t *testing.T) {
	svc, bookings, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", request("v1", "2024-01-01", "9999-12-31"))
	assert.ErrorIs(t, err, ErrSpanTooLong)
	assert.Empty(t, bookings.items)

	// 2025-01-01 through 2025-12-31 is exactly MaxBookingDays
	b, err := svc.Create(ctx, "u1", request("v1", "2025-01-01", "2025-12-31"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, owner, b.ID, models.VehicleBookingUpdate{ToDate: str("2026-01-01")})
	assert.ErrorIs(t, err, ErrSpanTooLong)
	stored, err := bookings.GetByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", stored.ToDate)
}

func TestCreateBlockedOnlyByApprovedBookings(t *testing.T) {
	svc, bookings, _ := newService()
	ctx := context.Background()

	first, err := svc.Create(ctx, "u1", request("v1", "2025-03-10", "2025-03-12"))
	require.NoError(t, err)

	// overlapping pending requests are allowed
	_, err = svc.Create(ctx, "u2", request("v1", "2025-03-11", "2025-03-13"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, admin, first.ID, models.VehicleBookingUpdate{Status: status(availability.StatusApproved)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "u2", request("v1", "2025-03-12", "2025-03-14"))
	assert.ErrorIs(t, err, availability.ErrDateUnavailable)

	// another vehicle is unaffected
	_, err = svc.Create(ctx, "u2", request("v2", "2025-03-12", "2025-03-14"))
	assert.NoError(t, err)
	assert.Len(t, bookings.items, 3)
}

func TestAdminApprovalRechecksConflicts(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, "u1", request("v1", "2025-03-10", "2025-03-12"))
	require.NoError(t, err)
	b, err := svc.Create(ctx, "u2", request("v1", "2025-03-12", "2025-03-13"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, admin, a.ID, models.VehicleBookingUpdate{Status: status(availability.StatusApproved)})
	require.NoError(t, err)

	_, err = svc.Update(ctx, admin, b.ID, models.VehicleBookingUpdate{Status: status(availability.StatusApproved)})
	assert.ErrorIs(t, err, availability.ErrDateUnavailable)

	rejected, err := svc.Update(ctx, admin, b.ID, models.VehicleBookingUpdate{Status: status(availability.StatusRejected)})
	require.NoError(t, err)
	assert.Equal(t, availability.StatusRejected, rejected.Status)

	_, err = svc.Update(ctx, admin, b.ID, models.VehicleBookingUpdate{Status: status(availability.StatusApproved)})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOwnerRescheduleResetsToPending(t *testing.T) {
	svc, _, notifier := newService()
	ctx := context.Background()

	b, err := svc.Create(ctx, "u1", request("v1", "2025-03-10", "2025-03-12"))
	require.NoError(t, err)
	_, err = svc.Update(ctx, admin, b.ID, models.VehicleBookingUpdate{Status: status(availability.StatusApproved)})
	require.NoError(t, err)

	// overlapping its own old dates is fine
	moved, err := svc.Update(ctx, owner, b.ID, models.VehicleBookingUpdate{FromDate: str("2025-03-11"), ToDate: str("2025-03-13")})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-11", moved.FromDate)
	assert.Equal(t, "2025-03-13", moved.ToDate)
	assert.Equal(t, availability.StatusPending, moved.Status)

	require.Len(t, notifier.statuses, 2)
	last := notifier.statuses[1]
	assert.Equal(t, "approved", last.OldStatus)
	assert.Equal(t, "pending", last.NewStatus)
	assert.Equal(t, "asha@example.com", last.Email)
}

func TestRescheduleRejectsApprovedOverlap(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, "u2", request("v1", "2025-03-20", "2025-03-22"))
	require.NoError(t, err)
	_, err = svc.Update(ctx, admin, a.ID, models.VehicleBookingUpdate{Status: status(availability.StatusApproved)})
	require.NoError(t, err)

	b, err := svc.Create(ctx, "u1", request("v1", "2025-03-10", "2025-03-12"))
	require.NoError(t, err)
	_, err = svc.Update(ctx, owner, b.ID, models.VehicleBookingUpdate{ToDate: str("2025-03-20")})
	assert.ErrorIs(t, err, availability.ErrDateUnavailable)

	_, err = svc.Update(ctx, owner, b.ID, models.VehicleBookingUpdate{FromDate: str("2025-03-15"), ToDate: str("2025-03-14")})
	assert.ErrorIs(t, err, availability.ErrInvertedRange)
}

func TestSingleDayRescheduleMovesWholeBooking(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	b, err := svc.Create(ctx, "u1", request("v1", "2025-03-10", ""))
	require.NoError(t, err)
	moved, err := svc.Update(ctx, owner, b.ID, models.VehicleBookingUpdate{FromDate: str("2025-04-01"), Time: str("18:30")})
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", moved.FromDate)
	assert.Equal(t, "2025-04-01", moved.ToDate)
	assert.Equal(t, "18:30", moved.Time)
}

func TestOwnerPermissions(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	b, err := svc.Create(ctx, "u1", request("v1", "2025-03-10", ""))
	require.NoError(t, err)

	_, err = svc.Update(ctx, other, b.ID, models.VehicleBookingUpdate{Status: status(availability.StatusCancelled)})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(ctx, owner, b.ID, models.VehicleBookingUpdate{Status: status(availability.StatusApproved)})
	assert.ErrorIs(t, err, ErrOwnerStatus)

	_, err = svc.Update(ctx, owner, b.ID, models.VehicleBookingUpdate{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)

	cancelled, err := svc.Update(ctx, owner, b.ID, models.VehicleBookingUpdate{Status: status(availability.StatusCancelled)})
	require.NoError(t, err)
	assert.Equal(t, availability.StatusCancelled, cancelled.Status)

	_, err = svc.Update(ctx, owner, b.ID, models.VehicleBookingUpdate{FromDate: str("2025-05-01")})
	assert.ErrorIs(t, err, ErrBookingClosed)

	_, err = svc.Update(ctx, owner, "missing", models.VehicleBookingUpdate{Status: status(availability.StatusCancelled)})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListScopesByRole(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", request("v1", "2025-03-10", ""))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", request("v2", "2025-03-10", ""))
	require.NoError(t, err)

	mine, err := svc.List(owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].User)
	require.NotNil(t, mine[0].Vehicle)
	assert.Equal(t, "Asha", mine[0].User.Name)
	assert.Equal(t, "Innova", mine[0].Vehicle.Name)

	all, err := svc.List(admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

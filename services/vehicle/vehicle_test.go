package vehicle

import (
	"testing"
	"time"

	"tourbook/database/repository"
	"tourbook/models"
	"tourbook/services/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

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
func (m *memVehicles) GetByIDs([]string) ([]models.Vehicle, error) { return nil, nil }
func (m *memVehicles) Create(v *models.Vehicle) error { m.items[v.ID] = *v; return nil }
func (m *memVehicles) UpdateSetDocument(id string, doc bson.M) error {
	v, ok := m.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	if name, ok := doc["name"]; ok {
		v.Name = name.(string)
	}
	m.items[id] = v
	return nil
}
func (m *memVehicles) Delete(id string) error { delete(m.items, id); return nil }
func (m *memVehicles) Count() (int64, error) { return int64(len(m.items)), nil }

type memBookings struct{ items []models.VehicleBooking }

func (m *memBookings) GetByID(string) (*models.VehicleBooking, error) { return nil, repository.ErrNotFound }
func (m *memBookings) GetAll() ([]models.VehicleBooking, error) { return m.items, nil }
func (m *memBookings) GetByUser(string) ([]models.VehicleBooking, error) { return nil, nil }
func (m *memBookings) GetByVehicle(id string) ([]models.VehicleBooking, error) {
	out := []models.VehicleBooking{}
	for _, b := range m.items {
		if b.VehicleID == id {
			out = append(out, b)
		}
	}
	return out, nil
}
func (m *memBookings) Create(*models.VehicleBooking) error { return nil }
func (m *memBookings) Replace(*models.VehicleBooking) error { return nil }
func (m *memBookings) DeleteByVehicle(id string) (int64, error) {
	kept := []models.VehicleBooking{}
	for _, b := range m.items {
		if b.VehicleID != id {
			kept = append(kept, b)
		}
	}
	n := int64(len(m.items) - len(kept))
	m.items = kept
	return n, nil
}
func (m *memBookings) Count() (int64, error) { return int64(len(m.items)), nil }

func newService() (*DefaultVehicleService, *memVehicles, *memBookings) {
	vehicles := &memVehicles{items: map[string]models.Vehicle{
		"v1": {ID: "v1", Name: "Innova", Type: "car"},
		"v2": {ID: "v2", Name: "Tempo", Type: "van"},
	}}
	bookings := &memBookings{items: []models.VehicleBooking{
		{ID: "b1", VehicleID: "v1", FromDate: "2025-01-02", ToDate: "2025-01-03", Status: availability.StatusApproved},
		{ID: "b2", VehicleID: "v1", FromDate: "2025-01-03", ToDate: "2025-01-04", Status: availability.StatusPending},
		{ID: "b3", VehicleID: "v1", FromDate: "2025-01-06", ToDate: "2025-01-06", Status: availability.StatusRejected},
		{ID: "b4", VehicleID: "v2", FromDate: "2025-01-01", ToDate: "2025-01-01", Status: availability.StatusPending},
	}}
	svc := &DefaultVehicleService{
		Vehicles:    vehicles,
		Bookings:    bookings,
		HorizonDays: 30,
		Now:         func() time.Time { return time.Date(2025, 1, 1, 15, 0, 0, 0, time.UTC) },
	}
	return svc, vehicles, bookings
}

func TestCalendarClassifiesVehicleBookings(t *testing.T) {
	svc, _, _ := newService()

	cal, err := svc.Calendar("v1", "", 7)
	require.NoError(t, err)
	assert.Equal(t, "v1", cal.VehicleID)
	assert.Equal(t, []string{"2025-01-02", "2025-01-03"}, cal.Dates.Booked.Sorted())
	assert.Equal(t, []string{"2025-01-04"}, cal.Dates.Pending.Sorted())
	assert.Equal(t, []string{"2025-01-01", "2025-01-05", "2025-01-06", "2025-01-07"}, cal.Dates.Available.Sorted())

	// excluding the approved booking frees its dates
	cal, err = svc.Calendar("v1", "b1", 7)
	require.NoError(t, err)
	assert.Empty(t, cal.Dates.Booked.Sorted())
	assert.Equal(t, []string{"2025-01-03", "2025-01-04"}, cal.Dates.Pending.Sorted())

	_, err = svc.Calendar("nope", "", 0)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestCalendarUsesConfiguredHorizon(t *testing.T) {
	svc, _, _ := newService()

	cal, err := svc.Calendar("v2", "", 0)
	require.NoError(t, err)
	total := len(cal.Dates.Booked) + len(cal.Dates.Pending) + len(cal.Dates.Available)
	assert.Equal(t, 30, total)
}

func TestCalendarsKeyedByVehicle(t *testing.T) {
	svc, _, _ := newService()

	all, err := svc.Calendars(7)
	require.NoError(t, err)
	require.Contains(t, all, "v1")
	require.Contains(t, all, "v2")
	assert.Equal(t, "v2", all["v2"].VehicleID)
	assert.Equal(t, []string{"2025-01-01"}, all["v2"].Dates.Pending.Sorted())
	assert.Equal(t, availability.StateBooked, all["v1"].Dates.StateOf("2025-01-02"))
}

func TestCalendarsIncludeVehiclesWithoutBookings(t *testing.T) {
	svc, vehicles, _ := newService()
	vehicles.items["v3"] = models.Vehicle{ID: "v3", Name: "Coach", Type: "bus"}

	all, err := svc.Calendars(7)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Contains(t, all, "v3")
	assert.Equal(t, "v3", all["v3"].VehicleID)
	assert.Empty(t, all["v3"].Dates.Booked)
	assert.Empty(t, all["v3"].Dates.Pending)
	assert.Len(t, all["v3"].Dates.Available, 7)
	assert.Equal(t, availability.StateAvailable, all["v3"].Dates.StateOf("2025-01-01"))
}

func TestVehicleCRUD(t *testing.T) {
	svc, vehicles, bookings := newService()

	_, err := svc.CreateVehicle(models.VehicleInput{Name: "Bus"})
	assert.ErrorIs(t, err, ErrMissingFields)

	v, err := svc.CreateVehicle(models.VehicleInput{Name: " Coach ", Type: "bus"})
	require.NoError(t, err)
	assert.Equal(t, "Coach", v.Name)

	updated, err := svc.UpdateVehicle(v.ID, models.VehicleInput{Name: "Big Coach"})
	require.NoError(t, err)
	assert.Equal(t, "Big Coach", updated.Name)

	require.NoError(t, svc.DeleteVehicle("v1"))
	assert.NotContains(t, vehicles.items, "v1")
	for _, b := range bookings.items {
		assert.NotEqual(t, "v1", b.VehicleID)
	}
	assert.ErrorIs(t, svc.DeleteVehicle("v1"), ErrVehicleNotFound)
}

package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "tourbook/database/repository/booking"
	destinationRepo "tourbook/database/repository/destination"
	tourRepo "tourbook/database/repository/tour"
	userRepo "tourbook/database/repository/user"
	vehicleRepo "tourbook/database/repository/vehicle"
	vehicleBookingRepo "tourbook/database/repository/vehiclebooking"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counters override Count only; any other repository call would panic.
type users struct {
	userRepo.UserRepository
	n *int64
}

func (u users) Count() (int64, error) { return *u.n, nil }

type tours struct{ tourRepo.TourRepository }

func (tours) Count() (int64, error) { return 3, nil }

type bookings struct{ bookingRepo.BookingRepository }

func (bookings) Count() (int64, error) { return 5, nil }

type destinations struct {
	destinationRepo.DestinationRepository
	err error
}

func (d destinations) Count() (int64, error) { return 2, d.err }

type vehicles struct{ vehicleRepo.VehicleRepository }

func (vehicles) Count() (int64, error) { return 4, nil }

type vehicleBookings struct {
	vehicleBookingRepo.VehicleBookingRepository
}

func (vehicleBookings) Count() (int64, error) { return 7, nil }

type mapCache struct{ items map[string]string }

func (m *mapCache) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.items[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mapCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.items[key] = string(v)
	case string:
		m.items[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func newService(userCount *int64, cache Cache) *DefaultStatsService {
	return &DefaultStatsService{
		Users:           users{n: userCount},
		Tours:           tours{},
		Bookings:        bookings{},
		Destinations:    destinations{},
		Vehicles:        vehicles{},
		VehicleBookings: vehicleBookings{},
		Cache:           cache,
		DatabaseName:    "tourbook",
	}
}

func TestDatabaseInfoCounts(t *testing.T) {
	n := int64(10)
	info, err := newService(&n, nil).DatabaseInfo(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tourbook", info.DatabaseName)
	assert.Equal(t, "MongoDB", info.DatabaseType)
	assert.Equal(t, int64(10), info.Statistics.TotalUsers)
	assert.Equal(t, int64(3), info.Statistics.TotalTours)
	assert.Equal(t, int64(5), info.Statistics.TotalBookings)
	assert.Equal(t, int64(2), info.Statistics.TotalDestinations)
	assert.Equal(t, int64(4), info.Statistics.TotalVehicles)
	assert.Equal(t, int64(7), info.Statistics.TotalVehicleBookings)
}

func TestDatabaseInfoServedFromCache(t *testing.T) {
	n := int64(1)
	cache := &mapCache{items: map[string]string{}}
	svc := newService(&n, cache)

	first, err := svc.DatabaseInfo(context.Background())
	require.NoError(t, err)
	assert.Contains(t, cache.items, cacheKey)

	n = 99
	second, err := svc.DatabaseInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.Statistics.TotalUsers, "cached counts are reused until the TTL passes")
	assert.True(t, first.LastUpdated.Equal(second.LastUpdated))
}

func TestDatabaseInfoCountError(t *testing.T) {
	n := int64(0)
	svc := newService(&n, nil)
	svc.Destinations = destinations{err: errors.New("boom")}

	_, err := svc.DatabaseInfo(context.Background())
	assert.ErrorContains(t, err, "failed to count destinations")
}

package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bookingRepo "tourbook/database/repository/booking"
	destinationRepo "tourbook/database/repository/destination"
	tourRepo "tourbook/database/repository/tour"
	userRepo "tourbook/database/repository/user"
	vehicleRepo "tourbook/database/repository/vehicle"
	vehicleBookingRepo "tourbook/database/repository/vehiclebooking"
	"tourbook/models"
	"tourbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheKey = "stats:database"

// DatabaseInfo is the body of GET /api/database/info.
type DatabaseInfo struct {
	DatabaseName string               `json:"database_name"`
	DatabaseType string               `json:"database_type"`
	LastUpdated  time.Time            `json:"last_updated"`
	Statistics   models.DatabaseStats `json:"statistics"`
}

type StatsService interface {
	DatabaseInfo(ctx context.Context) (*DatabaseInfo, error)
}

// Cache is satisfied by *redis.Client.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type DefaultStatsService struct {
	Users           userRepo.UserRepository
	Tours           tourRepo.TourRepository
	Bookings        bookingRepo.BookingRepository
	Destinations    destinationRepo.DestinationRepository
	Vehicles        vehicleRepo.VehicleRepository
	VehicleBookings vehicleBookingRepo.VehicleBookingRepository
	// Cache may be nil, in which case every call counts afresh.
	Cache        Cache
	DatabaseName string
}

func (s *DefaultStatsService) DatabaseInfo(ctx context.Context) (*DatabaseInfo, error) {
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var info DatabaseInfo
			if err := json.Unmarshal(raw, &info); err == nil {
				return &info, nil
			}
		} else if err != redis.Nil {
			utils.GetLogger().Warn("Stats cache read failed", zap.Error(err))
		}
	}

	info := &DatabaseInfo{DatabaseName: s.DatabaseName, DatabaseType: "MongoDB", LastUpdated: time.Now().UTC()}
	counters := []struct {
		name  string
		count func() (int64, error)
		dst   *int64
	}{
		{"users", s.Users.Count, &info.Statistics.TotalUsers},
		{"tours", s.Tours.Count, &info.Statistics.TotalTours},
		{"bookings", s.Bookings.Count, &info.Statistics.TotalBookings},
		{"destinations", s.Destinations.Count, &info.Statistics.TotalDestinations},
		{"vehicles", s.Vehicles.Count, &info.Statistics.TotalVehicles},
		{"vehicle bookings", s.VehicleBookings.Count, &info.Statistics.TotalVehicleBookings},
	}
	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
		*c.dst = n
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(info); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, raw, utils.StatsCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("Stats cache write failed", zap.Error(err))
			}
		}
	}
	return info, nil
}

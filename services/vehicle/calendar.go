package vehicle

import (
	"fmt"

	"tourbook/models"
	"tourbook/services/availability"
)

func (s *DefaultVehicleService) horizon(requested int) int {
	if requested > 0 {
		return requested
	}
	return s.HorizonDays
}

func (s *DefaultVehicleService) Calendar(vehicleID, exclude string, horizon int) (*models.VehicleCalendar, error) {
	if _, err := s.GetVehicle(vehicleID); err != nil {
		return nil, err
	}
	bookings, err := s.Bookings.GetByVehicle(vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings of vehicle %s: %w", vehicleID, err)
	}

	opts := []availability.Option{availability.WithHorizon(s.horizon(horizon))}
	if exclude != "" {
		opts = append(opts, availability.Excluding(exclude))
	}
	today := availability.DateOf(s.now())
	return &models.VehicleCalendar{
		VehicleID: vehicleID,
		Dates:     availability.Classify(models.Snapshots(bookings), vehicleID, today, opts...),
	}, nil
}

func (s *DefaultVehicleService) Calendars(horizon int) (map[string]models.VehicleCalendar, error) {
	vehicles, err := s.Vehicles.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicles: %w", err)
	}
	bookings, err := s.Bookings.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle bookings: %w", err)
	}
	today := availability.DateOf(s.now())
	opt := availability.WithHorizon(s.horizon(horizon))
	cal := availability.ClassifyAll(models.Snapshots(bookings), today, opt)

	out := make(map[string]models.VehicleCalendar, len(vehicles))
	for _, v := range vehicles {
		c, ok := cal[v.ID]
		if !ok {
			// no bookings: the whole window is available
			c = availability.Classify(nil, v.ID, today, opt)
		}
		out[v.ID] = models.VehicleCalendar{VehicleID: v.ID, Dates: c}
	}
	return out, nil
}

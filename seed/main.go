// Command seed fills an empty database with an admin account and sample
// destinations, tours and vehicles.
package main

import (
	"strings"
	"time"

	"tourbook/config"
	"tourbook/database"
	destinationRepo "tourbook/database/repository/destination"
	tourRepo "tourbook/database/repository/tour"
	userRepoPkg "tourbook/database/repository/user"
	vehicleRepo "tourbook/database/repository/vehicle"
	"tourbook/models"
	"tourbook/services/destination"
	"tourbook/services/tour"
	"tourbook/services/vehicle"
	"tourbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type sampleTour struct {
	name, description string
	destination       int
	days              int
	price             float64
	included          []string
	itinerary         []string
	maxParticipants   int
}

var sampleDestinations = []models.DestinationInput{
	dest("Taj Mahal", "One of the seven wonders of the world, the Taj Mahal is a stunning symbol of eternal love.", "Uttar Pradesh", "Agra", "taj-mahal"),
	dest("Mysore Palace", "A historical palace and royal residence, known for its stunning architecture and rich history.", "Karnataka", "Mysore", "mysore-palace"),
	dest("Kerala Backwaters", "Serene waterways surrounded by lush greenery, perfect for houseboat cruises.", "Kerala", "Alleppey", "kerala-backwaters"),
}

var sampleTours = []sampleTour{
	{
		name:        "Taj Mahal Sunrise Tour",
		description: "Experience the majestic Taj Mahal at sunrise, followed by a guided tour of Agra Fort.",
		destination: 0, days: 2, price: 199.99, maxParticipants: 15,
		included:  []string{"Hotel accommodation", "Breakfast and dinner", "Professional guide", "Transport", "Entry tickets"},
		itinerary: []string{"Day 1: Arrival in Agra, evening visit to local markets", "Day 2: Sunrise Taj Mahal visit, Agra Fort tour, departure"},
	},
	{
		name:        "Royal Mysore Experience",
		description: "Explore the grandeur of Mysore Palace and surrounding attractions.",
		destination: 1, days: 3, price: 299.99, maxParticipants: 20,
		included:  []string{"Luxury hotel stay", "All meals", "Guide services", "Local transport", "Cultural show tickets"},
		itinerary: []string{"Day 1: Palace tour and light show", "Day 2: Chamundi Hills and local crafts", "Day 3: Brindavan Gardens and departure"},
	},
	{
		name:        "Kerala Backwater Cruise",
		description: "Relax on a traditional houseboat while exploring the beautiful backwaters.",
		destination: 2, days: 4, price: 399.99, maxParticipants: 12,
		included:  []string{"Houseboat stay", "All meals on board", "Village visits", "Cultural performances", "Airport transfers"},
		itinerary: []string{"Day 1: Arrival and houseboat check-in", "Day 2: Backwater cruise and village visits", "Day 3: Ayurvedic spa and cultural shows", "Day 4: Morning cruise and departure"},
	},
}

var sampleVehicles = []models.VehicleInput{
	{Name: "Toyota Innova Crysta", Type: "car", Description: "7 seater, air conditioned"},
	{Name: "Force Tempo Traveller", Type: "van", Description: "12 seater for group trips"},
	{Name: "Volvo B11R", Type: "bus", Description: "45 seater coach"},
}

func dest(name, description, state, city, image string) models.DestinationInput {
	country := "India"
	img := "https://source.unsplash.com/800x600/?" + image
	return models.DestinationInput{Name: &name, Description: &description, Country: &country, State: &state, City: &city, ImageURL: &img}
}

// departures are two weeks apart starting a week from today; every other one is peak priced.
func departures(seats int) []models.DepartureInput {
	start := time.Now().AddDate(0, 0, 7)
	out := make([]models.DepartureInput, 0, 6)
	for i := 0; i < 6; i++ {
		mod := 1.0
		if i%2 == 1 {
			mod = 1.2
		}
		out = append(out, models.DepartureInput{
			Date:           start.AddDate(0, 0, i*15).Format("2006-01-02"),
			AvailableSeats: seats,
			PriceModifier:  &mod,
		})
	}
	return out
}

func seedAdmin(users userRepoPkg.UserRepository, logger *zap.Logger) {
	email := strings.ToLower(strings.TrimSpace(config.AppConfig.SeedAdminEmail))
	if existing, err := users.GetByEmail(email); err != nil {
		logger.Fatal("Failed to look up admin", zap.Error(err))
	} else if existing != nil {
		logger.Info("Admin already present", zap.String("email", email))
		return
	}
	password := config.AppConfig.SeedAdminPassword
	if password == "" {
		logger.Fatal("SEED_ADMIN_PASSWORD must be set to create the admin account")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("Failed to hash admin password", zap.Error(err))
	}
	now := time.Now()
	admin := &models.User{
		ID:           uuid.New().String(),
		Name:         "Admin User",
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(admin); err != nil {
		logger.Fatal("Failed to create admin", zap.Error(err))
	}
	logger.Info("Admin created", zap.String("email", email))
}

func seedCatalogue(destinations destinationRepo.DestinationRepository, tours tourRepo.TourRepository, logger *zap.Logger) {
	if n, err := destinations.Count(); err != nil {
		logger.Fatal("Failed to count destinations", zap.Error(err))
	} else if n > 0 {
		logger.Info("Destinations already present, skipping catalogue", zap.Int64("count", n))
		return
	}

	destinationService := &destination.DefaultDestinationService{Destinations: destinations, Tours: tours}
	tourService := &tour.DefaultTourService{Tours: tours, Destinations: destinations}

	ids := make([]string, 0, len(sampleDestinations))
	for _, in := range sampleDestinations {
		d, err := destinationService.CreateDestination(in)
		if err != nil {
			logger.Fatal("Failed to create destination", zap.Error(err))
		}
		ids = append(ids, d.ID)
	}
	for _, st := range sampleTours {
		st := st
		input := models.TourInput{
			Name:             &st.name,
			Description:      &st.description,
			DestinationID:    &ids[st.destination],
			DurationDays:     &st.days,
			Price:            &st.price,
			IncludedServices: st.included,
			Itinerary:        st.itinerary,
			MaxParticipants:  &st.maxParticipants,
			DepartureDates:   departures(st.maxParticipants),
		}
		t, err := tourService.CreateTour(input)
		if err != nil {
			logger.Fatal("Failed to create tour", zap.String("name", st.name), zap.Error(err))
		}
		logger.Info("Tour created", zap.String("name", t.Name), zap.Int("departures", len(t.DepartureDates)))
	}
}

func seedVehicles(vehicles vehicleRepo.VehicleRepository, logger *zap.Logger) {
	existing, err := vehicles.GetAll()
	if err != nil {
		logger.Fatal("Failed to list vehicles", zap.Error(err))
	}
	if len(existing) > 0 {
		logger.Info("Vehicles already present, skipping", zap.Int("count", len(existing)))
		return
	}
	svc := &vehicle.DefaultVehicleService{Vehicles: vehicles}
	for _, in := range sampleVehicles {
		if _, err := svc.CreateVehicle(in); err != nil {
			logger.Fatal("Failed to create vehicle", zap.String("name", in.Name), zap.Error(err))
		}
	}
	logger.Info("Vehicles created", zap.Int("count", len(sampleVehicles)))
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	// Initialize the database connection.
	database.InitDB()

	seedAdmin(userRepoPkg.NewMongoUserRepo(), logger)
	seedCatalogue(destinationRepo.NewMongoDestinationRepo(), tourRepo.NewMongoTourRepo(), logger)
	seedVehicles(vehicleRepo.NewMongoVehicleRepo(), logger)
	logger.Info("Seeding complete")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourbook/config"
	"tourbook/cron"
	"tourbook/database"
	bookingRepo "tourbook/database/repository/booking"
	destinationRepo "tourbook/database/repository/destination"
	reviewRepo "tourbook/database/repository/review"
	tourRepo "tourbook/database/repository/tour"
	userRepoPkg "tourbook/database/repository/user"
	vehicleRepo "tourbook/database/repository/vehicle"
	vehicleBookingRepo "tourbook/database/repository/vehiclebooking"
	"tourbook/handlers"
	"tourbook/middleware"
	"tourbook/routes"
	"tourbook/services/destination"
	"tourbook/services/notification"
	"tourbook/services/stats"
	"tourbook/services/tour"
	"tourbook/services/tourbooking"
	"tourbook/services/user"
	"tourbook/services/vehicle"
	"tourbook/services/vehiclebooking"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitRedis()
	utils.RegisterValidators()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	utils.StartHealthMonitor(ctx, 30*time.Second, utils.RedisClients(), database.MongoClient)

	// repositories.
	users := userRepoPkg.NewMongoUserRepo()
	vehicles := vehicleRepo.NewMongoVehicleRepo()
	vehicleBookings := vehicleBookingRepo.NewMongoVehicleBookingRepo()
	destinations := destinationRepo.NewMongoDestinationRepo()
	tours := tourRepo.NewMongoTourRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	reviews := reviewRepo.NewMongoReviewRepo()

	// background mail queue.
	queue := asynq.NewClient(cron.QueueRedisOpt())
	defer queue.Close()
	notificationService, err := notification.NewDefaultNotificationService(queue)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	worker := cron.InitMailWorker(ctx, cron.NewMailer(config.AppConfig))

	sessions := middleware.NewSessionStore(utils.GetAuthCacheClient(), users)
	otpTTL := time.Duration(config.AppConfig.OTPTTLMinutes) * time.Minute

	// services.
	userService := &user.DefaultUserService{
		Repo:     users,
		OTP:      utils.NewRedisOTPStore(utils.GetOTPCacheClient(), otpTTL),
		Sessions: sessions,
		Notifier: notificationService,
		TokenTTL: utils.TokenTTL(),
		OTPTTL:   otpTTL,
	}
	vehicleService := &vehicle.DefaultVehicleService{
		Vehicles:    vehicles,
		Bookings:    vehicleBookings,
		HorizonDays: config.AppConfig.AvailabilityHorizonDays,
	}
	vehicleBookingService := &vehiclebooking.DefaultVehicleBookingService{
		Bookings: vehicleBookings,
		Vehicles: vehicles,
		Users:    users,
		Notifier: notificationService,
	}
	destinationService := &destination.DefaultDestinationService{
		Destinations: destinations,
		Tours:        tours,
	}
	tourService := &tour.DefaultTourService{
		Tours:        tours,
		Destinations: destinations,
		Bookings:     bookings,
		Reviews:      reviews,
		Users:        users,
	}
	tourBookingService := &tourbooking.DefaultTourBookingService{
		Bookings:     bookings,
		Tours:        tours,
		Destinations: destinations,
		Users:        users,
	}
	statsService := &stats.DefaultStatsService{
		Users:           users,
		Tours:           tours,
		Bookings:        bookings,
		Destinations:    destinations,
		Vehicles:        vehicles,
		VehicleBookings: vehicleBookings,
		Cache:           utils.GetCacheClient(),
		DatabaseName:    database.DB().Name(),
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Sessions:              sessions,
		UserHandler:           handlers.NewUserHandler(userService),
		AdminHandler:          handlers.NewAdminHandler(userService),
		VehicleHandler:        handlers.NewVehicleHandler(vehicleService),
		VehicleBookingHandler: handlers.NewVehicleBookingHandler(vehicleBookingService),
		DestinationHandler:    handlers.NewDestinationHandler(destinationService),
		TourHandler:           handlers.NewTourHandler(tourService),
		TourBookingHandler:    handlers.NewTourBookingHandler(tourBookingService),
		DatabaseHandler:       handlers.NewDatabaseHandler(statsService),
	}

	router := gin.New()
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.Close(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: failed to disconnect MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

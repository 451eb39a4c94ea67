package routes

import (
	"net/http"
	"time"

	"tourbook/config"
	"tourbook/handlers"
	"tourbook/middleware"
	"tourbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login, profile and user admin endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", hb.UserHandler.RegisterHandler)
		auth.POST("/login", hb.UserHandler.LoginHandler)
		auth.POST("/forgot-password", hb.UserHandler.ForgotPasswordHandler)
		auth.POST("/reset-password", hb.UserHandler.ResetPasswordHandler)

		// Protected routes (Require Authentication)
		protected := auth.Group("", middleware.JWTAuthMiddleware(hb.Sessions))
		protected.POST("/logout", hb.UserHandler.LogoutHandler)
		protected.GET("/me", hb.UserHandler.MeHandler)
		protected.PUT("/me", hb.UserHandler.UpdateMeHandler)
		protected.POST("/change-password", hb.UserHandler.ChangePasswordHandler)

		admin := protected.Group("/admin", middleware.RequireAdmin())
		admin.GET("/users", hb.AdminHandler.GetAllUsersHandler)
		admin.DELETE("/users/:id", hb.AdminHandler.DeleteUserHandler)
		admin.PATCH("/users/:id/toggle-admin", hb.AdminHandler.ToggleAdminHandler)
	}
}

func RegisterDestinationRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	destinations := api.Group("/destinations")
	{
		destinations.GET("", hb.DestinationHandler.ListDestinationsHandler)
		destinations.GET("/search", hb.DestinationHandler.SearchDestinationsHandler)
		destinations.GET("/:id", hb.DestinationHandler.GetDestinationHandler)

		admin := destinations.Group("", middleware.JWTAuthMiddleware(hb.Sessions), middleware.RequireAdmin())
		admin.POST("", hb.DestinationHandler.CreateDestinationHandler)
		admin.PUT("/:id", hb.DestinationHandler.UpdateDestinationHandler)
		admin.DELETE("/:id", hb.DestinationHandler.DeleteDestinationHandler)
	}
}

func RegisterTourRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	tours := api.Group("/tours")
	{
		tours.GET("", hb.TourHandler.ListToursHandler)
		tours.GET("/:id", hb.TourHandler.GetTourHandler)

		protected := tours.Group("", middleware.JWTAuthMiddleware(hb.Sessions))
		protected.POST("/:id/reviews", hb.TourHandler.AddReviewHandler)

		admin := protected.Group("", middleware.RequireAdmin())
		admin.POST("", hb.TourHandler.CreateTourHandler)
		admin.PUT("/:id", hb.TourHandler.UpdateTourHandler)
		admin.DELETE("/:id", hb.TourHandler.DeleteTourHandler)
	}
}

// RegisterBookingRoutes sets up the tour booking endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookings := api.Group("/bookings", middleware.JWTAuthMiddleware(hb.Sessions))
	{
		bookings.POST("", hb.TourBookingHandler.CreateBookingHandler)
		bookings.GET("", hb.TourBookingHandler.ListBookingsHandler)
		bookings.GET("/admin/all", middleware.RequireAdmin(), hb.TourBookingHandler.ListAllBookingsHandler)
		bookings.GET("/:id", hb.TourBookingHandler.GetBookingHandler)
		bookings.PUT("/:id", hb.TourBookingHandler.UpdateBookingHandler)
		bookings.POST("/:id/cancel", hb.TourBookingHandler.CancelBookingHandler)
	}
	// older clients list every booking here
	api.GET("/admin/bookings", middleware.JWTAuthMiddleware(hb.Sessions), middleware.RequireAdmin(), hb.TourBookingHandler.ListAllBookingsHandler)
}

func RegisterVehicleRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	vehicles := api.Group("/vehicles")
	{
		vehicles.GET("", hb.VehicleHandler.ListVehiclesHandler)
		vehicles.GET("/calendars", hb.VehicleHandler.CalendarsHandler)
		vehicles.GET("/:id", hb.VehicleHandler.GetVehicleHandler)
		vehicles.GET("/:id/calendar", hb.VehicleHandler.CalendarHandler)

		admin := vehicles.Group("", middleware.JWTAuthMiddleware(hb.Sessions), middleware.RequireAdmin())
		admin.POST("", hb.VehicleHandler.CreateVehicleHandler)
		admin.PUT("/:id", hb.VehicleHandler.UpdateVehicleHandler)
		admin.DELETE("/:id", hb.VehicleHandler.DeleteVehicleHandler)
	}

	vb := api.Group("/vehicle-bookings", middleware.JWTAuthMiddleware(hb.Sessions))
	{
		vb.POST("", hb.VehicleBookingHandler.CreateBookingHandler)
		vb.GET("", hb.VehicleBookingHandler.ListBookingsHandler)
		vb.PATCH("/:id", hb.VehicleBookingHandler.UpdateBookingHandler)
	}
}

func RegisterDatabaseRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/database/info", hb.DatabaseHandler.DatabaseInfoHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

func corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	origins := config.AllowedOrigins()
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	if err := middleware.ConfigureClientIP(r, config.TrustedProxies()); err != nil {
		utils.GetLogger().Sugar().Fatalf("routes: %v", err)
	}
	r.Use(
		utils.ErrorHandler(),
		middleware.RequestLogger(),
		cors.New(corsConfig()),
		middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin),
	)
	r.NoRoute(func(c *gin.Context) {
		utils.JSONError(c, http.StatusNotFound, "Not found")
	})

	RegisterHealthRoute(r)

	api := r.Group("/api")
	RegisterAuthRoutes(api, hb)
	RegisterDestinationRoutes(api, hb)
	RegisterTourRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterVehicleRoutes(api, hb)
	RegisterDatabaseRoutes(api, hb)
}

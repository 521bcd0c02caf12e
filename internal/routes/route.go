package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staynest/internal/container"
	"github.com/joshua-takyi/staynest/internal/handlers"
	"github.com/joshua-takyi/staynest/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	// Set Gin mode for production
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{container.Config.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", "X-User-Id", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "staynest-api",
			})
		})

		// The provider calls the webhook directly; no identity middleware
		// and no body binding so the handler sees the raw payload bytes.
		v1.POST("/payments/webhook", handlers.StripeWebhook(container.PaymentService))

		// public catalog reads
		v1.GET("/hotels", handlers.ListHotels(container.HotelService))
		v1.GET("/hotels/:id", handlers.GetHotelByID(container.HotelService))
		v1.GET("/locations", handlers.ListLocations(container.CatalogService))
		v1.GET("/locations/:id", handlers.GetLocationByID(container.CatalogService))
		v1.GET("/reviews/hotel/:hotelId", handlers.ListReviewsByHotel(container.CatalogService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.Identity(container.Config.AuthJWKSURL, container.Logger))

	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.POST("", handlers.CreateBooking(container.BookingService))
		bookingRoutes.GET("/user/:userId", handlers.GetUserBookings(container.BookingService))
		bookingRoutes.GET("/:id", handlers.GetBookingByID(container.BookingService))
		bookingRoutes.PATCH("/:id/status", handlers.UpdateBookingStatus(container.BookingService))
	}

	paymentRoutes := protected.Group("/payments")
	{
		paymentRoutes.POST("/create-checkout-session", handlers.CreateCheckoutSession(container.PaymentService))
		paymentRoutes.GET("/session/:id", handlers.GetCheckoutSession(container.PaymentService))
	}

	hotelRoutes := protected.Group("/hotels")
	{
		hotelRoutes.POST("", handlers.CreateHotel(container.HotelService))
		hotelRoutes.PUT("/:id", handlers.UpdateHotel(container.HotelService))
		hotelRoutes.PATCH("/:id", handlers.UpdateHotelPrice(container.HotelService))
		hotelRoutes.DELETE("/:id", handlers.DeleteHotel(container.HotelService))
	}

	catalogRoutes := protected.Group("/")
	{
		catalogRoutes.POST("/locations", handlers.CreateLocation(container.CatalogService))
		catalogRoutes.PUT("/locations/:id", handlers.UpdateLocation(container.CatalogService))
		catalogRoutes.DELETE("/locations/:id", handlers.DeleteLocation(container.CatalogService))
		catalogRoutes.POST("/reviews", handlers.CreateReview(container.CatalogService))
	}

	return r
}

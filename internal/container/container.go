package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/staynest/internal/config"
	"github.com/joshua-takyi/staynest/internal/models"
	"github.com/joshua-takyi/staynest/internal/payments"
	"github.com/joshua-takyi/staynest/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger *slog.Logger
	Config *config.Config
	// Database client
	MongoDBClient  *mongo.Client
	BookingService *services.BookingService
	PaymentService *services.PaymentService
	HotelService   *services.HotelService
	CatalogService *services.CatalogService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	mongoDBClient *mongo.Client,
	provider payments.CheckoutProvider,
	cld *cloudinary.Cloudinary,
) *Container {
	// Initialize repositories
	repo := models.MongodbNewRepo(mongoDBClient)
	bookingService := services.NewBookingService(repo, repo)
	paymentService := services.NewPaymentService(repo, repo, provider, cfg.ClientURL, logger)
	hotelService := services.NewHotelService(repo, cld)
	catalogService := services.NewCatalogService(repo, repo)

	return &Container{
		Logger:         logger,
		Config:         cfg,
		MongoDBClient:  mongoDBClient,
		BookingService: bookingService,
		PaymentService: paymentService,
		HotelService:   hotelService,
		CatalogService: catalogService,
	}
}

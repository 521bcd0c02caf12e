package services

import (
	"context"
	"strings"

	"github.com/joshua-takyi/staynest/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogService covers the small read-mostly collections next to hotels:
// locations and reviews.
type CatalogService struct {
	locationRepo models.LocationRepo
	reviewRepo   models.ReviewRepo
}

func NewCatalogService(locationRepo models.LocationRepo, reviewRepo models.ReviewRepo) *CatalogService {
	return &CatalogService{
		locationRepo: locationRepo,
		reviewRepo:   reviewRepo,
	}
}

func (cs *CatalogService) CreateLocation(ctx context.Context, location *models.Location) (*models.Location, error) {
	if strings.TrimSpace(location.Name) == "" {
		return nil, models.NewValidationError("Location name is required")
	}
	return cs.locationRepo.CreateLocation(ctx, location)
}

func (cs *CatalogService) GetLocationByID(ctx context.Context, id string) (*models.Location, error) {
	locationID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewValidationError("Invalid location ID")
	}

	location, err := cs.locationRepo.GetLocationByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, models.NewNotFoundError("Location not found")
	}
	return location, nil
}

func (cs *CatalogService) ListLocations(ctx context.Context) ([]*models.Location, error) {
	return cs.locationRepo.ListLocations(ctx)
}

func (cs *CatalogService) UpdateLocation(ctx context.Context, id, name string) (*models.Location, error) {
	locationID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewValidationError("Invalid location ID")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Location name is required")
	}

	updated, err := cs.locationRepo.UpdateLocation(ctx, locationID, name)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, models.NewNotFoundError("Location not found")
	}
	return updated, nil
}

func (cs *CatalogService) DeleteLocation(ctx context.Context, id string) error {
	locationID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewValidationError("Invalid location ID")
	}
	return cs.locationRepo.DeleteLocation(ctx, locationID)
}

func (cs *CatalogService) CreateReview(ctx context.Context, userID string, in *models.CreateReviewInput) (*models.Review, error) {
	if err := models.Validate.Struct(in); err != nil {
		return nil, models.NewValidationError("hotelId, rating, and comment are required")
	}
	hotelID, err := primitive.ObjectIDFromHex(in.HotelID)
	if err != nil {
		return nil, models.NewValidationError("Invalid hotel ID")
	}

	return cs.reviewRepo.CreateReview(ctx, &models.Review{
		HotelID: hotelID,
		UserID:  userID,
		Rating:  in.Rating,
		Comment: strings.TrimSpace(in.Comment),
	})
}

func (cs *CatalogService) ListReviewsByHotel(ctx context.Context, hotelID string) ([]*models.Review, error) {
	id, err := primitive.ObjectIDFromHex(hotelID)
	if err != nil {
		return nil, models.NewValidationError("Invalid hotel ID")
	}
	return cs.reviewRepo.ListReviewsByHotel(ctx, id)
}

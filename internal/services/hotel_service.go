package services

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/staynest/internal/helpers"
	"github.com/joshua-takyi/staynest/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HotelService struct {
	hotelRepo models.HotelRepo
	cld       *cloudinary.Cloudinary
}

func NewHotelService(hotelRepo models.HotelRepo, cld *cloudinary.Cloudinary) *HotelService {
	return &HotelService{
		hotelRepo: hotelRepo,
		cld:       cld,
	}
}

func (hs *HotelService) CreateHotel(ctx context.Context, hotel *models.Hotel) (*models.Hotel, error) {
	if err := models.Validate.Struct(hotel); err != nil {
		return nil, models.NewValidationError(fmt.Sprintf("invalid hotel data provided: %v", err))
	}

	// Non-URL images are treated as local asset paths and pushed through
	// Cloudinary when it is configured.
	if hotel.Image != "" && !helpers.IsAbsoluteHTTPURL(hotel.Image) && hs.cld != nil {
		urls, err := helpers.UploadImages(ctx, hs.cld, []string{hotel.Image}, helpers.HotelFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload hotel image: %w", err)
		}
		if len(urls) > 0 {
			hotel.Image = urls[0]
		}
	}

	return hs.hotelRepo.CreateHotel(ctx, hotel)
}

func (hs *HotelService) GetHotelByID(ctx context.Context, id string) (*models.Hotel, error) {
	hotelID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewValidationError("Invalid hotel ID")
	}

	hotel, err := hs.hotelRepo.GetHotelByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, models.NewNotFoundError("Hotel not found")
	}
	return hotel, nil
}

// ListHotels runs the hotel search. The filter may be nil for a plain
// newest-first listing.
func (hs *HotelService) ListHotels(ctx context.Context, filter *models.HotelFilter, offset, limit int) ([]*models.Hotel, int64, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return hs.hotelRepo.ListHotels(ctx, filter, offset, limit)
}

// UpdateHotel replaces a hotel's fields wholesale; the input is validated
// like a create.
func (hs *HotelService) UpdateHotel(ctx context.Context, id string, hotel *models.Hotel) (*models.Hotel, error) {
	hotelID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewValidationError("Invalid hotel ID")
	}
	if err := models.Validate.Struct(hotel); err != nil {
		return nil, models.NewValidationError(fmt.Sprintf("invalid hotel data provided: %v", err))
	}

	updated, err := hs.hotelRepo.UpdateHotel(ctx, hotelID, hotel)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, models.NewNotFoundError("Hotel not found")
	}
	return updated, nil
}

// UpdateHotelPrice is the partial update: only the nightly rate changes.
func (hs *HotelService) UpdateHotelPrice(ctx context.Context, id string, price float64) error {
	hotelID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewValidationError("Invalid hotel ID")
	}
	if price <= 0 {
		return models.NewValidationError("Price is required")
	}
	return hs.hotelRepo.UpdateHotelPrice(ctx, hotelID, price)
}

func (hs *HotelService) DeleteHotel(ctx context.Context, id string) error {
	hotelID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewValidationError("Invalid hotel ID")
	}
	return hs.hotelRepo.DeleteHotel(ctx, hotelID)
}

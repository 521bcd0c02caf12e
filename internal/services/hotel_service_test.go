package services

import (
	"context"
	"testing"

	"github.com/joshua-takyi/staynest/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateHotelRejectsInvalidData(t *testing.T) {
	repo := new(mockHotelRepo)
	svc := NewHotelService(repo, nil)

	_, err := svc.CreateHotel(context.Background(), &models.Hotel{
		Name:     "Seaside Inn",
		Location: "Accra",
		// missing description, zero price
	})

	require.Error(t, err)
	assert.Equal(t, 400, models.StatusFor(err))
	repo.AssertNotCalled(t, "CreateHotel")
}

func TestCreateHotelKeepsAbsoluteImageURL(t *testing.T) {
	repo := new(mockHotelRepo)
	svc := NewHotelService(repo, nil)

	hotel := &models.Hotel{
		Name:        "Seaside Inn",
		Location:    "Accra",
		Image:       "https://cdn.example.com/seaside.jpg",
		Description: "Beachfront rooms",
		Price:       150,
	}
	repo.On("CreateHotel", mock.Anything, hotel).Return(hotel, nil)

	created, err := svc.CreateHotel(context.Background(), hotel)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/seaside.jpg", created.Image)
	repo.AssertExpectations(t)
}

func TestGetHotelByID(t *testing.T) {
	hotelID := primitive.NewObjectID()

	t.Run("invalid id", func(t *testing.T) {
		repo := new(mockHotelRepo)
		svc := NewHotelService(repo, nil)

		_, err := svc.GetHotelByID(context.Background(), "not-a-hex-id")
		require.Error(t, err)
		assert.Equal(t, 400, models.StatusFor(err))
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockHotelRepo)
		repo.On("GetHotelByID", mock.Anything, hotelID).Return(nil, nil)
		svc := NewHotelService(repo, nil)

		_, err := svc.GetHotelByID(context.Background(), hotelID.Hex())
		require.Error(t, err)
		assert.Equal(t, 404, models.StatusFor(err))
	})

	t.Run("found", func(t *testing.T) {
		repo := new(mockHotelRepo)
		repo.On("GetHotelByID", mock.Anything, hotelID).
			Return(&models.Hotel{ID: hotelID, Name: "Seaside Inn"}, nil)
		svc := NewHotelService(repo, nil)

		hotel, err := svc.GetHotelByID(context.Background(), hotelID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "Seaside Inn", hotel.Name)
	})
}

func TestListHotelsClampsPagination(t *testing.T) {
	repo := new(mockHotelRepo)
	repo.On("ListHotels", mock.Anything, (*models.HotelFilter)(nil), 0, 10).
		Return([]*models.Hotel{}, int64(0), nil)
	svc := NewHotelService(repo, nil)

	_, _, err := svc.ListHotels(context.Background(), nil, -5, 500)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListHotelsForwardsSearchFilter(t *testing.T) {
	min := 50.0
	filter := &models.HotelFilter{
		Query:     "beachfront",
		MinPrice:  &min,
		Amenities: []string{"wifi", "pool"},
		SortBy:    "price-low",
	}

	repo := new(mockHotelRepo)
	repo.On("ListHotels", mock.Anything, filter, 0, 10).
		Return([]*models.Hotel{{Name: "Seaside Inn"}}, int64(1), nil)
	svc := NewHotelService(repo, nil)

	hotels, total, err := svc.ListHotels(context.Background(), filter, 0, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, hotels, 1)
	repo.AssertExpectations(t)
}

func TestUpdateHotel(t *testing.T) {
	hotelID := primitive.NewObjectID()
	valid := &models.Hotel{
		Name:        "Seaside Inn",
		Location:    "Accra",
		Description: "Beachfront rooms",
		Price:       175,
	}

	t.Run("invalid id", func(t *testing.T) {
		repo := new(mockHotelRepo)
		svc := NewHotelService(repo, nil)

		_, err := svc.UpdateHotel(context.Background(), "nope", valid)
		require.Error(t, err)
		assert.Equal(t, 400, models.StatusFor(err))
		repo.AssertNotCalled(t, "UpdateHotel")
	})

	t.Run("invalid data", func(t *testing.T) {
		repo := new(mockHotelRepo)
		svc := NewHotelService(repo, nil)

		_, err := svc.UpdateHotel(context.Background(), hotelID.Hex(), &models.Hotel{Name: "Seaside Inn"})
		require.Error(t, err)
		assert.Equal(t, 400, models.StatusFor(err))
		repo.AssertNotCalled(t, "UpdateHotel")
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockHotelRepo)
		repo.On("UpdateHotel", mock.Anything, hotelID, valid).Return(nil, nil)
		svc := NewHotelService(repo, nil)

		_, err := svc.UpdateHotel(context.Background(), hotelID.Hex(), valid)
		require.Error(t, err)
		assert.Equal(t, 404, models.StatusFor(err))
	})

	t.Run("updates", func(t *testing.T) {
		repo := new(mockHotelRepo)
		repo.On("UpdateHotel", mock.Anything, hotelID, valid).
			Return(&models.Hotel{ID: hotelID, Name: "Seaside Inn", Price: 175}, nil)
		svc := NewHotelService(repo, nil)

		updated, err := svc.UpdateHotel(context.Background(), hotelID.Hex(), valid)
		require.NoError(t, err)
		assert.Equal(t, 175.0, updated.Price)
	})
}

func TestUpdateHotelPriceRejectsNonPositive(t *testing.T) {
	hotelID := primitive.NewObjectID()
	repo := new(mockHotelRepo)
	svc := NewHotelService(repo, nil)

	err := svc.UpdateHotelPrice(context.Background(), hotelID.Hex(), 0)
	require.Error(t, err)
	assert.Equal(t, 400, models.StatusFor(err))
	repo.AssertNotCalled(t, "UpdateHotelPrice")
}

func TestDeleteHotelInvalidID(t *testing.T) {
	repo := new(mockHotelRepo)
	svc := NewHotelService(repo, nil)

	err := svc.DeleteHotel(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, 400, models.StatusFor(err))
	repo.AssertNotCalled(t, "DeleteHotel")
}

func TestCreateLocationRequiresName(t *testing.T) {
	locations := new(mockLocationRepo)
	svc := NewCatalogService(locations, new(mockReviewRepo))

	_, err := svc.CreateLocation(context.Background(), &models.Location{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, 400, models.StatusFor(err))
	locations.AssertNotCalled(t, "CreateLocation")
}

func TestLocationLifecycle(t *testing.T) {
	locationID := primitive.NewObjectID()

	t.Run("get rejects invalid id", func(t *testing.T) {
		svc := NewCatalogService(new(mockLocationRepo), new(mockReviewRepo))

		_, err := svc.GetLocationByID(context.Background(), "bad-id")
		require.Error(t, err)
		assert.Equal(t, 400, models.StatusFor(err))
	})

	t.Run("get not found", func(t *testing.T) {
		locations := new(mockLocationRepo)
		locations.On("GetLocationByID", mock.Anything, locationID).Return(nil, nil)
		svc := NewCatalogService(locations, new(mockReviewRepo))

		_, err := svc.GetLocationByID(context.Background(), locationID.Hex())
		require.Error(t, err)
		assert.Equal(t, 404, models.StatusFor(err))
	})

	t.Run("update trims and requires name", func(t *testing.T) {
		locations := new(mockLocationRepo)
		svc := NewCatalogService(locations, new(mockReviewRepo))

		_, err := svc.UpdateLocation(context.Background(), locationID.Hex(), "   ")
		require.Error(t, err)
		assert.Equal(t, 400, models.StatusFor(err))
		locations.AssertNotCalled(t, "UpdateLocation")
	})

	t.Run("update renames", func(t *testing.T) {
		locations := new(mockLocationRepo)
		locations.On("UpdateLocation", mock.Anything, locationID, "Kumasi").
			Return(&models.Location{ID: locationID, Name: "Kumasi"}, nil)
		svc := NewCatalogService(locations, new(mockReviewRepo))

		updated, err := svc.UpdateLocation(context.Background(), locationID.Hex(), "  Kumasi  ")
		require.NoError(t, err)
		assert.Equal(t, "Kumasi", updated.Name)
	})

	t.Run("delete rejects invalid id", func(t *testing.T) {
		locations := new(mockLocationRepo)
		svc := NewCatalogService(locations, new(mockReviewRepo))

		err := svc.DeleteLocation(context.Background(), "bad-id")
		require.Error(t, err)
		assert.Equal(t, 400, models.StatusFor(err))
		locations.AssertNotCalled(t, "DeleteLocation")
	})
}

func TestCreateReview(t *testing.T) {
	hotelID := primitive.NewObjectID()

	t.Run("validates input", func(t *testing.T) {
		reviews := new(mockReviewRepo)
		svc := NewCatalogService(new(mockLocationRepo), reviews)

		_, err := svc.CreateReview(context.Background(), "user_1", &models.CreateReviewInput{
			HotelID: hotelID.Hex(),
			Rating:  6,
			Comment: "too good",
		})
		require.Error(t, err)
		assert.Equal(t, 400, models.StatusFor(err))
		reviews.AssertNotCalled(t, "CreateReview")
	})

	t.Run("rejects invalid hotel id", func(t *testing.T) {
		reviews := new(mockReviewRepo)
		svc := NewCatalogService(new(mockLocationRepo), reviews)

		_, err := svc.CreateReview(context.Background(), "user_1", &models.CreateReviewInput{
			HotelID: "bad-id",
			Rating:  4,
			Comment: "fine stay",
		})
		require.Error(t, err)
		assert.Equal(t, 400, models.StatusFor(err))
	})

	t.Run("trims comment and stamps owner", func(t *testing.T) {
		reviews := new(mockReviewRepo)
		reviews.On("CreateReview", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
			return r.HotelID == hotelID && r.UserID == "user_1" && r.Comment == "great pool"
		})).Return(&models.Review{HotelID: hotelID, UserID: "user_1"}, nil)
		svc := NewCatalogService(new(mockLocationRepo), reviews)

		_, err := svc.CreateReview(context.Background(), "user_1", &models.CreateReviewInput{
			HotelID: hotelID.Hex(),
			Rating:  5,
			Comment: "  great pool  ",
		})
		require.NoError(t, err)
		reviews.AssertExpectations(t)
	})
}

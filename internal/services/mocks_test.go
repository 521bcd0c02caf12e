package services

import (
	"context"
	"time"

	"github.com/joshua-takyi/staynest/internal/models"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v78"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) InsertBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	args := m.Called(ctx, booking)
	if rf, ok := args.Get(0).(func(context.Context, *models.Booking) *models.Booking); ok {
		return rf(ctx, booking), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockBookingRepo) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListBookingsByUser(ctx context.Context, userID string, offset, limit int) ([]*models.Booking, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *mockBookingRepo) ListRoomNumbers(ctx context.Context, hotelID primitive.ObjectID, checkIn, checkOut time.Time) ([]int, error) {
	args := m.Called(ctx, hotelID, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *mockBookingRepo) SetPaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (*models.Booking, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

type mockHotelRepo struct {
	mock.Mock
}

func (m *mockHotelRepo) CreateHotel(ctx context.Context, hotel *models.Hotel) (*models.Hotel, error) {
	args := m.Called(ctx, hotel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Hotel), args.Error(1)
}

func (m *mockHotelRepo) GetHotelByID(ctx context.Context, id primitive.ObjectID) (*models.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Hotel), args.Error(1)
}

func (m *mockHotelRepo) ListHotels(ctx context.Context, filter *models.HotelFilter, offset, limit int) ([]*models.Hotel, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Hotel), args.Get(1).(int64), args.Error(2)
}

func (m *mockHotelRepo) UpdateHotel(ctx context.Context, id primitive.ObjectID, hotel *models.Hotel) (*models.Hotel, error) {
	args := m.Called(ctx, id, hotel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Hotel), args.Error(1)
}

func (m *mockHotelRepo) UpdateHotelPrice(ctx context.Context, id primitive.ObjectID, price float64) error {
	return m.Called(ctx, id, price).Error(0)
}

func (m *mockHotelRepo) DeleteHotel(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type mockLocationRepo struct {
	mock.Mock
}

func (m *mockLocationRepo) CreateLocation(ctx context.Context, location *models.Location) (*models.Location, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *mockLocationRepo) GetLocationByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *mockLocationRepo) ListLocations(ctx context.Context) ([]*models.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Location), args.Error(1)
}

func (m *mockLocationRepo) UpdateLocation(ctx context.Context, id primitive.ObjectID, name string) (*models.Location, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *mockLocationRepo) DeleteLocation(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	args := m.Called(ctx, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *mockReviewRepo) ListReviewsByHotel(ctx context.Context, hotelID primitive.ObjectID) ([]*models.Review, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Review), args.Error(1)
}

// fakeCheckoutProvider stands in for Stripe. Sessions are deduplicated by
// idempotency key the way the real provider does.
type fakeCheckoutProvider struct {
	disabled bool

	created    []*stripe.CheckoutSessionParams
	byIdemKey  map[string]*stripe.CheckoutSession
	createErr  error
	getSession *stripe.CheckoutSession
	getErr     error
	event      stripe.Event
	eventErr   error
}

func (f *fakeCheckoutProvider) Enabled() bool {
	return !f.disabled
}

func (f *fakeCheckoutProvider) CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, params)

	key := ""
	if params.IdempotencyKey != nil {
		key = *params.IdempotencyKey
	}
	if f.byIdemKey == nil {
		f.byIdemKey = make(map[string]*stripe.CheckoutSession)
	}
	if sess, ok := f.byIdemKey[key]; ok && key != "" {
		return sess, nil
	}

	sess := &stripe.CheckoutSession{
		ID:           "cs_test_" + key,
		ClientSecret: "cs_secret_" + key,
		Metadata:     params.Metadata,
	}
	f.byIdemKey[key] = sess
	return sess, nil
}

func (f *fakeCheckoutProvider) GetSession(id string) (*stripe.CheckoutSession, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getSession, nil
}

func (f *fakeCheckoutProvider) ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	if f.eventErr != nil {
		return stripe.Event{}, f.eventErr
	}
	return f.event, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/joshua-takyi/staynest/internal/helpers"
	"github.com/joshua-takyi/staynest/internal/metrics"
	"github.com/joshua-takyi/staynest/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	roomNumberMin = 100
	roomNumberMax = 10000
)

// allocation retries when the unique booking index rejects a concurrently
// taken room number
const maxAllocationAttempts = 3

type BookingService struct {
	bookingRepo models.BookingRepo
	hotelRepo   models.HotelRepo
}

func NewBookingService(bookingRepo models.BookingRepo, hotelRepo models.HotelRepo) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		hotelRepo:   hotelRepo,
	}
}

// allocateRoomNumber picks the first room number in [roomNumberMin,
// roomNumberMax) not already used by a booking with the identical hotel and
// date-range tuple. This is a placeholder allocation policy, not inventory
// management: overlapping-but-different ranges are not considered.
func (bs *BookingService) allocateRoomNumber(ctx context.Context, hotelID primitive.ObjectID, checkIn, checkOut time.Time) (int, error) {
	numbers, err := bs.bookingRepo.ListRoomNumbers(ctx, hotelID, checkIn, checkOut)
	if err != nil {
		return 0, fmt.Errorf("failed to list room numbers: %w", err)
	}

	used := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		used[n] = struct{}{}
	}
	for candidate := roomNumberMin; candidate < roomNumberMax; candidate++ {
		if _, taken := used[candidate]; !taken {
			return candidate, nil
		}
	}
	return 0, models.NewValidationError("No rooms available for selected dates")
}

// NumNights returns the chargeable night count for a stay, floored at one.
func NumNights(checkIn, checkOut time.Time) int {
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 1 {
		nights = 1
	}
	return nights
}

func (bs *BookingService) CreateBooking(ctx context.Context, userID string, in *models.CreateBookingInput) (*models.Booking, error) {
	if err := models.Validate.Struct(in); err != nil {
		return nil, models.NewValidationError("hotelId, checkIn, and checkOut are required")
	}

	hotelID, err := primitive.ObjectIDFromHex(in.HotelID)
	if err != nil {
		return nil, models.NewValidationError("Invalid hotel ID")
	}

	hotel, err := bs.hotelRepo.GetHotelByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, models.NewNotFoundError("Hotel not found")
	}

	checkIn, err := helpers.ParseDate(in.CheckIn)
	if err != nil {
		return nil, models.NewValidationError("Invalid checkIn date")
	}
	checkOut, err := helpers.ParseDate(in.CheckOut)
	if err != nil {
		return nil, models.NewValidationError("Invalid checkOut date")
	}
	if !checkIn.Before(checkOut) {
		return nil, models.NewValidationError("checkIn must be before checkOut")
	}

	amountTotal := hotel.Price * float64(NumNights(checkIn, checkOut))

	// The read-then-insert allocation can race with a concurrent request for
	// the same tuple. The unique index turns the loser's insert into a
	// duplicate-key conflict, so re-allocate and try again.
	var booking *models.Booking
	for attempt := 0; attempt < maxAllocationAttempts; attempt++ {
		roomNumber, err := bs.allocateRoomNumber(ctx, hotelID, checkIn, checkOut)
		if err != nil {
			return nil, err
		}

		booking, err = bs.bookingRepo.InsertBooking(ctx, &models.Booking{
			UserID:        userID,
			HotelID:       hotelID,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			RoomNumber:    roomNumber,
			AmountTotal:   amountTotal,
			Currency:      "usd",
			PaymentStatus: models.PaymentPending,
		})
		if err == nil {
			metrics.IncBookingCreated()
			return booking, nil
		}

		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Kind != models.KindConflict {
			return nil, err
		}
	}
	return nil, models.NewConflictError("Could not allocate a room, please retry")
}

func (bs *BookingService) GetBookingByID(ctx context.Context, id, requesterID string) (*models.BookingWithHotel, error) {
	bookingID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewValidationError("Invalid booking ID")
	}

	booking, err := bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, models.NewNotFoundError("Booking not found")
	}
	if booking.UserID != requesterID {
		return nil, models.NewForbiddenError("Forbidden")
	}

	hotel, err := bs.hotelRepo.GetHotelByID(ctx, booking.HotelID)
	if err != nil {
		return nil, err
	}
	return &models.BookingWithHotel{Booking: *booking, Hotel: hotel}, nil
}

func (bs *BookingService) GetUserBookings(ctx context.Context, userID, requesterID string, page, limit int) (*models.BookingPage, error) {
	if userID != requesterID {
		// do not leak others' bookings
		return nil, models.NewForbiddenError("Forbidden")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	bookings, total, err := bs.bookingRepo.ListBookingsByUser(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	// Populate hotels without refetching duplicates.
	hotelCache := make(map[primitive.ObjectID]*models.Hotel)
	items := make([]*models.BookingWithHotel, 0, len(bookings))
	for _, b := range bookings {
		hotel, cached := hotelCache[b.HotelID]
		if !cached {
			hotel, err = bs.hotelRepo.GetHotelByID(ctx, b.HotelID)
			if err != nil {
				return nil, err
			}
			hotelCache[b.HotelID] = hotel
		}
		items = append(items, &models.BookingWithHotel{Booking: *b, Hotel: hotel})
	}

	return &models.BookingPage{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// UpdateBookingStatus applies an owner-requested status change. PAID is
// reserved for the webhook reconciliation path, and terminal states accept no
// further transitions; re-submitting the current status is a no-op.
func (bs *BookingService) UpdateBookingStatus(ctx context.Context, id, requesterID, status string) (*models.Booking, error) {
	target, err := models.ParsePaymentStatus(status)
	if err != nil {
		return nil, err
	}

	bookingID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewValidationError("Invalid booking ID")
	}

	booking, err := bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, models.NewNotFoundError("Booking not found")
	}
	if booking.UserID != requesterID {
		return nil, models.NewForbiddenError("Forbidden")
	}

	if booking.PaymentStatus == target {
		return booking, nil
	}
	if booking.PaymentStatus.IsTerminal() {
		return nil, models.NewConflictError(fmt.Sprintf("Booking is already %s", booking.PaymentStatus))
	}
	if target == models.PaymentPaid {
		return nil, models.NewValidationError("PAID is set by payment reconciliation, not by status update")
	}

	updated, err := bs.bookingRepo.SetPaymentStatus(ctx, bookingID, target)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, models.NewNotFoundError("Booking not found")
	}
	return updated, nil
}

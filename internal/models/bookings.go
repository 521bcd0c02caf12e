package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus tracks where a booking sits in its payment lifecycle.
// PENDING is the initial state; PAID and CANCELLED are terminal.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// ParsePaymentStatus validates an externally supplied status value against
// the three-element enum.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentCancelled:
		return PaymentStatus(s), nil
	default:
		return "", NewValidationError("Invalid payment status")
	}
}

// IsTerminal reports whether no further transition is defined from s.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentPaid || s == PaymentCancelled
}

type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"user_id" json:"userId"`
	HotelID       primitive.ObjectID `bson:"hotel_id" json:"hotelId"`
	CheckIn       time.Time          `bson:"check_in" json:"checkIn"`
	CheckOut      time.Time          `bson:"check_out" json:"checkOut"`
	RoomNumber    int                `bson:"room_number" json:"roomNumber"`
	AmountTotal   float64            `bson:"amount_total" json:"amountTotal"`
	Currency      string             `bson:"currency" json:"currency"`
	PaymentStatus PaymentStatus      `bson:"payment_status" json:"paymentStatus"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

func (b *Booking) BeforeCreate() error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	if b.Currency == "" {
		b.Currency = "usd"
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = PaymentPending
	}
	return nil
}

// BookingWithHotel is a booking with its hotel document populated for reads.
type BookingWithHotel struct {
	Booking
	Hotel *Hotel `json:"hotel,omitempty"`
}

// BookingPage is the paginated listing shape returned by the user-bookings
// endpoint.
type BookingPage struct {
	Items []*BookingWithHotel `json:"items"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

type CreateBookingInput struct {
	HotelID  string `json:"hotelId" validate:"required"`
	CheckIn  string `json:"checkIn" validate:"required"`
	CheckOut string `json:"checkOut" validate:"required"`
}

type UpdateBookingStatusInput struct {
	PaymentStatus string `json:"paymentStatus" validate:"required"`
}

type BookingRepo interface {
	InsertBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error)
	ListBookingsByUser(ctx context.Context, userID string, offset, limit int) ([]*Booking, int64, error)
	ListRoomNumbers(ctx context.Context, hotelID primitive.ObjectID, checkIn, checkOut time.Time) ([]int, error)
	SetPaymentStatus(ctx context.Context, id primitive.ObjectID, status PaymentStatus) (*Booking, error)
}

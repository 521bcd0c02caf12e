package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/joshua-takyi/staynest/internal/helpers"
	"github.com/joshua-takyi/staynest/internal/metrics"
	"github.com/joshua-takyi/staynest/internal/models"
	"github.com/joshua-takyi/staynest/internal/payments"
	"github.com/stripe/stripe-go/v78"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentService struct {
	bookingRepo models.BookingRepo
	hotelRepo   models.HotelRepo
	provider    payments.CheckoutProvider
	clientURL   string
	logger      *slog.Logger
}

func NewPaymentService(bookingRepo models.BookingRepo, hotelRepo models.HotelRepo, provider payments.CheckoutProvider, clientURL string, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		bookingRepo: bookingRepo,
		hotelRepo:   hotelRepo,
		provider:    provider,
		clientURL:   clientURL,
		logger:      logger,
	}
}

// CreateCheckoutSession opens an embedded checkout session for a booking.
// Every local check runs before the provider call so a rejected request never
// leaves a stray session behind, and the idempotency key derived from the
// booking id collapses client retries into a single provider session.
func (ps *PaymentService) CreateCheckoutSession(ctx context.Context, bookingID, requesterID string) (*models.CheckoutSessionResult, error) {
	if !ps.provider.Enabled() {
		return nil, models.NewUnavailableError("Payment service not configured")
	}

	id, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return nil, models.NewValidationError("Invalid booking ID")
	}

	booking, err := ps.bookingRepo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, models.NewNotFoundError("Booking not found")
	}
	if booking.UserID != requesterID {
		return nil, models.NewForbiddenError("Forbidden")
	}

	hotel, err := ps.hotelRepo.GetHotelByID(ctx, booking.HotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, models.NewNotFoundError("Hotel not found")
	}

	if booking.AmountTotal <= 0 || math.IsInf(booking.AmountTotal, 0) || math.IsNaN(booking.AmountTotal) {
		return nil, models.NewValidationError("Booking amount is invalid")
	}

	currency := booking.Currency
	if currency == "" {
		currency = "usd"
	}
	productName := hotel.Name
	if productName == "" {
		productName = "Hotel booking"
	}

	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(productName),
	}
	if helpers.IsAbsoluteHTTPURL(hotel.Image) {
		productData.Images = []*string{stripe.String(hotel.Image)}
	}

	params := &stripe.CheckoutSessionParams{
		Mode:      stripe.String(string(stripe.CheckoutSessionModePayment)),
		UIMode:    stripe.String(string(stripe.CheckoutSessionUIModeEmbedded)),
		ReturnURL: stripe.String(fmt.Sprintf("%s/my-account?payment=success&session_id={CHECKOUT_SESSION_ID}", ps.clientURL)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(currency),
					// smallest currency unit
					UnitAmount:  stripe.Int64(int64(math.Round(booking.AmountTotal * 100))),
					ProductData: productData,
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	// Metadata is the only channel the webhook has to find its way back to
	// the local booking record.
	params.AddMetadata("bookingId", booking.ID.Hex())
	params.AddMetadata("userId", booking.UserID)
	params.AddMetadata("hotelId", booking.HotelID.Hex())
	params.SetIdempotencyKey("checkout_" + booking.ID.Hex())

	sess, err := ps.provider.CreateSession(params)
	if err != nil {
		if errors.Is(err, payments.ErrNotConfigured) {
			return nil, models.NewUnavailableError("Payment service not configured")
		}
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	metrics.IncCheckoutSessionCreated()
	ps.logger.Info("Checkout session created",
		"session_id", sess.ID,
		"booking_id", booking.ID.Hex(),
	)

	return &models.CheckoutSessionResult{
		ClientSecret: sess.ClientSecret,
		SessionID:    sess.ID,
	}, nil
}

// HandleWebhookEvent reconciles a provider event into local booking state.
// The payload must be the exact bytes received on the wire; signature
// verification runs before any event field is trusted. Event types other
// than checkout.session.completed are acknowledged untouched, and the PAID
// write is unconditional so redeliveries converge on the same terminal state.
func (ps *PaymentService) HandleWebhookEvent(ctx context.Context, payload []byte, sigHeader string) error {
	if !ps.provider.Enabled() {
		return models.NewUnavailableError("Payment service not configured")
	}

	event, err := ps.provider.ConstructEvent(payload, sigHeader)
	if err != nil {
		metrics.IncWebhookEvent("unknown", "signature_failed")
		return models.NewValidationError("Webhook signature verification failed")
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		metrics.IncWebhookEvent(string(event.Type), "ignored")
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		ps.logger.Error("Failed to decode checkout session from event", "event_id", event.ID, "error", err)
		metrics.IncWebhookEvent(string(event.Type), "undecodable")
		return nil
	}

	bookingID, ok := sess.Metadata["bookingId"]
	if !ok || bookingID == "" {
		// Data-integrity gap: a completed session we cannot attribute.
		ps.logger.Warn("Completed checkout session without bookingId metadata", "session_id", sess.ID)
		metrics.IncWebhookEvent(string(event.Type), "missing_booking")
		return nil
	}

	id, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		ps.logger.Warn("Completed checkout session with malformed bookingId metadata",
			"session_id", sess.ID,
			"booking_id", bookingID,
		)
		metrics.IncWebhookEvent(string(event.Type), "missing_booking")
		return nil
	}

	updated, err := ps.bookingRepo.SetPaymentStatus(ctx, id, models.PaymentPaid)
	if err != nil {
		metrics.IncWebhookEvent(string(event.Type), "persist_failed")
		return fmt.Errorf("failed to persist payment status: %w", err)
	}
	if updated == nil {
		ps.logger.Warn("Completed checkout session for unknown booking",
			"session_id", sess.ID,
			"booking_id", bookingID,
		)
		metrics.IncWebhookEvent(string(event.Type), "missing_booking")
		return nil
	}

	metrics.IncWebhookEvent(string(event.Type), "reconciled")
	ps.logger.Info("Booking reconciled to PAID",
		"booking_id", bookingID,
		"session_id", sess.ID,
	)
	return nil
}

// GetCheckoutSession fetches the provider's view of a session for client
// polling. When the session metadata names a user, only that user may read
// it.
func (ps *PaymentService) GetCheckoutSession(ctx context.Context, sessionID, requesterID string) (*models.CheckoutSessionView, error) {
	if !ps.provider.Enabled() {
		return nil, models.NewUnavailableError("Payment service not configured")
	}
	if sessionID == "" {
		return nil, models.NewValidationError("Session ID is required")
	}

	sess, err := ps.provider.GetSession(sessionID)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == 404 {
			return nil, models.NewNotFoundError("Checkout session not found")
		}
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	if owner, ok := sess.Metadata["userId"]; ok && owner != "" && owner != requesterID {
		return nil, models.NewForbiddenError("Forbidden")
	}

	return &models.CheckoutSessionView{
		ID:            sess.ID,
		PaymentStatus: string(sess.PaymentStatus),
		Status:        string(sess.Status),
		Metadata:      sess.Metadata,
	}, nil
}

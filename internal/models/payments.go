package models

// CheckoutSessionResult is what the client needs to embed the payment UI.
// Creating a session never mutates the booking itself.
type CheckoutSessionResult struct {
	ClientSecret string `json:"client_secret"`
	SessionID    string `json:"session_id"`
}

// CheckoutSessionView is the provider's current view of a session, used by
// the client as a polling fallback when it returns from the payment flow
// before the webhook has arrived.
type CheckoutSessionView struct {
	ID            string            `json:"id"`
	PaymentStatus string            `json:"payment_status"`
	Status        string            `json:"status"`
	Metadata      map[string]string `json:"metadata"`
}

type CreateCheckoutSessionInput struct {
	BookingID string `json:"bookingId" validate:"required"`
}

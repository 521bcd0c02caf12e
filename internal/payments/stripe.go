package payments

import (
	"errors"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
	"github.com/stripe/stripe-go/v78/webhook"
)

// ErrNotConfigured is returned by every method of the disabled provider. The
// payment endpoints translate it to a service-unavailable response instead of
// silently proceeding without credentials.
var ErrNotConfigured = errors.New("payment provider is not configured")

// CheckoutProvider abstracts the payment provider so the services receive an
// explicitly constructed client instead of reaching for a package global.
//
// ConstructEvent must be handed the exact bytes received on the wire; the
// signature is computed over the raw payload, so any re-encoding of a parsed
// body breaks verification.
type CheckoutProvider interface {
	Enabled() bool
	CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetSession(id string) (*stripe.CheckoutSession, error)
	ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error)
}

type StripeProvider struct {
	sessions      session.Client
	webhookSecret string
}

// NewStripeProvider builds a checkout provider from explicit credentials.
// An empty secret key yields the disabled variant.
func NewStripeProvider(secretKey, webhookSecret string) CheckoutProvider {
	if secretKey == "" {
		return Disabled{}
	}
	return &StripeProvider{
		sessions: session.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: secretKey,
		},
		webhookSecret: webhookSecret,
	}
}

func (p *StripeProvider) Enabled() bool {
	return true
}

func (p *StripeProvider) CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return p.sessions.New(params)
}

func (p *StripeProvider) GetSession(id string) (*stripe.CheckoutSession, error) {
	return p.sessions.Get(id, nil)
}

func (p *StripeProvider) ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, p.webhookSecret)
}

// Disabled is the provider used when no secret key is present.
type Disabled struct{}

func (Disabled) Enabled() bool {
	return false
}

func (Disabled) CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return nil, ErrNotConfigured
}

func (Disabled) GetSession(id string) (*stripe.CheckoutSession, error) {
	return nil, ErrNotConfigured
}

func (Disabled) ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return stripe.Event{}, ErrNotConfigured
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staynest/internal/models"
	"github.com/joshua-takyi/staynest/internal/services"
)

func CreateCheckoutSession(ps *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c)
		if !ok {
			return
		}

		var in models.CreateCheckoutSessionInput
		if err := c.ShouldBindJSON(&in); err != nil || in.BookingID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("bookingId is required"))
			return
		}

		result, err := ps.CreateCheckoutSession(c.Request.Context(), in.BookingID, identity.UserID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// StripeWebhook receives provider callbacks. The route carries no identity
// middleware, and the body must reach the service as the exact bytes
// received: the signature in the Stripe-Signature header is computed over
// the raw payload.
func StripeWebhook(ps *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("failed to read request body"))
			return
		}

		if err := ps.HandleWebhookEvent(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

func GetCheckoutSession(ps *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c)
		if !ok {
			return
		}

		view, err := ps.GetCheckoutSession(c.Request.Context(), c.Param("id"), identity.UserID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, view)
	}
}

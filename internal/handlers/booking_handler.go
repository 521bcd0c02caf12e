package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staynest/internal/helpers"
	"github.com/joshua-takyi/staynest/internal/models"
	"github.com/joshua-takyi/staynest/internal/services"
)

// respondError translates the service error taxonomy to a status code once,
// at the boundary.
func respondError(c *gin.Context, err error) {
	status := models.StatusFor(err)
	if status == http.StatusInternalServerError {
		// keep internals out of the response, surface via ErrorHandler log
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(status, models.ErrorResponse(models.PublicMessage(err)))
}

func requireIdentity(c *gin.Context) (*helpers.Identity, bool) {
	identity, ok := helpers.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("Authentication required"))
		return nil, false
	}
	return identity, true
}

func CreateBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c)
		if !ok {
			return
		}

		var in models.CreateBookingInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("hotelId, checkIn, and checkOut are required"))
			return
		}

		booking, err := bs.CreateBooking(c.Request.Context(), identity.UserID, &in)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, booking)
	}
}

func GetUserBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c)
		if !ok {
			return
		}

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid page parameter"))
			return
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
			return
		}

		result, err := bs.GetUserBookings(c.Request.Context(), c.Param("userId"), identity.UserID, page, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func GetBookingByID(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c)
		if !ok {
			return
		}

		booking, err := bs.GetBookingByID(c.Request.Context(), c.Param("id"), identity.UserID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, booking)
	}
}

func UpdateBookingStatus(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c)
		if !ok {
			return
		}

		var in models.UpdateBookingStatusInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("paymentStatus is required"))
			return
		}

		booking, err := bs.UpdateBookingStatus(c.Request.Context(), c.Param("id"), identity.UserID, in.PaymentStatus)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, booking)
	}
}

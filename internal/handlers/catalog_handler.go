package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staynest/internal/models"
	"github.com/joshua-takyi/staynest/internal/services"
)

func CreateLocation(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireIdentity(c); !ok {
			return
		}

		var location models.Location
		if err := c.ShouldBindJSON(&location); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := cs.CreateLocation(c.Request.Context(), &location)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Location created successfully"))
	}
}

func ListLocations(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		locations, err := cs.ListLocations(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(locations, ""))
	}
}

func GetLocationByID(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		location, err := cs.GetLocationByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(location, ""))
	}
}

func UpdateLocation(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireIdentity(c); !ok {
			return
		}

		var in struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("name is required"))
			return
		}

		updated, err := cs.UpdateLocation(c.Request.Context(), c.Param("id"), in.Name)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Location updated successfully"))
	}
}

func DeleteLocation(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireIdentity(c); !ok {
			return
		}

		if err := cs.DeleteLocation(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Location deleted successfully"))
	}
}

func CreateReview(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c)
		if !ok {
			return
		}

		var in models.CreateReviewInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		review, err := cs.CreateReview(c.Request.Context(), identity.UserID, &in)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(review, "Review created successfully"))
	}
}

func ListReviewsByHotel(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := cs.ListReviewsByHotel(c.Request.Context(), c.Param("hotelId"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(reviews, ""))
	}
}

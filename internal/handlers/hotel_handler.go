package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staynest/internal/models"
	"github.com/joshua-takyi/staynest/internal/services"
)

func CreateHotel(hs *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireIdentity(c); !ok {
			return
		}

		var hotel models.Hotel
		if err := c.ShouldBindJSON(&hotel); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := hs.CreateHotel(c.Request.Context(), &hotel)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Hotel created successfully"))
	}
}

// floatQuery parses an optional float query parameter. The second return is
// false when the parameter is present but not a number.
func floatQuery(c *gin.Context, name string) (*float64, bool) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// hotelFilterFromQuery builds the search filter from the listing's query
// parameters: q, location, minPrice, maxPrice, ratingMin, ratingMax,
// amenities (comma-separated), sortBy.
func hotelFilterFromQuery(c *gin.Context) (*models.HotelFilter, error) {
	filter := &models.HotelFilter{
		Query:    strings.TrimSpace(c.Query("q")),
		Location: strings.TrimSpace(c.Query("location")),
		SortBy:   c.Query("sortBy"),
	}

	for _, p := range []struct {
		name string
		dst  **float64
	}{
		{"minPrice", &filter.MinPrice},
		{"maxPrice", &filter.MaxPrice},
		{"ratingMin", &filter.RatingMin},
		{"ratingMax", &filter.RatingMax},
	} {
		v, ok := floatQuery(c, p.name)
		if !ok {
			return nil, models.NewValidationError("invalid " + p.name + " parameter")
		}
		*p.dst = v
	}

	if raw := c.Query("amenities"); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				filter.Amenities = append(filter.Amenities, a)
			}
		}
	}

	return filter, nil
}

func ListHotels(hs *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
			return
		}
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid offset parameter"))
			return
		}

		filter, err := hotelFilterFromQuery(c)
		if err != nil {
			respondError(c, err)
			return
		}

		hotels, total, err := hs.ListHotels(c.Request.Context(), filter, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(hotels, page, limit, total))
	}
}

func GetHotelByID(hs *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotel, err := hs.GetHotelByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(hotel, ""))
	}
}

func UpdateHotel(hs *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireIdentity(c); !ok {
			return
		}

		var hotel models.Hotel
		if err := c.ShouldBindJSON(&hotel); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := hs.UpdateHotel(c.Request.Context(), c.Param("id"), &hotel)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Hotel updated successfully"))
	}
}

func UpdateHotelPrice(hs *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireIdentity(c); !ok {
			return
		}

		var in struct {
			Price float64 `json:"price"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("price is required"))
			return
		}

		if err := hs.UpdateHotelPrice(c.Request.Context(), c.Param("id"), in.Price); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Hotel price updated successfully"))
	}
}

func DeleteHotel(hs *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireIdentity(c); !ok {
			return
		}

		if err := hs.DeleteHotel(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Hotel deleted successfully"))
	}
}

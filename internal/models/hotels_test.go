package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func float64Ptr(v float64) *float64 { return &v }

func TestHotelFilterBuildQuery(t *testing.T) {
	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.Empty(t, (&HotelFilter{}).buildQuery())
		assert.Empty(t, (*HotelFilter)(nil).buildQuery())
	})

	t.Run("text query wins over location", func(t *testing.T) {
		query := (&HotelFilter{Query: "beachfront", Location: "Accra"}).buildQuery()

		assert.Equal(t, bson.M{"$search": "beachfront"}, query["$text"])
		assert.NotContains(t, query, "location")
	})

	t.Run("location is case-insensitive contains", func(t *testing.T) {
		query := (&HotelFilter{Location: "accra"}).buildQuery()

		assert.Equal(t, bson.M{"$regex": "accra", "$options": "i"}, query["location"])
	})

	t.Run("price and rating ranges", func(t *testing.T) {
		query := (&HotelFilter{
			MinPrice:  float64Ptr(50),
			MaxPrice:  float64Ptr(300),
			RatingMin: float64Ptr(3),
		}).buildQuery()

		assert.Equal(t, bson.M{"$gte": 50.0, "$lte": 300.0}, query["price"])
		assert.Equal(t, bson.M{"$gte": 3.0}, query["rating"])
	})

	t.Run("amenities require all values", func(t *testing.T) {
		query := (&HotelFilter{Amenities: []string{"wifi", "pool"}}).buildQuery()

		assert.Equal(t, bson.M{"$all": []string{"wifi", "pool"}}, query["amenities"])
	})
}

func TestHotelFilterSortSpec(t *testing.T) {
	t.Run("text query sorts by relevance", func(t *testing.T) {
		sort := (&HotelFilter{Query: "beachfront", SortBy: "price-low"}).sortSpec()

		require.Len(t, sort, 1)
		assert.Equal(t, "score", sort[0].Key)
		assert.Equal(t, bson.M{"$meta": "textScore"}, sort[0].Value)
	})

	tests := []struct {
		sortBy string
		key    string
		dir    int
	}{
		{"price-low", "price", 1},
		{"price-high", "price", -1},
		{"rating-high", "rating", -1},
		{"rating-low", "rating", 1},
		{"name-asc", "name", 1},
		{"name-desc", "name", -1},
		{"", "_id", -1},
		{"garbage", "_id", -1},
	}
	for _, tt := range tests {
		t.Run("sortBy "+tt.sortBy, func(t *testing.T) {
			sort := (&HotelFilter{SortBy: tt.sortBy}).sortSpec()

			require.Len(t, sort, 1)
			assert.Equal(t, tt.key, sort[0].Key)
			assert.Equal(t, tt.dir, sort[0].Value)
		})
	}
}

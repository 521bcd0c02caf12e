package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const HotelColName = "hotels"

type Hotel struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Location    string             `bson:"location" json:"location" validate:"required"`
	Image       string             `bson:"image" json:"image"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Price       float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Rating      float64            `bson:"rating,omitempty" json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Amenities   []string           `bson:"amenities,omitempty" json:"amenities,omitempty"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

func (h *Hotel) BeforeCreate() error {
	if h.ID.IsZero() {
		h.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	h.UpdatedAt = now
	return nil
}

// HotelFilter narrows and orders a hotel listing. The zero value matches
// everything and sorts newest first.
type HotelFilter struct {
	Query     string
	Location  string
	MinPrice  *float64
	MaxPrice  *float64
	RatingMin *float64
	RatingMax *float64
	Amenities []string
	SortBy    string
}

// buildQuery translates the filter into a Mongo query document. A text query
// wins over the location match; the two are never combined.
func (f *HotelFilter) buildQuery() bson.M {
	query := bson.M{}
	if f == nil {
		return query
	}

	if f.Query != "" {
		query["$text"] = bson.M{"$search": f.Query}
	} else if f.Location != "" {
		query["location"] = bson.M{"$regex": f.Location, "$options": "i"}
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	rating := bson.M{}
	if f.RatingMin != nil {
		rating["$gte"] = *f.RatingMin
	}
	if f.RatingMax != nil {
		rating["$lte"] = *f.RatingMax
	}
	if len(rating) > 0 {
		query["rating"] = rating
	}

	if len(f.Amenities) > 0 {
		query["amenities"] = bson.M{"$all": f.Amenities}
	}

	return query
}

// sortSpec maps the filter's sort key to a Mongo sort document. Text queries
// always sort by relevance; unknown keys fall back to newest first.
func (f *HotelFilter) sortSpec() bson.D {
	if f != nil && f.Query != "" {
		return bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}
	}

	sortBy := ""
	if f != nil {
		sortBy = f.SortBy
	}
	switch sortBy {
	case "price-low":
		return bson.D{{Key: "price", Value: 1}}
	case "price-high":
		return bson.D{{Key: "price", Value: -1}}
	case "rating-high":
		return bson.D{{Key: "rating", Value: -1}}
	case "rating-low":
		return bson.D{{Key: "rating", Value: 1}}
	case "name-asc":
		return bson.D{{Key: "name", Value: 1}}
	case "name-desc":
		return bson.D{{Key: "name", Value: -1}}
	default:
		return bson.D{{Key: "_id", Value: -1}}
	}
}

type HotelRepo interface {
	CreateHotel(ctx context.Context, hotel *Hotel) (*Hotel, error)
	GetHotelByID(ctx context.Context, id primitive.ObjectID) (*Hotel, error)
	ListHotels(ctx context.Context, filter *HotelFilter, offset, limit int) ([]*Hotel, int64, error)
	UpdateHotel(ctx context.Context, id primitive.ObjectID, hotel *Hotel) (*Hotel, error)
	UpdateHotelPrice(ctx context.Context, id primitive.ObjectID, price float64) error
	DeleteHotel(ctx context.Context, id primitive.ObjectID) error
}

func (mdb *MongodbRepo) ensureHotelIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, DbName, HotelColName)
	if err != nil {
		return err
	}

	_, err = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// Backs the q= search; names weigh heavier than descriptions.
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "location", Value: "text"},
				{Key: "amenities", Value: "text"},
			},
			Options: options.Index().SetWeights(bson.M{
				"name":        5,
				"description": 3,
				"location":    2,
				"amenities":   1,
			}),
		},
		{
			Keys: bson.D{{Key: "amenities", Value: 1}},
		},
	})
	return err
}

func (mdb *MongodbRepo) CreateHotel(ctx context.Context, hotel *Hotel) (*Hotel, error) {
	if err := hotel.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare hotel for creation: %w", err)
	}
	col, err := mdb.GetCollection(ctx, DbName, HotelColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	_, err = col.InsertOne(ctx, hotel)
	if err != nil {
		return nil, fmt.Errorf("failed to insert hotel: %w", err)
	}
	return hotel, nil
}

func (mdb *MongodbRepo) GetHotelByID(ctx context.Context, id primitive.ObjectID) (*Hotel, error) {
	col, err := mdb.GetCollection(ctx, DbName, HotelColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var hotel Hotel
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&hotel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find hotel: %w", err)
	}
	return &hotel, nil
}

func (mdb *MongodbRepo) ListHotels(ctx context.Context, filter *HotelFilter, offset, limit int) ([]*Hotel, int64, error) {
	col, err := mdb.GetCollection(ctx, DbName, HotelColName)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting collection: %v", err)
	}

	query := filter.buildQuery()

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count hotels: %w", err)
	}

	opts := options.Find().
		SetSort(filter.sortSpec()).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	if _, textSearch := query["$text"]; textSearch {
		opts.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
	}

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find hotels: %w", err)
	}
	defer cursor.Close(ctx)

	var hotels []*Hotel
	for cursor.Next(ctx) {
		var h Hotel
		if err := cursor.Decode(&h); err != nil {
			return nil, 0, fmt.Errorf("failed to decode hotel: %w", err)
		}
		hotels = append(hotels, &h)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %v", err)
	}

	return hotels, total, nil
}

func (mdb *MongodbRepo) UpdateHotel(ctx context.Context, id primitive.ObjectID, hotel *Hotel) (*Hotel, error) {
	col, err := mdb.GetCollection(ctx, DbName, HotelColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	update := bson.M{"$set": bson.M{
		"name":        hotel.Name,
		"location":    hotel.Location,
		"image":       hotel.Image,
		"description": hotel.Description,
		"price":       hotel.Price,
		"rating":      hotel.Rating,
		"amenities":   hotel.Amenities,
		"updated_at":  time.Now(),
	}}

	var updated Hotel
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update hotel: %w", err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) UpdateHotelPrice(ctx context.Context, id primitive.ObjectID, price float64) error {
	col, err := mdb.GetCollection(ctx, DbName, HotelColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"price":      price,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("failed to update hotel price: %w", err)
	}
	if res.MatchedCount == 0 {
		return NewNotFoundError("Hotel not found")
	}
	return nil
}

func (mdb *MongodbRepo) DeleteHotel(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, DbName, HotelColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete hotel: %w", err)
	}
	if res.DeletedCount == 0 {
		return NewNotFoundError("Hotel not found")
	}
	return nil
}

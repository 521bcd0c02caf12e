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

const LocationColName = "locations"

type Location struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"createdAt,omitempty"`
}

type LocationRepo interface {
	CreateLocation(ctx context.Context, location *Location) (*Location, error)
	GetLocationByID(ctx context.Context, id primitive.ObjectID) (*Location, error)
	ListLocations(ctx context.Context) ([]*Location, error)
	UpdateLocation(ctx context.Context, id primitive.ObjectID, name string) (*Location, error)
	DeleteLocation(ctx context.Context, id primitive.ObjectID) error
}

func (mdb *MongodbRepo) CreateLocation(ctx context.Context, location *Location) (*Location, error) {
	if location.ID.IsZero() {
		location.ID = primitive.NewObjectID()
	}
	if location.CreatedAt.IsZero() {
		location.CreatedAt = time.Now()
	}
	col, err := mdb.GetCollection(ctx, DbName, LocationColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	_, err = col.InsertOne(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to insert location: %w", err)
	}
	return location, nil
}

func (mdb *MongodbRepo) GetLocationByID(ctx context.Context, id primitive.ObjectID) (*Location, error) {
	col, err := mdb.GetCollection(ctx, DbName, LocationColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var location Location
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&location)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find location: %w", err)
	}
	return &location, nil
}

func (mdb *MongodbRepo) ListLocations(ctx context.Context) ([]*Location, error) {
	col, err := mdb.GetCollection(ctx, DbName, LocationColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find locations: %w", err)
	}
	defer cursor.Close(ctx)

	var locations []*Location
	for cursor.Next(ctx) {
		var l Location
		if err := cursor.Decode(&l); err != nil {
			return nil, fmt.Errorf("failed to decode location: %w", err)
		}
		locations = append(locations, &l)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return locations, nil
}

func (mdb *MongodbRepo) UpdateLocation(ctx context.Context, id primitive.ObjectID, name string) (*Location, error) {
	col, err := mdb.GetCollection(ctx, DbName, LocationColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var updated Location
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"name": name}}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update location: %w", err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteLocation(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, DbName, LocationColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if res.DeletedCount == 0 {
		return NewNotFoundError("Location not found")
	}
	return nil
}

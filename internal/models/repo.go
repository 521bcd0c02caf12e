package models

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

const DbName = "staynest"

type MongodbRepo struct {
	mongodbClient *mongo.Client
}

func MongodbNewRepo(mongodbClient *mongo.Client) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
	}
}

func (mdb *MongodbRepo) GetCollection(ctx context.Context, dbName, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	col := mdb.mongodbClient.Database(dbName).Collection(colName)
	return col, nil
}

// EnsureIndexes creates the indexes the repositories rely on. Called once at
// startup; recreating an existing index is a no-op on the Mongo side.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	if err := mdb.ensureBookingIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure booking indexes: %w", err)
	}
	if err := mdb.ensureHotelIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure hotel indexes: %w", err)
	}
	return nil
}

package store

import (
	"context"

	"github.com/openshelf/locallibrary/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertInstance(ctx context.Context, inst *models.BookInstance) (primitive.ObjectID, error) {
	if inst.Status == "" {
		inst.Status = models.StatusMaintenance
	}
	res, err := db.BookInstances().InsertOne(ctx, inst, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) AllInstances(ctx context.Context) ([]models.BookInstance, error) {
	cur, err := db.BookInstances().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"imprint": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var insts []models.BookInstance
	if err := cur.All(ctx, &insts); err != nil {
		return nil, err
	}
	return insts, nil
}

// InstancesForBook returns every copy referencing the given book.
func (db *DB) InstancesForBook(ctx context.Context, bookID primitive.ObjectID) ([]models.BookInstance, error) {
	cur, err := db.BookInstances().Find(ctx, bson.M{"book": bookID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var insts []models.BookInstance
	if err := cur.All(ctx, &insts); err != nil {
		return nil, err
	}
	return insts, nil
}

func (db *DB) CountInstances(ctx context.Context) (int64, error) {
	return db.BookInstances().CountDocuments(ctx, bson.M{})
}

func (db *DB) CountInstancesByStatus(ctx context.Context, status string) (int64, error) {
	return db.BookInstances().CountDocuments(ctx, bson.M{"status": status})
}

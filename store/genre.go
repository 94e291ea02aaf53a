package store

import (
	"context"

	"github.com/openshelf/locallibrary/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertGenre(ctx context.Context, genre *models.Genre) (primitive.ObjectID, error) {
	res, err := db.Genres().InsertOne(ctx, genre, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) AllGenres(ctx context.Context) ([]models.Genre, error) {
	cur, err := db.Genres().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var genres []models.Genre
	if err := cur.All(ctx, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

func (db *DB) GenreByID(ctx context.Context, id primitive.ObjectID) (*models.Genre, error) {
	var genre models.Genre
	err := db.Genres().FindOne(ctx, bson.M{"_id": id}).Decode(&genre)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// ReplaceGenre replaces the full document while preserving its id.
func (db *DB) ReplaceGenre(ctx context.Context, id primitive.ObjectID, genre *models.Genre) error {
	genre.ID = id
	res, err := db.Genres().ReplaceOne(ctx, bson.M{"_id": id}, genre)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) CountGenres(ctx context.Context) (int64, error) {
	return db.Genres().CountDocuments(ctx, bson.M{})
}

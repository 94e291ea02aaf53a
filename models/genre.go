package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Genre struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// URL returns the canonical display URL for the genre.
func (g *Genre) URL() string {
	return "/catalog/genre/" + g.ID.Hex()
}

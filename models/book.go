package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Book struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title      string               `bson:"title" json:"title"`
	AuthorID   primitive.ObjectID   `bson:"author" json:"authorId"`
	Summary    string               `bson:"summary" json:"summary"`
	ISBN       string               `bson:"isbn" json:"isbn"`
	Price      string               `bson:"price" json:"price"` // decimal string, passed verbatim to the gateway
	GenreIDs   []primitive.ObjectID `bson:"genre,omitempty" json:"genreIds,omitempty"`
	CoverS3Key string               `bson:"coverS3Key,omitempty" json:"-"` // object key in S3 when a cover image is stored
}

// URL returns the canonical display URL for the book.
func (b *Book) URL() string {
	return "/catalog/book/" + b.ID.Hex()
}

// BookDetail is a Book with its author and genre references resolved.
type BookDetail struct {
	Book
	Author *Author `json:"author,omitempty"`
	Genres []Genre `json:"genres,omitempty"`
}

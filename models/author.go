package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Author struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName   string             `bson:"first_name" json:"firstName"`
	FamilyName  string             `bson:"family_name" json:"familyName"`
	DateOfBirth *time.Time         `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"`
	DateOfDeath *time.Time         `bson:"date_of_death,omitempty" json:"dateOfDeath,omitempty"`
}

// Name returns the "Family, First" display string.
func (a *Author) Name() string {
	if a.FamilyName == "" && a.FirstName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan returns "birth - death", with either side blank when unknown.
func (a *Author) Lifespan() string {
	return formatDate(a.DateOfBirth) + " - " + formatDate(a.DateOfDeath)
}

// URL returns the canonical display URL for the author.
func (a *Author) URL() string {
	return "/catalog/author/" + a.ID.Hex()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

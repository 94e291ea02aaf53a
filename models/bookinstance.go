package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookInstance status values. A copy starts in maintenance until a librarian
// marks it available.
const (
	StatusAvailable   = "Available"
	StatusMaintenance = "Maintenance"
	StatusLoaned      = "Loaned"
	StatusReserved    = "Reserved"
)

var ValidInstanceStatuses = []string{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}

// BookInstance is a physical copy of a Book.
type BookInstance struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookID  primitive.ObjectID `bson:"book" json:"bookId"`
	Imprint string             `bson:"imprint" json:"imprint"`
	Status  string             `bson:"status" json:"status"`
	DueBack *time.Time         `bson:"due_back,omitempty" json:"dueBack,omitempty"` // set while the copy is on loan
}

// URL returns the canonical display URL for the instance.
func (bi *BookInstance) URL() string {
	return "/catalog/bookinstance/" + bi.ID.Hex()
}

// IsValidInstanceStatus reports whether s is one of the four instance statuses.
func IsValidInstanceStatus(s string) bool {
	for _, v := range ValidInstanceStatuses {
		if v == s {
			return true
		}
	}
	return false
}

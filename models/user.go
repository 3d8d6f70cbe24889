package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can hold.
var UserRoles = []string{"admin", "agent", "broker", "customer", "consultant", "dealer"}

// Channels a user can be verified through.
var VerificationTypes = []string{"Email", "Phone"}

const DefaultUserRole = "customer"

type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Fullname         string             `bson:"fullname" json:"fullname"`
	Email            string             `bson:"email" json:"email"`
	Password         string             `bson:"password" json:"-"`
	Contact          string             `bson:"contact" json:"contact"`
	Role             string             `bson:"role" json:"role"`
	IsActive         bool               `bson:"isActive" json:"isActive"`
	IsVerified       bool               `bson:"isVerified" json:"isVerified"`
	VerificationType []string           `bson:"verificationType" json:"verificationType"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the poster projection attached to property listings.
type UserSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Fullname string             `bson:"fullname" json:"fullname"`
	Email    string             `bson:"email" json:"email"`
	Contact  string             `bson:"contact" json:"contact"`
	Role     string             `bson:"role" json:"role"`
}

func IsValidUserRole(role string) bool {
	return contains(UserRoles, role)
}

func IsValidVerificationType(vt string) bool {
	return contains(VerificationTypes, vt)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

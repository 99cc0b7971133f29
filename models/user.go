package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Address struct {
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postal_code" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"first_name" json:"firstName"`
	LastName  string             `bson:"last_name" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	// ซ่อน PasswordHash จาก JSON output
	PasswordHash string    `bson:"password" json:"-"`
	PhoneNumber  string    `bson:"phone_number" json:"phoneNumber"`
	Address      Address   `bson:"address" json:"address"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

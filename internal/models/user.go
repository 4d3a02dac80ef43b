package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user account in the Knowledge Network.
// Friends and Enemies are one-directional, duplicate-free reference sets;
// a user never appears in its own sets.
type User struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Email          string               `json:"email" bson:"email"`
	Username       string               `json:"username" bson:"username"`
	HashedPassword string               `json:"-" bson:"hashed_password"`
	Role           string               `json:"role" bson:"role"`
	Friends        []primitive.ObjectID `json:"friends" bson:"friends"`
	Enemies        []primitive.ObjectID `json:"enemies" bson:"enemies"`
	Knowledges     []primitive.ObjectID `json:"knowledges" bson:"knowledges"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at" bson:"updated_at"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Score bounds for a knowledge item.
const (
	MinInterestingScore = 0
	MaxInterestingScore = 10
	MinDifficultyLevel  = 1
	MaxDifficultyLevel  = 5
)

// KnowledgePatch carries the fields of a knowledge update. Pointer fields
// distinguish an absent field from a zero value such as an interesting
// score of 0.
type KnowledgePatch struct {
	Name             *string `json:"name"`
	InterestingScore *int    `json:"interestingScore"`
	DifficultyLevel  *int    `json:"difficultyLevel"`
}

// Knowledge is a resource owned by exactly one user. Owner is set at
// creation from the authenticated identity and never changes afterwards.
type Knowledge struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name"`
	InterestingScore int                `json:"interestingScore" bson:"interesting_score"`
	DifficultyLevel  int                `json:"difficultyLevel" bson:"difficulty_level"`
	Owner            primitive.ObjectID `json:"owner" bson:"owner"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Menu struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text string             `bson:"menu" json:"menu"`
}

// MenuInput is the inline form of a menu inside a restaurant payload.
type MenuInput struct {
	Text string `json:"menu" validate:"required"`
}

package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RestaurantAudit struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RestaurantID string             `bson:"restaurant_id" json:"restaurant_id"`
	EventType    string             `bson:"event_type" json:"event_type"`
	Name         string             `bson:"name" json:"name"`
	MenuCount    int                `bson:"menu_count" json:"menu_count"`
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
}

package domain

import (
	"time"
)

type RestaurantEvent struct {
	EventType    string    `json:"event_type"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	MenuCount    int       `json:"menu_count"`
	Timestamp    time.Time `json:"timestamp"`
}

const (
	EventRestaurantCreated = "restaurant.created"
	EventRestaurantUpdated = "restaurant.updated"
	EventRestaurantDeleted = "restaurant.deleted"
)

package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Restaurant is the stored form; Menus holds references into the menus collection.
type Restaurant struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name          string               `bson:"name" json:"name"`
	Description   string               `bson:"description" json:"description"`
	Location      string               `bson:"location" json:"location"`
	OpeningHours  string               `bson:"openingHours,omitempty" json:"openingHours,omitempty"`
	ContactNumber string               `bson:"contactNumber,omitempty" json:"contactNumber,omitempty"`
	Category      string               `bson:"category,omitempty" json:"category,omitempty"`
	Menus         []primitive.ObjectID `bson:"menus" json:"menus"`
}

// PopulatedRestaurant is a Restaurant with its menu references resolved.
type PopulatedRestaurant struct {
	ID            primitive.ObjectID `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Location      string             `json:"location"`
	OpeningHours  string             `json:"openingHours,omitempty"`
	ContactNumber string             `json:"contactNumber,omitempty"`
	Category      string             `json:"category,omitempty"`
	Menus         []Menu             `json:"menus"`
}

// Populate resolves the restaurant's references against menus, keyed by id.
// References without a matching menu are dropped, order is kept.
func (r *Restaurant) Populate(menus map[primitive.ObjectID]Menu) *PopulatedRestaurant {
	resolved := make([]Menu, 0, len(r.Menus))
	for _, id := range r.Menus {
		if menu, ok := menus[id]; ok {
			resolved = append(resolved, menu)
		}
	}

	return &PopulatedRestaurant{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Location:      r.Location,
		OpeningHours:  r.OpeningHours,
		ContactNumber: r.ContactNumber,
		Category:      r.Category,
		Menus:         resolved,
	}
}

type CreateRestaurantInput struct {
	Name          string      `json:"name" validate:"required"`
	Description   string      `json:"description" validate:"required"`
	Location      string      `json:"location" validate:"required"`
	OpeningHours  string      `json:"openingHours"`
	ContactNumber string      `json:"contactNumber"`
	Category      string      `json:"category"`
	Menus         []MenuInput `json:"menus" validate:"dive"`
}

// UpdateRestaurantInput carries a partial update. A nil field was not
// supplied; a nil Menus leaves the menu list untouched, an empty one clears it.
type UpdateRestaurantInput struct {
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
	Location      *string    `json:"location"`
	OpeningHours  *string    `json:"openingHours"`
	ContactNumber *string    `json:"contactNumber"`
	Category      *string    `json:"category"`
	Menus         *[]MenuRef `json:"menus"`
}

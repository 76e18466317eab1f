package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidMenuRef = errors.New("menu entry must be a menu id or a menu object")

// MenuRef is one entry of an update's menus list: either a reference to an
// existing menu or inline data for a new one. Exactly one of the two is set.
type MenuRef struct {
	ID     primitive.ObjectID
	Inline *MenuInput
}

func ExistingMenu(id primitive.ObjectID) MenuRef {
	return MenuRef{ID: id}
}

func InlineMenu(text string) MenuRef {
	return MenuRef{Inline: &MenuInput{Text: text}}
}

func (m MenuRef) IsExisting() bool {
	return m.Inline == nil
}

// UnmarshalJSON accepts a hex id string, an object carrying a valid "id"
// (as returned by a populated read), or an inline {"menu": "..."} object.
func (m *MenuRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidMenuRef
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidMenuRef, s)
		}
		*m = ExistingMenu(id)
		return nil
	case '{':
		var obj struct {
			ID   string `json:"id"`
			Text string `json:"menu"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if obj.ID != "" {
			if id, err := primitive.ObjectIDFromHex(obj.ID); err == nil {
				*m = ExistingMenu(id)
				return nil
			}
		}
		*m = InlineMenu(obj.Text)
		return nil
	default:
		return ErrInvalidMenuRef
	}
}

package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMenuRef_UnmarshalJSON(t *testing.T) {
	id := primitive.NewObjectID()

	tests := []struct {
		name     string
		input    string
		existing bool
		wantID   primitive.ObjectID
		wantText string
		wantErr  bool
	}{
		{name: "id string", input: `"` + id.Hex() + `"`, existing: true, wantID: id},
		{name: "populated object", input: `{"id":"` + id.Hex() + `","menu":"Soup"}`, existing: true, wantID: id},
		{name: "inline object", input: `{"menu":"Soup"}`, wantText: "Soup"},
		{name: "object with bad id is inline", input: `{"id":"nope","menu":"Soup"}`, wantText: "Soup"},
		{name: "non id string", input: `"Soup"`, wantErr: true},
		{name: "number", input: `42`, wantErr: true},
		{name: "array", input: `[]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref MenuRef
			err := json.Unmarshal([]byte(tt.input), &ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.existing, ref.IsExisting())
			if tt.existing {
				assert.Equal(t, tt.wantID, ref.ID)
				return
			}
			require.NotNil(t, ref.Inline)
			assert.Equal(t, tt.wantText, ref.Inline.Text)
		})
	}
}

func TestUpdateRestaurantInput_Presence(t *testing.T) {
	var in UpdateRestaurantInput
	require.NoError(t, json.Unmarshal([]byte(`{"category":"Thai","name":"","menus":null}`), &in))

	require.NotNil(t, in.Category)
	assert.Equal(t, "Thai", *in.Category)
	require.NotNil(t, in.Name)
	assert.Equal(t, "", *in.Name)
	assert.Nil(t, in.Description)
	assert.Nil(t, in.Menus)

	require.NoError(t, json.Unmarshal([]byte(`{"menus":[]}`), &in))
	require.NotNil(t, in.Menus)
	assert.Empty(t, *in.Menus)
}

func TestRestaurant_Populate(t *testing.T) {
	soup := Menu{ID: primitive.NewObjectID(), Text: "Soup"}
	salad := Menu{ID: primitive.NewObjectID(), Text: "Salad"}
	missing := primitive.NewObjectID()

	r := &Restaurant{
		ID:       primitive.NewObjectID(),
		Name:     "A",
		Category: "Bistro",
		Menus:    []primitive.ObjectID{salad.ID, missing, soup.ID, salad.ID},
	}

	p := r.Populate(map[primitive.ObjectID]Menu{soup.ID: soup, salad.ID: salad})

	assert.Equal(t, r.ID, p.ID)
	assert.Equal(t, "A", p.Name)
	assert.Equal(t, "Bistro", p.Category)
	assert.Equal(t, []Menu{salad, soup, salad}, p.Menus)
}

func TestRestaurant_PopulateEmpty(t *testing.T) {
	p := (&Restaurant{}).Populate(nil)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"menus":[]`)
}

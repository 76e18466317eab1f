package main

import (
	"net/http"
	"strconv"

	"github.com/Beka01247/restaurant-api/internal/domain"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultAuditLimit = 50

// restaurantIDParam parses the {id} path parameter. A malformed id can never
// match a record, so callers answer it as not found.
func restaurantIDParam(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, errInvalidID
	}
	return id, nil
}

// listRestaurantsHandler godoc
//
//	@Summary		List restaurants
//	@Description	Lists every restaurant with its menus populated
//	@Tags			restaurants
//	@Produce		json
//	@Success		200	{array}		domain.PopulatedRestaurant
//	@Failure		500	{object}	messageResponse
//	@Router			/restaurants [get]
func (app *application) listRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	restaurants, err := app.restaurantService.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, restaurants); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getRestaurantHandler godoc
//
//	@Summary		Get restaurant by ID
//	@Description	Get one restaurant with its menus populated
//	@Tags			restaurants
//	@Produce		json
//	@Param			id	path		string	true	"Restaurant ID"
//	@Success		200	{object}	domain.PopulatedRestaurant
//	@Failure		404	{object}	messageResponse
//	@Failure		500	{object}	messageResponse
//	@Router			/restaurants/{id} [get]
func (app *application) getRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := restaurantIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	restaurant, err := app.restaurantService.Get(r.Context(), id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createRestaurantHandler godoc
//
//	@Summary		Create restaurant
//	@Description	Creates the submitted menus, then a restaurant referencing them
//	@Tags			restaurants
//	@Accept			json
//	@Produce		json
//	@Param			request	body		domain.CreateRestaurantInput	true	"Restaurant"
//	@Success		201		{object}	domain.Restaurant
//	@Failure		400		{object}	messageResponse
//	@Failure		500		{object}	messageResponse
//	@Router			/restaurants [post]
func (app *application) createRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRestaurantInput
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant, err := app.restaurantService.Create(r.Context(), req)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateRestaurantHandler godoc
//
//	@Summary		Update restaurant
//	@Description	Replaces the supplied non-empty fields; a supplied menus list replaces the old one
//	@Tags			restaurants
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Restaurant ID"
//	@Param			request	body		domain.UpdateRestaurantInput	true	"Partial restaurant"
//	@Success		200		{object}	domain.Restaurant
//	@Failure		400		{object}	messageResponse
//	@Failure		404		{object}	messageResponse
//	@Failure		500		{object}	messageResponse
//	@Router			/restaurants/{id} [put]
func (app *application) updateRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := restaurantIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	var req domain.UpdateRestaurantInput
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant, err := app.restaurantService.Update(r.Context(), id, req)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteRestaurantHandler godoc
//
//	@Summary		Delete restaurant
//	@Description	Deletes a restaurant; its menus are kept
//	@Tags			restaurants
//	@Produce		json
//	@Param			id	path		string	true	"Restaurant ID"
//	@Success		200	{object}	messageResponse
//	@Failure		404	{object}	messageResponse
//	@Failure		500	{object}	messageResponse
//	@Router			/restaurants/{id} [delete]
func (app *application) deleteRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := restaurantIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	if err := app.restaurantService.Delete(r.Context(), id); err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := writeJsonMessage(w, http.StatusOK, "Deleted Restaurant"); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getRestaurantAuditHandler godoc
//
//	@Summary		Restaurant audit trail
//	@Description	Recorded create/update/delete events of a restaurant, newest first
//	@Tags			restaurants
//	@Produce		json
//	@Param			id		path		string	true	"Restaurant ID"
//	@Param			limit	query		int		false	"Maximum entries"	default(50)
//	@Success		200		{array}		domain.RestaurantAudit
//	@Failure		400		{object}	messageResponse
//	@Failure		404		{object}	messageResponse
//	@Failure		500		{object}	messageResponse
//	@Router			/restaurants/{id}/audit [get]
func (app *application) getRestaurantAuditHandler(w http.ResponseWriter, r *http.Request) {
	id, err := restaurantIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			app.badRequestResponse(w, r, errInvalidLimit)
			return
		}
	}

	audits, err := app.restaurantService.GetRestaurantAudit(r.Context(), id, limit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, audits); err != nil {
		app.internalServerError(w, r, err)
	}
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Beka01247/restaurant-api/internal/queue"
	"github.com/Beka01247/restaurant-api/internal/ratelimiter"
	"github.com/Beka01247/restaurant-api/internal/service"
	"github.com/Beka01247/restaurant-api/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStorage struct {
	pingErr error
}

func (s *fakeStorage) Ping(context.Context) error  { return s.pingErr }
func (s *fakeStorage) Close(context.Context) error { return nil }

type testApp struct {
	*application
	restaurants *memory.RestaurantRepository
	menus       *memory.MenuRepository
	handler     http.Handler
}

func newTestApplication(t *testing.T, cfg config) *testApp {
	t.Helper()

	logger := zap.NewNop().Sugar()
	restaurants := memory.NewRestaurantRepository()
	menus := memory.NewMenuRepository()

	if cfg.rateLimiter.RequestsPerTimeFrame == 0 {
		cfg.rateLimiter = ratelimiter.Config{RequestsPerTimeFrame: 20, TimeFrame: 5 * time.Second}
	}

	app := &application{
		config: cfg,
		logger: logger,
		rateLimiter: ratelimiter.NewTokenBucketLimiter(
			cfg.rateLimiter.RequestsPerTimeFrame,
			cfg.rateLimiter.TimeFrame,
		),
		storage: &fakeStorage{},
		broker:  queue.NopBroker{},
		restaurantService: service.NewRestaurantService(
			restaurants,
			menus,
			memory.NewRestaurantAuditRepository(),
			queue.NopBroker{},
			logger,
		),
	}

	return &testApp{
		application: app,
		restaurants: restaurants,
		menus:       menus,
		handler:     app.mount(),
	}
}

func (a *testApp) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)

	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

type messageBody struct {
	Message string `json:"message"`
}

type createdBody struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Menus []string `json:"menus"`
}

type menuBody struct {
	ID   string `json:"id"`
	Menu string `json:"menu"`
}

type populatedBody struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Location      string     `json:"location"`
	OpeningHours  string     `json:"openingHours"`
	ContactNumber string     `json:"contactNumber"`
	Category      string     `json:"category"`
	Menus         []menuBody `json:"menus"`
}

func TestCreateThenGet(t *testing.T) {
	app := newTestApplication(t, config{})

	rr := app.do(t, http.MethodPost, "/restaurants", `{"name":"A","description":"B","location":"C","menus":[{"menu":"Soup"}]}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	created := decode[createdBody](t, rr)
	require.Len(t, created.Menus, 1)
	assert.Len(t, created.Menus[0], 24)

	rr = app.do(t, http.MethodGet, "/restaurants/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	got := decode[populatedBody](t, rr)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, "B", got.Description)
	assert.Equal(t, "C", got.Location)
	assert.Equal(t, []menuBody{{ID: created.Menus[0], Menu: "Soup"}}, got.Menus)
}

func TestCreate_MissingFields(t *testing.T) {
	app := newTestApplication(t, config{})

	rr := app.do(t, http.MethodPost, "/restaurants", `{"description":"B","location":"","menus":[{"menu":"Soup"}]}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	body := decode[messageBody](t, rr)
	assert.Equal(t, "Missing required fields: name, location", body.Message)
	assert.Equal(t, 0, app.restaurants.Len())
	assert.Equal(t, 0, app.menus.Len())
}

func TestCreate_MalformedBody(t *testing.T) {
	app := newTestApplication(t, config{})

	rr := app.do(t, http.MethodPost, "/restaurants", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, app.restaurants.Len())
}

func TestCreate_StoreFault(t *testing.T) {
	app := newTestApplication(t, config{})
	app.restaurants.Err = errors.New("connection refused")

	rr := app.do(t, http.MethodPost, "/restaurants", `{"name":"A","description":"B","location":"C"}`)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, messageBody{Message: "Server error"}, decode[messageBody](t, rr))
}

func TestList(t *testing.T) {
	app := newTestApplication(t, config{})

	rr := app.do(t, http.MethodGet, "/restaurants", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	app.do(t, http.MethodPost, "/restaurants", `{"name":"A","description":"B","location":"C","menus":[{"menu":"Soup"},{"menu":"Tea"}]}`)

	rr = app.do(t, http.MethodGet, "/restaurants", "")
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[[]populatedBody](t, rr)
	require.Len(t, list, 1)
	require.Len(t, list[0].Menus, 2)
	assert.Equal(t, "Soup", list[0].Menus[0].Menu)
	assert.Equal(t, "Tea", list[0].Menus[1].Menu)
}

func TestList_StoreFault(t *testing.T) {
	app := newTestApplication(t, config{})
	app.restaurants.Err = errors.New("connection refused")

	rr := app.do(t, http.MethodGet, "/restaurants", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Server error", decode[messageBody](t, rr).Message)
}

func TestGet_NotFound(t *testing.T) {
	app := newTestApplication(t, config{})

	for _, id := range []string{"65a1b2c3d4e5f60718293a4b", "not-an-id"} {
		rr := app.do(t, http.MethodGet, "/restaurants/"+id, "")
		assert.Equal(t, http.StatusNotFound, rr.Code, id)
		assert.Equal(t, "Cannot find restaurant", decode[messageBody](t, rr).Message)
	}
}

func TestUpdate(t *testing.T) {
	app := newTestApplication(t, config{})

	rr := app.do(t, http.MethodPost, "/restaurants", `{"name":"A","description":"B","location":"C","openingHours":"9-5","contactNumber":"555","category":"Bistro","menus":[{"menu":"Soup"}]}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[createdBody](t, rr)

	t.Run("category only", func(t *testing.T) {
		rr := app.do(t, http.MethodPut, "/restaurants/"+created.ID, `{"category":"Thai"}`)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		rr = app.do(t, http.MethodGet, "/restaurants/"+created.ID, "")
		got := decode[populatedBody](t, rr)
		assert.Equal(t, "Thai", got.Category)
		assert.Equal(t, "A", got.Name)
		assert.Equal(t, "B", got.Description)
		assert.Equal(t, "C", got.Location)
		assert.Equal(t, "9-5", got.OpeningHours)
		assert.Equal(t, "555", got.ContactNumber)
		require.Len(t, got.Menus, 1)
		assert.Equal(t, created.Menus[0], got.Menus[0].ID)
	})

	t.Run("empty string keeps value", func(t *testing.T) {
		rr := app.do(t, http.MethodPut, "/restaurants/"+created.ID, `{"name":""}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "A", decode[createdBody](t, rr).Name)
	})

	t.Run("mixed menus", func(t *testing.T) {
		rr := app.do(t, http.MethodPut, "/restaurants/"+created.ID, `{"menus":["`+created.Menus[0]+`",{"menu":"Curry"}]}`)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		updated := decode[createdBody](t, rr)
		require.Len(t, updated.Menus, 2)
		assert.Equal(t, created.Menus[0], updated.Menus[0])

		rr = app.do(t, http.MethodGet, "/restaurants/"+created.ID, "")
		got := decode[populatedBody](t, rr)
		require.Len(t, got.Menus, 2)
		assert.Equal(t, "Soup", got.Menus[0].Menu)
		assert.Equal(t, "Curry", got.Menus[1].Menu)
	})

	t.Run("invalid menu entry", func(t *testing.T) {
		rr := app.do(t, http.MethodPut, "/restaurants/"+created.ID, `{"menus":["Soup"]}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		rr := app.do(t, http.MethodPut, "/restaurants/65a1b2c3d4e5f60718293a4b", `{"category":"Thai"}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Cannot find restaurant", decode[messageBody](t, rr).Message)
	})
}

func TestDelete(t *testing.T) {
	app := newTestApplication(t, config{})

	rr := app.do(t, http.MethodDelete, "/restaurants/65a1b2c3d4e5f60718293a4b", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = app.do(t, http.MethodPost, "/restaurants", `{"name":"A","description":"B","location":"C","menus":[{"menu":"Soup"}]}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[createdBody](t, rr)

	rr = app.do(t, http.MethodDelete, "/restaurants/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Deleted Restaurant", decode[messageBody](t, rr).Message)

	rr = app.do(t, http.MethodGet, "/restaurants/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, 1, app.menus.Len())
}

func TestAudit(t *testing.T) {
	app := newTestApplication(t, config{})

	rr := app.do(t, http.MethodGet, "/restaurants/65a1b2c3d4e5f60718293a4b/audit", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = app.do(t, http.MethodGet, "/restaurants/65a1b2c3d4e5f60718293a4b/audit?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHealth(t *testing.T) {
	app := newTestApplication(t, config{})

	rr := app.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
	health := decode[HealthResponse](t, rr)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "ok", health.Services["database"])
	assert.Equal(t, "disabled", health.Services["queue"])

	app.storage = &fakeStorage{pingErr: errors.New("no reachable servers")}
	rr = app.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "unhealthy", decode[HealthResponse](t, rr).Status)
}

func TestRateLimiter(t *testing.T) {
	app := newTestApplication(t, config{
		rateLimiter: ratelimiter.Config{RequestsPerTimeFrame: 2, TimeFrame: time.Minute, Enabled: true},
	})

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/restaurants", "").Code)
	}

	rr := app.do(t, http.MethodGet, "/restaurants", "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApplication(t, config{})

	app.do(t, http.MethodGet, "/restaurants", "")

	rr := app.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "restaurant_api_http_requests_total")
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApplication(t, config{})

	rr := app.do(t, http.MethodGet, "/menus", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

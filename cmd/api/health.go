package main

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// healthcheckHandler godoc
//
//	@Summary		Healthcheck
//	@Description	Healthcheck endpoint
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	if err := app.storage.Ping(r.Context()); err != nil {
		app.logger.Warnw("database ping failed", "error", err)
		dbStatus = "error"
	}

	// events are optional, the broker is never a reason to be unhealthy
	queueStatus := "disabled"
	if app.config.rabbitMQ.URL != "" {
		queueStatus = "ok"
	}

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services: map[string]string{
			"database": dbStatus,
			"queue":    queueStatus,
		},
	}

	status := http.StatusOK
	if dbStatus != "ok" {
		response.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	if err := writeJson(w, status, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

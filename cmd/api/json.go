package main

import (
	"encoding/json"
	"net/http"
)

const maxBodyBytes = 1_048_576 // 1mb

func writeJson(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(data)
}

func readJson(w http.ResponseWriter, r *http.Request, data any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	return json.NewDecoder(r.Body).Decode(data)
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJsonMessage(w http.ResponseWriter, status int, message string) error {
	return writeJson(w, status, messageResponse{Message: message})
}

func (app *application) jsonResponse(w http.ResponseWriter, status int, data any) error {
	return writeJson(w, status, data)
}

package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pressroom/app/repositories"
	"pressroom/app/services"

	"github.com/go-playground/validator/v10"
)

// Helper methods for consistent response handling

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendServiceError maps engine and store errors to HTTP status codes.
func sendServiceError(w http.ResponseWriter, err error) {
	var verr validator.ValidationErrors
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		sendError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, repositories.ErrConflict):
		sendError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, services.ErrInvalidReference):
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &verr):
		sendError(w, err.Error(), http.StatusBadRequest)
	default:
		sendError(w, err.Error(), http.StatusInternalServerError)
	}
}

func sendError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"drivehub-backend/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a JSON error response with a short error label
// and a human-readable message
func WriteErrorResponse(w http.ResponseWriter, status int, errLabel, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Error: errLabel, Message: message})
}

// DecodeJSONRequest decodes the request body into dst and writes a 400
// response on failure. Callers should return immediately when an error is
// returned; the response has already been sent.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes bounds request bodies accepted by DecodeJSON
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SuccessResponse wraps 2xx payloads as {"data": ...}
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// WriteJSON writes data with the given status. A nil data writes headers only.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(data)
}

func WriteOK(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

func WriteCreated(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusCreated, SuccessResponse{Data: data})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, status int, code, message, fallback string, details map[string]interface{}) error {
	if message == "" {
		message = fallback
	}
	return WriteJSON(w, status, ErrorResponse{Error: code, Message: message, Details: details})
}

func WriteBadRequest(w http.ResponseWriter, message string, details map[string]interface{}) error {
	return writeError(w, http.StatusBadRequest, "bad_request", message, "Bad request", details)
}

func WriteUnauthorized(w http.ResponseWriter, message string) error {
	return writeError(w, http.StatusUnauthorized, "unauthorized", message, "Authentication required", nil)
}

func WriteForbidden(w http.ResponseWriter, message string) error {
	return writeError(w, http.StatusForbidden, "forbidden", message, "Access forbidden", nil)
}

func WriteNotFound(w http.ResponseWriter, message string) error {
	return writeError(w, http.StatusNotFound, "not_found", message, "Resource not found", nil)
}

func WriteConflict(w http.ResponseWriter, message string, details map[string]interface{}) error {
	return writeError(w, http.StatusConflict, "conflict", message, "Resource already exists", details)
}

func WriteServiceUnavailable(w http.ResponseWriter, message string) error {
	return writeError(w, http.StatusServiceUnavailable, "service_unavailable", message, "Service unavailable", nil)
}

func WriteInternalServerError(w http.ResponseWriter, message string) error {
	return writeError(w, http.StatusInternalServerError, "internal_error", message, "Internal server error", nil)
}

// DecodeJSON decodes a JSON request body into dst, rejecting unknown fields,
// trailing data and bodies over 1 MiB, then validates dst's struct tags.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return ValidateStruct(dst)
}

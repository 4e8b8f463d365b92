package api

import (
	"encoding/json"
	"net/http"
)

const (
	CodeValidationError  = "VALIDATION_ERROR"
	CodeAuthRequired     = "AUTHENTICATION_REQUIRED"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeResourceNotFound = "RESOURCE_NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeInternalError    = "INTERNAL_ERROR"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: message, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func unauthorized(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusUnauthorized, CodeAuthRequired, msg)
}

func notFound(w http.ResponseWriter, resource string) {
	writeError(w, http.StatusNotFound, CodeResourceNotFound, resource+" not found")
}

func validationErr(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, CodeValidationError, msg)
}

func conflictErr(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusConflict, CodeConflict, msg)
}

func internalError(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusInternalServerError, CodeInternalError, msg)
}

// internal/adapters/in/http/handlers/common/common_handler.go
package common

import (
	"encoding/json"
	"net/http"
)

// Fixed client-facing messages. Wrapped causes never reach a response body.
const (
	MsgInvalidRequestBody = "Invalid request body"
	MsgMethodNotAllowed   = "Method not allowed"
	MsgNotFound           = "Not found"
	MsgTooManyRequests    = "Too many requests"
	MsgInternalError      = "Internal server error"
)

// Envelope is the body of every JSON response:
//
//	{"success":true,"data":{...}} / {"success":false,"error":"..."}
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ------------------------------
// Utility functions
// ------------------------------

func WriteSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Envelope{Success: false, Error: msg})
}

// MethodNotAllowed writes 405 response.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}

// NotFound writes 404 response.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, MsgNotFound)
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

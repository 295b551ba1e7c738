package middleware

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the body of every error and acknowledgement response.
type MessageResponse struct {
	Message string `json:"message"`
}

// JSONResponse writes data as a JSON response with the given status code.
func JSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// ErrorResponse writes a {"message": ...} JSON response.
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, MessageResponse{Message: message})
}

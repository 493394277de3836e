package response

import (
	"errors"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/mrops-br/storefront/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends an error response whose type is the snake_cased status text,
// e.g. not_found or internal_server_error
func Error(w http.ResponseWriter, status int, err error) {
	errorType := strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "_")
	if errorType == "" {
		errorType = "error"
	}

	JSON(w, status, ErrorResponse{
		Error:   errorType,
		Message: err.Error(),
	})
}

// StatusFor maps catalog read errors to an HTTP status
func StatusFor(err error) int {
	if errors.Is(err, domain.ErrProductNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// FromError sends err with the status StatusFor picks
func FromError(w http.ResponseWriter, err error) {
	Error(w, StatusFor(err), err)
}

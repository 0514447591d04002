package response

import (
	"encoding/json"
	"net/http"

	"github.com/vendora/vendora-commerce-service/pkg/apperror"
)

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *errBody    `json:"error,omitempty"`
}

type errBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes a success envelope.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

// Paginated writes a success envelope with a total count alongside the items.
func Paginated(w http.ResponseWriter, status int, items interface{}, total int) {
	JSON(w, status, map[string]interface{}{
		"items": items,
		"total": total,
	})
}

// Err maps a domain error to a status code and writes a failure envelope.
// Internal errors are masked; the caller is expected to have logged them.
func Err(w http.ResponseWriter, err error) {
	status := apperror.HTTPStatus(err)
	code := apperror.CodeOf(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		Success: false,
		Error:   &errBody{Code: code, Message: message},
	})
}

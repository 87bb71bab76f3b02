package respond

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/kaiwenlim/fintrack-be/internal/apperr"
	"github.com/kaiwenlim/fintrack-be/internal/models"
)

// Envelope is the standard API response wrapper used across handlers.
type Envelope struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Totals  *models.Totals `json:"totals,omitempty"`
}

// JSON writes a success response using the common envelope.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{Code: status, Message: message, Data: data})
}

// JSONWithTotals writes a success response carrying recomputed totals
// alongside the payload.
func JSONWithTotals(w http.ResponseWriter, status int, message string, data any, totals models.Totals) {
	write(w, status, Envelope{Code: status, Message: message, Data: data, Totals: &totals})
}

// Error writes an error response with the shared envelope structure.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Code: status, Message: message})
}

// AppError maps a classified error to its status and writes it.
func AppError(w http.ResponseWriter, err error) {
	Error(w, apperr.KindOf(err).Status(), apperr.MessageOf(err))
}

func write(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respond: encode payload failed: %v", err)
	}
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-account-service/internal/logger"
)

// ErrorResponse represents an error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Authentication Failed
	Message string `json:"message"`

	// Optional cause of the failure
	// default: required identifier and secret
	Cause string `json:"cause,omitempty"`
}

// AccountView is the public part of an account returned to clients
// swagger:model AccountView
type AccountView struct {
	// Account identifier
	// default: alice
	Identifier string `json:"identifier"`

	// Display name
	// default: alice
	DisplayName string `json:"display_name"`

	// Note, present only when set
	// default: hello
	Note *string `json:"note,omitempty"`
}

const msgInternalError = "Internal server error"

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, message, cause string) {
	writeJSON(w, status, ErrorResponse{Message: message, Cause: cause})
}

func writeInternalError(w http.ResponseWriter, err error) {
	logger.Log.Errorw("internal server error", "err", err)
	writeError(w, http.StatusInternalServerError, msgInternalError, "")
}

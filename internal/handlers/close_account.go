package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-account-service/internal/basicauth"
)

// AccountCloser defines the interface that the service must implement.
type AccountCloser interface {
	Close(ctx context.Context, authHeader string) error
}

// CloseAccountResponse represents a successful account closing
// swagger:model CloseAccountResponse
type CloseAccountResponse struct {
	// Success message
	// default: Account and user successfully removed
	Message string `json:"message"`
}

// NewCloseAccountHandler returns an HTTP handler closing the caller's account.
// @Summary Close account
// @Description Soft-deletes the account named by the Basic credentials. Closed accounts are no longer found by any endpoint.
// @Tags accounts
// @Produce json
// @Success 200 {object} handlers.CloseAccountResponse "Account closed"
// @Failure 400 {object} handlers.ErrorResponse "Malformed authorization header"
// @Failure 401 {object} handlers.ErrorResponse "Wrong secret"
// @Failure 404 {object} handlers.ErrorResponse "No such account"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /close [post]
// @Security BasicAuth
func NewCloseAccountHandler(svc AccountCloser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Close(r.Context(), r.Header.Get(basicauth.HeaderName)); err != nil {
			writeAuthError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, CloseAccountResponse{
			Message: "Account and user successfully removed",
		})
	}
}

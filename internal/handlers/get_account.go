package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-account-service/internal/basicauth"
	"github.com/sbilibin2017/gw-account-service/internal/models"
	"github.com/sbilibin2017/gw-account-service/internal/services"
)

// IdentifierParam is the route parameter naming the target account.
const IdentifierParam = "identifier"

// AccountGetter defines the interface that the service must implement.
type AccountGetter interface {
	Read(ctx context.Context, pathIdentifier, authHeader string) (*models.Account, error)
}

// GetAccountResponse represents a successful account lookup
// swagger:model GetAccountResponse
type GetAccountResponse struct {
	// Success message
	// default: User details by identifier
	Message string `json:"message"`

	// Account details
	Account AccountView `json:"account"`
}

const (
	msgAuthFailed = "Authentication Failed"
	msgNotFound   = "No User found"
)

// NewGetAccountHandler returns an HTTP handler returning the caller's own account.
// @Summary Get account
// @Description Returns the account named in the path. The Basic credentials must belong to that same account.
// @Tags accounts
// @Produce json
// @Param identifier path string true "Account identifier"
// @Success 200 {object} handlers.GetAccountResponse "Account details"
// @Failure 400 {object} handlers.ErrorResponse "Malformed authorization header"
// @Failure 401 {object} handlers.ErrorResponse "Identity mismatch or wrong secret"
// @Failure 404 {object} handlers.ErrorResponse "No such account"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/{identifier} [get]
// @Security BasicAuth
func NewGetAccountHandler(svc AccountGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identifier := pathIdentifier(r)

		account, err := svc.Read(r.Context(), identifier, r.Header.Get(basicauth.HeaderName))
		if err != nil {
			writeAuthError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, GetAccountResponse{
			Message: "User details by identifier",
			Account: AccountView{
				Identifier:  account.Identifier,
				DisplayName: account.DisplayName,
				Note:        account.Note,
			},
		})
	}
}

// pathIdentifier returns the decoded identifier route parameter.
// chi matches on the escaped RawPath when the request has one, so an
// identifier containing "/" arrives still percent-encoded.
func pathIdentifier(r *http.Request) string {
	raw := chi.URLParam(r, IdentifierParam)
	if r.URL.RawPath == "" {
		return raw
	}
	if identifier, err := url.PathUnescape(raw); err == nil {
		return identifier
	}
	return raw
}

// mapAuthError writes the failures shared by every authenticated endpoint.
// It reports false when err is not one of them and nothing was written.
func mapAuthError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, services.ErrMalformedCredentials):
		writeError(w, http.StatusBadRequest, msgAuthFailed, "")
	case errors.Is(err, services.ErrAuthenticationFailed):
		writeError(w, http.StatusUnauthorized, msgAuthFailed, "")
	case errors.Is(err, services.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, msgNotFound, "")
	default:
		return false
	}
	return true
}

func writeAuthError(w http.ResponseWriter, err error) {
	if !mapAuthError(w, err) {
		writeInternalError(w, err)
	}
}

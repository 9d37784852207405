package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-account-service/internal/models"
	"github.com/sbilibin2017/gw-account-service/internal/services"
)

//go:generate mockgen -destination=mock_handlers.go -package=handlers . Signuper,AccountGetter,AccountUpdater,AccountCloser

// Signuper defines the interface that the service must implement.
type Signuper interface {
	Create(ctx context.Context, identifier, secret string) (*models.Account, error)
}

// SignupRequest represents the JSON body for account creation
// swagger:model SignupRequest
type SignupRequest struct {
	// Identifier
	// required: true
	// default: alice
	Identifier string `json:"identifier"`

	// Secret
	// required: true
	// default: pw1
	Secret string `json:"secret"`
}

// SignupResponse represents a successful signup response
// swagger:model SignupResponse
type SignupResponse struct {
	// Success message
	// default: Account successfully created
	Message string `json:"message"`

	// Created account
	Account AccountView `json:"account"`
}

const msgSignupFailed = "Account creation failed"

// NewSignupHandler returns an HTTP handler for account creation.
// @Summary Create an account
// @Description Creates a new account. The identifier must not be used by another live account. The secret is stored salted and hashed.
// @Tags accounts
// @Accept json
// @Produce json
// @Param signupRequest body handlers.SignupRequest true "Account creation request"
// @Success 200 {object} handlers.SignupResponse "Account created"
// @Failure 400 {object} handlers.ErrorResponse "Missing field / identifier already used / invalid body"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /signup [post]
func NewSignupHandler(svc Signuper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgSignupFailed, "invalid request body")
			return
		}

		account, err := svc.Create(r.Context(), req.Identifier, req.Secret)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAccountAlreadyExists):
				writeError(w, http.StatusBadRequest, msgSignupFailed, "already same identifier is used")
			case errors.Is(err, services.ErrValidation):
				writeError(w, http.StatusBadRequest, msgSignupFailed, "required identifier and secret")
			default:
				writeInternalError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, SignupResponse{
			Message: "Account successfully created",
			Account: AccountView{
				Identifier:  account.Identifier,
				DisplayName: account.DisplayName,
			},
		})
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-account-service/internal/basicauth"
	"github.com/sbilibin2017/gw-account-service/internal/models"
	"github.com/sbilibin2017/gw-account-service/internal/services"
)

// AccountUpdater defines the interface that the service must implement.
type AccountUpdater interface {
	Update(ctx context.Context, pathIdentifier string, upd models.AccountUpdate, authHeader string) (*models.Account, error)
}

// UpdateAccountRequest represents the JSON body of a profile update.
// At least one of display_name and note is required; secret must be empty or absent.
// swagger:model UpdateAccountRequest
type UpdateAccountRequest struct {
	// New display name; defaults to the identifier when absent
	// default: Alice
	DisplayName *string `json:"display_name"`

	// New note; absent clears it
	// default: hello
	Note *string `json:"note"`

	// Must be empty, secrets are not updatable here
	// default:
	Secret *string `json:"secret"`
}

// UpdatedProfile is the profile after an update
// swagger:model UpdatedProfile
type UpdatedProfile struct {
	// Display name
	// default: Alice
	DisplayName string `json:"display_name"`

	// Note
	// default: hello
	Note *string `json:"note"`
}

// UpdateAccountResponse represents a successful update
// swagger:model UpdateAccountResponse
type UpdateAccountResponse struct {
	// Success message
	// default: User successfully updated
	Message string `json:"message"`

	// Updated profile
	Account UpdatedProfile `json:"account"`
}

const (
	msgUpdateFailed = "User update failed"
	msgNoPermission = "No Permission for Update"
)

// NewUpdateAccountHandler returns an HTTP handler updating display name and note.
// @Summary Update account profile
// @Description Updates display name and note. Credentials are verified first; only then must the path identifier match them.
// @Tags accounts
// @Accept json
// @Produce json
// @Param identifier path string true "Account identifier"
// @Param updateAccountRequest body handlers.UpdateAccountRequest true "Profile update"
// @Success 200 {object} handlers.UpdateAccountResponse "Updated profile"
// @Failure 400 {object} handlers.ErrorResponse "Nothing to update / secret given / malformed header / invalid body"
// @Failure 401 {object} handlers.ErrorResponse "Wrong secret"
// @Failure 403 {object} handlers.ErrorResponse "Not the caller's account"
// @Failure 404 {object} handlers.ErrorResponse "No such account"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/{identifier} [patch]
// @Security BasicAuth
func NewUpdateAccountHandler(svc AccountUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateAccountRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgUpdateFailed, "invalid request body")
			return
		}

		identifier := pathIdentifier(r)
		upd := models.AccountUpdate{
			DisplayName: req.DisplayName,
			Note:        req.Note,
			Secret:      req.Secret,
		}

		account, err := svc.Update(r.Context(), identifier, upd, r.Header.Get(basicauth.HeaderName))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrValidation):
				cause := "required display_name or note"
				if req.Secret != nil && *req.Secret != "" {
					cause = "not updatable identifier and secret"
				}
				writeError(w, http.StatusBadRequest, msgUpdateFailed, cause)
			case errors.Is(err, services.ErrForbidden):
				writeError(w, http.StatusForbidden, msgNoPermission, "")
			default:
				writeAuthError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, UpdateAccountResponse{
			Message: "User successfully updated",
			Account: UpdatedProfile{
				DisplayName: account.DisplayName,
				Note:        account.Note,
			},
		})
	}
}

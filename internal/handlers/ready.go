package handlers

import "net/http"

// ReadyResponse is the liveness probe payload
// swagger:model ReadyResponse
type ReadyResponse struct {
	// default: OK
	Description string `json:"description"`
}

// NewReadyHandler returns the liveness probe handler.
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} handlers.ReadyResponse
// @Router /ready [get]
func NewReadyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ReadyResponse{Description: "OK"})
	}
}

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

// withIdentifier attaches the chi route parameter handlers read the identifier from.
func withIdentifier(r *http.Request, identifier string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(IdentifierParam, identifier)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPathIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		target string
		param  string
		want   string
	}{
		{name: "plain", target: "/users/alice", param: "alice", want: "alice"},
		{name: "escaped slash", target: "/users/a%2Fb", param: "a%2Fb", want: "a/b"},
		{name: "decoded path is not decoded twice", target: "/users/a%2541", param: "a%41", want: "a%41"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := withIdentifier(httptest.NewRequest(http.MethodGet, tt.target, nil), tt.param)
			assert.Equal(t, tt.want, pathIdentifier(r))
		})
	}
}

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-account-service/internal/models"
	"github.com/sbilibin2017/gw-account-service/internal/services"
)

func TestSignupHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockSignuper)
		expectedCode int
		expectedBody map[string]any
	}{
		{
			name: "success",
			body: `{"identifier":"alice","secret":"pw1"}`,
			mockSetup: func(m *MockSignuper) {
				m.EXPECT().Create(gomock.Any(), "alice", "pw1").
					Return(&models.Account{Identifier: "alice", DisplayName: "alice"}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: map[string]any{
				"message": "Account successfully created",
				"account": map[string]any{"identifier": "alice", "display_name": "alice"},
			},
		},
		{
			name: "missing fields",
			body: `{"identifier":"alice"}`,
			mockSetup: func(m *MockSignuper) {
				m.EXPECT().Create(gomock.Any(), "alice", "").
					Return(nil, fmt.Errorf("%w: identifier and secret are required", services.ErrValidation))
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]any{"message": "Account creation failed", "cause": "required identifier and secret"},
		},
		{
			name: "duplicate",
			body: `{"identifier":"bob","secret":"pw"}`,
			mockSetup: func(m *MockSignuper) {
				m.EXPECT().Create(gomock.Any(), "bob", "pw").Return(nil, services.ErrAccountAlreadyExists)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]any{"message": "Account creation failed", "cause": "already same identifier is used"},
		},
		{
			name: "internal error",
			body: `{"identifier":"carol","secret":"pw"}`,
			mockSetup: func(m *MockSignuper) {
				m.EXPECT().Create(gomock.Any(), "carol", "pw").Return(nil, errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: map[string]any{"message": "Internal server error"},
		},
		{
			name:         "invalid json",
			body:         "{invalid json}",
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]any{"message": "Account creation failed", "cause": "invalid request body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockSignuper(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			NewSignupHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp map[string]any
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedBody, resp)
		})
	}
}

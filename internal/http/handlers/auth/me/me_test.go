package me

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pickup-order/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pickup-order/internal/models"
	authservice "github.com/magabrotheeeer/pickup-order/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Me(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const testUserUID = "3f1d9a7e-0000-0000-0000-000000000001"

func TestMeHandler(t *testing.T) {
	demoUser := &models.User{UID: testUserUID, Email: "user@example.com"}

	tests := []struct {
		name       string
		userUID    string
		mockSetup  func(service *ServiceMock)
		wantStatus int
		wantError  string
	}{
		{
			name:    "success",
			userUID: testUserUID,
			mockSetup: func(service *ServiceMock) {
				service.On("Me", mock.Anything, testUserUID).
					Return(demoUser, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "no uid in context",
			userUID:    "",
			mockSetup:  func(_ *ServiceMock) {},
			wantStatus: http.StatusUnauthorized,
			wantError:  "unauthorized",
		},
		{
			name:    "user not found",
			userUID: testUserUID,
			mockSetup: func(service *ServiceMock) {
				service.On("Me", mock.Anything, testUserUID).
					Return(nil, authservice.ErrUserNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantError:  "User not found",
		},
		{
			name:    "service failure",
			userUID: testUserUID,
			mockSetup: func(service *ServiceMock) {
				service.On("Me", mock.Anything, testUserUID).
					Return(nil, errors.New("connection refused")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "could not read user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.mockSetup(service)
			handler := New(newTestLogger(), service)

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.userUID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
				req = req.WithContext(ctx)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)

			var resp struct {
				Status string `json:"status"`
				Error  string `json:"error"`
				Data   struct {
					ID    string `json:"id"`
					Email string `json:"email"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

			if tt.wantError != "" {
				assert.Equal(t, "Error", resp.Status)
				assert.Equal(t, tt.wantError, resp.Error)
			} else {
				assert.Equal(t, "OK", resp.Status)
				assert.Equal(t, testUserUID, resp.Data.ID)
				assert.Equal(t, "user@example.com", resp.Data.Email)
			}
			service.AssertExpectations(t)
		})
	}
}

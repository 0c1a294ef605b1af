package read

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pickup-order/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pickup-order/internal/models"
	orderservice "github.com/magabrotheeeer/pickup-order/internal/services/order"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Read(ctx context.Context, id int, userUID string) (*models.Order, error) {
	args := m.Called(ctx, id, userUID)
	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const testUserUID = "3f1d9a7e-0000-0000-0000-000000000001"

func TestReadHandler(t *testing.T) {
	stored := &models.Order{
		ID:           42,
		UserUID:      testUserUID,
		DeliveryType: models.DeliveryTypeInStore,
	}

	tests := []struct {
		name       string
		orderID    string
		withUID    bool
		mockSetup  func(service *ServiceMock)
		wantStatus int
		wantError  string
	}{
		{
			name:    "success",
			orderID: "42",
			withUID: true,
			mockSetup: func(service *ServiceMock) {
				service.On("Read", mock.Anything, 42, testUserUID).
					Return(stored, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "non-numeric id",
			orderID:    "abc",
			withUID:    true,
			mockSetup:  func(_ *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid order id",
		},
		{
			name:       "no uid in context",
			orderID:    "42",
			withUID:    false,
			mockSetup:  func(_ *ServiceMock) {},
			wantStatus: http.StatusUnauthorized,
			wantError:  "unauthorized",
		},
		{
			name:    "missing or foreign order",
			orderID: "42",
			withUID: true,
			mockSetup: func(service *ServiceMock) {
				service.On("Read", mock.Anything, 42, testUserUID).
					Return(nil, orderservice.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantError:  "Order not found",
		},
		{
			name:    "service failure",
			orderID: "42",
			withUID: true,
			mockSetup: func(service *ServiceMock) {
				service.On("Read", mock.Anything, 42, testUserUID).
					Return(nil, errors.New("connection refused")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "could not read order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.mockSetup(service)
			handler := New(newTestLogger(), service)

			req := httptest.NewRequest(http.MethodGet, "/orders/"+tt.orderID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.orderID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.withUID {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, testUserUID)
			}
			req = req.WithContext(ctx)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)

			var resp struct {
				Status string       `json:"status"`
				Error  string       `json:"error"`
				Data   models.Order `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

			if tt.wantError != "" {
				assert.Equal(t, "Error", resp.Status)
				assert.Equal(t, tt.wantError, resp.Error)
			} else {
				assert.Equal(t, "OK", resp.Status)
				assert.Equal(t, stored.ID, resp.Data.ID)
			}
			service.AssertExpectations(t)
		})
	}
}

package middlewarectx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	jwtlib "github.com/magabrotheeeer/pickup-order/internal/lib/jwt"
)

type TokenParserMock struct {
	mock.Mock
}

func (m *TokenParserMock) ParseToken(tokenStr string) (*jwtlib.CustomClaims, error) {
	args := m.Called(tokenStr)
	if claims, ok := args.Get(0).(*jwtlib.CustomClaims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	validClaims := &jwtlib.CustomClaims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "3f1d9a7e-0000-0000-0000-000000000001",
		},
	}

	tests := []struct {
		name           string
		authHeader     string
		mockSetup      func(parser *TokenParserMock)
		wantStatus     int
		wantNextCalled bool
	}{
		{
			name:           "missing header",
			authHeader:     "",
			mockSetup:      func(_ *TokenParserMock) {},
			wantStatus:     http.StatusUnauthorized,
			wantNextCalled: false,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			mockSetup:      func(_ *TokenParserMock) {},
			wantStatus:     http.StatusUnauthorized,
			wantNextCalled: false,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			mockSetup: func(parser *TokenParserMock) {
				parser.On("ParseToken", "bad-token").
					Return(nil, errors.New("token is malformed")).Once()
			},
			wantStatus:     http.StatusForbidden,
			wantNextCalled: false,
		},
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			mockSetup: func(parser *TokenParserMock) {
				parser.On("ParseToken", "good-token").
					Return(validClaims, nil).Once()
			},
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := new(TokenParserMock)
			tt.mockSetup(parser)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, validClaims.Subject, r.Context().Value(UserUID))
				assert.Equal(t, validClaims.Email, r.Context().Value(Email))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			JWTMiddleware(parser, newTestLogger())(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
			parser.AssertExpectations(t)
		})
	}
}

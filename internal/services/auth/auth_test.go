package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pickup-order/internal/lib/jwt"
	"github.com/magabrotheeeer/pickup-order/internal/lib/password"
	"github.com/magabrotheeeer/pickup-order/internal/models"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepositoryMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("password123")
	require.NoError(t, err)

	demoUser := &models.User{
		UID:          "3f1d9a7e-0000-0000-0000-000000000001",
		Email:        "user@example.com",
		PasswordHash: hash,
	}
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	storageErr := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

	tests := []struct {
		name        string
		email       string
		rawPassword string
		mockSetup   func(repo *UserRepositoryMock)
		wantErr     error
	}{
		{
			name:        "success",
			email:       "user@example.com",
			rawPassword: "password123",
			mockSetup: func(repo *UserRepositoryMock) {
				repo.On("GetUserByEmail", mock.Anything, "user@example.com").
					Return(demoUser, nil).Once()
			},
		},
		{
			name:        "unknown email",
			email:       "ghost@example.com",
			rawPassword: "password123",
			mockSetup: func(repo *UserRepositoryMock) {
				repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
					Return(nil, sql.ErrNoRows).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:        "wrong password",
			email:       "user@example.com",
			rawPassword: "password124",
			mockSetup: func(repo *UserRepositoryMock) {
				repo.On("GetUserByEmail", mock.Anything, "user@example.com").
					Return(demoUser, nil).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:        "storage failure is not treated as invalid credentials",
			email:       "user@example.com",
			rawPassword: "password123",
			mockSetup: func(repo *UserRepositoryMock) {
				repo.On("GetUserByEmail", mock.Anything, "user@example.com").
					Return(nil, storageErr).Once()
			},
			wantErr: storageErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepositoryMock)
			tt.mockSetup(repo)
			service := NewAuthService(repo, maker)

			token, err := service.Login(context.Background(), tt.email, tt.rawPassword)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				if !errors.Is(tt.wantErr, ErrInvalidCredentials) {
					assert.NotErrorIs(t, err, ErrInvalidCredentials)
				}
			} else {
				require.NoError(t, err)
				claims, err := maker.ParseToken(token)
				require.NoError(t, err)
				assert.Equal(t, demoUser.UID, claims.Subject)
				assert.Equal(t, demoUser.Email, claims.Email)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Me(t *testing.T) {
	demoUser := &models.User{
		UID:   "3f1d9a7e-0000-0000-0000-000000000001",
		Email: "user@example.com",
	}
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	storageErr := errors.New("connection refused")

	tests := []struct {
		name      string
		mockSetup func(repo *UserRepositoryMock)
		wantUser  *models.User
		wantErr   error
	}{
		{
			name: "success",
			mockSetup: func(repo *UserRepositoryMock) {
				repo.On("GetUser", mock.Anything, demoUser.UID).
					Return(demoUser, nil).Once()
			},
			wantUser: demoUser,
		},
		{
			name: "not found",
			mockSetup: func(repo *UserRepositoryMock) {
				repo.On("GetUser", mock.Anything, demoUser.UID).
					Return(nil, sql.ErrNoRows).Once()
			},
			wantErr: ErrUserNotFound,
		},
		{
			name: "storage failure passes through",
			mockSetup: func(repo *UserRepositoryMock) {
				repo.On("GetUser", mock.Anything, demoUser.UID).
					Return(nil, storageErr).Once()
			},
			wantErr: storageErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepositoryMock)
			tt.mockSetup(repo)
			service := NewAuthService(repo, maker)

			user, err := service.Me(context.Background(), demoUser.UID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUser, user)
			}
			repo.AssertExpectations(t)
		})
	}
}

package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"marigold/config"
	"marigold/infras/jwt"
	jwtMocks "marigold/infras/jwt/mocks"
	"marigold/infras/otel/mocks"
	"marigold/internal/domains/auth/model/dto"
	"marigold/internal/domains/auth/service"
	"marigold/shared/constant"
	"marigold/shared/failure"
	"marigold/shared/password"
)

func newAuthService(t *testing.T, ctrl *gomock.Controller) (service.Auth, *jwtMocks.MockJWT) {
	t.Helper()

	mockJWT := jwtMocks.NewMockJWT(ctrl)

	hash, err := password.Hash("correct-password")
	assert.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Admin.Username = "admin"
	cfg.App.Admin.PasswordHash = hash

	svc := service.New(cfg, mocks.NewOtel(), mockJWT)

	return svc, mockJWT
}

func TestAuthService_Login(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(mockJWT *jwtMocks.MockJWT)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "issues a token pair for valid credentials",
			req: dto.LoginRequest{
				Username: "admin",
				Password: "correct-password",
			},
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().
					GenerateTokenPair("admin", constant.RoleAdmin).
					Return(tokenPair, nil)
			},
		},
		{
			name: "rejects an unknown username",
			req: dto.LoginRequest{
				Username: "intruder",
				Password: "correct-password",
			},
			setupMock: func(mockJWT *jwtMocks.MockJWT) {},
			wantErr:   true,
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "rejects a wrong password",
			req: dto.LoginRequest{
				Username: "admin",
				Password: "wrong-password",
			},
			setupMock: func(mockJWT *jwtMocks.MockJWT) {},
			wantErr:   true,
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "fails when token generation errors",
			req: dto.LoginRequest{
				Username: "admin",
				Password: "correct-password",
			},
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().
					GenerateTokenPair("admin", constant.RoleAdmin).
					Return(nil, errors.New("signing error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockJWT := newAuthService(t, ctrl)
			tt.setupMock(mockJWT)

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "refresh-token", res.RefreshToken)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mockJWT *jwtMocks.MockJWT)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "rotates a valid refresh token",
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().
					RefreshTokens(gomock.Any(), "refresh-token").
					Return(&jwt.TokenPair{
						AccessToken:  "new-access-token",
						RefreshToken: "new-refresh-token",
						TokenType:    "Bearer",
						ExpiresIn:    900,
					}, nil)
			},
		},
		{
			name: "rejects an invalid refresh token",
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().
					RefreshTokens(gomock.Any(), "refresh-token").
					Return(nil, jwt.ErrInvalidToken)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockJWT := newAuthService(t, ctrl)
			tt.setupMock(mockJWT)

			res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "new-access-token", res.AccessToken)
		})
	}
}

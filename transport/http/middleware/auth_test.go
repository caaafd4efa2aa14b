package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"marigold/config"
	jwtMocks "marigold/infras/jwt/mocks"
	"marigold/infras/otel/mocks"
	"marigold/permissions"
	"marigold/transport/http/middleware"
)

func newAuthMux(t *testing.T) *chi.Mux {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	authRole := middleware.NewAuthRoleMiddleware(
		jwtMocks.NewMockJWT(ctrl),
		mocks.NewOtel(),
		permissions.Get(),
		&config.Config{},
	)

	mux := chi.NewRouter()
	mux.Use(authRole.Auth)
	mux.Use(authRole.RBAC)

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Get("/v1/bookings", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

func TestAuth_HealthSkipsAuthentication(t *testing.T) {
	mux := newAuthMux(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_ProtectedRouteRequiresToken(t *testing.T) {
	mux := newAuthMux(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adamg02/boatbooking/internal/config"
)

// Constructing the server registers every route on one engine; a duplicate
// registration (gin panics on conflicting wildcards) would surface here.
func TestNew_RegistersRoutes(t *testing.T) {
	srv := New(nil, &config.Config{JWTSecret: "test-secret"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	srv.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	// gin-swagger matches on Request.RequestURI, which http.NewRequest leaves
	// empty; httptest.NewRequest populates it.
	req = httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	srv.Router().ServeHTTP(w, req)
	assert.NotEqual(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/bookings", nil)
	srv.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

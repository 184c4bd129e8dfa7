package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/foodie-app/foodie/internal/config"
	"github.com/foodie-app/foodie/user/internal/service"
)

func TestAttachUserControllerRoutes(t *testing.T) {
	router := mux.NewRouter()
	cfg := config.Application{SecretKey: "test-secret"}
	svc := service.NewUserService(nil, cfg)
	AttachUserController(router, &svc, cfg)

	id := "4f1c8a4e-2d3b-45f4-9a0d-3c1f6f8f9b22"
	requests := []*http.Request{
		httptest.NewRequest(http.MethodPost, "/users/register", nil),
		httptest.NewRequest(http.MethodPost, "/users/login", nil),
		httptest.NewRequest(http.MethodGet, "/users/me", nil),
		httptest.NewRequest(http.MethodPost, "/users/addresses", nil),
		httptest.NewRequest(http.MethodGet, "/users/addresses", nil),
		httptest.NewRequest(http.MethodPut, "/users/addresses/"+id, nil),
		httptest.NewRequest(http.MethodDelete, "/users/addresses/"+id, nil),
		httptest.NewRequest(http.MethodPut, "/users/addresses/"+id+"/default", nil),
	}
	for _, r := range requests {
		match := mux.RouteMatch{}
		assert.Truef(t, router.Match(r, &match), "expected a route for %s %s", r.Method, r.URL.Path)
		assert.NoError(t, match.MatchErr)
	}
}

package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/foodie-app/foodie/product/internal/service"
)

func TestAttachProductControllerRoutes(t *testing.T) {
	router := mux.NewRouter()
	svc := service.NewProductService(nil, nil)
	AttachProductController(router, &svc)

	id := "0b4df9c3-6a1f-4f88-9a6e-0f4f2b6f0c11"
	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/products", nil),
		httptest.NewRequest(http.MethodGet, "/products/"+id, nil),
		httptest.NewRequest(http.MethodGet, "/restaurants", nil),
		httptest.NewRequest(http.MethodGet, "/restaurants/"+id, nil),
	}
	for _, r := range requests {
		match := mux.RouteMatch{}
		assert.Truef(t, router.Match(r, &match), "expected a route for %s %s", r.Method, r.URL.Path)
		assert.NoError(t, match.MatchErr)
	}
}

package httpserver

import (
	"errors"
	"net/http"
	"testing"

	"paintland/internal/domain"
)

func TestCatalogRoutes(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		path  string
		count int
	}{
		{"/brands", 1},
		{"/brands/b1/products", 2},
		{"/materials", 1},
		{"/products/p1/colors", 1},
		{"/products/p1/properties", 1},
	}
	for _, tc := range cases {
		rec := env.do(t, http.MethodGet, tc.path, "", "")
		expectStatus(t, rec, http.StatusOK)
		body := decode[struct {
			Count   int   `json:"count"`
			Results []any `json:"results"`
		}](t, rec)
		if body.Count != tc.count || len(body.Results) != tc.count {
			t.Fatalf("%s: expected %d results, got %+v", tc.path, tc.count, body)
		}
	}

	rec := env.do(t, http.MethodGet, "/products/p1", "", "")
	expectStatus(t, rec, http.StatusOK)
	if p := decode[domain.Product](t, rec); p.Name != "Alpha Rezisto" {
		t.Fatalf("unexpected product %+v", p)
	}
	expectStatus(t, env.do(t, http.MethodGet, "/brands/b1", "", ""), http.StatusOK)
	expectStatus(t, env.do(t, http.MethodGet, "/materials/m1", "", ""), http.StatusOK)
}

func TestCatalogRoutes_NotFound(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/brands/nope", "/brands/nope/products", "/materials/nope", "/products/nope", "/products/nope/colors", "/products/nope/properties"} {
		rec := env.do(t, http.MethodGet, path, "", "")
		expectStatus(t, rec, http.StatusNotFound)
		body := decode[errorResponse](t, rec)
		if body.Errors[0].Code != "ResourceNotFound" {
			t.Fatalf("%s: unexpected error body %+v", path, body)
		}
	}
}

func TestCatalogRoutes_EmptyListIsArray(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.brands = nil

	rec := env.do(t, http.MethodGet, "/brands", "", "")
	expectStatus(t, rec, http.StatusOK)
	if got := rec.Body.String(); got != `{"count":0,"results":[]}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestCatalogRoutes_InternalError(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.err = errors.New("boom")

	expectStatus(t, env.do(t, http.MethodGet, "/brands", "", ""), http.StatusInternalServerError)
}

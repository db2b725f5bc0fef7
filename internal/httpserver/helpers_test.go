package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"paintland/internal/domain"
	cartrepo "paintland/internal/repository/cart"
	"paintland/internal/repository/kv"
	cartsvc "paintland/internal/service/cart"
	devicesvc "paintland/internal/service/device"
	ordersvc "paintland/internal/service/order"
	"github.com/gin-gonic/gin"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubCatalogService struct {
	brands    []domain.Brand
	products  map[string]domain.Product
	variants  map[string]domain.CatalogVariant
	offeredBy map[string]string
	groups    []domain.ColorGroup
	props     []domain.Property
	materials []domain.Material
	err       error
}

func newStubCatalog() *stubCatalogService {
	return &stubCatalogService{
		brands: []domain.Brand{{ID: "b1", Name: "Sikkens"}},
		products: map[string]domain.Product{
			"p1": {ID: "p1", BrandID: "b1", Name: "Alpha Rezisto", ImageURL: "/img/alpha.png"},
			"p2": {ID: "p2", BrandID: "b1", Name: "Rubbol"},
		},
		variants: map[string]domain.CatalogVariant{
			"v1": {ID: "v1", Name: "Red", ShadeCode: "R01", HexCode: "#ff0000"},
		},
		offeredBy: map[string]string{"v1": "p1"},
		groups:    []domain.ColorGroup{{ID: "g1", DisplayName: "Reds", Variants: []domain.CatalogVariant{{ID: "v1", Name: "Red", ShadeCode: "R01"}}}},
		props:     []domain.Property{{ID: "pr1", ShortLabel: "Washable"}},
		materials: []domain.Material{{ID: "m1", Name: "Wood"}},
	}
}

func (s *stubCatalogService) ListBrands(context.Context) ([]domain.Brand, error) {
	return s.brands, s.err
}

func (s *stubCatalogService) GetBrand(_ context.Context, id string) (*domain.Brand, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, b := range s.brands {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCatalogService) ListBrandProducts(ctx context.Context, brandID string) ([]domain.Product, error) {
	if _, err := s.GetBrand(ctx, brandID); err != nil {
		return nil, err
	}
	var out []domain.Product
	for _, p := range s.products {
		if p.BrandID == brandID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubCatalogService) ListMaterials(context.Context) ([]domain.Material, error) {
	return s.materials, s.err
}

func (s *stubCatalogService) GetMaterial(_ context.Context, id string) (*domain.Material, error) {
	for _, m := range s.materials {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCatalogService) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *stubCatalogService) ListColorGroups(ctx context.Context, productID string) ([]domain.ColorGroup, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.groups, nil
}

func (s *stubCatalogService) ListProperties(ctx context.Context, productID string) ([]domain.Property, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.props, nil
}

func (s *stubCatalogService) ResolveCartItem(ctx context.Context, productID, variantID string) (domain.ProductSnapshot, *domain.ColorVariant, error) {
	if strings.TrimSpace(productID) == "" {
		return domain.ProductSnapshot{}, nil, domain.ErrInvalidProduct
	}
	p, err := s.GetProduct(ctx, productID)
	if err != nil {
		return domain.ProductSnapshot{}, nil, err
	}
	if variantID == "" {
		return p.Snapshot(), nil, nil
	}
	v, ok := s.variants[variantID]
	if !ok || s.offeredBy[variantID] != productID {
		return domain.ProductSnapshot{}, nil, domain.ErrNotFound
	}
	return p.Snapshot(), v.CartVariant(), nil
}

type testEnv struct {
	router  *gin.Engine
	store   kv.Repository
	carts   *cartsvc.Registry
	devices *devicesvc.Service
	catalog *stubCatalogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := kv.NewMemory()
	carts := cartsvc.NewRegistry(func(namespace string) cartsvc.Store {
		return cartrepo.NewStore(store, namespace, nil)
	}, nil)
	devices := devicesvc.New(store, nil)
	catalog := newStubCatalog()
	orders := ordersvc.New("212600000000", nil,
		ordersvc.WithClock(func() time.Time { return time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC) }))

	router, err := buildRouter(logDiscard(), nil, Deps{
		CatalogSvc: catalog,
		Carts:      carts,
		OrderSvc:   orders,
		DeviceSvc:  devices,
	}, nil)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return &testEnv{router: router, store: store, carts: carts, devices: devices, catalog: catalog}
}

func (e *testEnv) token(t *testing.T) (string, string) {
	t.Helper()
	token, deviceID, err := e.devices.Issue(context.Background())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token, deviceID
}

func (e *testEnv) doWithHeaders(t *testing.T, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d body=%s", want, rec.Code, rec.Body.String())
	}
}

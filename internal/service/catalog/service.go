package catalog

import (
	"context"
	"strings"

	"paintland/internal/domain"
	catalogrepo "paintland/internal/repository/catalog"
)

type Service struct {
	repo catalogrepo.Repository
}

func New(repo catalogrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	return s.repo.ListBrands(ctx)
}

func (s *Service) GetBrand(ctx context.Context, id string) (*domain.Brand, error) {
	return s.repo.GetBrand(ctx, id)
}

// ListBrandProducts returns the products of an existing brand.
func (s *Service) ListBrandProducts(ctx context.Context, brandID string) ([]domain.Product, error) {
	if _, err := s.repo.GetBrand(ctx, brandID); err != nil {
		return nil, err
	}
	return s.repo.ListProductsByBrand(ctx, brandID)
}

func (s *Service) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	return s.repo.ListMaterials(ctx)
}

func (s *Service) GetMaterial(ctx context.Context, id string) (*domain.Material, error) {
	return s.repo.GetMaterial(ctx, id)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) ListColorGroups(ctx context.Context, productID string) ([]domain.ColorGroup, error) {
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListColorGroups(ctx, productID)
}

func (s *Service) ListProperties(ctx context.Context, productID string) ([]domain.Property, error) {
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListProperties(ctx, productID)
}

// ResolveCartItem looks up the product snapshot and optional color variant
// that a cart line item is built from. A blank variant id or the no-variant
// sentinel yields a nil variant. A variant the product does not offer is
// domain.ErrNotFound.
func (s *Service) ResolveCartItem(ctx context.Context, productID, variantID string) (domain.ProductSnapshot, *domain.ColorVariant, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domain.ProductSnapshot{}, nil, domain.ErrInvalidProduct
	}
	p, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return domain.ProductSnapshot{}, nil, err
	}
	variantID = strings.TrimSpace(variantID)
	if variantID == "" || variantID == domain.NoVariantID {
		return p.Snapshot(), nil, nil
	}
	v, err := s.repo.GetColorVariant(ctx, productID, variantID)
	if err != nil {
		return domain.ProductSnapshot{}, nil, err
	}
	return p.Snapshot(), v.CartVariant(), nil
}

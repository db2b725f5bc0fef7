package catalog

import (
	"context"

	"paintland/internal/domain"
)

// Repository is the read side of the catalog used by the storefront pages
// and by add-to-cart.
type Repository interface {
	ListBrands(ctx context.Context) ([]domain.Brand, error)
	GetBrand(ctx context.Context, id string) (*domain.Brand, error)
	ListProductsByBrand(ctx context.Context, brandID string) ([]domain.Product, error)
	ListMaterials(ctx context.Context) ([]domain.Material, error)
	GetMaterial(ctx context.Context, id string) (*domain.Material, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListColorGroups(ctx context.Context, productID string) ([]domain.ColorGroup, error)
	// GetColorVariant returns the variant only when its color group is
	// offered for productID.
	GetColorVariant(ctx context.Context, productID, variantID string) (*domain.CatalogVariant, error)
	ListProperties(ctx context.Context, productID string) ([]domain.Property, error)
}

// ProductColors is a product together with the color variants offered for it.
type ProductColors struct {
	Product domain.Product
	// Variants are grouped by GroupName; groups are created on demand.
	Variants []domain.CatalogVariant
}

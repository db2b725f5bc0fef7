package catalog

import (
	"context"
	"errors"
	"os"
	"testing"

	"paintland/internal/domain"
	"paintland/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_BrandsAndProducts(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	var brandID string
	if err := pool.QueryRow(ctx, `INSERT INTO brands (name) VALUES ('Sikkens') RETURNING id::text`).Scan(&brandID); err != nil {
		t.Fatalf("insert brand: %v", err)
	}
	var pid string
	err := pool.QueryRow(ctx, `
		INSERT INTO products (brand_id, name, description, image_url)
		VALUES ($1::uuid, 'Alpha Rezisto', 'washable', '/img/alpha.png')
		RETURNING id::text
	`, brandID).Scan(&pid)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}

	repo := NewPostgres(pool, nil)

	brands, err := repo.ListBrands(ctx)
	if err != nil || len(brands) != 1 {
		t.Fatalf("ListBrands: %v %v", brands, err)
	}
	list, err := repo.ListProductsByBrand(ctx, brandID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListProductsByBrand: %v %v", list, err)
	}
	got, err := repo.GetProduct(ctx, pid)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.BrandID != brandID || got.ImageURL != "/img/alpha.png" {
		t.Fatalf("unexpected product %+v", got)
	}
	if _, err := repo.GetProduct(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_UpsertProductColors(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	var brandID string
	if err := pool.QueryRow(ctx, `INSERT INTO brands (name) VALUES ('Tollens') RETURNING id::text`).Scan(&brandID); err != nil {
		t.Fatalf("insert brand: %v", err)
	}

	repo := NewPostgres(pool, nil)

	p, err := repo.UpsertProduct(ctx, ProductColors{
		Product: domain.Product{BrandID: brandID, Name: "Velours"},
		Variants: []domain.CatalogVariant{
			{GroupName: "Reds", ShadeCode: "R01", Name: "Crimson", HexCode: "#990000"},
			{GroupName: "Reds", ShadeCode: "R02", Name: "Scarlet"},
			{GroupName: "Blues", ShadeCode: "B01", Name: "Navy", HexCode: "#000080"},
		},
	})
	if err != nil {
		t.Fatalf("UpsertProduct insert: %v", err)
	}

	updated, err := repo.UpsertProduct(ctx, ProductColors{
		Product: domain.Product{BrandID: brandID, Name: "Velours", Description: "new desc"},
		Variants: []domain.CatalogVariant{
			{GroupName: "Reds", ShadeCode: "R01", Name: "Crimson Deep", HexCode: "#880000"},
		},
	})
	if err != nil {
		t.Fatalf("UpsertProduct update: %v", err)
	}
	if updated.ID != p.ID {
		t.Fatalf("expected same ID after update")
	}

	groups, err := repo.ListColorGroups(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListColorGroups: %v", err)
	}
	if len(groups) != 2 || groups[0].DisplayName != "Reds" || len(groups[0].Variants) != 2 {
		t.Fatalf("unexpected groups %+v", groups)
	}
	first := groups[0].Variants[0]
	if first.ShadeCode != "R01" || first.Name != "Crimson Deep" || first.HexCode != "#880000" {
		t.Fatalf("unexpected variant %+v", first)
	}

	v, err := repo.GetColorVariant(ctx, p.ID, first.ID)
	if err != nil {
		t.Fatalf("GetColorVariant: %v", err)
	}
	if v.GroupName != "Reds" {
		t.Fatalf("expected group name, got %+v", v)
	}

	other, err := repo.UpsertProduct(ctx, ProductColors{
		Product:  domain.Product{BrandID: brandID, Name: "Primer"},
		Variants: []domain.CatalogVariant{{GroupName: "Greys", ShadeCode: "G01", Name: "Slate"}},
	})
	if err != nil {
		t.Fatalf("UpsertProduct other: %v", err)
	}
	if _, err := repo.GetColorVariant(ctx, other.ID, first.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a variant the product does not offer, got %v", err)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE product_properties, properties, product_color_groups, color_variants, color_groups, products, materials, brands CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

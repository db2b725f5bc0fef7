package seed

import (
	"context"
	"fmt"

	"paintland/internal/domain"
	catalogrepo "paintland/internal/repository/catalog"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Brand       string
	Material    string
	Name        string
	Description string
	ImageURL    string
	Properties  []string
	Colors      []domain.CatalogVariant
}

type propertySeed struct {
	Label       string
	Description string
	Icon        string
}

var brands = []string{"Sikkens", "Tollens", "Astral"}

var materials = []string{"Wood", "Metal", "Interior walls", "Facade"}

var properties = []propertySeed{
	{Label: "Washable", Description: "Resists repeated cleaning", Icon: "droplet"},
	{Label: "Low odour", Description: "Water based, low VOC", Icon: "leaf"},
	{Label: "Satin finish", Description: "Soft sheen", Icon: "sparkle"},
	{Label: "Anti-rust", Description: "Protects bare metal", Icon: "shield"},
}

var reds = []domain.CatalogVariant{
	{GroupName: "Reds", ShadeCode: "R101", Name: "Brick Red", HexCode: "#8b3a2b"},
	{GroupName: "Reds", ShadeCode: "R102", Name: "Poppy", HexCode: "#d1342f"},
}

var neutrals = []domain.CatalogVariant{
	{GroupName: "Whites & Neutrals", ShadeCode: "N001", Name: "Pure White", HexCode: "#ffffff"},
	{GroupName: "Whites & Neutrals", ShadeCode: "N014", Name: "Linen", HexCode: "#ede3d1"},
	{GroupName: "Whites & Neutrals", ShadeCode: "N027", Name: "Pebble Grey", HexCode: "#a7a39b"},
}

var blues = []domain.CatalogVariant{
	{GroupName: "Blues", ShadeCode: "B210", Name: "Atlantic", HexCode: "#1f4e79"},
}

var products = []productSeed{
	{
		Brand:       "Sikkens",
		Material:    "Wood",
		Name:        "Rubbol BL Satura",
		Description: "Water based satin lacquer for joinery",
		ImageURL:    "/img/products/rubbol-satura.png",
		Properties:  []string{"Low odour", "Satin finish"},
		Colors:      append(append([]domain.CatalogVariant{}, neutrals...), blues...),
	},
	{
		Brand:       "Tollens",
		Material:    "Interior walls",
		Name:        "Velours Mat",
		Description: "Deep matt wall paint",
		ImageURL:    "/img/products/velours-mat.png",
		Properties:  []string{"Washable", "Low odour"},
		Colors:      append(append([]domain.CatalogVariant{}, neutrals...), reds...),
	},
	{
		Brand:       "Astral",
		Material:    "Metal",
		Name:        "Ferro Direct",
		Description: "Direct to metal anti-corrosion finish",
		ImageURL:    "/img/products/ferro-direct.png",
		Properties:  []string{"Anti-rust"},
		Colors:      reds,
	},
	{
		Brand:       "Astral",
		Material:    "Facade",
		Name:        "Primer Universal",
		Description: "Colourless primer, sold without a shade",
	},
}

// Apply inserts demo catalog data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	brandIDs := map[string]string{}
	for _, name := range brands {
		id, err := upsertNamed(ctx, pool, "brands", name)
		if err != nil {
			return fmt.Errorf("upsert brand %s: %w", name, err)
		}
		brandIDs[name] = id
	}

	materialIDs := map[string]string{}
	for _, name := range materials {
		id, err := upsertNamed(ctx, pool, "materials", name)
		if err != nil {
			return fmt.Errorf("upsert material %s: %w", name, err)
		}
		materialIDs[name] = id
	}

	propertyIDs := map[string]string{}
	for _, p := range properties {
		id, err := upsertProperty(ctx, pool, p)
		if err != nil {
			return fmt.Errorf("upsert property %s: %w", p.Label, err)
		}
		propertyIDs[p.Label] = id
	}

	repo := catalogrepo.NewPostgres(pool, nil)
	for _, p := range products {
		saved, err := repo.UpsertProduct(ctx, catalogrepo.ProductColors{
			Product: domain.Product{
				BrandID:     brandIDs[p.Brand],
				MaterialID:  materialIDs[p.Material],
				Name:        p.Name,
				Description: p.Description,
				ImageURL:    p.ImageURL,
			},
			Variants: p.Colors,
		})
		if err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
		for i, label := range p.Properties {
			if err := linkProperty(ctx, pool, saved.ID, propertyIDs[label], i); err != nil {
				return fmt.Errorf("link property %s to %s: %w", label, p.Name, err)
			}
		}
	}

	return nil
}

// upsertNamed handles the brands and materials tables, which share a unique name column.
func upsertNamed(ctx context.Context, pool *pgxpool.Pool, table, name string) (string, error) {
	q := fmt.Sprintf(`
INSERT INTO %s (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`, table)
	var id string
	if err := pool.QueryRow(ctx, q, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProperty(ctx context.Context, pool *pgxpool.Pool, p propertySeed) (string, error) {
	const q = `
INSERT INTO properties (short_label, description, icon)
VALUES ($1, $2, $3)
ON CONFLICT (short_label) DO UPDATE
SET description = EXCLUDED.description,
    icon = EXCLUDED.icon
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, p.Label, p.Description, p.Icon).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func linkProperty(ctx context.Context, pool *pgxpool.Pool, productID, propertyID string, order int) error {
	const q = `
INSERT INTO product_properties (product_id, property_id, sort_order)
VALUES ($1::uuid, $2::uuid, $3)
ON CONFLICT (product_id, property_id) DO UPDATE SET sort_order = EXCLUDED.sort_order
`
	_, err := pool.Exec(ctx, q, productID, propertyID, order)
	return err
}

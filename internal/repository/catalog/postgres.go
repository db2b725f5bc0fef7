package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"paintland/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) *PostgresRepo {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &PostgresRepo{pool: pool, logger: logger}
}

func (r *PostgresRepo) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	const q = `
SELECT id::text, name, COALESCE(description, ''), COALESCE(logo_url, ''), created_at
FROM brands
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("catalog repo: list brands error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Brand
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.LogoURL, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("catalog repo: list brands count=%d", len(result))
	return result, nil
}

func (r *PostgresRepo) GetBrand(ctx context.Context, id string) (*domain.Brand, error) {
	const q = `
SELECT id::text, name, COALESCE(description, ''), COALESCE(logo_url, ''), created_at
FROM brands
WHERE id::text = $1
`
	var b domain.Brand
	err := r.pool.QueryRow(ctx, q, id).Scan(&b.ID, &b.Name, &b.Description, &b.LogoURL, &b.CreatedAt)
	if err != nil {
		return nil, r.notFound(err, "get brand", id)
	}
	return &b, nil
}

func (r *PostgresRepo) ListProductsByBrand(ctx context.Context, brandID string) ([]domain.Product, error) {
	const q = `
SELECT id::text, COALESCE(brand_id::text, ''), COALESCE(material_id::text, ''), name, COALESCE(description, ''), COALESCE(image_url, ''), created_at
FROM products
WHERE brand_id::text = $1
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q, brandID)
	if err != nil {
		r.logger.Printf("catalog repo: list products brand_id=%s error=%v", brandID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.BrandID, &p.MaterialID, &p.Name, &p.Description, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("catalog repo: list products brand_id=%s count=%d", brandID, len(result))
	return result, nil
}

func (r *PostgresRepo) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	const q = `
SELECT id::text, name, COALESCE(description, ''), COALESCE(image_url, ''), created_at
FROM materials
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("catalog repo: list materials error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Material
	for rows.Next() {
		var m domain.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.ImageURL, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *PostgresRepo) GetMaterial(ctx context.Context, id string) (*domain.Material, error) {
	const q = `
SELECT id::text, name, COALESCE(description, ''), COALESCE(image_url, ''), created_at
FROM materials
WHERE id::text = $1
`
	var m domain.Material
	err := r.pool.QueryRow(ctx, q, id).Scan(&m.ID, &m.Name, &m.Description, &m.ImageURL, &m.CreatedAt)
	if err != nil {
		return nil, r.notFound(err, "get material", id)
	}
	return &m, nil
}

func (r *PostgresRepo) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT id::text, COALESCE(brand_id::text, ''), COALESCE(material_id::text, ''), name, COALESCE(description, ''), COALESCE(image_url, ''), created_at
FROM products
WHERE id::text = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.BrandID, &p.MaterialID, &p.Name, &p.Description, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		return nil, r.notFound(err, "get product", id)
	}
	r.logger.Printf("catalog repo: get product id=%s name=%q", id, p.Name)
	return &p, nil
}

func (r *PostgresRepo) ListColorGroups(ctx context.Context, productID string) ([]domain.ColorGroup, error) {
	const q = `
SELECT g.id::text, g.display_name, pcg.sort_order,
       v.id::text, v.name, v.shade_code, COALESCE(v.hex_code, ''), v.sort_order
FROM product_color_groups pcg
JOIN color_groups g ON g.id = pcg.group_id
LEFT JOIN color_variants v ON v.group_id = g.id
WHERE pcg.product_id::text = $1
ORDER BY pcg.sort_order, g.display_name, v.sort_order, v.name
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		r.logger.Printf("catalog repo: list color groups product_id=%s error=%v", productID, err)
		return nil, err
	}
	defer rows.Close()

	var groups []domain.ColorGroup
	for rows.Next() {
		var (
			g                       domain.ColorGroup
			vID, vName, vCode, vHex *string
			vSort                   *int
		)
		if err := rows.Scan(&g.ID, &g.DisplayName, &g.SortOrder, &vID, &vName, &vCode, &vHex, &vSort); err != nil {
			return nil, err
		}
		if n := len(groups); n == 0 || groups[n-1].ID != g.ID {
			g.Variants = []domain.CatalogVariant{}
			groups = append(groups, g)
		}
		if vID == nil {
			continue
		}
		v := domain.CatalogVariant{
			ID:        *vID,
			GroupID:   g.ID,
			GroupName: g.DisplayName,
			Name:      deref(vName),
			ShadeCode: deref(vCode),
			HexCode:   deref(vHex),
		}
		if vSort != nil {
			v.SortOrder = *vSort
		}
		last := &groups[len(groups)-1]
		last.Variants = append(last.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *PostgresRepo) GetColorVariant(ctx context.Context, productID, variantID string) (*domain.CatalogVariant, error) {
	const q = `
SELECT v.id::text, g.id::text, g.display_name, v.name, v.shade_code, COALESCE(v.hex_code, ''), v.sort_order
FROM color_variants v
JOIN color_groups g ON g.id = v.group_id
JOIN product_color_groups pcg ON pcg.group_id = v.group_id AND pcg.product_id::text = $1
WHERE v.id::text = $2
`
	var v domain.CatalogVariant
	err := r.pool.QueryRow(ctx, q, productID, variantID).Scan(&v.ID, &v.GroupID, &v.GroupName, &v.Name, &v.ShadeCode, &v.HexCode, &v.SortOrder)
	if err != nil {
		return nil, r.notFound(err, "get color variant product_id="+productID, variantID)
	}
	return &v, nil
}

func (r *PostgresRepo) ListProperties(ctx context.Context, productID string) ([]domain.Property, error) {
	const q = `
SELECT p.id::text, p.short_label, COALESCE(p.description, ''), COALESCE(p.icon, '')
FROM product_properties pp
JOIN properties p ON p.id = pp.property_id
WHERE pp.product_id::text = $1
ORDER BY pp.sort_order, p.short_label
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		r.logger.Printf("catalog repo: list properties product_id=%s error=%v", productID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Property
	for rows.Next() {
		var p domain.Property
		if err := rows.Scan(&p.ID, &p.ShortLabel, &p.Description, &p.Icon); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// UpsertProduct inserts or updates a product (keyed by brand and name) and
// attaches its color variants.
func (r *PostgresRepo) UpsertProduct(ctx context.Context, in ProductColors) (*domain.Product, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const productQ = `
INSERT INTO products (id, brand_id, material_id, name, description, image_url)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), NULLIF($2, '')::uuid, NULLIF($3, '')::uuid, $4, NULLIF($5, ''), NULLIF($6, ''))
ON CONFLICT (brand_id, name) DO UPDATE SET
    material_id = EXCLUDED.material_id,
    description = EXCLUDED.description,
    image_url = EXCLUDED.image_url
RETURNING id::text, created_at
`
	p := in.Product
	if err := tx.QueryRow(ctx, productQ, p.ID, p.BrandID, p.MaterialID, p.Name, p.Description, p.ImageURL).Scan(&p.ID, &p.CreatedAt); err != nil {
		r.logger.Printf("catalog repo: upsert product name=%q error=%v", in.Product.Name, err)
		return nil, fmt.Errorf("upsert product: %w", err)
	}
	if in.Product.ID != "" && p.ID != in.Product.ID {
		return nil, fmt.Errorf("catalog repo: id mismatch for product %q existing_id=%s import_id=%s", p.Name, p.ID, in.Product.ID)
	}

	groupOrder := map[string]int{}
	for i, v := range in.Variants {
		var groupID string
		err := tx.QueryRow(ctx, `
INSERT INTO color_groups (display_name)
VALUES ($1)
ON CONFLICT (display_name) DO UPDATE SET display_name = EXCLUDED.display_name
RETURNING id::text
`, v.GroupName).Scan(&groupID)
		if err != nil {
			return nil, fmt.Errorf("upsert color group %q: %w", v.GroupName, err)
		}
		if _, seen := groupOrder[groupID]; !seen {
			groupOrder[groupID] = len(groupOrder)
			if _, err := tx.Exec(ctx, `
INSERT INTO product_color_groups (product_id, group_id, sort_order)
VALUES ($1::uuid, $2::uuid, $3)
ON CONFLICT (product_id, group_id) DO UPDATE SET sort_order = EXCLUDED.sort_order
`, p.ID, groupID, groupOrder[groupID]); err != nil {
				return nil, fmt.Errorf("link color group %q: %w", v.GroupName, err)
			}
		}
		if _, err := tx.Exec(ctx, `
INSERT INTO color_variants (group_id, name, shade_code, hex_code, sort_order)
VALUES ($1::uuid, $2, $3, NULLIF($4, ''), $5)
ON CONFLICT (group_id, shade_code) DO UPDATE SET
    name = EXCLUDED.name,
    hex_code = EXCLUDED.hex_code,
    sort_order = EXCLUDED.sort_order
`, groupID, v.Name, v.ShadeCode, v.HexCode, i); err != nil {
			return nil, fmt.Errorf("upsert color variant %q: %w", v.ShadeCode, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("catalog repo: upserted product id=%s name=%q variants=%d", p.ID, p.Name, len(in.Variants))
	return &p, nil
}

func (r *PostgresRepo) notFound(err error, op, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.Printf("catalog repo: %s id=%s not found", op, id)
		return domain.ErrNotFound
	}
	r.logger.Printf("catalog repo: %s id=%s error=%v", op, id, err)
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

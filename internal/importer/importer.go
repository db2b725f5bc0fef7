package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"paintland/internal/domain"
	catalogrepo "paintland/internal/repository/catalog"
	"github.com/google/uuid"
)

type ProductWriter interface {
	UpsertProduct(ctx context.Context, in catalogrepo.ProductColors) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products
// together with their color variants.
//
// A row with a name starts a product; following rows without a name only
// add colors to it. Any row may carry a color.
type CSVImporter struct {
	reader *csv.Reader
	writer ProductWriter
}

func NewCSVImporter(r io.Reader, writer ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader: csvr,
		writer: writer,
	}
}

type csvRow struct {
	product domain.Product
	color   *domain.CatalogVariant
}

// Run parses CSV rows and upserts products. It returns the number of
// products written.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("read headers: missing name column")
	}

	var (
		current  *catalogrepo.ProductColors
		imported int
		line     = 1
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		row := parseRow(record, index)
		if row == nil {
			continue
		}

		if row.product.Name != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = &catalogrepo.ProductColors{Product: row.product}
		} else if current == nil {
			return imported, fmt.Errorf("line %d: color row before any product", line)
		}

		if row.color != nil {
			current.Variants = append(current.Variants, *row.color)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, in *catalogrepo.ProductColors) error {
	p := in.Product
	for _, id := range []struct{ field, value string }{{"id", p.ID}, {"brand_id", p.BrandID}, {"material_id", p.MaterialID}} {
		if id.value == "" {
			continue
		}
		if err := uuid.Validate(id.value); err != nil {
			return fmt.Errorf("invalid %s for product %q: %s", id.field, p.Name, id.value)
		}
	}
	if _, err := i.writer.UpsertProduct(ctx, *in); err != nil {
		return fmt.Errorf("upsert product %q: %w", p.Name, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	row := &csvRow{
		product: domain.Product{
			ID:          pick(record, index, "id"),
			BrandID:     pick(record, index, "brand_id"),
			MaterialID:  pick(record, index, "material_id"),
			Name:        pick(record, index, "name"),
			Description: pick(record, index, "description"),
			ImageURL:    pick(record, index, "image_url"),
		},
	}

	group := pick(record, index, "color.group")
	code := pick(record, index, "color.code")
	if code != "" {
		if group == "" {
			group = "Colors"
		}
		row.color = &domain.CatalogVariant{
			GroupName: group,
			ShadeCode: code,
			Name:      pick(record, index, "color.name"),
			HexCode:   pick(record, index, "color.hex"),
		}
		if row.color.Name == "" {
			row.color.Name = code
		}
	}

	if row.product.Name == "" && row.color == nil {
		return nil
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

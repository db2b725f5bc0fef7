package cart

import (
	"encoding/json"
	"strings"

	"paintland/internal/domain"
)

const (
	legacyShadeSeparator = " - "
	// Older product pages stored this text instead of leaving the color empty.
	legacyNoColorPlaceholder = "No color selected"
)

// legacyItem is the pre-key entry shape. shade held a "CODE - Name" string;
// some pages wrote it as selectedColor instead.
type legacyItem struct {
	ProductID     string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"image_url"`
	BrandID       string          `json:"brand_id"`
	Shade         json.RawMessage `json:"shade"`
	SelectedColor string          `json:"selectedColor"`
	Quantity      float64         `json:"quantity"`
}

// Migrate upgrades raw stored entries to the current LineItem schema.
// Entries that already carry a key are passed through untouched. Entries
// that end up with the same key are folded into the first one by adding
// their quantities. changed counts entries that were upgraded, folded or
// dropped as unreadable; zero means the stored value is already current and
// must not be rewritten.
func Migrate(raw []json.RawMessage, newVariantID func() string) ([]domain.LineItem, int) {
	items := make([]domain.LineItem, 0, len(raw))
	index := make(map[string]int, len(raw))
	changed := 0
	add := func(item domain.LineItem) {
		if i, ok := index[item.Key]; ok {
			items[i].Quantity += item.Quantity
			changed++
			return
		}
		index[item.Key] = len(items)
		items = append(items, item)
	}

	for _, entry := range raw {
		var probe struct {
			Key string `json:"key"`
		}
		if err := json.Unmarshal(entry, &probe); err != nil {
			changed++
			continue
		}

		if probe.Key != "" {
			var item domain.LineItem
			if err := json.Unmarshal(entry, &item); err != nil {
				changed++
				continue
			}
			add(item)
			continue
		}

		var old legacyItem
		if err := json.Unmarshal(entry, &old); err != nil || old.ProductID == "" {
			changed++
			continue
		}
		changed++
		add(upgradeLegacy(old, newVariantID))
	}
	return items, changed
}

func upgradeLegacy(old legacyItem, newVariantID func() string) domain.LineItem {
	shade := legacyShade(old, newVariantID)
	// Fractional quantities from hand-edited storage are truncated on purpose.
	quantity := int(old.Quantity)
	if quantity < 1 {
		quantity = 1
	}
	return domain.LineItem{
		Key:         domain.LineItemKey(old.ProductID, shade),
		ProductID:   old.ProductID,
		Name:        old.Name,
		Description: old.Description,
		ImageURL:    old.ImageURL,
		BrandID:     old.BrandID,
		Shade:       shade,
		Quantity:    quantity,
	}
}

func legacyShade(old legacyItem, newVariantID func() string) *domain.ColorVariant {
	label := old.SelectedColor
	if len(old.Shade) > 0 && string(old.Shade) != "null" {
		var s string
		if err := json.Unmarshal(old.Shade, &s); err == nil {
			label = s
		} else {
			var v domain.ColorVariant
			if err := json.Unmarshal(old.Shade, &v); err == nil {
				if v.ID == "" {
					v.ID = newVariantID()
					v.Migrated = true
				}
				return &v
			}
		}
	}

	label = strings.TrimSpace(label)
	if label == "" || strings.EqualFold(label, legacyNoColorPlaceholder) {
		return nil
	}

	code, name, _ := strings.Cut(label, legacyShadeSeparator)
	return &domain.ColorVariant{
		ID:       newVariantID(),
		Code:     strings.TrimSpace(code),
		Name:     strings.TrimSpace(name),
		Migrated: true,
	}
}

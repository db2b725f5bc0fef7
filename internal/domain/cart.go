package domain

// NoVariantID is the variant part of a line item key when no color was chosen.
const NoVariantID = "no-variant"

// ColorVariant is the color a line item was added with. It is a snapshot of
// the catalog variant at add time and never changes for the line item.
type ColorVariant struct {
	ID   string  `json:"id"`
	Code string  `json:"code"`
	Name string  `json:"name"`
	Hex  *string `json:"hex"`
	// Migrated marks variants recovered from a legacy color string. Their IDs
	// are synthetic and do not match any catalog variant.
	Migrated bool `json:"migrated,omitempty"`
}

// ProductSnapshot carries the display fields copied into a line item on add.
type ProductSnapshot struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	BrandID     string
}

// LineItem is one persisted cart entry.
type LineItem struct {
	Key         string        `json:"key"`
	ProductID   string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	ImageURL    string        `json:"image_url,omitempty"`
	BrandID     string        `json:"brand_id,omitempty"`
	Shade       *ColorVariant `json:"shade"`
	Quantity    int           `json:"quantity"`
}

// LineItemKey builds the identity of a line item from the product and the
// chosen variant.
func LineItemKey(productID string, variant *ColorVariant) string {
	variantID := NoVariantID
	if variant != nil && variant.ID != "" {
		variantID = variant.ID
	}
	return productID + "_" + variantID
}

// Clone returns a copy that shares no memory with l.
func (l LineItem) Clone() LineItem {
	out := l
	if l.Shade != nil {
		shade := *l.Shade
		if l.Shade.Hex != nil {
			hex := *l.Shade.Hex
			shade.Hex = &hex
		}
		out.Shade = &shade
	}
	return out
}

// CloneLineItems deep-copies items. A nil slice yields an empty one.
func CloneLineItems(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}

// TotalQuantity sums the quantities of items.
func TotalQuantity(items []LineItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

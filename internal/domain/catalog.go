package domain

import "time"

type Brand struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	LogoURL     string    `json:"logoUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Material struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Product struct {
	ID          string    `json:"id"`
	BrandID     string    `json:"brandId,omitempty"`
	MaterialID  string    `json:"materialId,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Snapshot copies the fields a cart line item keeps from the product.
func (p Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		BrandID:     p.BrandID,
	}
}

// CatalogVariant is a color variant as stored in the catalog.
type CatalogVariant struct {
	ID        string `json:"id"`
	GroupID   string `json:"groupId"`
	GroupName string `json:"groupName,omitempty"`
	Name      string `json:"name"`
	ShadeCode string `json:"shadeCode"`
	HexCode   string `json:"hexCode,omitempty"`
	SortOrder int    `json:"sortOrder"`
}

// CartVariant converts the catalog variant into the value stored on a line item.
func (v CatalogVariant) CartVariant() *ColorVariant {
	out := &ColorVariant{ID: v.ID, Code: v.ShadeCode, Name: v.Name}
	if v.HexCode != "" {
		hex := v.HexCode
		out.Hex = &hex
	}
	return out
}

type ColorGroup struct {
	ID          string           `json:"id"`
	DisplayName string           `json:"displayName"`
	SortOrder   int              `json:"sortOrder"`
	Variants    []CatalogVariant `json:"variants"`
}

type Property struct {
	ID          string `json:"id"`
	ShortLabel  string `json:"shortLabel"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

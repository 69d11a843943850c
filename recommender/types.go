package recommender

import "clazzyapi/colorutil"

// ClothingType is the closed set of garment categories the engine knows.
// Anything else maps to TypeOther.
type ClothingType string

const (
	TypeTop    ClothingType = "top"
	TypeBottom ClothingType = "bottom"
	TypeDress  ClothingType = "dress"
	TypeShoes  ClothingType = "shoes"
	TypeBlazer ClothingType = "blazer"
	TypeOther  ClothingType = "other"
)

// ParseClothingType normalizes an arbitrary type string into the closed set.
func ParseClothingType(s string) ClothingType {
	switch ClothingType(s) {
	case TypeTop, TypeBottom, TypeDress, TypeShoes, TypeBlazer:
		return ClothingType(s)
	default:
		return TypeOther
	}
}

// formality is how dressed-up a garment category reads, 0 to 1.
func (t ClothingType) formality() float64 {
	switch t {
	case TypeDress:
		return 0.7
	case TypeBlazer:
		return 0.9
	case TypeTop:
		return 0.5
	case TypeBottom:
		return 0.5
	case TypeShoes:
		return 0.6
	default:
		return 0.4
	}
}

// Item is a wardrobe entry as annotated by the classifier and color
// extractor. The engine only reads items, it never mutates them.
type Item struct {
	ID        string               `json:"id"`
	Type      ClothingType         `json:"type"`
	Colors    []colorutil.ColorInfo `json:"colors"`
	Embedding []float64            `json:"-"`
	ImageURL  string               `json:"image_url,omitempty"`
}

// DominantColor is the hex of the item's most prominent color, gray when
// no colors were extracted.
func (i *Item) DominantColor() string {
	if len(i.Colors) == 0 {
		return "#808080"
	}
	return i.Colors[0].Hex
}

// SecondaryColor reports the second most prominent color, if any.
func (i *Item) SecondaryColor() (string, bool) {
	if len(i.Colors) < 2 {
		return "", false
	}
	return i.Colors[1].Hex, true
}

// Outfit is one scored recommendation. Items are references into the
// wardrobe slice handed to Recommend.
type Outfit struct {
	Items            []*Item          `json:"items"`
	Score            float64          `json:"score"`
	TotalItems       int              `json:"total_items"`
	Occasion         string           `json:"occasion"`
	Scheme           colorutil.Scheme `json:"color_scheme"`
	SchemeConfidence float64          `json:"color_scheme_confidence"`
	DominantColors   []string         `json:"dominant_colors"`
}

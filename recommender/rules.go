package recommender

// ColorStyle steers the harmony scoring toward the palette mood an
// occasion calls for.
type ColorStyle string

const (
	StyleRelaxed      ColorStyle = "relaxed"
	StyleConservative ColorStyle = "conservative"
	StyleProfessional ColorStyle = "professional"
	StyleBold         ColorStyle = "bold"
	StyleHarmonious   ColorStyle = "harmonious"
	StyleVibrant      ColorStyle = "vibrant"
)

// Pattern is an ordered, duplicate-free list of clothing types making up
// one outfit shape.
type Pattern []ClothingType

// OccasionRule configures recommendation for one occasion. Rules are built
// once at engine construction and never mutated afterwards.
type OccasionRule struct {
	Combinations []Pattern
	ColorStyle   ColorStyle
	Formality    float64
}

// DefaultOccasion is used for any occasion missing from the rule table.
const DefaultOccasion = "casual"

// Patterns must pair complementary pieces: top+bottom, a dress, or a
// blazer over either. Never top+top or bottom+bottom.
func defaultRules() map[string]OccasionRule {
	return map[string]OccasionRule{
		"casual": {
			Combinations: []Pattern{
				{TypeTop, TypeBottom},
				{TypeDress},
				{TypeTop, TypeBottom, TypeShoes},
			},
			ColorStyle: StyleRelaxed,
			Formality:  0.3,
		},
		"formal": {
			Combinations: []Pattern{
				{TypeBlazer, TypeTop, TypeBottom},
				{TypeDress},
				{TypeTop, TypeBottom},
				{TypeBlazer, TypeDress},
			},
			ColorStyle: StyleConservative,
			Formality:  0.9,
		},
		"business": {
			Combinations: []Pattern{
				{TypeBlazer, TypeTop, TypeBottom},
				{TypeTop, TypeBottom},
				{TypeBlazer, TypeDress},
				{TypeDress},
			},
			ColorStyle: StyleProfessional,
			Formality:  0.8,
		},
		"party": {
			Combinations: []Pattern{
				{TypeDress},
				{TypeTop, TypeBottom},
				{TypeBlazer, TypeTop, TypeBottom},
				{TypeTop, TypeBottom, TypeShoes},
			},
			ColorStyle: StyleBold,
			Formality:  0.5,
		},
		"date": {
			Combinations: []Pattern{
				{TypeDress},
				{TypeTop, TypeBottom},
				{TypeBlazer, TypeTop, TypeBottom},
			},
			ColorStyle: StyleHarmonious,
			Formality:  0.6,
		},
		"sports": {
			Combinations: []Pattern{
				{TypeTop, TypeBottom},
				{TypeTop, TypeBottom, TypeShoes},
			},
			ColorStyle: StyleVibrant,
			Formality:  0.2,
		},
	}
}

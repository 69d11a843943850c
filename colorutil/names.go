package colorutil

import "math"

type namedColor struct {
	r, g, b int
	name    string
}

// catalog is the curated name table. Loaded once, never mutated, so it is
// safe for concurrent lookups.
var catalog = []namedColor{
	// Reds
	{255, 0, 0, "Red"}, {220, 20, 60, "Crimson"}, {178, 34, 34, "Firebrick"},
	{255, 69, 0, "Red Orange"}, {255, 99, 71, "Tomato"}, {250, 128, 114, "Salmon"},

	// Pinks
	{255, 192, 203, "Pink"}, {255, 182, 193, "Light Pink"}, {219, 112, 147, "Pale Violet Red"},
	{255, 20, 147, "Deep Pink"}, {199, 21, 133, "Medium Violet Red"}, {255, 0, 255, "Magenta"},
	{255, 105, 180, "Hot Pink"},

	// Oranges
	{255, 165, 0, "Orange"}, {255, 140, 0, "Dark Orange"}, {255, 127, 80, "Coral"},
	{255, 160, 122, "Light Salmon"}, {255, 218, 185, "Peach"},

	// Yellows
	{255, 255, 0, "Yellow"}, {255, 215, 0, "Gold"}, {255, 255, 224, "Light Yellow"},
	{255, 250, 205, "Lemon"}, {240, 230, 140, "Khaki"},

	// Greens
	{0, 255, 0, "Lime"}, {0, 128, 0, "Green"}, {34, 139, 34, "Forest Green"},
	{144, 238, 144, "Light Green"}, {143, 188, 143, "Dark Sea Green"},
	{107, 142, 35, "Olive"}, {154, 205, 50, "Yellow Green"},

	// Blues
	{0, 0, 255, "Blue"}, {0, 0, 139, "Dark Blue"}, {0, 191, 255, "Deep Sky Blue"},
	{135, 206, 235, "Sky Blue"}, {173, 216, 230, "Light Blue"},
	{70, 130, 180, "Steel Blue"}, {100, 149, 237, "Cornflower Blue"},
	{0, 128, 128, "Teal"}, {64, 224, 208, "Turquoise"}, {0, 255, 255, "Cyan"},

	// Purples
	{128, 0, 128, "Purple"}, {138, 43, 226, "Blue Violet"}, {148, 0, 211, "Dark Violet"},
	{186, 85, 211, "Medium Orchid"}, {221, 160, 221, "Plum"}, {238, 130, 238, "Violet"},
	{75, 0, 130, "Indigo"}, {147, 112, 219, "Medium Purple"},

	// Browns
	{165, 42, 42, "Brown"}, {139, 69, 19, "Saddle Brown"}, {160, 82, 45, "Sienna"},
	{210, 105, 30, "Chocolate"}, {205, 133, 63, "Peru"}, {244, 164, 96, "Sandy Brown"},
	{222, 184, 135, "Burlywood"}, {210, 180, 140, "Tan"},

	// Neutrals
	{0, 0, 0, "Black"}, {255, 255, 255, "White"}, {128, 128, 128, "Gray"},
	{192, 192, 192, "Silver"}, {211, 211, 211, "Light Gray"}, {169, 169, 169, "Dark Gray"},
	{245, 245, 220, "Beige"}, {255, 248, 220, "Cornsilk"}, {250, 240, 230, "Linen"},
	{245, 222, 179, "Wheat"}, {255, 228, 196, "Bisque"}, {255, 235, 205, "Blanched Almond"},

	// Navy and maroon
	{0, 0, 128, "Navy"}, {25, 25, 112, "Midnight Blue"}, {128, 0, 0, "Maroon"},
	{139, 0, 0, "Dark Red"}, {85, 107, 47, "Dark Olive Green"},
}

// Name maps an RGB color to a human readable name. Low-saturation colors
// are bucketed into the gray scale, everything else is matched against the
// catalog by Euclidean RGB distance with a hue-bucket fallback when no
// catalog entry is close enough.
func Name(r, g, b int) string {
	h, s, v := RGBToHSV(r, g, b)

	if s < 20 {
		switch {
		case v < 20:
			return "Black"
		case v > 90:
			return "White"
		case v > 70:
			return "Light Gray"
		case v < 40:
			return "Dark Gray"
		default:
			return "Gray"
		}
	}

	minDist := math.Inf(1)
	closest := ""
	for _, c := range catalog {
		dr := float64(r - c.r)
		dg := float64(g - c.g)
		db := float64(b - c.b)
		dist := math.Sqrt(dr*dr + dg*dg + db*db)
		if dist < minDist {
			minDist = dist
			closest = c.name
		}
	}

	if minDist > 100 {
		return hueName(h, s, v)
	}
	return closest
}

// NameHex is Name for hex input.
func NameHex(hex string) (string, error) {
	r, g, b, err := HexToRGB(hex)
	if err != nil {
		return "", err
	}
	return Name(r, g, b), nil
}

func hueName(h, s, v float64) string {
	prefix := ""
	if v < 30 {
		prefix = "Dark "
	} else if v > 80 && s < 50 {
		prefix = "Light "
	}

	var base string
	switch {
	case h < 15 || h >= 345:
		base = "Red"
	case h < 45:
		base = "Orange"
	case h < 75:
		base = "Yellow"
	case h < 150:
		base = "Green"
	case h < 210:
		base = "Cyan"
	case h < 270:
		base = "Blue"
	case h < 330:
		base = "Purple"
	default:
		base = "Pink"
	}
	return prefix + base
}

package colorutil

import "math"

// Scheme names the color-wheel relation between two colors.
type Scheme string

const (
	SchemeNeutral            Scheme = "neutral"
	SchemeMonochromatic      Scheme = "monochromatic"
	SchemeAnalogous          Scheme = "analogous"
	SchemeTetradic           Scheme = "tetradic"
	SchemeTriadic            Scheme = "triadic"
	SchemeSplitComplementary Scheme = "split-complementary"
	SchemeComplementary      Scheme = "complementary"
	SchemeCustom             Scheme = "custom"
)

func rotateHue(h, s, v, deg float64) string {
	r, g, b := HSVToRGB(math.Mod(h+deg+360, 360), s, v)
	return RGBToHex(r, g, b)
}

// Complementary returns the color opposite on the wheel.
func Complementary(hex string) (string, error) {
	h, s, v, err := hexToHSV(hex)
	if err != nil {
		return "", err
	}
	return rotateHue(h, s, v, 180), nil
}

// Analogous returns the two colors adjacent on the wheel, ±30 degrees.
func Analogous(hex string) ([]string, error) {
	h, s, v, err := hexToHSV(hex)
	if err != nil {
		return nil, err
	}
	return []string{rotateHue(h, s, v, 30), rotateHue(h, s, v, -30)}, nil
}

// Triadic returns the two colors 120 degrees apart.
func Triadic(hex string) ([]string, error) {
	h, s, v, err := hexToHSV(hex)
	if err != nil {
		return nil, err
	}
	return []string{rotateHue(h, s, v, 120), rotateHue(h, s, v, 240)}, nil
}

// SplitComplementary returns the two colors adjacent to the complement.
func SplitComplementary(hex string) ([]string, error) {
	h, s, v, err := hexToHSV(hex)
	if err != nil {
		return nil, err
	}
	return []string{rotateHue(h, s, v, 150), rotateHue(h, s, v, 210)}, nil
}

// Tetradic returns the three remaining corners of the square on the wheel.
func Tetradic(hex string) ([]string, error) {
	h, s, v, err := hexToHSV(hex)
	if err != nil {
		return nil, err
	}
	return []string{
		rotateHue(h, s, v, 90),
		rotateHue(h, s, v, 180),
		rotateHue(h, s, v, 270),
	}, nil
}

// Monochromatic returns four same-hue variations: lighter, darker,
// more saturated and pastel.
func Monochromatic(hex string) ([]string, error) {
	h, s, v, err := hexToHSV(hex)
	if err != nil {
		return nil, err
	}
	variants := [][2]float64{
		{math.Max(s-30, 20), math.Min(v+20, 100)},
		{math.Min(s+10, 100), math.Max(v-30, 20)},
		{math.Min(s+30, 100), v},
		{math.Max(s-40, 10), math.Min(v+10, 95)},
	}
	out := make([]string, 0, len(variants))
	for _, sv := range variants {
		r, g, b := HSVToRGB(h, sv[0], sv[1])
		out = append(out, RGBToHex(r, g, b))
	}
	return out, nil
}

// Schemes returns every scheme generated from a base color, keyed by name.
func Schemes(hex string) (map[string][]string, error) {
	comp, err := Complementary(hex)
	if err != nil {
		return nil, err
	}
	analogous, _ := Analogous(hex)
	triadic, _ := Triadic(hex)
	split, _ := SplitComplementary(hex)
	tetradic, _ := Tetradic(hex)
	mono, _ := Monochromatic(hex)
	return map[string][]string{
		"complementary":       {comp},
		"analogous":           analogous,
		"triadic":             triadic,
		"split_complementary": split,
		"tetradic":            tetradic,
		"monochromatic":       mono,
	}, nil
}

// Harmony scores how well two colors work together, 0 to 1. Neutrals pair
// with everything; otherwise the circular hue difference is bucketed into
// classic color-wheel bands, then nudged by value and saturation contrast.
// The bands overlap at their edges so the ordering of checks is significant.
func Harmony(hexA, hexB string) (float64, error) {
	h1, s1, v1, err := hexToHSV(hexA)
	if err != nil {
		return 0, err
	}
	h2, s2, v2, err := hexToHSV(hexB)
	if err != nil {
		return 0, err
	}

	hueDiff := math.Abs(h1 - h2)
	if hueDiff > 180 {
		hueDiff = 360 - hueDiff
	}

	if s1 < 20 || s2 < 20 {
		return 0.85, nil
	}

	if hueDiff < 15 {
		// Same hue family, contrast decides.
		if math.Abs(v1-v2) > 30 {
			return 0.88, nil
		}
		return 0.75, nil
	}

	var score float64
	switch {
	case 160 <= hueDiff && hueDiff <= 200:
		score = 0.95 // complementary
	case 105 <= hueDiff && hueDiff <= 135 || 225 <= hueDiff && hueDiff <= 255:
		score = 0.92 // triadic
	case 75 <= hueDiff && hueDiff <= 105 || 255 <= hueDiff && hueDiff <= 285:
		score = 0.90 // tetradic
	case 15 <= hueDiff && hueDiff <= 45:
		score = 0.87 // analogous
	case 130 <= hueDiff && hueDiff <= 170 || 190 <= hueDiff && hueDiff <= 210:
		score = 0.82 // split-complementary
	case 45 < hueDiff && hueDiff <= 75:
		score = 0.78
	case 75 < hueDiff && hueDiff < 105:
		score = 0.70
	default:
		score = 0.55
	}

	if math.Abs(v1-v2) > 25 {
		score = math.Min(score+0.05, 1.0)
	}
	if math.Abs(s1-s2) > 60 {
		score = math.Max(score-0.05, 0.5)
	}
	return score, nil
}

// SchemeType classifies the relation between two colors.
func SchemeType(hexA, hexB string) (Scheme, error) {
	h1, s1, _, err := hexToHSV(hexA)
	if err != nil {
		return "", err
	}
	h2, s2, _, err := hexToHSV(hexB)
	if err != nil {
		return "", err
	}

	if s1 < 20 || s2 < 20 {
		return SchemeNeutral, nil
	}

	hueDiff := math.Abs(h1 - h2)
	if hueDiff > 180 {
		hueDiff = 360 - hueDiff
	}

	switch {
	case hueDiff < 15:
		return SchemeMonochromatic, nil
	case 15 <= hueDiff && hueDiff <= 45:
		return SchemeAnalogous, nil
	case 75 <= hueDiff && hueDiff <= 105:
		return SchemeTetradic, nil
	case 105 <= hueDiff && hueDiff <= 135:
		return SchemeTriadic, nil
	case 130 <= hueDiff && hueDiff <= 170:
		return SchemeSplitComplementary, nil
	case 160 <= hueDiff && hueDiff <= 200:
		return SchemeComplementary, nil
	default:
		return SchemeCustom, nil
	}
}

func hexToHSV(hex string) (h, s, v float64, err error) {
	r, g, b, err := HexToRGB(hex)
	if err != nil {
		return 0, 0, 0, err
	}
	h, s, v = RGBToHSV(r, g, b)
	return h, s, v, nil
}

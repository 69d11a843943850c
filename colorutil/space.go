package colorutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidColorFormat is returned for anything that is not a #rrggbb hex string.
var ErrInvalidColorFormat = errors.New("invalid color format, expected #rrggbb")

// RGBToHSV converts 0-255 channels to hue in degrees [0,360) and
// saturation/value in percent [0,100].
func RGBToHSV(r, g, b int) (h, s, v float64) {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	delta := max - min

	v = max * 100
	if max > 0 {
		s = delta / max * 100
	}
	if delta == 0 {
		return 0, s, v
	}

	switch max {
	case rf:
		h = math.Mod((gf-bf)/delta, 6)
	case gf:
		h = (bf-rf)/delta + 2
	default:
		h = (rf-gf)/delta + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, v
}

// HSVToRGB is the inverse of RGBToHSV. Output channels are truncated,
// not rounded, so a round trip may drift by at most one per channel.
func HSVToRGB(h, s, v float64) (r, g, b int) {
	h = math.Mod(h, 360) / 60
	if h < 0 {
		h += 6
	}
	s /= 100
	v /= 100

	i := int(h)
	f := h - float64(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var rf, gf, bf float64
	switch i % 6 {
	case 0:
		rf, gf, bf = v, t, p
	case 1:
		rf, gf, bf = q, v, p
	case 2:
		rf, gf, bf = p, v, t
	case 3:
		rf, gf, bf = p, q, v
	case 4:
		rf, gf, bf = t, p, v
	default:
		rf, gf, bf = v, p, q
	}
	return int(rf * 255), int(gf * 255), int(bf * 255)
}

// HexToRGB parses a case-insensitive #rrggbb string. The leading # is optional.
func HexToRGB(hex string) (r, g, b int, err error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return 0, 0, 0, ErrInvalidColorFormat
	}
	val, parseErr := strconv.ParseUint(hex, 16, 32)
	if parseErr != nil {
		return 0, 0, 0, ErrInvalidColorFormat
	}
	return int(val >> 16 & 0xff), int(val >> 8 & 0xff), int(val & 0xff), nil
}

// RGBToHex formats channels as lowercase zero-padded #rrggbb.
func RGBToHex(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

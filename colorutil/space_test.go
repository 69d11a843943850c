package colorutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToRGB(t *testing.T) {
	r, g, b, err := HexToRGB("#FF5733")
	require.NoError(t, err)
	assert.Equal(t, 255, r)
	assert.Equal(t, 87, g)
	assert.Equal(t, 51, b)

	// Prefix optional, case insensitive
	r, g, b, err = HexToRGB("ff5733")
	require.NoError(t, err)
	assert.Equal(t, [3]int{255, 87, 51}, [3]int{r, g, b})
}

func TestHexToRGBInvalid(t *testing.T) {
	for _, bad := range []string{"", "#fff", "#ff573", "#gg0000", "not a color"} {
		_, _, _, err := HexToRGB(bad)
		assert.ErrorIs(t, err, ErrInvalidColorFormat, "input %q", bad)
	}
}

func TestRGBToHexLowercase(t *testing.T) {
	assert.Equal(t, "#ff0000", RGBToHex(255, 0, 0))
	assert.Equal(t, "#00080f", RGBToHex(0, 8, 15))
}

func TestHexRoundTrip(t *testing.T) {
	for _, hex := range []string{"#ff0000", "#00ff00", "#0000ff", "#808080", "#123abc", "#000000", "#ffffff"} {
		r, g, b, err := HexToRGB(hex)
		require.NoError(t, err)
		assert.Equal(t, hex, RGBToHex(r, g, b))
	}
}

func TestRGBToHSV(t *testing.T) {
	h, s, v := RGBToHSV(255, 0, 0)
	assert.InDelta(t, 0, h, 0.01)
	assert.InDelta(t, 100, s, 0.01)
	assert.InDelta(t, 100, v, 0.01)

	h, s, v = RGBToHSV(0, 255, 0)
	assert.InDelta(t, 120, h, 0.01)
	assert.InDelta(t, 100, s, 0.01)
	assert.InDelta(t, 100, v, 0.01)

	h, s, v = RGBToHSV(128, 128, 128)
	assert.InDelta(t, 0, h, 0.01)
	assert.InDelta(t, 0, s, 0.01)
	assert.InDelta(t, 50.2, v, 0.1)
}

func TestHSVRoundTrip(t *testing.T) {
	colors := [][3]int{
		{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {255, 87, 51},
		{12, 200, 99}, {128, 128, 128}, {1, 2, 3}, {254, 253, 252},
	}
	for _, c := range colors {
		h, s, v := RGBToHSV(c[0], c[1], c[2])
		r, g, b := HSVToRGB(h, s, v)
		// Truncation on conversion back may lose at most one per channel.
		assert.InDelta(t, c[0], r, 1, "red channel of %v", c)
		assert.InDelta(t, c[1], g, 1, "green channel of %v", c)
		assert.InDelta(t, c[2], b, 1, "blue channel of %v", c)
	}
}

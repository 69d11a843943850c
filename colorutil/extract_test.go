package colorutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestExtractColorsSolid(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	colors, err := ExtractColors(encodePNG(t, img))
	require.NoError(t, err)
	require.NotEmpty(t, colors)

	dominant := colors[0]
	assert.Equal(t, "#ff0000", dominant.Hex)
	assert.Equal(t, "Red", dominant.Name)
	assert.InDelta(t, 100, dominant.Percentage, 0.5)
}

func TestExtractColorsTwoTone(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			if x < 30 {
				img.Set(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}

	colors, err := ExtractColors(encodePNG(t, img))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(colors), 2)

	// Red and blue split roughly evenly, order between them is not fixed
	top := map[string]float64{colors[0].Hex: colors[0].Percentage, colors[1].Hex: colors[1].Percentage}
	assert.Contains(t, top, "#ff0000")
	assert.Contains(t, top, "#0000ff")
	assert.InDelta(t, 50, top["#ff0000"], 10)
	assert.InDelta(t, 50, top["#0000ff"], 10)

	// Descending percentage order
	for i := 1; i < len(colors); i++ {
		assert.GreaterOrEqual(t, colors[i-1].Percentage, colors[i].Percentage)
	}
}

func TestExtractColorsBadImage(t *testing.T) {
	_, err := ExtractColors([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestDominantColorFallback(t *testing.T) {
	assert.Equal(t, "#808080", DominantColor(nil))
}

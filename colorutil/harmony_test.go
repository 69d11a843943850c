package colorutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplementary(t *testing.T) {
	comp, err := Complementary("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, "#00ffff", comp)
}

func TestSchemeGeneratorCounts(t *testing.T) {
	analogous, err := Analogous("#3366cc")
	require.NoError(t, err)
	assert.Len(t, analogous, 2)

	triadic, err := Triadic("#3366cc")
	require.NoError(t, err)
	assert.Len(t, triadic, 2)

	split, err := SplitComplementary("#3366cc")
	require.NoError(t, err)
	assert.Len(t, split, 2)

	tetradic, err := Tetradic("#3366cc")
	require.NoError(t, err)
	assert.Len(t, tetradic, 3)

	mono, err := Monochromatic("#3366cc")
	require.NoError(t, err)
	assert.Len(t, mono, 4)
}

func TestSchemesInvalidColor(t *testing.T) {
	_, err := Schemes("#nothex")
	assert.ErrorIs(t, err, ErrInvalidColorFormat)
}

func TestSchemesContainsAll(t *testing.T) {
	schemes, err := Schemes("#ff0000")
	require.NoError(t, err)
	for _, key := range []string{"complementary", "analogous", "triadic", "split_complementary", "tetradic", "monochromatic"} {
		assert.Contains(t, schemes, key)
	}
	assert.Equal(t, []string{"#00ffff"}, schemes["complementary"])
}

func TestHarmonyComplementary(t *testing.T) {
	score, err := Harmony("#ff0000", "#00ffff")
	require.NoError(t, err)
	assert.InDelta(t, 0.95, score, 0.001)

	scheme, err := SchemeType("#ff0000", "#00ffff")
	require.NoError(t, err)
	assert.Equal(t, SchemeComplementary, scheme)
}

func TestHarmonyNeutralShortCircuit(t *testing.T) {
	score, err := Harmony("#808080", "#ff0000")
	require.NoError(t, err)
	assert.Equal(t, 0.85, score)

	// Order does not matter
	score, err = Harmony("#ff0000", "#808080")
	require.NoError(t, err)
	assert.Equal(t, 0.85, score)
}

func TestHarmonySameColorIsFlatMonochrome(t *testing.T) {
	score, err := Harmony("#ff0000", "#ff0000")
	require.NoError(t, err)
	assert.Equal(t, 0.75, score)
}

func TestHarmonyMonochromeContrast(t *testing.T) {
	// Same hue, strong value contrast
	score, err := Harmony("#ff0000", "#660000")
	require.NoError(t, err)
	assert.Equal(t, 0.88, score)
}

func TestHarmonyTriadic(t *testing.T) {
	score, err := Harmony("#ff0000", "#00ff00")
	require.NoError(t, err)
	assert.InDelta(t, 0.92, score, 0.001)

	scheme, err := SchemeType("#ff0000", "#00ff00")
	require.NoError(t, err)
	assert.Equal(t, SchemeTriadic, scheme)
}

func TestHarmonyAnalogous(t *testing.T) {
	// Hues 0 and 30
	score, err := Harmony("#ff0000", "#ff8000")
	require.NoError(t, err)
	assert.InDelta(t, 0.87, score, 0.001)

	scheme, err := SchemeType("#ff0000", "#ff8000")
	require.NoError(t, err)
	assert.Equal(t, SchemeAnalogous, scheme)
}

func TestHarmonyValueContrastBonus(t *testing.T) {
	// Hues 0 and 30, values 100 and 50: analogous base plus contrast bonus
	score, err := Harmony("#ff0000", "#804000")
	require.NoError(t, err)
	assert.InDelta(t, 0.92, score, 0.001)
}

func TestHarmonyInvalidInput(t *testing.T) {
	_, err := Harmony("#ff0000", "oops")
	assert.ErrorIs(t, err, ErrInvalidColorFormat)

	_, err = SchemeType("oops", "#ff0000")
	assert.ErrorIs(t, err, ErrInvalidColorFormat)
}

func TestSchemeTypeNeutral(t *testing.T) {
	scheme, err := SchemeType("#808080", "#ff0000")
	require.NoError(t, err)
	assert.Equal(t, SchemeNeutral, scheme)
}

func TestSchemeTypeMonochromatic(t *testing.T) {
	scheme, err := SchemeType("#ff0000", "#990000")
	require.NoError(t, err)
	assert.Equal(t, SchemeMonochromatic, scheme)
}

func TestHarmonyRange(t *testing.T) {
	colors := []string{"#ff0000", "#00ff00", "#0000ff", "#ffff00", "#808080", "#123456", "#fedcba"}
	for _, a := range colors {
		for _, b := range colors {
			score, err := Harmony(a, b)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}

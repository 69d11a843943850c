package recommender

import (
	"math"

	"clazzyapi/colorutil"
)

// minOutfitScore is the floor below which a candidate outfit is discarded.
const minOutfitScore = 0.50

// Scoring weights: color harmony dominates, then style cohesion, occasion
// fit and item variety.
const (
	weightColorHarmony    = 0.40
	weightStyleSimilarity = 0.30
	weightOccasionFit     = 0.20
	weightVariety         = 0.10
)

func (e *Engine) scoreOutfit(items []*Item, rule OccasionRule) float64 {
	if len(items) == 0 {
		return 0
	}

	colorScore := colorHarmonyScore(items, rule.ColorStyle)
	styleScore := styleSimilarityScore(items)
	occasionScore := occasionFitScore(items, rule.Formality)

	variety := float64(len(items)) / 3.0
	if variety > 1 {
		variety = 1
	}

	return colorScore*weightColorHarmony +
		styleScore*weightStyleSimilarity +
		occasionScore*weightOccasionFit +
		variety*weightVariety
}

// colorHarmonyScore averages pairwise harmony over every dominant and
// secondary color in the outfit, then nudges the average toward the
// occasion's color style.
func colorHarmonyScore(items []*Item, style ColorStyle) float64 {
	if len(items) < 2 {
		return 0.88
	}

	var colors []string
	for _, item := range items {
		colors = append(colors, item.DominantColor())
		if secondary, ok := item.SecondaryColor(); ok {
			colors = append(colors, secondary)
		}
	}

	var scores []float64
	schemes := map[colorutil.Scheme]bool{}
	for i := 0; i < len(colors); i++ {
		for j := i + 1; j < len(colors); j++ {
			score, err := colorutil.Harmony(colors[i], colors[j])
			if err != nil {
				continue
			}
			scores = append(scores, score)
			if scheme, err := colorutil.SchemeType(colors[i], colors[j]); err == nil {
				schemes[scheme] = true
			}
		}
	}
	if len(scores) == 0 {
		return 0.88
	}

	avg := 0.0
	for _, s := range scores {
		avg += s
	}
	avg /= float64(len(scores))

	boost := func(factor float64) {
		avg = math.Min(avg*factor, 1.0)
	}

	switch style {
	case StyleConservative:
		if schemes[colorutil.SchemeAnalogous] || schemes[colorutil.SchemeMonochromatic] {
			boost(1.08)
		}
		if schemes[colorutil.SchemeComplementary] && avg > 0.92 {
			avg *= 0.96
		}
	case StyleBold:
		if schemes[colorutil.SchemeComplementary] {
			boost(1.10)
		}
		if schemes[colorutil.SchemeTriadic] {
			boost(1.08)
		}
	case StyleProfessional:
		if schemes[colorutil.SchemeNeutral] {
			boost(1.12)
		}
		if schemes[colorutil.SchemeMonochromatic] {
			boost(1.06)
		}
	case StyleHarmonious:
		if schemes[colorutil.SchemeAnalogous] {
			boost(1.10)
		}
		if schemes[colorutil.SchemeMonochromatic] {
			boost(1.08)
		}
	case StyleVibrant:
		if schemes[colorutil.SchemeTriadic] || schemes[colorutil.SchemeTetradic] {
			boost(1.08)
		}
	}

	if len(schemes) > 1 {
		boost(1.03)
	}
	return avg
}

// styleSimilarityScore measures how cohesive the outfit's embeddings are.
// Missing embeddings degrade to a fixed default instead of failing.
func styleSimilarityScore(items []*Item) float64 {
	if len(items) < 2 {
		return 0.80
	}

	var embeddings [][]float64
	for _, item := range items {
		if len(item.Embedding) > 0 {
			embeddings = append(embeddings, item.Embedding)
		}
	}
	if len(embeddings) < 2 {
		return 0.75
	}

	var total float64
	var pairs int
	for i := 0; i < len(embeddings); i++ {
		for j := i + 1; j < len(embeddings); j++ {
			// Map cosine similarity from [-1,1] into [0,1]
			total += (cosineSimilarity(embeddings[i], embeddings[j]) + 1) / 2
			pairs++
		}
	}
	avg := total / float64(pairs)

	// Remap into [0.6,1.0] so dissimilar but valid outfits are not crushed
	return 0.6 + avg*0.4
}

func occasionFitScore(items []*Item, targetFormality float64) float64 {
	var total float64
	for _, item := range items {
		total += item.Type.formality()
	}
	outfitFormality := total / float64(len(items))

	fit := 1.0 - math.Abs(outfitFormality-targetFormality)*0.8
	if fit < 0.5 {
		fit = 0.5
	}
	return fit
}

func cosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

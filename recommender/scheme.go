package recommender

import "clazzyapi/colorutil"

// SchemeInfo summarizes the color relation across an outfit: the most
// frequent pairwise scheme and its share of all pairs.
type SchemeInfo struct {
	Scheme     colorutil.Scheme `json:"scheme"`
	Confidence float64          `json:"confidence"`
	Colors     []string         `json:"colors"`
}

func outfitScheme(items []*Item) SchemeInfo {
	if len(items) < 2 {
		dominant := "#808080"
		if len(items) == 1 {
			dominant = items[0].DominantColor()
		}
		return SchemeInfo{
			Scheme:     colorutil.SchemeMonochromatic,
			Confidence: 0.90,
			Colors:     []string{dominant},
		}
	}

	colors := make([]string, 0, len(items))
	for _, item := range items {
		colors = append(colors, item.DominantColor())
	}

	counts := map[colorutil.Scheme]int{}
	var order []colorutil.Scheme
	totalPairs := 0
	for i := 0; i < len(colors); i++ {
		for j := i + 1; j < len(colors); j++ {
			scheme, err := colorutil.SchemeType(colors[i], colors[j])
			if err != nil {
				continue
			}
			if counts[scheme] == 0 {
				order = append(order, scheme)
			}
			counts[scheme]++
			totalPairs++
		}
	}
	if totalPairs == 0 {
		return SchemeInfo{Scheme: colorutil.SchemeCustom, Confidence: 0.50, Colors: colors}
	}

	// Ties go to the scheme seen first, keeping the result deterministic.
	dominant := order[0]
	for _, scheme := range order[1:] {
		if counts[scheme] > counts[dominant] {
			dominant = scheme
		}
	}

	return SchemeInfo{
		Scheme:     dominant,
		Confidence: float64(counts[dominant]) / float64(totalPairs),
		Colors:     colors,
	}
}

// Package recommender generates scored outfit suggestions from a wardrobe
// by combining color theory, embedding similarity and occasion rules.
package recommender

import "sort"

const defaultMaxOutfits = 5

// Engine is the outfit recommendation engine. It is stateless between
// calls and safe for concurrent use: the rule table is built once and
// only ever read.
type Engine struct {
	rules map[string]OccasionRule
}

func New() *Engine {
	return &Engine{rules: defaultRules()}
}

// RuleFor resolves an occasion name, falling back to the casual rule for
// anything unknown.
func (e *Engine) RuleFor(occasion string) OccasionRule {
	if rule, ok := e.rules[occasion]; ok {
		return rule
	}
	return e.rules[DefaultOccasion]
}

// Occasions lists the configured occasion names.
func (e *Engine) Occasions() []string {
	names := make([]string, 0, len(e.rules))
	for name := range e.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Recommend walks the occasion's combination patterns in order,
// accumulating valid outfits until maxOutfits is reached, then sorts by
// descending score. itemsPerOutfit is a caller hint only, the patterns
// decide the outfit sizes. An empty result is a valid answer, not an
// error.
func (e *Engine) Recommend(items []*Item, occasion string, maxOutfits, itemsPerOutfit int) []Outfit {
	if len(items) == 0 {
		return []Outfit{}
	}
	if maxOutfits <= 0 {
		maxOutfits = defaultMaxOutfits
	}

	rule := e.RuleFor(occasion)

	byType := map[ClothingType][]*Item{}
	for _, item := range items {
		byType[item.Type] = append(byType[item.Type], item)
	}

	outfits := []Outfit{}
	for _, pattern := range rule.Combinations {
		generated := e.combinations(byType, pattern, occasion, rule, maxOutfits-len(outfits))
		outfits = append(outfits, generated...)
		if len(outfits) >= maxOutfits {
			break
		}
	}

	// Stable keeps discovery order for equal scores.
	sort.SliceStable(outfits, func(i, j int) bool {
		return outfits[i].Score > outfits[j].Score
	})
	if len(outfits) > maxOutfits {
		outfits = outfits[:maxOutfits]
	}
	return outfits
}

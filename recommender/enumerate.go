package recommender

import "fmt"

// maxItemsPerType bounds the branching factor of the search: only the
// first few items of each type are tried, keeping worst-case work
// independent of wardrobe size.
const maxItemsPerType = 5

// validPattern reports whether a pattern describes a wearable outfit:
// exactly a dress, top with bottom, a blazer over top+bottom or over a
// dress, or any of those plus shoes.
func validPattern(pattern Pattern) bool {
	set := map[ClothingType]bool{}
	for _, t := range pattern {
		set[t] = true
	}

	if len(set) == 1 && set[TypeDress] {
		return true
	}
	if set[TypeTop] && set[TypeBottom] {
		return true
	}
	if set[TypeBlazer] && set[TypeDress] {
		return true
	}
	if set[TypeShoes] {
		delete(set, TypeShoes)
		if (set[TypeTop] && set[TypeBottom]) || set[TypeDress] {
			return true
		}
	}
	return false
}

// combinations runs the bounded backtracking search for one pattern and
// returns at most limit scored outfits. Patterns with duplicate types or
// missing wardrobe coverage are skipped silently, not errors.
func (e *Engine) combinations(byType map[ClothingType][]*Item, pattern Pattern, occasion string, rule OccasionRule, limit int) []Outfit {
	if limit <= 0 {
		return nil
	}

	for _, t := range pattern {
		if len(byType[t]) == 0 {
			return nil
		}
	}

	seen := map[ClothingType]bool{}
	for _, t := range pattern {
		if seen[t] {
			fmt.Printf("[Recommend] skipping pattern with duplicate types: %v\n", pattern)
			return nil
		}
		seen[t] = true
	}

	if !validPattern(pattern) {
		fmt.Printf("[Recommend] skipping incomplete outfit pattern: %v\n", pattern)
		return nil
	}

	s := &patternSearch{
		engine:   e,
		byType:   byType,
		pattern:  pattern,
		occasion: occasion,
		rule:     rule,
		limit:    limit,
	}
	s.walk(0, nil, map[ClothingType]bool{})
	return s.outfits
}

type patternSearch struct {
	engine   *Engine
	byType   map[ClothingType][]*Item
	pattern  Pattern
	occasion string
	rule     OccasionRule
	limit    int
	outfits  []Outfit
}

// walk tries items position by position, restoring used on backtrack.
// Each branch stops the moment the outfit cap is reached.
func (s *patternSearch) walk(idx int, current []*Item, used map[ClothingType]bool) {
	if idx >= len(s.pattern) {
		s.complete(current)
		return
	}
	if len(s.outfits) >= s.limit {
		return
	}

	required := s.pattern[idx]
	if used[required] {
		return
	}

	pool := s.byType[required]
	if len(pool) > maxItemsPerType {
		pool = pool[:maxItemsPerType]
	}

	for _, item := range pool {
		if len(s.outfits) >= s.limit {
			break
		}
		// Classification double-check, grouped items should already match.
		if item.Type != required {
			continue
		}
		used[required] = true
		s.walk(idx+1, append(current, item), used)
		delete(used, required)
	}
}

func (s *patternSearch) complete(current []*Item) {
	types := map[ClothingType]bool{}
	for _, item := range current {
		if types[item.Type] {
			return
		}
		types[item.Type] = true
	}

	score := s.engine.scoreOutfit(current, s.rule)
	if score < minOutfitScore {
		return
	}

	items := make([]*Item, len(current))
	copy(items, current)
	scheme := outfitScheme(items)

	s.outfits = append(s.outfits, Outfit{
		Items:            items,
		Score:            score,
		TotalItems:       len(items),
		Occasion:         s.occasion,
		Scheme:           scheme.Scheme,
		SchemeConfidence: scheme.Confidence,
		DominantColors:   scheme.Colors,
	})
}

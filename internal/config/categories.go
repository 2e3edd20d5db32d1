package config

// CategoryIndex groups variable names by category. Category order follows
// the first occurrence of each category in the document; variable order
// within a category follows the document.
type CategoryIndex struct {
	order []string
	byCat map[string][]string
}

// GroupByCategory derives the category grouping from cfg. Categories are
// computed, never stored: re-deriving after a mutation always reflects the
// current document.
func GroupByCategory(cfg *Configuration) *CategoryIndex {
	ix := &CategoryIndex{byCat: make(map[string][]string)}
	for _, name := range cfg.names {
		cat := cfg.vars[name].Category
		if _, seen := ix.byCat[cat]; !seen {
			ix.order = append(ix.order, cat)
		}
		ix.byCat[cat] = append(ix.byCat[cat], name)
	}
	return ix
}

// Categories returns category names in first-seen order. The slice is a
// copy.
func (ix *CategoryIndex) Categories() []string {
	out := make([]string, len(ix.order))
	copy(out, ix.order)
	return out
}

// Variables returns the variable names of a category in document order,
// or nil for an unknown category.
func (ix *CategoryIndex) Variables(category string) []string {
	vars, ok := ix.byCat[category]
	if !ok {
		return nil
	}
	out := make([]string, len(vars))
	copy(out, vars)
	return out
}

// Has reports whether the category exists.
func (ix *CategoryIndex) Has(category string) bool {
	_, ok := ix.byCat[category]
	return ok
}

package models

// CategoryGroup is one catalog section.
type CategoryGroup struct {
	Category string
	Products []Product
}

// GroupByCategory splits products into sections, keeping the order in which
// categories and products first appear.
func GroupByCategory(products []Product) []CategoryGroup {
	var groups []CategoryGroup
	index := map[string]int{}
	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			i = len(groups)
			index[p.Category] = i
			groups = append(groups, CategoryGroup{Category: p.Category})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	return groups
}

// Flatten returns the products in section order.
func Flatten(groups []CategoryGroup) []Product {
	var out []Product
	for _, g := range groups {
		out = append(out, g.Products...)
	}
	return out
}

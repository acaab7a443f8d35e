package insights

import "store-dashboard/internal/models"

// Filter keeps the rows whose category and store type are both selected.
// An empty list on either side yields no rows.
func Filter(txs []models.Transaction, sel models.Selection) []models.Transaction {
	if len(sel.Categories) == 0 || len(sel.StoreTypes) == 0 {
		return []models.Transaction{}
	}

	categories := toSet(sel.Categories)
	stores := toSet(sel.StoreTypes)

	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if _, ok := categories[tx.ProductCategory]; !ok {
			continue
		}
		if _, ok := stores[tx.StoreType]; !ok {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Options collects the distinct categories and store types in first-seen order.
func Options(txs []models.Transaction) models.FilterOptions {
	opts := models.FilterOptions{
		Categories: []string{},
		StoreTypes: []string{},
	}
	seenCategory := make(map[string]struct{})
	seenStore := make(map[string]struct{})

	for _, tx := range txs {
		if _, ok := seenCategory[tx.ProductCategory]; !ok {
			seenCategory[tx.ProductCategory] = struct{}{}
			opts.Categories = append(opts.Categories, tx.ProductCategory)
		}
		if _, ok := seenStore[tx.StoreType]; !ok {
			seenStore[tx.StoreType] = struct{}{}
			opts.StoreTypes = append(opts.StoreTypes, tx.StoreType)
		}
	}
	return opts
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

package handlers

import "net/http"

// CatalogList returns the pricing reference data: card lines, flyer
// variants, and special finishes.
func (a *App) CatalogList(w http.ResponseWriter, r *http.Request) {
	cards, flyers, finishes, err := a.Catalog.Listing(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"card_lines":       cards,
		"flyer_prices":     flyers,
		"special_finishes": finishes,
	})
}

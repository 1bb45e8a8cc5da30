package pages

import (
	"net/http"
	"storefront/internal/catalog"
)

type productsView struct {
	Title string
	Cards []catalog.Card
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	page := h.deps.Listing.Load(r.Context())

	h.render(w, r, http.StatusOK, pageProducts, productsView{
		Title: "Products",
		Cards: page.Cards(),
	})
}

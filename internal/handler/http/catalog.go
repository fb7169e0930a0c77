package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SVO0808/SVO-STUDIO/internal/catalog"
)

// titleDisplayLimit caps product titles in listing responses.
const titleDisplayLimit = 50

// CatalogHandler serves the product listing proxied from the upstream catalog.
type CatalogHandler struct {
	client *catalog.Client
	logger *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(client *catalog.Client, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		client: client,
		logger: logger,
	}
}

// productView is the listing shape the storefront renders: prices in cents,
// titles truncated for the product grid.
type productView struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	FullTitle  string `json:"full_title"`
	PriceCents int64  `json:"price_cents"`
	Category   string `json:"category"`
	Image      string `json:"image"`
}

// ListProducts handles GET /api/v1/products. Query parameters:
//
//	category=clothing  restrict to clothing categories
//	sort=price_asc|price_desc  order by price
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts := catalog.ListOptions{
		ClothingOnly: r.URL.Query().Get("category") == "clothing",
	}
	switch r.URL.Query().Get("sort") {
	case "price_asc":
		opts.Sort = catalog.SortPriceAsc
	case "price_desc":
		opts.Sort = catalog.SortPriceDesc
	}

	products, err := h.client.ListProducts(r.Context(), opts)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	views := make([]productView, len(products))
	for i, p := range products {
		views[i] = productView{
			ID:         p.ID,
			Title:      catalog.TruncateTitle(p.Title, titleDisplayLimit),
			FullTitle:  p.Title,
			PriceCents: p.PriceCents(),
			Category:   p.Category,
			Image:      p.Image,
		}
	}

	writeJSON(w, http.StatusOK, response{Data: views})
}

// GetProduct handles GET /api/v1/products/{id}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	product, err := h.client.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: productView{
		ID:         product.ID,
		Title:      product.Title,
		FullTitle:  product.Title,
		PriceCents: product.PriceCents(),
		Category:   product.Category,
		Image:      product.Image,
	}})
}

// productID parses the {id} URL parameter.
func productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "id must be a positive integer"},
		})
		return 0, false
	}
	return id, true
}

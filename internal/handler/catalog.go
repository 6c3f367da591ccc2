package handler

import (
	"net/http"
	"strconv"

	"github.com/go-faster/jx"

	"github.com/xenking/storefront/internal/domain/product"
)

// ListCategories returns every product category.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.products.ListCategories(r.Context())
	if err != nil {
		writeInternal(w, r, "list categories", err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, c := range categories {
				e.Obj(func(e *jx.Encoder) {
					e.Field("id", func(e *jx.Encoder) { e.Int64(c.ID) })
					e.Field("name", func(e *jx.Encoder) { e.Str(c.Name) })
				})
			}
		})
	})
}

// ListProducts returns the products matching the category_id, search and
// limit query parameters.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeDecodeError(w, r, "parse filter", err)
		return
	}

	products, err := h.products.List(r.Context(), f)
	if err != nil {
		writeInternal(w, r, "list products", err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, p := range products {
				e.Obj(func(e *jx.Encoder) {
					e.Field("id", func(e *jx.Encoder) { e.Int64(p.ID) })
					e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
					e.Field("price", func(e *jx.Encoder) { encodeMoney(e, p.Price) })
					e.Field("description", func(e *jx.Encoder) { e.Str(p.Description) })
					e.Field("category_name", func(e *jx.Encoder) { e.Str(p.CategoryName) })
				})
			}
		})
	})
}

func parseFilter(r *http.Request) (product.Filter, error) {
	q := r.URL.Query()
	f := product.Filter{Search: q.Get("search")}

	if v := q.Get("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id < 0 {
			return f, badRequest("category_id must be a non-negative integer")
		}
		f.CategoryID = id
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return f, badRequest("limit must be a non-negative integer")
		}
		f.Limit = limit
	}
	return f, nil
}

// ListDecorators returns the add-ons customers can order.
func (h *Handler) ListDecorators(w http.ResponseWriter, r *http.Request) {
	addons, err := h.addons.List(r.Context())
	if err != nil {
		writeInternal(w, r, "list add-ons", err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, a := range addons {
				e.Obj(func(e *jx.Encoder) {
					e.Field("id", func(e *jx.Encoder) { e.Int64(a.ID) })
					e.Field("name", func(e *jx.Encoder) { e.Str(a.Name) })
					e.Field("cost", func(e *jx.Encoder) { encodeMoney(e, a.Cost) })
				})
			}
		})
	})
}

// ListBundles builds the standard bundles and returns them keyed by bundle
// key with their totals, text rendering and direct products.
func (h *Handler) ListBundles(w http.ResponseWriter, _ *http.Request) {
	entries := h.bundles.Standard()

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("bundles", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					for _, entry := range entries {
						b := entry.Bundle
						e.Field(entry.Key, func(e *jx.Encoder) {
							e.Obj(func(e *jx.Encoder) {
								e.Field("name", func(e *jx.Encoder) { e.Str(b.Name()) })
								e.Field("description", func(e *jx.Encoder) { e.Str(b.Description()) })
								e.Field("total_price", func(e *jx.Encoder) { encodeMoney(e, b.Price()) })
								e.Field("display", func(e *jx.Encoder) { e.Str(b.Display(0)) })
								e.Field("products", func(e *jx.Encoder) {
									e.Arr(func(e *jx.Encoder) {
										for _, p := range b.FlatProducts() {
											e.Obj(func(e *jx.Encoder) {
												e.Field("id", func(e *jx.Encoder) { e.Int64(p.ID) })
												e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
												e.Field("price", func(e *jx.Encoder) { encodeMoney(e, p.Price) })
											})
										}
									})
								})
							})
						})
					}
				})
			})
		})
	})
}

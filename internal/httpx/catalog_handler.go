package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nobih83/bn-storefront/internal/catalog"
)

type CatalogHandler struct {
	Repo     *catalog.Repo
	Wishlist *catalog.WishlistRepo
}

func (h *CatalogHandler) Register(r *chi.Mux, admin chi.Router) {
	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
	r.Get("/categories", h.listCategories)

	r.Group(func(r chi.Router) {
		r.Use(RequireUser)
		r.Get("/wishlist", h.listWishlist)
		r.Post("/wishlist/{id}", h.toggleWishlist)
	})

	admin.Post("/products", h.createProduct)
	admin.Put("/products/{id}", h.updateProduct)
	admin.Delete("/products/{id}", h.deleteProduct)
	admin.Post("/categories", h.addCategory)
	admin.Put("/categories/{name}", h.renameCategory)
	admin.Delete("/categories/{name}", h.deleteCategory)
}

func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()
	ps, err := h.Repo.ListProducts(ctx)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()
	p, err := h.Repo.GetProduct(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "product not found")
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	ctx, cancel := reqCtx(r)
	defer cancel()
	created, err := h.Repo.CreateProduct(ctx, p)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	p.ID = chi.URLParam(r, "id")
	ctx, cancel := reqCtx(r)
	defer cancel()
	if err := h.Repo.UpdateProduct(ctx, p); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "product not found")
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()
	if err := h.Repo.DeleteProduct(ctx, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "product not found")
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()
	cats, err := h.Repo.ListCategories(ctx)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *CatalogHandler) addCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	ctx, cancel := reqCtx(r)
	defer cancel()
	added, err := h.Repo.AddCategory(ctx, req.Name)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	// duplicate or blank name is a silent no-op
	writeJSON(w, http.StatusOK, map[string]bool{"added": added})
}

func (h *CatalogHandler) renameCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	ctx, cancel := reqCtx(r)
	defer cancel()
	err := h.Repo.RenameCategory(ctx, chi.URLParam(r, "name"), req.Name)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, catalog.ErrNoCat):
		writeErr(w, http.StatusNotFound, "category not found")
	case errors.Is(err, catalog.ErrCatTaken):
		writeErr(w, http.StatusConflict, "category name already in use")
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *CatalogHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()
	if err := h.Repo.DeleteCategory(ctx, chi.URLParam(r, "name")); err != nil {
		if errors.Is(err, catalog.ErrNoCat) {
			writeErr(w, http.StatusNotFound, "category not found")
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) listWishlist(w http.ResponseWriter, r *http.Request) {
	u, _ := CurrentUser(r)
	ctx, cancel := reqCtx(r)
	defer cancel()
	ps, err := h.Wishlist.List(ctx, u.ID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *CatalogHandler) toggleWishlist(w http.ResponseWriter, r *http.Request) {
	u, _ := CurrentUser(r)
	ctx, cancel := reqCtx(r)
	defer cancel()

	p, err := h.Repo.GetProduct(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "product not found")
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	added, err := h.Wishlist.Toggle(ctx, u.ID, p)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"wishlisted": added})
}

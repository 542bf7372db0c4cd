package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/raywall/bar-order-service/pkg/identity"
	"github.com/raywall/bar-order-service/repository"
)

type resetRequest struct {
	TenantID string `json:"tenantId" validate:"required"`
}

func (h *handlers) resetAll(w http.ResponseWriter, r *http.Request) {
	claims, _ := identity.FromContext(r.Context())
	deleted, err := h.Reset.ResetOwnTenant(r.Context(), claims)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      "tenant data reset",
		"deletedCount": deleted,
	})
}

func (h *handlers) resetTenant(w http.ResponseWriter, r *http.Request) {
	claims, _ := identity.FromContext(r.Context())
	var req resetRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	deleted, err := h.Reset.ResetTenant(r.Context(), claims, req.TenantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      "tenant data reset",
		"deletedCount": deleted,
	})
}

// ---- cardápio ----

func (h *handlers) listMenu(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Menu.ListMenu(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": orEmpty(categories)})
}

func (h *handlers) listMenuItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.MenuItems(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"menuItems": orEmpty(items)})
}

func (h *handlers) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var f repository.MenuItemFields
	if err := decodeBody(r, &f); err != nil {
		writeError(w, r, err)
		return
	}
	item, err := h.Menu.CreateMenuItem(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"menuItem": item})
}

func (h *handlers) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var f repository.MenuItemFields
	if err := decodeBody(r, &f); err != nil {
		writeError(w, r, err)
		return
	}
	item, err := h.Menu.UpdateMenuItem(r.Context(), mux.Vars(r)["id"], f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"menuItem": item})
}

func (h *handlers) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Menu.DeleteMenuItem(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "menu item deleted"})
}

func (h *handlers) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Menu.Categories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": orEmpty(categories)})
}

func (h *handlers) createCategory(w http.ResponseWriter, r *http.Request) {
	var f repository.CategoryFields
	if err := decodeBody(r, &f); err != nil {
		writeError(w, r, err)
		return
	}
	category, err := h.Menu.CreateCategory(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"category": category})
}

func (h *handlers) updateCategory(w http.ResponseWriter, r *http.Request) {
	var f repository.CategoryFields
	if err := decodeBody(r, &f); err != nil {
		writeError(w, r, err)
		return
	}
	category, err := h.Menu.UpdateCategory(r.Context(), mux.Vars(r)["id"], f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": category})
}

func (h *handlers) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.Menu.DeleteCategory(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "category deleted"})
}

func (h *handlers) listBlends(w http.ResponseWriter, r *http.Request) {
	blends, err := h.Menu.Blends(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blends": orEmpty(blends)})
}

func (h *handlers) createBlend(w http.ResponseWriter, r *http.Request) {
	var f repository.BlendFields
	if err := decodeBody(r, &f); err != nil {
		writeError(w, r, err)
		return
	}
	blend, err := h.Menu.CreateBlend(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"blend": blend})
}

func (h *handlers) updateBlend(w http.ResponseWriter, r *http.Request) {
	var f repository.BlendFields
	if err := decodeBody(r, &f); err != nil {
		writeError(w, r, err)
		return
	}
	blend, err := h.Menu.UpdateBlend(r.Context(), mux.Vars(r)["id"], f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blend": blend})
}

func (h *handlers) deleteBlend(w http.ResponseWriter, r *http.Request) {
	if err := h.Menu.DeleteBlend(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "blend deleted"})
}

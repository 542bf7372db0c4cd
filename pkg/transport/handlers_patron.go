package transport

import (
	"net/http"

	"github.com/gorilla/mux"
)

type patronRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *handlers) listPatrons(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := tenantOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	patrons, err := h.Patrons.List(r.Context(), tenantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"patrons": orEmpty(patrons)})
}

func (h *handlers) getPatron(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := tenantOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	patron, err := h.Patrons.Get(r.Context(), tenantID, mux.Vars(r)["patronId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"patron": patron})
}

func (h *handlers) createPatron(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := tenantOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req patronRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	patron, err := h.Patrons.Create(r.Context(), tenantID, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"patron": patron})
}

func (h *handlers) updatePatron(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := tenantOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req patronRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	patron, err := h.Patrons.UpdateName(r.Context(), tenantID, mux.Vars(r)["patronId"], req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"patron": patron})
}

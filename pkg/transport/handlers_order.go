package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/raywall/bar-order-service/service"
)

type orderItemRequest struct {
	MenuID   string `json:"menuId" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0,max=999"`
	Remarks  string `json:"remarks"`
	BlendID  string `json:"blendId"`
}

type createOrderRequest struct {
	PatronID string             `json:"patronId" validate:"required"`
	Items    []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (h *handlers) listOrders(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := tenantOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	orders, err := h.Orders.ListOrders(r.Context(), tenantID, r.URL.Query().Get("patronId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orEmpty(orders)})
}

func (h *handlers) getOrder(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := tenantOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.Orders.GetOrder(r.Context(), tenantID, mux.Vars(r)["orderId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *handlers) createOrder(w http.ResponseWriter, r *http.Request) {
	_, tenantID, err := tenantOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req createOrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	items := make([]service.ItemRequest, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.ItemRequest{
			MenuID:   it.MenuID,
			Quantity: it.Quantity,
			Remarks:  it.Remarks,
			BlendID:  it.BlendID,
		})
	}

	order, err := h.Orders.CreateOrder(r.Context(), tenantID, req.PatronID, items)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"order": order})
}

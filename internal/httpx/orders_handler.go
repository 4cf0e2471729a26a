package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/eklimov/order-management-api/internal/orders"
)

type OrdersHandler struct {
	Service *orders.Service
	Log     zerolog.Logger
}

type AddItemRequest struct {
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type OrderItemResponse struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order_id"`
	ProductID   int64           `json:"product_id"`
	ProductName *string         `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type ErrorResponse struct {
	Error  string  `json:"error"`
	Detail *string `json:"detail"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/api/orders/add-item", h.addItem)
}

func (h *OrdersHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.OrderID <= 0 || req.ProductID <= 0 || req.Quantity <= 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "order_id, product_id and quantity must be positive",
		})
		return
	}

	item, err := h.Service.AddItem(r.Context(), req.OrderID, req.ProductID, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (h *OrdersHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *orders.NotFoundError
	if errors.As(err, &notFound) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: notFound.Error()})
		return
	}

	var noStock *orders.InsufficientStockError
	if errors.As(err, &noStock) {
		detail := fmt.Sprintf("available: %d, required: %d", noStock.Available, noStock.Required)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "insufficient stock",
			Detail: &detail,
		})
		return
	}

	h.Log.Error().
		Err(err).
		Str("request_id", GetRequestID(r.Context())).
		Msg("add item failed")
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

func toItemResponse(item *orders.OrderItem) OrderItemResponse {
	resp := OrderItemResponse{
		ID:         item.ID,
		OrderID:    item.OrderID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		UnitPrice:  item.UnitPrice,
		TotalPrice: item.TotalPrice,
	}
	if item.ProductName != "" {
		name := item.ProductName
		resp.ProductName = &name
	}
	return resp
}

package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/eklimov/order-management-api/internal/config"
	"github.com/eklimov/order-management-api/internal/orders"
)

// stubStore serves a single order/product/line fixture; insertErr forces
// an unexpected storage failure.
type stubStore struct {
	order     *orders.Order
	product   *orders.Product
	item      *orders.OrderItem
	insertErr error
}

func (s *stubStore) InTx(_ context.Context, fn func(tx orders.StoreTx) error) error {
	return fn(&stubTx{s: s})
}

type stubTx struct{ s *stubStore }

func (t *stubTx) OrderByID(_ context.Context, id int64) (*orders.Order, error) {
	if t.s.order != nil && t.s.order.ID == id {
		return t.s.order, nil
	}
	return nil, nil
}

func (t *stubTx) ProductForUpdate(_ context.Context, id int64) (*orders.Product, error) {
	if t.s.product != nil && t.s.product.ID == id {
		return t.s.product, nil
	}
	return nil, nil
}

func (t *stubTx) OrderItemByOrderProduct(_ context.Context, orderID, productID int64) (*orders.OrderItem, error) {
	if t.s.item != nil && t.s.item.OrderID == orderID && t.s.item.ProductID == productID {
		cp := *t.s.item
		return &cp, nil
	}
	return nil, nil
}

func (t *stubTx) InsertOrderItem(_ context.Context, item *orders.OrderItem) (*orders.OrderItem, error) {
	if t.s.insertErr != nil {
		return nil, t.s.insertErr
	}
	item.ID = 1
	return item, nil
}

func (t *stubTx) UpdateOrderItem(_ context.Context, item *orders.OrderItem) (*orders.OrderItem, error) {
	return item, nil
}

func newTestRouter(store orders.Store) *chi.Mux {
	log := zerolog.Nop()
	router := NewRouter(config.Service{Name: "order-api", Title: "Order Management API", Version: "1.0.0"}, log, time.Second)
	oh := &OrdersHandler{Service: orders.NewService(store, log), Log: log}
	oh.Register(router)
	return router
}

func postAddItem(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/add-item", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func fixtureStore() *stubStore {
	return &stubStore{
		order:   &orders.Order{ID: 1, OrderNumber: "ORD-0001"},
		product: &orders.Product{ID: 5, Name: "Desk lamp", Quantity: 5, Price: decimal.RequireFromString("1000.00")},
	}
}

func TestAddItemEndpointSuccess(t *testing.T) {
	router := newTestRouter(fixtureStore())

	rec := postAddItem(t, router, `{"order_id":1,"product_id":5,"quantity":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp OrderItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(1), resp.ID)
	require.Equal(t, int64(1), resp.OrderID)
	require.Equal(t, int64(5), resp.ProductID)
	require.NotNil(t, resp.ProductName)
	require.Equal(t, "Desk lamp", *resp.ProductName)
	require.Equal(t, 3, resp.Quantity)
	require.Equal(t, "1000.00", resp.UnitPrice.String())
	require.Equal(t, "3000.00", resp.TotalPrice.String())
}

func TestAddItemEndpointDecimalsAreStrings(t *testing.T) {
	router := newTestRouter(fixtureStore())

	rec := postAddItem(t, router, `{"order_id":1,"product_id":5,"quantity":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.Equal(t, "1000.00", raw["unit_price"])
	require.Equal(t, "3000.00", raw["total_price"])
}

func TestAddItemEndpointValidation(t *testing.T) {
	router := newTestRouter(fixtureStore())

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{"order_id":`},
		{"zero quantity", `{"order_id":1,"product_id":5,"quantity":0}`},
		{"negative quantity", `{"order_id":1,"product_id":5,"quantity":-2}`},
		{"missing order id", `{"product_id":5,"quantity":3}`},
		{"missing product id", `{"order_id":1,"quantity":3}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postAddItem(t, router, tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAddItemEndpointOrderNotFound(t *testing.T) {
	router := newTestRouter(fixtureStore())

	rec := postAddItem(t, router, `{"order_id":42,"product_id":5,"quantity":3}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Error, "order")
	require.Contains(t, resp.Error, "not found")
}

func TestAddItemEndpointProductNotFound(t *testing.T) {
	router := newTestRouter(fixtureStore())

	rec := postAddItem(t, router, `{"order_id":1,"product_id":99,"quantity":3}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Error, "product")
}

func TestAddItemEndpointInsufficientStock(t *testing.T) {
	store := fixtureStore()
	store.item = &orders.OrderItem{
		ID: 1, OrderID: 1, ProductID: 5, ProductName: "Desk lamp",
		Quantity: 3, UnitPrice: decimal.RequireFromString("1000.00"),
		TotalPrice: decimal.RequireFromString("3000.00"),
	}
	router := newTestRouter(store)

	rec := postAddItem(t, router, `{"order_id":1,"product_id":5,"quantity":4}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "insufficient stock", resp.Error)
	require.NotNil(t, resp.Detail)
	require.Equal(t, "available: 5, required: 7", *resp.Detail)
}

func TestAddItemEndpointUnexpectedError(t *testing.T) {
	store := fixtureStore()
	store.insertErr = errors.New("connection reset by peer")
	router := newTestRouter(store)

	rec := postAddItem(t, router, `{"order_id":1,"product_id":5,"quantity":3}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "internal server error", resp.Error)
	require.NotContains(t, rec.Body.String(), "connection reset", "internal detail must not leak")
}

func TestRootAndHealthEndpoints(t *testing.T) {
	router := newTestRouter(fixtureStore())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var meta map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	require.Equal(t, "Order Management API", meta["title"])
	require.Equal(t, "1.0.0", meta["version"])

	for _, path := range []string{"/health", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"status":"ok"`)
	}
}

func TestRequestIDEchoedOnResponse(t *testing.T) {
	router := newTestRouter(fixtureStore())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"), "generated when missing")
}

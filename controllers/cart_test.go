package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"flowerhub/controllers"
	"flowerhub/models"
	"flowerhub/storage"
	"flowerhub/store"

	"github.com/gorilla/mux"
)

type cartPayload struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

func rose() models.Product {
	return models.Product{ID: "1", Name: "Classic Red Roses", Price: 1499, Category: "Bouquets", Stock: 20}
}

func newCartController() (*controllers.CartController, *store.Manager) {
	manager := store.NewManager(storage.NewMemory())
	catalog := &fakeCatalog{
		getFunc: func(ctx context.Context, id string) (models.Product, error) {
			if id == "1" {
				return rose(), nil
			}
			return models.Product{}, context.Canceled
		},
	}
	return controllers.NewCartController(manager, catalog), manager
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartPayload {
	t.Helper()
	var resp cartPayload
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestAddToCart(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		cc, _ := newCartController()
		r := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBufferString(`{"product_id":"1","quantity":2}`))
		w := httptest.NewRecorder()

		cc.AddToCart(w, r)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		cc, _ := newCartController()
		r := authed(httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBufferString("{")), "u1")
		w := httptest.NewRecorder()

		cc.AddToCart(w, r)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		cc, _ := newCartController()
		r := authed(httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBufferString(`{"product_id":"missing","quantity":1}`)), "u1")
		w := httptest.NewRecorder()

		cc.AddToCart(w, r)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("merges repeated adds", func(t *testing.T) {
		cc, _ := newCartController()

		for _, qty := range []string{"2", "3"} {
			r := authed(httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBufferString(`{"product_id":"1","quantity":`+qty+`}`)), "u1")
			w := httptest.NewRecorder()
			cc.AddToCart(w, r)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
		}

		r := authed(httptest.NewRequest(http.MethodGet, "/cart", nil), "u1")
		w := httptest.NewRecorder()
		cc.GetCart(w, r)

		resp := decodeCart(t, w)
		if len(resp.Items) != 1 || resp.Items[0].Quantity != 5 {
			t.Fatalf("unexpected items %+v", resp.Items)
		}
		if resp.Total != 1499*5 || resp.Count != 5 {
			t.Fatalf("unexpected totals %+v", resp)
		}
	})
}

func TestUpdateQuantity(t *testing.T) {
	cc, manager := newCartController()
	manager.Session("u1").AddToCart(rose(), 2)

	r := authed(httptest.NewRequest(http.MethodPut, "/cart/1", bytes.NewBufferString(`{"quantity":7}`)), "u1")
	r = mux.SetURLVars(r, map[string]string{"product_id": "1"})
	w := httptest.NewRecorder()

	cc.UpdateQuantity(w, r)

	resp := decodeCart(t, w)
	if len(resp.Items) != 1 || resp.Items[0].Quantity != 7 {
		t.Fatalf("unexpected items %+v", resp.Items)
	}

	// Non-positive quantities leave the line unchanged.
	r = authed(httptest.NewRequest(http.MethodPut, "/cart/1", bytes.NewBufferString(`{"quantity":0}`)), "u1")
	r = mux.SetURLVars(r, map[string]string{"product_id": "1"})
	w = httptest.NewRecorder()

	cc.UpdateQuantity(w, r)

	resp = decodeCart(t, w)
	if resp.Items[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", resp.Items[0].Quantity)
	}
}

func TestRemoveFromCart(t *testing.T) {
	cc, manager := newCartController()
	manager.Session("u1").AddToCart(rose(), 2)

	r := authed(httptest.NewRequest(http.MethodDelete, "/cart/1", nil), "u1")
	r = mux.SetURLVars(r, map[string]string{"product_id": "1"})
	w := httptest.NewRecorder()

	cc.RemoveFromCart(w, r)

	resp := decodeCart(t, w)
	if len(resp.Items) != 0 || resp.Count != 0 {
		t.Fatalf("expected empty cart, got %+v", resp)
	}
}

func TestClearCart(t *testing.T) {
	cc, manager := newCartController()
	manager.Session("u1").AddToCart(rose(), 3)

	r := authed(httptest.NewRequest(http.MethodDelete, "/cart", nil), "u1")
	w := httptest.NewRecorder()

	cc.ClearCart(w, r)

	resp := decodeCart(t, w)
	if len(resp.Items) != 0 || resp.Total != 0 {
		t.Fatalf("expected empty cart, got %+v", resp)
	}
}

package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"flowerhub/middleware"
	"flowerhub/models"
	"flowerhub/store"
	"flowerhub/utils"

	"github.com/gorilla/mux"
)

// CartController handles cart-related requests
type CartController struct {
	Manager *store.Manager
	Catalog CatalogService
}

// NewCartController creates a new CartController
func NewCartController(manager *store.Manager, catalog CatalogService) *CartController {
	return &CartController{Manager: manager, Catalog: catalog}
}

// cartResponse is the cart payload returned after every cart operation.
type cartResponse struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

func (cc *CartController) session(r *http.Request) (*store.Store, bool) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		return nil, false
	}
	s := cc.Manager.Session(claims.UserID)
	s.SetUser(&models.User{ID: claims.UserID, Email: claims.Email, Role: claims.Role})
	return s, true
}

func writeCart(w http.ResponseWriter, s *store.Store) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cartResponse{
		Items: s.Items(),
		Total: s.CartTotal(),
		Count: s.CartCount(),
	})
}

// GetCart retrieves the user's cart
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	s, ok := cc.session(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	writeCart(w, s)
}

// AddToCart adds a product to the user's cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	s, ok := cc.session(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	product, err := cc.Catalog.Get(ctx, req.ProductID)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	s.AddToCart(product, req.Quantity)
	writeCart(w, s)
}

// UpdateQuantity replaces the quantity of a cart line
func (cc *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	s, ok := cc.session(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	params := mux.Vars(r)
	s.UpdateQuantity(params["product_id"], req.Quantity)
	writeCart(w, s)
}

// RemoveFromCart removes a product from the user's cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	s, ok := cc.session(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	params := mux.Vars(r)
	s.RemoveFromCart(params["product_id"])
	writeCart(w, s)
}

// ClearCart empties the user's cart
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	s, ok := cc.session(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	s.ClearCart()
	writeCart(w, s)
}

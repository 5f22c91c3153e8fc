// controllers/order.go
package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"flowerhub/middleware"
	"flowerhub/models"
	"flowerhub/store"
	"flowerhub/utils"
)

// OrderController handles checkout and order history requests
type OrderController struct {
	Manager *store.Manager
	Orders  store.OrderService
	Email   Mailer
}

// NewOrderController creates a new OrderController
func NewOrderController(manager *store.Manager, orders store.OrderService, email Mailer) *OrderController {
	return &OrderController{Manager: manager, Orders: orders, Email: email}
}

// Checkout converts the user's cart into an order
func (oc *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	s := oc.Manager.Session(claims.UserID)
	s.SetUser(&models.User{ID: claims.UserID, Email: claims.Email, Role: claims.Role})

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := s.PlaceOrder(ctx, oc.Orders)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmptyCart):
			http.Error(w, "Cart is empty", http.StatusBadRequest)
		case errors.Is(err, store.ErrUnauthenticated):
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		default:
			http.Error(w, "Failed to place order", http.StatusInternalServerError)
		}
		return
	}

	go func(email string, order models.Order) {
		if err := oc.Email.SendOrderConfirmationEmail(email, order); err != nil {
			utils.Logger.Warnw("failed to send order confirmation", "to", email, "order", order.ID, "error", err)
		}
	}(claims.Email, order)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

// GetOrders retrieves the authenticated user's order history, newest first
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	s := oc.Manager.Session(claims.UserID)
	s.SetUser(&models.User{ID: claims.UserID, Email: claims.Email, Role: claims.Role})

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := s.RefreshOrders(ctx, oc.Orders); err != nil {
		http.Error(w, "Failed to retrieve orders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Orders())
}

// Package store holds the per-session storefront state: the authenticated
// user, the shopping cart and the in-memory order history. It replaces the
// original shared application context with an explicit state holder.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"flowerhub/models"
	"flowerhub/storage"
	"flowerhub/utils"
)

var (
	// ErrUnauthenticated rejects order submission without a signed-in user.
	ErrUnauthenticated = errors.New("not logged in")

	// ErrEmptyCart rejects order submission for an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// OrderService is the order-persistence collaborator consumed by the
// submission workflow.
type OrderService interface {
	Create(ctx context.Context, userID string, items []models.CartItem, total float64) (models.Order, error)
	List(ctx context.Context, userID string) ([]models.Order, error)
}

// Store is one session's state. Every cart mutation is applied under the
// lock and immediately persisted to the snapshot storage, so a session can
// be restored element-wise after a restart.
type Store struct {
	mu      sync.Mutex
	user    *models.User
	cart    []models.CartItem
	orders  []models.Order
	storage storage.Storage
	key     string
}

// New creates a Store bound to the given snapshot key and restores any
// previously persisted cart. A malformed snapshot is logged and discarded;
// restore failures never surface to the caller.
func New(st storage.Storage, key string) *Store {
	s := &Store{storage: st, key: key}
	s.restore()
	return s
}

func (s *Store) restore() {
	data, ok, err := s.storage.Get(s.key)
	if err != nil {
		utils.Logger.Warnw("could not read cart snapshot", "key", s.key, "error", err)
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal(data, &s.cart); err != nil {
		utils.Logger.Warnw("discarding malformed cart snapshot", "key", s.key, "error", err)
		s.cart = nil
	}
}

// persistLocked writes the current cart to storage. Callers hold s.mu.
func (s *Store) persistLocked() {
	data, err := json.Marshal(s.cart)
	if err != nil {
		utils.Logger.Errorw("could not encode cart snapshot", "key", s.key, "error", err)
		return
	}
	if err := s.storage.Set(s.key, data); err != nil {
		utils.Logger.Errorw("could not write cart snapshot", "key", s.key, "error", err)
	}
}

// SetUser attaches the authenticated user to the session.
func (s *Store) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// User returns the authenticated user, or nil.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// AddToCart merges quantity into the existing line for the product, or
// appends a new line. Quantities below 1 are treated as 1.
func (s *Store) AddToCart(product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == product.ID {
			s.cart[i].Quantity += quantity
			s.persistLocked()
			return
		}
	}
	s.cart = append(s.cart, models.CartItem{Product: product, Quantity: quantity})
	s.persistLocked()
}

// RemoveFromCart drops the line for the product id. No-op if absent.
func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == productID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

// UpdateQuantity replaces the quantity of an existing line, preserving its
// position. Quantities below 1 are rejected silently; removal stays an
// explicit RemoveFromCart call.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == productID {
			s.cart[i].Quantity = quantity
			s.persistLocked()
			return
		}
	}
}

// ClearCart empties the cart unconditionally.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	s.persistLocked()
}

// Items returns a copy of the current cart lines in insertion order.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartItem(nil), s.cart...)
}

// CartTotal returns the sum of price × quantity over all lines.
func (s *Store) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartTotalLocked(s.cart)
}

// CartCount returns the sum of quantities over all lines.
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.cart {
		count += item.Quantity
	}
	return count
}

func cartTotalLocked(cart []models.CartItem) float64 {
	total := 0.0
	for _, item := range cart {
		total += item.Subtotal()
	}
	return total
}

// PlaceOrder converts the current cart into a persisted order: it snapshots
// the lines and total, submits them, and only on success prepends the
// returned order to the history and clears the cart. On failure the cart
// and history are left untouched. The lock is held across the submission so
// two concurrent checkouts cannot interleave snapshot and clear.
func (s *Store) PlaceOrder(ctx context.Context, orders OrderService) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return models.Order{}, ErrUnauthenticated
	}
	if len(s.cart) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	items := append([]models.CartItem(nil), s.cart...)
	total := cartTotalLocked(s.cart)

	order, err := orders.Create(ctx, s.user.ID, items, total)
	if err != nil {
		return models.Order{}, err
	}

	s.orders = append([]models.Order{order}, s.orders...)
	s.cart = nil
	s.persistLocked()
	return order, nil
}

// RefreshOrders replaces the in-memory history with the authoritative
// newest-first list from the backend. No-op without a signed-in user.
func (s *Store) RefreshOrders(ctx context.Context, orders OrderService) error {
	s.mu.Lock()
	user := s.user
	s.mu.Unlock()
	if user == nil {
		return nil
	}

	list, err := orders.List(ctx, user.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.orders = list
	s.mu.Unlock()
	return nil
}

// Orders returns a copy of the in-memory order history, newest first.
func (s *Store) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.orders...)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flowerhub/models"
	"flowerhub/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderBackend is the raw order persistence surface. ListByUser returns
// orders newest first.
type OrderBackend interface {
	Insert(ctx context.Context, order models.Order) error
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
}

// Orders persists and lists placed orders. A missing orders collection
// degrades to a synthesized mock order on create and an empty history on
// list, so checkout keeps working against an unprovisioned backend.
type Orders struct {
	backend OrderBackend
}

// NewOrders creates an Orders service over the given backend.
func NewOrders(backend OrderBackend) *Orders {
	return &Orders{backend: backend}
}

// NewMongoOrders creates an Orders service backed by the orders collection.
func NewMongoOrders(client *mongo.Client) *Orders {
	return NewOrders(&mongoOrderBackend{
		col: client.Database("flowerhub").Collection("orders"),
	})
}

// Create persists a new pending order for the given cart snapshot.
func (s *Orders) Create(ctx context.Context, userID string, items []models.CartItem, total float64) (models.Order, error) {
	order := models.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Items:     items,
		Total:     total,
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.backend.Insert(ctx, order); err != nil {
		if errors.Is(err, ErrSchemaMissing) {
			utils.Logger.Warnw("simulating order creation, orders collection missing", "user", userID)
			order.ID = fmt.Sprintf("mock-%d", time.Now().UnixMilli())
			return order, nil
		}
		return models.Order{}, err
	}
	return order, nil
}

// List returns the user's order history, newest first. Backend failures
// degrade to an empty history.
func (s *Orders) List(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.backend.ListByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrSchemaMissing) {
			utils.Logger.Warnw("orders collection missing, returning empty history", "user", userID)
		} else {
			utils.Logger.Errorw("fetch orders failed, returning empty history", "user", userID, "error", err)
		}
		return []models.Order{}, nil
	}
	return orders, nil
}

type mongoOrderBackend struct {
	col *mongo.Collection
}

func (b *mongoOrderBackend) Insert(ctx context.Context, order models.Order) error {
	_, err := b.col.InsertOne(ctx, order)
	return classify(err)
}

func (b *mongoOrderBackend) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	cursor, err := b.col.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, classify(err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, classify(err)
	}
	return orders, nil
}

package services

import (
	"context"
	"errors"

	"flowerhub/models"
	"flowerhub/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductBackend is the raw catalog surface. Implementations report a
// missing collection as ErrSchemaMissing and missing records as ErrNotFound.
type ProductBackend interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Insert(ctx context.Context, p models.Product) error
	Update(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id string) error
}

// Catalog serves the product catalog, degrading to the built-in fallback
// products whenever the backend has no usable data. Reads never fail.
type Catalog struct {
	backend ProductBackend
}

// NewCatalog creates a Catalog over the given backend.
func NewCatalog(backend ProductBackend) *Catalog {
	return &Catalog{backend: backend}
}

// NewMongoCatalog creates a Catalog backed by the products collection.
func NewMongoCatalog(client *mongo.Client) *Catalog {
	return NewCatalog(&mongoProductBackend{
		col: client.Database("flowerhub").Collection("products"),
	})
}

// List returns all products ordered by name. An unprovisioned or unreachable
// backend yields the fallback list instead of an error.
func (c *Catalog) List(ctx context.Context) ([]models.Product, error) {
	products, err := c.backend.List(ctx)
	if err != nil {
		if errors.Is(err, ErrSchemaMissing) {
			utils.Logger.Warnw("using fallback products, products collection missing")
		} else {
			utils.Logger.Errorw("fetch products failed, using fallback", "error", err)
		}
		return fallbackProducts(), nil
	}
	if len(products) == 0 {
		// A fresh database has no products collection to speak of; serve
		// the built-in set so the shop is never empty.
		utils.Logger.Warnw("products collection empty, using fallback products")
		return fallbackProducts(), nil
	}
	return products, nil
}

// Get returns a single product, consulting the fallback list when the
// backend cannot answer. Returns ErrNotFound when no product matches.
func (c *Catalog) Get(ctx context.Context, id string) (models.Product, error) {
	p, err := c.backend.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		utils.Logger.Warnw("fetch product failed, consulting fallback", "id", id, "error", err)
	}
	for _, fp := range FallbackProducts {
		if fp.ID == id {
			return fp, nil
		}
	}
	return models.Product{}, ErrNotFound
}

// Categories returns the distinct product categories.
func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	cats, err := c.backend.Categories(ctx)
	if err != nil || len(cats) == 0 {
		if err != nil {
			utils.Logger.Warnw("fetch categories failed, using fallback", "error", err)
		}
		return fallbackCategories(), nil
	}
	return cats, nil
}

// Create adds a product to the catalog (admin only). Write failures are
// surfaced: there is no fallback for mutations.
func (c *Catalog) Create(ctx context.Context, p models.Product) (models.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := c.backend.Insert(ctx, p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Update replaces a product's catalog entry (admin only).
func (c *Catalog) Update(ctx context.Context, id string, p models.Product) error {
	p.ID = id
	return c.backend.Update(ctx, p)
}

// Delete removes a product from the catalog (admin only).
func (c *Catalog) Delete(ctx context.Context, id string) error {
	return c.backend.Delete(ctx, id)
}

type mongoProductBackend struct {
	col *mongo.Collection
}

func (b *mongoProductBackend) List(ctx context.Context) ([]models.Product, error) {
	cursor, err := b.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, classify(err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, classify(err)
	}
	return products, nil
}

func (b *mongoProductBackend) Get(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := b.col.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, classify(err)
	}
	return p, nil
}

func (b *mongoProductBackend) Categories(ctx context.Context) ([]string, error) {
	values, err := b.col.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, classify(err)
	}
	var cats []string
	for _, v := range values {
		if s, ok := v.(string); ok {
			cats = append(cats, s)
		}
	}
	return cats, nil
}

func (b *mongoProductBackend) Insert(ctx context.Context, p models.Product) error {
	_, err := b.col.InsertOne(ctx, p)
	return classify(err)
}

func (b *mongoProductBackend) Update(ctx context.Context, p models.Product) error {
	result, err := b.col.UpdateOne(ctx, bson.M{"id": p.ID}, bson.M{"$set": p})
	if err != nil {
		return classify(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (b *mongoProductBackend) Delete(ctx context.Context, id string) error {
	result, err := b.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return classify(err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

package catalogRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// categoryDoc and providerDoc carry a position so reads keep seed order.
type categoryDoc struct {
	Position               int `bson:"position"`
	models.ServiceCategory `bson:",inline"`
}

type providerDoc struct {
	Position               int `bson:"position"`
	models.ServiceProvider `bson:",inline"`
}

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	categories *mongo.Collection
	providers  *mongo.Collection
}

// NewMongoCatalogRepo upserts the given catalog into db and returns a repository reading from it.
func NewMongoCatalogRepo(ctx context.Context, db *mongo.Database, categories []models.ServiceCategory, providers []models.ServiceProvider) (CatalogRepository, error) {
	if err := validateCatalog(categories, providers); err != nil {
		return nil, err
	}
	r := &MongoCatalogRepo{
		categories: db.Collection("categories"),
		providers:  db.Collection("providers"),
	}
	if err := r.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	if err := r.seed(ctx, categories, providers); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MongoCatalogRepo) seed(ctx context.Context, categories []models.ServiceCategory, providers []models.ServiceProvider) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	upsert := options.Replace().SetUpsert(true)
	for i, c := range categories {
		doc := categoryDoc{Position: i, ServiceCategory: c}
		if _, err := r.categories.ReplaceOne(ctx, bson.M{"id": c.ID}, doc, upsert); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.ID, err)
		}
	}
	for i, p := range providers {
		doc := providerDoc{Position: i, ServiceProvider: p}
		if _, err := r.providers.ReplaceOne(ctx, bson.M{"id": p.ID}, doc, upsert); err != nil {
			return fmt.Errorf("failed to seed provider %s: %w", p.ID, err)
		}
	}
	return nil
}

// ensureIndexes creates indexes for the lookups the repository performs.
func (r *MongoCatalogRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	if _, err := r.categories.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "position", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create category indexes: %w", err)
	}
	if _, err := r.providers.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "category.id", Value: 1}}},
		{Keys: bson.D{{Key: "position", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create provider indexes: %w", err)
	}
	return nil
}

var byPosition = options.Find().SetSort(bson.D{{Key: "position", Value: 1}})

func (r *MongoCatalogRepo) Categories(ctx context.Context) ([]models.ServiceCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	cursor, err := r.categories.Find(ctx, bson.M{}, byPosition)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []categoryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	categories := make([]models.ServiceCategory, 0, len(docs))
	for _, d := range docs {
		categories = append(categories, d.ServiceCategory)
	}
	return categories, nil
}

func (r *MongoCatalogRepo) CategoryByID(ctx context.Context, id string) (*models.ServiceCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var doc categoryDoc
	if err := r.categories.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("category %q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch category with id %s: %w", id, err)
	}
	return &doc.ServiceCategory, nil
}

func (r *MongoCatalogRepo) Providers(ctx context.Context) ([]models.ServiceProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	cursor, err := r.providers.Find(ctx, bson.M{}, byPosition)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve providers: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.ServiceProvider
	for cursor.Next(ctx) {
		var d providerDoc
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode provider: %w", err)
		}
		providers = append(providers, d.ServiceProvider)
	}
	return providers, cursor.Err()
}

func (r *MongoCatalogRepo) ProviderByID(ctx context.Context, id string) (*models.ServiceProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var doc providerDoc
	if err := r.providers.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("provider %q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	return &doc.ServiceProvider, nil
}

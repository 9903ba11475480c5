package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nourtech/storefront/internal/core/domain"
)

const collectionBrands = "brands"

type BrandRepository struct {
	col *mongo.Collection
}

func NewBrandRepository(db *mongo.Database) *BrandRepository {
	return &BrandRepository{col: db.Collection(collectionBrands)}
}

type brandDocument struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Description string `bson:"description"`
	CreatedAt   int64  `bson:"created_at"`
}

func (d brandDocument) toDomain() *domain.Brand {
	return &domain.Brand{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   unixToTime(d.CreatedAt),
	}
}

func (r *BrandRepository) List(ctx context.Context) ([]*domain.Brand, error) {
	return r.find(ctx, bson.M{})
}

func (r *BrandRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Brand, error) {
	if len(ids) == 0 {
		return []*domain.Brand{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *BrandRepository) find(ctx context.Context, filter bson.M) ([]*domain.Brand, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find brands: %w", err)
	}
	defer cur.Close(ctx)

	var docs []brandDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode brands: %w", err)
	}

	brands := make([]*domain.Brand, 0, len(docs))
	for _, d := range docs {
		brands = append(brands, d.toDomain())
	}
	return brands, nil
}

func (r *BrandRepository) FindByID(ctx context.Context, id string) (*domain.Brand, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc brandDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBrandNotFound
		}
		return nil, fmt.Errorf("find brand: %w", err)
	}
	return doc.toDomain(), nil
}

// Create inserts the brand, assigning brand.ID.
func (r *BrandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	brand.ID = uuid.NewString()
	doc := brandDocument{
		ID:          brand.ID,
		Name:        brand.Name,
		Description: brand.Description,
		CreatedAt:   brand.CreatedAt.Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

func (r *BrandRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBrandNotFound
	}
	return nil
}

func (r *BrandRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}})
	return err
}

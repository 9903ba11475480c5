package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

const collectionProducts = "products"

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

// productDocument stores every category in one collection; the laptop spec
// fields stay empty for other types.
type productDocument struct {
	ID          string   `bson:"_id"`
	Type        string   `bson:"type"`
	BrandID     string   `bson:"brand_id"`
	ShortName   string   `bson:"short_name"`
	Title       string   `bson:"title"`
	Price       float64  `bson:"price"`
	Description string   `bson:"description"`
	Images      []string `bson:"images"`
	Warranty    int      `bson:"warranty"`
	GPU         string   `bson:"gpu,omitempty"`
	CPU         string   `bson:"cpu,omitempty"`
	RAM         string   `bson:"ram,omitempty"`
	Storage     string   `bson:"storage,omitempty"`
	Display     string   `bson:"display,omitempty"`
	CreatedAt   int64    `bson:"created_at"`
	UpdatedAt   int64    `bson:"updated_at"`
}

func toProductDocument(p *domain.Product) productDocument {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return productDocument{
		ID:          p.ID,
		Type:        string(p.Type),
		BrandID:     p.BrandID,
		ShortName:   p.ShortName,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Images:      images,
		Warranty:    p.Warranty,
		GPU:         p.Specs.GPU,
		CPU:         p.Specs.CPU,
		RAM:         p.Specs.RAM,
		Storage:     p.Specs.Storage,
		Display:     p.Specs.Display,
		CreatedAt:   p.CreatedAt.Unix(),
		UpdatedAt:   p.UpdatedAt.Unix(),
	}
}

func (d productDocument) toDomain() *domain.Product {
	return &domain.Product{
		ID:          d.ID,
		Type:        domain.NormalizeProductType(d.Type),
		BrandID:     d.BrandID,
		ShortName:   d.ShortName,
		Title:       d.Title,
		Price:       d.Price,
		Description: d.Description,
		Images:      d.Images,
		Warranty:    d.Warranty,
		Specs: domain.LaptopSpecs{
			GPU:     d.GPU,
			CPU:     d.CPU,
			RAM:     d.RAM,
			Storage: d.Storage,
			Display: d.Display,
		},
		CreatedAt: unixToTime(d.CreatedAt),
		UpdatedAt: unixToTime(d.UpdatedAt),
	}
}

func (r *ProductRepository) Find(ctx context.Context, q ports.ProductQuery) ([]*domain.Product, error) {
	filter := bson.M{}
	if len(q.IDs) > 0 {
		filter["_id"] = bson.M{"$in": q.IDs}
	}
	if q.Type != "" {
		filter["type"] = string(q.Type)
	}
	if q.BrandID != "" {
		filter["brand_id"] = q.BrandID
	}
	return r.find(ctx, filter)
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toDomain())
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc productDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return doc.toDomain(), nil
}

// Create inserts the product, assigning product.ID.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	product.ID = uuid.NewString()
	if _, err := r.col.InsertOne(ctx, toProductDocument(product)); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	setIf := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	setIf("brand_id", patch.BrandID)
	setIf("short_name", patch.ShortName)
	setIf("title", patch.Title)
	setIf("description", patch.Description)
	setIf("gpu", patch.GPU)
	setIf("cpu", patch.CPU)
	setIf("ram", patch.RAM)
	setIf("storage", patch.Storage)
	setIf("display", patch.Display)
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Warranty != nil {
		set["warranty"] = *patch.Warranty
	}
	if patch.ImagesSet {
		images := patch.Images
		if images == nil {
			images = []string{}
		}
		set["images"] = images
	}

	var doc productDocument
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc productDocument
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("delete product: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) DeleteByBrand(ctx context.Context, brandID string) ([]*domain.Product, error) {
	products, err := r.find(ctx, bson.M{"brand_id": brandID})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return products, nil
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return nil, fmt.Errorf("delete brand products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "brand_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

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
	"github.com/nourtech/storefront/internal/core/ports"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type orderItemDocument struct {
	ProductID string `bson:"product_id"`
	Quantity  int    `bson:"quantity"`
}

// orderDocument embeds its line items; they are never queried on their own.
type orderDocument struct {
	ID              string              `bson:"_id"`
	UserID          string              `bson:"user_id"`
	CustomerName    string              `bson:"customer_name"`
	Phone           string              `bson:"phone"`
	Email           string              `bson:"email"`
	DeliveryAddress string              `bson:"delivery_address"`
	Status          string              `bson:"status"`
	Notes           string              `bson:"notes"`
	Items           []orderItemDocument `bson:"items"`
	CreatedAt       int64               `bson:"created_at"`
}

func (d orderDocument) toDomain() *domain.Order {
	items := make([]domain.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, domain.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return &domain.Order{
		ID:           d.ID,
		UserID:       d.UserID,
		CustomerName: d.CustomerName,
		Phone:        d.Phone,
		Email:        d.Email,
		Address:      d.DeliveryAddress,
		Status:       domain.OrderStatus(d.Status),
		Notes:        d.Notes,
		Items:        items,
		CreatedAt:    unixToTime(d.CreatedAt),
	}
}

func (r *OrderRepository) List(ctx context.Context, q ports.OrderQuery) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if q.UserID != "" {
		filter["user_id"] = q.UserID
	}
	if q.Status != "" {
		filter["status"] = string(q.Status)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	var docs []orderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]*domain.Order, 0, len(docs))
	for _, d := range docs {
		orders = append(orders, d.toDomain())
	}
	return orders, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc orderDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return doc.toDomain(), nil
}

// Create inserts the order, assigning order.ID.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	order.ID = uuid.NewString()
	items := make([]orderItemDocument, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, orderItemDocument{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	doc := orderDocument{
		ID:              order.ID,
		UserID:          order.UserID,
		CustomerName:    order.CustomerName,
		Phone:           order.Phone,
		Email:           order.Email,
		DeliveryAddress: order.Address,
		Status:          string(order.Status),
		Notes:           order.Notes,
		Items:           items,
		CreatedAt:       order.CreatedAt.Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc orderDocument
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nourtech/storefront/internal/core/domain"
)

const (
	collectionSettings = "settings"
	contactDocumentID  = "contact"
)

// ContactRepository keeps the single contact-details document.
type ContactRepository struct {
	col *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{col: db.Collection(collectionSettings)}
}

type contactDocument struct {
	ID           string   `bson:"_id"`
	SalesHotline string   `bson:"sales_hotline"`
	WhatsApp     string   `bson:"whatsapp"`
	SupportEmail string   `bson:"support_email"`
	Address      string   `bson:"address"`
	Availability []string `bson:"availability"`
}

func (r *ContactRepository) Get(ctx context.Context) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc contactDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": contactDocumentID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}

	availability := doc.Availability
	if availability == nil {
		availability = []string{}
	}
	return &domain.Contact{
		SalesHotline: doc.SalesHotline,
		WhatsApp:     doc.WhatsApp,
		SupportEmail: doc.SupportEmail,
		Address:      doc.Address,
		Availability: availability,
	}, nil
}

// Save upserts the contact document.
func (r *ContactRepository) Save(ctx context.Context, c *domain.Contact) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	availability := c.Availability
	if availability == nil {
		availability = []string{}
	}
	doc := contactDocument{
		ID:           contactDocumentID,
		SalesHotline: c.SalesHotline,
		WhatsApp:     c.WhatsApp,
		SupportEmail: c.SupportEmail,
		Address:      c.Address,
		Availability: availability,
	}

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": contactDocumentID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save contact: %w", err)
	}
	return nil
}

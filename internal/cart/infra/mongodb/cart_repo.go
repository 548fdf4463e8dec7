package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/prasetya/cart-service/internal/cart/app"
	"github.com/prasetya/cart-service/internal/cart/domain"
)

const collectionName = "carts"

type cartDoc struct {
	OID       primitive.ObjectID `bson:"_id,omitempty"`
	ID        string             `bson:"id"`
	Items     []itemDoc          `bson:"items"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type itemDoc struct {
	ProductID string `bson:"productId"`
	Quantity  int    `bson:"quantity"`
}

type CartRepo struct {
	col *mongo.Collection
}

func NewCartRepo(db *mongo.Database) *CartRepo {
	return &CartRepo{col: db.Collection(collectionName)}
}

func (r *CartRepo) FindByID(ctx context.Context, id string) (domain.Cart, error) {
	var doc cartDoc
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Cart{}, app.ErrCartNotFound
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("find cart %s: %w", id, err)
	}
	return toDomain(doc), nil
}

func (r *CartRepo) Insert(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	now := time.Now().UTC()
	doc := cartDoc{
		ID:        cart.ID,
		Items:     toDocs(cart.Items),
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("insert cart %s: %w", cart.ID, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return domain.Cart{}, fmt.Errorf("insert cart %s: unexpected inserted id type %T", cart.ID, res.InsertedID)
	}
	doc.OID = oid

	return toDomain(doc), nil
}

func (r *CartRepo) UpdateItems(ctx context.Context, internalID string, items []domain.CartItem) error {
	oid, err := primitive.ObjectIDFromHex(internalID)
	if err != nil {
		return fmt.Errorf("parse internal id %q: %w", internalID, err)
	}

	_, err = r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"items":     toDocs(items),
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update cart items: %w", err)
	}
	return nil
}

func toDomain(doc cartDoc) domain.Cart {
	items := make([]domain.CartItem, 0, len(doc.Items))
	for _, it := range doc.Items {
		items = append(items, domain.CartItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	return domain.Cart{
		InternalID: doc.OID.Hex(),
		ID:         doc.ID,
		Items:      items,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

// toDocs never returns nil so an empty cart is stored as items: [] rather
// than items: null.
func toDocs(items []domain.CartItem) []itemDoc {
	docs := make([]itemDoc, 0, len(items))
	for _, it := range items {
		docs = append(docs, itemDoc{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return docs
}

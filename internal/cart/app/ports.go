package app

import (
	"context"

	"github.com/prasetya/cart-service/internal/cart/domain"
)

type CartRepo interface {
	// FindByID returns ErrCartNotFound when no cart carries the external id.
	FindByID(ctx context.Context, id string) (domain.Cart, error)
	// Insert persists a new cart and returns it with the storage-assigned
	// internal identifier filled in.
	Insert(ctx context.Context, cart domain.Cart) (domain.Cart, error)
	// UpdateItems replaces the whole item list of the cart keyed by its
	// internal identifier. Last write wins, there is no isolation.
	UpdateItems(ctx context.Context, internalID string, items []domain.CartItem) error
}

type ProductReader interface {
	// GetProduct returns (nil, nil) when the catalog has no such product.
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

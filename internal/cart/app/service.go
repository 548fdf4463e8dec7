package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/prasetya/cart-service/internal/cart/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrCartNotFound = errors.New("cart not found")
)

type Service struct {
	repo    CartRepo
	catalog ProductReader

	maxConcurrent int
}

func NewService(repo CartRepo, catalog ProductReader, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		repo:          repo,
		catalog:       catalog,
		maxConcurrent: maxConcurrent,
	}
}

// GetOrCreate looks the cart up by its external id and, on a miss, creates a
// fresh one under a newly generated id. The caller-supplied id is never
// adopted for the new cart; a miss is not an error.
func (s *Service) GetOrCreate(ctx context.Context, id string) (domain.Cart, error) {
	if id != "" {
		cart, err := s.repo.FindByID(ctx, id)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, ErrCartNotFound) {
			return domain.Cart{}, err
		}
	}

	fresh := domain.Cart{
		ID:    uuid.NewString(),
		Items: []domain.CartItem{},
	}
	return s.repo.Insert(ctx, fresh)
}

// AddProduct sets the quantity for productID on the cart resolved via
// GetOrCreate, overwriting any existing quantity for the same product, and
// writes the full item list back. Returns the updated cart.
func (s *Service) AddProduct(ctx context.Context, id, productID string, quantity int) (domain.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return domain.Cart{}, fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	if quantity < 1 {
		return domain.Cart{}, fmt.Errorf("%w: quantity must be at least 1, got %d", ErrInvalidInput, quantity)
	}

	cart, err := s.GetOrCreate(ctx, id)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.SetItem(productID, quantity)

	if err := s.repo.UpdateItems(ctx, cart.InternalID, cart.Items); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// RemoveProduct drops the line item for productID. Removing a product that is
// not in the cart is a no-op.
func (s *Service) RemoveProduct(ctx context.Context, id, productID string) (domain.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return domain.Cart{}, fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}

	cart, err := s.GetOrCreate(ctx, id)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.RemoveItem(productID)

	if err := s.repo.UpdateItems(ctx, cart.InternalID, cart.Items); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// ClearCart empties the cart's item list.
func (s *Service) ClearCart(ctx context.Context, id string) (domain.Cart, error) {
	cart, err := s.GetOrCreate(ctx, id)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.Items = []domain.CartItem{}

	if err := s.repo.UpdateItems(ctx, cart.InternalID, cart.Items); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// Summary enriches every line item with catalog data, fanning the lookups out
// concurrently and reassembling the results in the original item order. A
// product missing from the catalog yields NaN for that line's price and
// total; the cart total is the plain float64 sum, so NaN propagates into it.
// A failed lookup call fails the whole summary.
func (s *Service) Summary(ctx context.Context, id string) (domain.PricedCart, error) {
	cart, err := s.GetOrCreate(ctx, id)
	if err != nil {
		return domain.PricedCart{}, err
	}

	priced := make([]domain.PricedItem, len(cart.Items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range cart.Items {
		idx := idx
		g.Go(func() error {
			it := cart.Items[idx]

			product, err := s.catalog.GetProduct(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", it.ProductID, err)
			}

			line := domain.PricedItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     math.NaN(),
				Total:     math.NaN(),
			}
			if product != nil {
				line.Price = product.Price
				line.Name = product.Name
				line.Image = product.Image
				line.Total = product.Price * float64(it.Quantity)
			}
			priced[idx] = line
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.PricedCart{}, err
	}

	var total float64
	for _, line := range priced {
		total += line.Total
	}

	return domain.PricedCart{
		ID:    cart.ID,
		Items: priced,
		Total: total,
	}, nil
}

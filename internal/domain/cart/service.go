package cart

import (
	"context"
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	"fitzone/internal/domain/product"
	"fitzone/internal/pkg/logger"
)

type Service struct {
	items    RepositoryInterface
	products ProductReader
	log      logrus.FieldLogger
}

func NewService(items RepositoryInterface, products ProductReader, log logrus.FieldLogger) *Service {
	return &Service{
		items:    items,
		products: products,
		log:      logger.OrDiscard(log),
	}
}

func (s *Service) Get(ctx context.Context, userID int64) (*Cart, error) {
	items, err := s.items.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Summarize(items), nil
}

// Subtotal is the cart value used for promo previews.
func (s *Service) Subtotal(ctx context.Context, userID int64) (float64, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return c.Subtotal, nil
}

// AddItem adds quantity to the existing line or creates one.
func (s *Service) AddItem(ctx context.Context, userID int64, req AddItemRequest) (*Cart, error) {
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	p, err := s.availableProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.Get(ctx, userID, req.ProductID)
	switch {
	case errors.Is(err, ErrItemNotFound):
		item = &CartItem{UserID: userID, ProductID: req.ProductID}
	case err != nil:
		return nil, err
	}

	if item.Quantity+qty > p.Stock {
		return nil, ErrInsufficientStock
	}
	item.Quantity += qty
	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// SetQuantity replaces the line quantity; zero removes the line.
func (s *Service) SetQuantity(ctx context.Context, userID, productID int64, qty int) (*Cart, error) {
	if qty < 0 {
		return nil, ErrInvalidQuantity
	}
	if qty == 0 {
		if err := s.items.Delete(ctx, userID, productID); err != nil {
			return nil, err
		}
		return s.Get(ctx, userID)
	}

	item, err := s.items.Get(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	p, err := s.availableProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if qty > p.Stock {
		return nil, ErrInsufficientStock
	}
	item.Quantity = qty
	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID int64) (*Cart, error) {
	if err := s.items.Delete(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *Service) Clear(ctx context.Context, userID int64) error {
	return s.items.Clear(ctx, userID)
}

func (s *Service) availableProduct(ctx context.Context, id int64) (*product.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrProductInactive
	}
	return p, nil
}

// Summarize totals loaded items. Lines whose product was removed are
// dropped.
func Summarize(items []CartItem) *Cart {
	c := &Cart{Items: make([]CartItem, 0, len(items))}
	for _, it := range items {
		if it.Product == nil {
			continue
		}
		c.Items = append(c.Items, it)
		c.ItemCount += it.Quantity
		c.Subtotal += it.LineTotal()
	}
	c.Subtotal = math.Round(c.Subtotal*100) / 100
	return c
}

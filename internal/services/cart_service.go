package services

import (
	"context"
	"errors"

	"infinix-store/internal/kv"
	"infinix-store/internal/models"

	"github.com/rs/zerolog"
)

func cartKey(userID string) string {
	return "cart-" + userID
}

// CartService is the cart of whichever user is signed in on one client.
// The whole cart is loaded on user change and written back after every mutation.
type CartService struct {
	carts  kv.Store
	logger zerolog.Logger

	user  *models.SessionUser
	items []models.CartItem
}

func NewCartService(carts kv.Store, logger zerolog.Logger) *CartService {
	return &CartService{
		carts:  carts,
		logger: logger,
	}
}

// SetUser swaps the cart view to user's cart. A nil user gets an empty cart.
func (s *CartService) SetUser(ctx context.Context, user *models.SessionUser) {
	s.user = user
	s.items = nil
	if user == nil {
		return
	}

	var saved []models.CartItem
	if _, err := kv.GetJSON(ctx, s.carts, cartKey(user.ID), &saved); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("Error loading cart")
		return
	}
	s.items = saved
}

func (s *CartService) save(ctx context.Context) {
	if s.user == nil {
		return
	}
	items := s.items
	if items == nil {
		items = []models.CartItem{}
	}
	if err := kv.SetJSON(ctx, s.carts, cartKey(s.user.ID), items); err != nil {
		s.logger.Error().Err(err).Str("user_id", s.user.ID).Msg("Error saving cart")
	}
}

func (s *CartService) Items() []models.CartItem {
	res := make([]models.CartItem, 0, len(s.items))
	for _, item := range s.items {
		item.Product = item.Product.Clone()
		res = append(res, item)
	}
	return res
}

func (s *CartService) find(productID string) int {
	for i, item := range s.items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

// AddToCart increments an existing entry for the product or appends a new one.
func (s *CartService) AddToCart(ctx context.Context, product models.Product, quantity int) error {
	if s.user == nil {
		return ErrNotLoggedIn
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	if i := s.find(product.ID); i >= 0 {
		s.items[i].Quantity += quantity
	} else {
		s.items = append(s.items, models.CartItem{Product: product.Clone(), Quantity: quantity})
	}
	s.save(ctx)

	s.logger.Info().Str("user_id", s.user.ID).Str("product_id", product.ID).Int("quantity", quantity).Msg("Added to cart")
	return nil
}

// UpdateQuantity sets the quantity directly; zero or less removes the entry if present. Stock is not checked.
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		if err := s.RemoveFromCart(ctx, productID); err != nil && !errors.Is(err, ErrNotInCart) {
			return err
		}
		return nil
	}

	i := s.find(productID)
	if i < 0 {
		return ErrNotInCart
	}
	s.items[i].Quantity = quantity
	s.save(ctx)
	return nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, productID string) error {
	i := s.find(productID)
	if i < 0 {
		return ErrNotInCart
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.save(ctx)
	return nil
}

func (s *CartService) ClearCart(ctx context.Context) {
	s.items = nil
	s.save(ctx)
}

// Total is the undiscounted sum of price times quantity.
func (s *CartService) Total() float64 {
	return lineTotal(s.items)
}

func (s *CartService) Count() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *CartService) Snapshot() models.CartResponse {
	return models.CartResponse{
		Items: s.Items(),
		Total: s.Total(),
		Count: s.Count(),
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"storefront-service/internal/models"
	"storefront-service/internal/pricing"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// ErrCartLineNotFound means the referenced cart line no longer exists.
var ErrCartLineNotFound = errors.New("cart line not found")

// CartService maintains the per-session cart in redis. All pricing of a
// line happens here, at customization time, against the current catalog;
// the stored line is a snapshot.
type CartService struct {
	store  *store.Store
	redis  *redisclient.Client
	logger *zap.Logger
}

func NewCartService(store *store.Store, redis *redisclient.Client) *CartService {
	return &CartService{
		store:  store,
		redis:  redis,
		logger: util.GetLogger(),
	}
}

// AddItemRequest is one customized product heading into the cart.
type AddItemRequest struct {
	ProductID          string   `json:"product_id" binding:"required"`
	Quantity           int      `json:"quantity" binding:"required,min=1"`
	OptionIDs          []string `json:"option_ids"`
	RemovedIngredients []string `json:"removed_ingredients"`
	Notes              string   `json:"notes" binding:"max=180"`
}

// Get loads the session's cart.
func (s *CartService) Get(ctx context.Context, sessionID string) (*pricing.Cart, error) {
	items, err := s.redis.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &pricing.Cart{Items: items}, nil
}

// AddItem validates the customization against the product's option groups,
// prices the line and merges it into the cart. An under-selected required
// group blocks the add entirely.
func (s *CartService) AddItem(ctx context.Context, sessionID string, req *AddItemRequest) (*pricing.Cart, error) {
	ctx, span := util.StartSpan(ctx, "CartService.AddItem")
	defer span.End()

	product, err := s.store.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, fmt.Errorf("product is not available: %s", product.Name)
	}

	groups, err := s.store.GetProductOptionGroups(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	selections, err := buildSelections(groups, req.OptionIDs)
	if err != nil {
		return nil, err
	}
	if err := pricing.ValidateSelections(groups, selections); err != nil {
		return nil, err
	}

	removed, err := s.checkRemovedIngredients(ctx, req.ProductID, req.RemovedIngredients)
	if err != nil {
		return nil, err
	}

	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Add(models.CartLineItem{
		ProductID:          product.ID,
		Name:               product.Name,
		UnitPrice:          pricing.UnitPrice(product.Price, selections),
		Quantity:           req.Quantity,
		SelectedOptions:    selections,
		RemovedIngredients: removed,
		Notes:              req.Notes,
	})

	if err := s.redis.SaveCart(ctx, sessionID, cart.Items); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Debug("Cart item added",
		zap.String("session_id", sessionID),
		zap.String("product_id", product.ID),
		zap.Int("quantity", req.Quantity))
	return cart, nil
}

// UpdateQuantity sets a line's quantity; zero removes it.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, key string, quantity int) (*pricing.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !cart.UpdateQuantity(key, quantity) {
		return nil, ErrCartLineNotFound
	}

	if err := s.redis.SaveCart(ctx, sessionID, cart.Items); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// Clear empties the session's cart.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.redis.DeleteCart(ctx, sessionID)
}

// buildSelections turns the requested option ids into value copies taken
// from the product's current groups, so later catalog edits never change
// the line.
func buildSelections(groups []models.OptionGroup, optionIDs []string) ([]models.SelectedOption, error) {
	wanted := make(map[string]bool, len(optionIDs))
	for _, id := range optionIDs {
		wanted[id] = true
	}

	var selections []models.SelectedOption
	for _, g := range groups {
		for _, o := range g.Options {
			if wanted[o.ID] {
				selections = append(selections, models.SelectedOption{
					OptionID: o.ID,
					GroupID:  g.ID,
					Name:     o.Name,
					Price:    o.Price,
				})
				delete(wanted, o.ID)
			}
		}
	}

	for id := range wanted {
		return nil, fmt.Errorf("unknown option for this product: %s", id)
	}
	return selections, nil
}

// checkRemovedIngredients keeps only ids that exist and are removable.
func (s *CartService) checkRemovedIngredients(ctx context.Context, productID string, removedIDs []string) ([]string, error) {
	if len(removedIDs) == 0 {
		return nil, nil
	}

	ingredients, err := s.store.GetProductIngredients(ctx, productID)
	if err != nil {
		return nil, err
	}

	removable := make(map[string]bool, len(ingredients))
	for _, ing := range ingredients {
		if ing.Removable {
			removable[ing.ID] = true
		}
	}

	out := make([]string, 0, len(removedIDs))
	for _, id := range removedIDs {
		if !removable[id] {
			return nil, fmt.Errorf("ingredient cannot be removed: %s", id)
		}
		out = append(out, id)
	}
	return out, nil
}

package service

import (
	"context"
	"fmt"

	"storefront-service/internal/models"
	"storefront-service/internal/pricing"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// CatalogService serves the storefront menu and the back-office catalog
// editing operations.
type CatalogService struct {
	store  *store.Store
	logger *zap.Logger
}

func NewCatalogService(store *store.Store) *CatalogService {
	return &CatalogService{store: store, logger: util.GetLogger()}
}

// MenuCategory is one storefront menu section with its visible products.
type MenuCategory struct {
	models.Category
	Products []models.Product `json:"products"`
}

// Menu assembles the customer-facing menu: active categories in display
// order, each holding its active products.
func (s *CatalogService) Menu(ctx context.Context) ([]MenuCategory, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.Menu")
	defer span.End()

	categories, err := s.store.GetActiveCategories(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.store.GetActiveProducts(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]models.Product)
	for _, p := range products {
		if p.CategoryID == nil {
			continue
		}
		byCategory[*p.CategoryID] = append(byCategory[*p.CategoryID], p)
	}

	menu := make([]MenuCategory, 0, len(categories))
	for _, c := range categories {
		menu = append(menu, MenuCategory{
			Category: c,
			Products: byCategory[c.ID],
		})
	}
	return menu, nil
}

// ProductDetail is a product with everything needed to customize it.
type ProductDetail struct {
	models.Product
	OptionGroups []models.OptionGroup `json:"option_groups"`
	Ingredients  []models.Ingredient  `json:"ingredients"`
}

// ProductDetail loads a product with its option groups and ingredients.
func (s *CatalogService) ProductDetail(ctx context.Context, id string) (*ProductDetail, error) {
	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	groups, err := s.store.GetProductOptionGroups(ctx, id)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.store.GetProductIngredients(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{Product: *product, OptionGroups: groups, Ingredients: ingredients}, nil
}

// SelectionPreview is the running selection and price shown while the
// customer customizes a product.
type SelectionPreview struct {
	Selected  []models.SelectedOption `json:"selected"`
	UnitPrice int64                   `json:"unit_price"`
}

// ToggleOption applies one customization click against the product's current
// groups and reprices the line. The storefront round-trips the selection so
// radio-replace and cap rules are enforced in one place.
func (s *CatalogService) ToggleOption(ctx context.Context, productID string, selected []models.SelectedOption, optionID string) (*SelectionPreview, error) {
	product, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	groups, err := s.store.GetProductOptionGroups(ctx, productID)
	if err != nil {
		return nil, err
	}

	for _, g := range groups {
		for _, o := range g.Options {
			if o.ID == optionID {
				next := pricing.Toggle(selected, g, o)
				return &SelectionPreview{
					Selected:  next,
					UnitPrice: pricing.UnitPrice(product.Price, next),
				}, nil
			}
		}
	}
	return nil, fmt.Errorf("unknown option for this product: %s", optionID)
}

// Admin listing includes inactive entries.

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, c *models.Category) error {
	return s.store.CreateCategory(ctx, c)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, c *models.Category) error {
	return s.store.UpdateCategory(ctx, c)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.store.DeleteCategory(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.ListProducts(ctx)
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return err
	}
	s.logger.Info("Product created", zap.String("product_id", p.ID), zap.String("name", p.Name))
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p *models.Product) error {
	return s.store.UpdateProduct(ctx, p)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.store.DeleteProduct(ctx, id)
}

func (s *CatalogService) CreateOptionGroup(ctx context.Context, g *models.OptionGroup) error {
	return s.store.CreateOptionGroup(ctx, g)
}

func (s *CatalogService) DeleteOptionGroup(ctx context.Context, id string) error {
	return s.store.DeleteOptionGroup(ctx, id)
}

func (s *CatalogService) CreateOption(ctx context.Context, o *models.Option) error {
	return s.store.CreateOption(ctx, o)
}

func (s *CatalogService) DeleteOption(ctx context.Context, id string) error {
	return s.store.DeleteOption(ctx, id)
}

func (s *CatalogService) CreateIngredient(ctx context.Context, ing *models.Ingredient) error {
	return s.store.CreateIngredient(ctx, ing)
}

func (s *CatalogService) DeleteIngredient(ctx context.Context, id string) error {
	return s.store.DeleteIngredient(ctx, id)
}

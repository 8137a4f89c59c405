package store

import (
	"context"
	"database/sql"
	"fmt"

	"storefront-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GetActiveCategories retrieves active categories in display order.
func (s *Store) GetActiveCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.SelectContext(ctx, &categories,
		"SELECT * FROM categories WHERE active ORDER BY display_order, name")
	return categories, err
}

// ListCategories retrieves all categories for the admin panel.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.SelectContext(ctx, &categories,
		"SELECT * FROM categories ORDER BY display_order, name")
	return categories, err
}

// CreateCategory inserts a new category.
func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (id, name, icon, display_order, active) VALUES ($1, $2, $3, $4, $5)",
		c.ID, c.Name, c.Icon, c.DisplayOrder, c.Active)
	return err
}

// UpdateCategory updates an existing category.
func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = $1, icon = $2, display_order = $3, active = $4 WHERE id = $5",
		c.Name, c.Icon, c.DisplayOrder, c.Active, c.ID)
	return err
}

// DeleteCategory removes a category; products keep their snapshot data.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	return err
}

// GetActiveProducts retrieves active products in display order.
func (s *Store) GetActiveProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE active ORDER BY display_order, name")
	return products, err
}

// ListProducts retrieves all products for the admin panel.
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products ORDER BY display_order, name")
	return products, err
}

// GetProductByID retrieves a product by ID.
func (s *Store) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %s: %w", id, sql.ErrNoRows)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts a new product.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (id, category_id, name, description, price, image_url, display_order, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`
	return s.db.GetContext(ctx, &p.CreatedAt, query,
		p.ID, p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL, p.DisplayOrder, p.Active)
}

// UpdateProduct updates an existing product. Placed orders are unaffected;
// they carry denormalized snapshots.
func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET category_id = $1, name = $2, description = $3, price = $4,
		    image_url = $5, display_order = $6, active = $7
		WHERE id = $8`,
		p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL, p.DisplayOrder, p.Active, p.ID)
	return err
}

// DeleteProduct removes a product and its option groups.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}

// GetProductOptionGroups retrieves a product's option groups with their
// active options, both in display order.
func (s *Store) GetProductOptionGroups(ctx context.Context, productID string) ([]models.OptionGroup, error) {
	var groups []models.OptionGroup
	err := s.db.SelectContext(ctx, &groups,
		"SELECT * FROM option_groups WHERE product_id = $1 ORDER BY display_order, name", productID)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return groups, nil
	}

	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}

	query, args, err := sqlx.In("SELECT * FROM options WHERE active AND group_id IN (?) ORDER BY display_order, name", ids)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var options []models.Option
	if err := s.db.SelectContext(ctx, &options, query, args...); err != nil {
		return nil, err
	}

	byGroup := make(map[string][]models.Option, len(groups))
	for _, o := range options {
		byGroup[o.GroupID] = append(byGroup[o.GroupID], o)
	}
	for i := range groups {
		groups[i].Options = byGroup[groups[i].ID]
	}
	return groups, nil
}

// CreateOptionGroup inserts a new option group.
func (s *Store) CreateOptionGroup(ctx context.Context, g *models.OptionGroup) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.IsRequired && g.MinSelections < 1 {
		return fmt.Errorf("required group must have min_selections >= 1")
	}
	if g.MinSelections > g.MaxSelections {
		return fmt.Errorf("min_selections cannot exceed max_selections")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO option_groups (id, product_id, name, min_selections, max_selections, is_required, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		g.ID, g.ProductID, g.Name, g.MinSelections, g.MaxSelections, g.IsRequired, g.DisplayOrder)
	return err
}

// DeleteOptionGroup removes a group and its options.
func (s *Store) DeleteOptionGroup(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM option_groups WHERE id = $1", id)
	return err
}

// CreateOption inserts a new option into a group.
func (s *Store) CreateOption(ctx context.Context, o *models.Option) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO options (id, group_id, name, price, display_order, active)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.GroupID, o.Name, o.Price, o.DisplayOrder, o.Active)
	return err
}

// DeleteOption removes an option.
func (s *Store) DeleteOption(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM options WHERE id = $1", id)
	return err
}

// GetProductIngredients retrieves a product's ingredients.
func (s *Store) GetProductIngredients(ctx context.Context, productID string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := s.db.SelectContext(ctx, &ingredients,
		"SELECT * FROM ingredients WHERE product_id = $1 ORDER BY name", productID)
	return ingredients, err
}

// CreateIngredient inserts a product ingredient.
func (s *Store) CreateIngredient(ctx context.Context, ing *models.Ingredient) error {
	if ing.ID == "" {
		ing.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO ingredients (id, product_id, name, removable) VALUES ($1, $2, $3, $4)",
		ing.ID, ing.ProductID, ing.Name, ing.Removable)
	return err
}

// DeleteIngredient removes an ingredient.
func (s *Store) DeleteIngredient(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM ingredients WHERE id = $1", id)
	return err
}

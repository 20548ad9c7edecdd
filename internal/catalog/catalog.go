// Package catalog reads the menu and lets admins extend it.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/Keoroanthony/go-food-ordering/internal/apperr"
	"github.com/Keoroanthony/go-food-ordering/internal/backend"
	"github.com/Keoroanthony/go-food-ordering/internal/models"
	"github.com/Keoroanthony/go-food-ordering/internal/utils"
)

type Catalog struct {
	records backend.Records
}

func New(records backend.Records) *Catalog {
	return &Catalog{records: records}
}

// List returns menu items whose name or description contains search (case-insensitive)
// and whose category is category or one of its subcategories. Empty arguments match all.
func (c *Catalog) List(ctx context.Context, search, category string) ([]models.MenuItem, error) {
	q := backend.Query{OrderBy: "id"}

	if category = strings.TrimSpace(category); category != "" {
		names, err := c.categoryNames(ctx, category)
		if err != nil {
			return nil, err
		}
		q.Filter = backend.Filter{"category": names}
	}

	var items []models.MenuItem
	if err := c.records.QueryRecords(ctx, backend.TableMenuItems, q, &items); err != nil {
		return nil, &apperr.FetchError{Err: err}
	}

	search = strings.TrimSpace(search)
	if search == "" {
		return items, nil
	}

	fold := cases.Fold()
	needle := fold.String(search)
	matched := items[:0]
	for _, item := range items {
		if strings.Contains(fold.String(item.Name), needle) || strings.Contains(fold.String(item.Description), needle) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (c *Catalog) Get(ctx context.Context, id uint) (models.MenuItem, error) {
	var items []models.MenuItem
	err := c.records.QueryRecords(ctx, backend.TableMenuItems, backend.Query{
		Filter: backend.Filter{"id": id},
		Limit:  1,
	}, &items)
	if err != nil {
		return models.MenuItem{}, &apperr.FetchError{Err: err}
	}
	if len(items) == 0 {
		return models.MenuItem{}, fmt.Errorf("menu item %d: %w", id, apperr.ErrNotFound)
	}
	return items[0], nil
}

type NewItem struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	ImageURL    string
}

func (c *Catalog) CreateItem(ctx context.Context, in NewItem) (models.MenuItem, error) {
	v := &apperr.ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		v.Add("name")
	}
	if in.Price.IsNegative() {
		v.Add("price")
	}
	if err := v.OrNil(); err != nil {
		return models.MenuItem{}, err
	}

	if in.Category != "" {
		if _, err := c.findCategory(ctx, "name", in.Category); err != nil {
			return models.MenuItem{}, err
		}
	}

	item := models.MenuItem{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
	}
	if err := c.records.CreateRecord(ctx, backend.TableMenuItems, &item); err != nil {
		return models.MenuItem{}, &apperr.SubmissionError{Err: err}
	}
	return item, nil
}

func (c *Catalog) CreateCategory(ctx context.Context, name string, parentID *uint) (models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return models.Category{}, &apperr.ValidationError{Fields: []string{"name"}}
	}

	category := models.Category{Name: strings.TrimSpace(name), ParentID: parentID}
	if parentID != nil {
		parent, err := c.findCategory(ctx, "id", *parentID)
		if err != nil {
			return models.Category{}, fmt.Errorf("parent category: %w", err)
		}
		category.Parent = &parent
	}

	// Parent is already stored; keep gorm from upserting it again.
	row := category
	row.Parent = nil
	if err := c.records.CreateRecord(ctx, backend.TableCategories, &row); err != nil {
		return models.Category{}, &apperr.SubmissionError{Err: err}
	}
	category.ID = row.ID
	return category, nil
}

// AveragePrice is the mean price of the items in category and its subcategories, zero when empty.
func (c *Catalog) AveragePrice(ctx context.Context, category string) (decimal.Decimal, error) {
	items, err := c.List(ctx, "", category)
	if err != nil {
		return decimal.Zero, err
	}
	if len(items) == 0 {
		return decimal.Zero, nil
	}

	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Price)
	}
	return sum.Div(decimal.NewFromInt(int64(len(items)))), nil
}

// categoryNames resolves a category to its own name plus all subcategory names.
// A name without a categories row still filters on that literal value.
func (c *Catalog) categoryNames(ctx context.Context, name string) ([]string, error) {
	root, err := c.findCategory(ctx, "name", name)
	if errors.Is(err, apperr.ErrNotFound) {
		return []string{name}, nil
	}
	if err != nil {
		return nil, err
	}

	tree, err := utils.GetCategoryTree(ctx, c.records, root)
	if err != nil {
		return nil, &apperr.FetchError{Err: err}
	}

	names := make([]string, 0, len(tree))
	for _, cat := range tree {
		names = append(names, cat.Name)
	}
	return names, nil
}

func (c *Catalog) findCategory(ctx context.Context, column string, value any) (models.Category, error) {
	var found []models.Category
	err := c.records.QueryRecords(ctx, backend.TableCategories, backend.Query{
		Filter: backend.Filter{column: value},
		Limit:  1,
	}, &found)
	if err != nil {
		return models.Category{}, &apperr.FetchError{Err: err}
	}
	if len(found) == 0 {
		return models.Category{}, fmt.Errorf("category with %s %v: %w", column, value, apperr.ErrNotFound)
	}
	return found[0], nil
}

package utils

import (
	"context"

	"github.com/Keoroanthony/go-food-ordering/internal/backend"
	"github.com/Keoroanthony/go-food-ordering/internal/models"
)

// GetCategoryTree returns root followed by every descendant category, breadth first.
func GetCategoryTree(ctx context.Context, records backend.Records, root models.Category) ([]models.Category, error) {
	result := []models.Category{root}
	seen := map[uint]bool{root.ID: true}

	var queue = []uint{root.ID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		var children []models.Category
		err := records.QueryRecords(ctx, backend.TableCategories, backend.Query{
			Filter: backend.Filter{"parent_id": current},
		}, &children)
		if err != nil {
			return nil, err
		}

		for _, child := range children {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			result = append(result, child)
			queue = append(queue, child.ID)
		}
	}

	return result, nil
}

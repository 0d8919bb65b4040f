package memory

import (
	"context"
	"sort"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
)

type CategoryRepository struct {
	store *Store
}

func NewCategoryRepository(store *Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

func (c *CategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	categories := make([]*model.Category, 0, len(c.store.categories))
	for _, category := range c.store.categories {
		cp := *category
		categories = append(categories, &cp)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (c *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	category, ok := c.store.categories[id]
	if !ok {
		return nil, custom_errors.ErrCategoryNotFound
	}
	cp := *category
	return &cp, nil
}

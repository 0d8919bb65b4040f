package category_repository

import (
	"context"

	model "blog-post-service/internal/domain/models"
)

type Repository interface {
	List(ctx context.Context) ([]*model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
}

package user_repository

import (
	"context"

	model "blog-post-service/internal/domain/models"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

package memory

import (
	"context"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (u *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	user, ok := u.store.users[id]
	if !ok {
		return nil, custom_errors.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

package tag_repository

import (
	"context"

	model "blog-post-service/internal/domain/models"
)

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/tag --outpkg tag_repository_mock --filename Repository.go
type Repository interface {
	List(ctx context.Context) ([]*model.Tag, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*model.Tag, error)
	FindByPost(ctx context.Context, postID int64) ([]*model.Tag, error)
	FindByPosts(ctx context.Context, postIDs []int64) (map[int64][]*model.Tag, error)
	SyncPostTags(ctx context.Context, postID int64, tagIDs []int64) error
}

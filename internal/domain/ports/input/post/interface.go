package post_service

import (
	"context"

	model "blog-post-service/internal/domain/models"
)

//go:generate mockery --name ManagementService --dir . --output ../../../../../mocks/service --outpkg service_mock --filename ManagementService.go
type ManagementService interface {
	ListOwn(ctx context.Context, callerID int64) ([]*model.Post, error)
	CreateForm(ctx context.Context) (*model.PostForm, error)
	Create(ctx context.Context, callerID int64, input *model.PostInput) (*model.PostDetailed, error)
	Get(ctx context.Context, callerID, postID int64) (*model.PostDetailed, error)
	EditForm(ctx context.Context, callerID, postID int64) (*model.PostEditForm, error)
	Update(ctx context.Context, callerID, postID int64, input *model.PostInput) (*model.PostDetailed, error)
	Delete(ctx context.Context, callerID, postID int64) error
}

//go:generate mockery --name PublicService --dir . --output ../../../../../mocks/service --outpkg service_mock --filename PublicService.go
type PublicService interface {
	ListPublished(ctx context.Context) ([]*model.PostDetailed, error)
	GetBySlug(ctx context.Context, slug string) (*model.PostDetailed, error)
}

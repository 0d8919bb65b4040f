package post_service

import (
	"context"
	"errors"
	"log/slog"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"
	post_repository "blog-post-service/internal/domain/ports/output/post"
	tag_repository "blog-post-service/internal/domain/ports/output/tag"
)

type PublicService struct {
	postRepo post_repository.Repository
	tagRepo  tag_repository.Repository
	log      ports.Logger
}

func NewPublicService(postRepo post_repository.Repository, tagRepo tag_repository.Repository, log ports.Logger) *PublicService {
	return &PublicService{postRepo: postRepo, tagRepo: tagRepo, log: log}
}

// ListPublished returns every published post with its category, tags and
// owner. Tags for the whole listing are loaded with a single query.
func (s *PublicService) ListPublished(ctx context.Context) ([]*model.PostDetailed, error) {
	posts, err := s.postRepo.ListPublished(ctx)
	if err != nil {
		s.log.Error("Failed to list published posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if len(posts) == 0 {
		return posts, nil
	}

	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.Post.ID)
	}
	tagsByPost, err := s.tagRepo.FindByPosts(ctx, ids)
	if err != nil {
		s.log.Error("Failed to load tags for published posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	for _, p := range posts {
		if tags, ok := tagsByPost[p.Post.ID]; ok {
			p.Tags = tags
		} else {
			p.Tags = []*model.Tag{}
		}
	}
	return posts, nil
}

// GetBySlug looks a post up by slug. Drafts are returned as well.
func (s *PublicService) GetBySlug(ctx context.Context, slug string) (*model.PostDetailed, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found by slug", slog.String("slug", slug))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post by slug", slog.String("slug", slug), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	tags, err := s.tagRepo.FindByPost(ctx, post.Post.ID)
	if err != nil {
		s.log.Error("Failed to load tags for post", slog.Int64("post_id", post.Post.ID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	post.Tags = tags
	return post, nil
}

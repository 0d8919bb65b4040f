package memory

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"
)

type PostRepository struct {
	store *Store
	log   ports.Logger
	tx    *txLog
}

func NewPostRepository(store *Store, log ports.Logger) *PostRepository {
	return &PostRepository{store: store, log: log}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.log.Debug("Creating new post (memory impl)", slog.Int64("user_id", post.UserID), slog.String("slug", post.Slug))
	p.store.runBeforePostWrite()

	s := p.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeWriteErrLocked(); err != nil {
		return nil, err
	}
	if s.slugTakenLocked(post.Slug, 0) {
		return nil, custom_errors.ErrSlugConflict
	}

	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	created := *post
	created.ID = s.nextPostID
	created.CreatedAt = now
	created.UpdatedAt = now
	s.nextPostID++
	s.posts[created.ID] = &created

	id := created.ID
	p.tx.record(func() { delete(s.posts, id) })

	result := created
	return &result, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	p.store.mu.RLock()
	defer p.store.mu.RUnlock()

	post, ok := p.store.posts[id]
	if !ok {
		p.log.Debug("Post not found by id (memory impl)", slog.Int64("id", id))
		return nil, custom_errors.ErrPostNotFound
	}
	result := *post
	return &result, nil
}

func (p *PostRepository) GetBySlug(ctx context.Context, slug string) (*model.PostDetailed, error) {
	p.store.mu.RLock()
	defer p.store.mu.RUnlock()

	for _, post := range p.store.posts {
		if post.Slug == slug {
			return p.detailedLocked(post), nil
		}
	}
	return nil, custom_errors.ErrPostNotFound
}

func (p *PostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	p.store.mu.RLock()
	defer p.store.mu.RUnlock()
	return p.store.slugTakenLocked(slug, 0), nil
}

func (p *PostRepository) ListByOwner(ctx context.Context, userID int64) ([]*model.Post, error) {
	p.store.mu.RLock()
	defer p.store.mu.RUnlock()

	result := make([]*model.Post, 0)
	for _, post := range p.store.posts {
		if post.UserID == userID {
			cp := *post
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (p *PostRepository) ListPublished(ctx context.Context) ([]*model.PostDetailed, error) {
	p.store.mu.RLock()
	defer p.store.mu.RUnlock()

	result := make([]*model.PostDetailed, 0)
	for _, post := range p.store.posts {
		if post.Published {
			result = append(result, p.detailedLocked(post))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Post.ID < result[j].Post.ID })
	return result, nil
}

func (p *PostRepository) Update(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.store.runBeforePostWrite()

	s := p.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.posts[post.ID]
	if !ok {
		return nil, custom_errors.ErrPostNotFound
	}
	if err := s.takeWriteErrLocked(); err != nil {
		return nil, err
	}
	if s.slugTakenLocked(post.Slug, post.ID) {
		return nil, custom_errors.ErrSlugConflict
	}

	previous := *existing
	existing.CategoryID = post.CategoryID
	existing.Title = post.Title
	existing.Content = post.Content
	existing.Slug = post.Slug
	existing.Published = post.Published
	existing.Image = post.Image
	existing.UpdatedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}

	p.tx.record(func() { *s.posts[previous.ID] = previous })

	result := *existing
	return &result, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	s := p.store
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return custom_errors.ErrPostNotFound
	}
	delete(s.posts, id)

	removed := make([]postTagKey, 0)
	for k := range s.postTags {
		if k.postID == id {
			removed = append(removed, k)
			delete(s.postTags, k)
		}
	}

	p.tx.record(func() {
		s.posts[id] = post
		for _, k := range removed {
			s.postTags[k] = struct{}{}
		}
	})
	return nil
}

func (p *PostRepository) detailedLocked(post *model.Post) *model.PostDetailed {
	cp := *post
	detailed := &model.PostDetailed{Post: &cp, Tags: []*model.Tag{}}
	if post.CategoryID != nil {
		if c, ok := p.store.categories[*post.CategoryID]; ok {
			cc := *c
			detailed.Category = &cc
		}
	}
	if u, ok := p.store.users[post.UserID]; ok {
		uc := *u
		detailed.User = &uc
	}
	return detailed
}

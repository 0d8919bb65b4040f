package post_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"
	"blog-post-service/internal/infrastructure/outbound/repository/postgres/db"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	slugConstraint      = "posts_slug_key"
	categoryConstraint  = "posts_category_id_fkey"
	postColumns         = `id, user_id, category_id, title, content, slug, published, image, created_at, updated_at`
)

const detailedSelect = `SELECT p.id, p.user_id, p.category_id, p.title, p.content, p.slug, p.published, p.image, p.created_at, p.updated_at,
		c.id, c.name, c.slug, u.id, u.name, u.email
	FROM posts p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN users u ON u.id = p.user_id`

type PostRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewPostRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *PostRepository {
	return &PostRepository{db: db, log: log, metrics: metrics}
}

func (p *PostRepository) observe(queryType string, start time.Time, success bool) {
	p.metrics.IncrementDatabaseQueries(queryType, success)
	p.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func scanPost(row pgx.Row, post *model.Post) error {
	return row.Scan(
		&post.ID,
		&post.UserID,
		&post.CategoryID,
		&post.Title,
		&post.Content,
		&post.Slug,
		&post.Published,
		&post.Image,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
}

func isSlugConflict(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == uniqueViolation && pgerr.ConstraintName == slugConstraint
}

func isMissingCategory(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == foreignKeyViolation && pgerr.ConstraintName == categoryConstraint
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Creating new post", slog.Int64("user_id", post.UserID), slog.String("slug", post.Slug))

	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	args := pgx.NamedArgs{
		"user_id":     post.UserID,
		"category_id": post.CategoryID,
		"title":       post.Title,
		"content":     post.Content,
		"slug":        post.Slug,
		"published":   post.Published,
		"image":       post.Image,
		"created_at":  now,
		"updated_at":  now,
	}

	query := `
		INSERT INTO posts (user_id, category_id, title, content, slug, published, image, created_at, updated_at)
		VALUES (@user_id, @category_id, @title, @content, @slug, @published, @image, @created_at, @updated_at)
		RETURNING ` + postColumns

	var created model.Post
	if err := scanPost(p.db.QueryRow(ctx, query, args), &created); err != nil {
		p.observe("post_create", start, false)
		if isSlugConflict(err) {
			p.log.Debug("Slug taken during post create", slog.String("slug", post.Slug))
			return nil, custom_errors.ErrSlugConflict
		}
		if isMissingCategory(err) {
			p.log.Debug("Category vanished during post create", slog.Any("category_id", post.CategoryID))
			return nil, custom_errors.ErrCategoryNotFound
		}
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_create", start, true)
	p.log.Debug("Successfully created post", slog.Int64("id", created.ID), slog.Int64("user_id", created.UserID))
	return &created, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Getting post by ID", slog.Int64("id", id))

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = @id`
	post := &model.Post{}
	if err := scanPost(p.db.QueryRow(ctx, query, pgx.NamedArgs{"id": id}), post); err != nil {
		p.observe("post_get_by_id", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting post by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_get_by_id", start, true)
	return post, nil
}

func (p *PostRepository) GetBySlug(ctx context.Context, slug string) (*model.PostDetailed, error) {
	start := time.Now()
	p.log.Debug("Getting post by slug", slog.String("slug", slug))

	query := detailedSelect + ` WHERE p.slug = @slug`
	detailed, err := scanDetailed(p.db.QueryRow(ctx, query, pgx.NamedArgs{"slug": slug}))
	if err != nil {
		p.observe("post_get_by_slug", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by slug", slog.String("slug", slug))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting post by slug", slog.String("slug", slug), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_get_by_slug", start, true)
	return detailed, nil
}

func (p *PostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	start := time.Now()
	var exists bool
	err := p.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE slug = @slug)`, pgx.NamedArgs{"slug": slug}).Scan(&exists)
	if err != nil {
		p.observe("post_slug_exists", start, false)
		p.log.Error("Error checking slug", slog.String("slug", slug), slog.String("error", err.Error()))
		return false, custom_errors.ErrDatabaseQuery
	}
	p.observe("post_slug_exists", start, true)
	return exists, nil
}

func (p *PostRepository) ListByOwner(ctx context.Context, userID int64) ([]*model.Post, error) {
	start := time.Now()
	p.log.Debug("Getting posts by owner", slog.Int64("user_id", userID))

	query := `SELECT ` + postColumns + ` FROM posts WHERE user_id = @user_id ORDER BY id`
	rows, err := p.db.Query(ctx, query, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		p.observe("post_list_by_owner", start, false)
		p.log.Error("Error getting posts by owner", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		var post model.Post
		if err := scanPost(rows, &post); err != nil {
			p.observe("post_list_by_owner", start, false)
			p.log.Error("Error scanning post during ListByOwner", slog.Int64("user_id", userID), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		p.observe("post_list_by_owner", start, false)
		p.log.Error("Error iterating rows during ListByOwner", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_list_by_owner", start, true)
	p.log.Debug("Successfully retrieved posts by owner", slog.Int64("user_id", userID), slog.Int("count", len(posts)))
	return posts, nil
}

// ListPublished returns published posts with category and owner joined in
// the same query. Tags are left empty for the caller to batch load.
func (p *PostRepository) ListPublished(ctx context.Context) ([]*model.PostDetailed, error) {
	start := time.Now()

	query := detailedSelect + ` WHERE p.published = TRUE ORDER BY p.id`
	rows, err := p.db.Query(ctx, query)
	if err != nil {
		p.observe("post_list_published", start, false)
		p.log.Error("Error listing published posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	posts := make([]*model.PostDetailed, 0)
	for rows.Next() {
		detailed, err := scanDetailed(rows)
		if err != nil {
			p.observe("post_list_published", start, false)
			p.log.Error("Error scanning published post", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
		posts = append(posts, detailed)
	}
	if err := rows.Err(); err != nil {
		p.observe("post_list_published", start, false)
		p.log.Error("Error iterating published posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	p.observe("post_list_published", start, true)
	p.log.Debug("Listed published posts", slog.Int("count", len(posts)))
	return posts, nil
}

func (p *PostRepository) Update(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Updating post", slog.Int64("id", post.ID), slog.String("slug", post.Slug))

	args := pgx.NamedArgs{
		"id":          post.ID,
		"category_id": post.CategoryID,
		"title":       post.Title,
		"content":     post.Content,
		"slug":        post.Slug,
		"published":   post.Published,
		"image":       post.Image,
		"updated_at":  pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}

	// user_id never changes after create.
	query := `
		UPDATE posts
		SET category_id = @category_id, title = @title, content = @content, slug = @slug,
			published = @published, image = @image, updated_at = @updated_at
		WHERE id = @id
		RETURNING ` + postColumns

	var updated model.Post
	if err := scanPost(p.db.QueryRow(ctx, query, args), &updated); err != nil {
		p.observe("post_update", start, false)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			p.log.Debug("Post not found during update", slog.Int64("id", post.ID))
			return nil, custom_errors.ErrPostNotFound
		case isSlugConflict(err):
			p.log.Debug("Slug taken during post update", slog.String("slug", post.Slug))
			return nil, custom_errors.ErrSlugConflict
		case isMissingCategory(err):
			p.log.Debug("Category vanished during post update", slog.Any("category_id", post.CategoryID))
			return nil, custom_errors.ErrCategoryNotFound
		}
		p.log.Error("Error updating post", slog.Int64("id", post.ID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_update", start, true)
	p.log.Debug("Successfully updated post", slog.Int64("id", updated.ID), slog.Time("updated_at", updated.UpdatedAt.Time))
	return &updated, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	p.log.Debug("Deleting post", slog.Int64("id", id))

	result, err := p.db.Exec(ctx, `DELETE FROM posts WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		p.observe("post_delete", start, false)
		p.log.Error("Error deleting post", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		p.observe("post_delete", start, false)
		p.log.Debug("Post not found during deletion", slog.Int64("id", id))
		return custom_errors.ErrPostNotFound
	}

	p.observe("post_delete", start, true)
	p.log.Debug("Successfully deleted post", slog.Int64("id", id))
	return nil
}

func scanDetailed(row pgx.Row) (*model.PostDetailed, error) {
	var (
		post                       model.Post
		categoryID                 *int64
		categoryName, categorySlug *string
		userID                     *int64
		userName, userEmail        *string
	)
	err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.CategoryID,
		&post.Title,
		&post.Content,
		&post.Slug,
		&post.Published,
		&post.Image,
		&post.CreatedAt,
		&post.UpdatedAt,
		&categoryID,
		&categoryName,
		&categorySlug,
		&userID,
		&userName,
		&userEmail,
	)
	if err != nil {
		return nil, err
	}

	detailed := &model.PostDetailed{Post: &post, Tags: []*model.Tag{}}
	if categoryID != nil {
		detailed.Category = &model.Category{ID: *categoryID, Name: deref(categoryName), Slug: deref(categorySlug)}
	}
	if userID != nil {
		detailed.User = &model.User{ID: *userID, Name: deref(userName), Email: deref(userEmail)}
	}
	return detailed, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

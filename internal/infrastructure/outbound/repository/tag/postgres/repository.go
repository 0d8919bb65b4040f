package tag_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"
	"blog-post-service/internal/infrastructure/outbound/repository/postgres/db"
)

const foreignKeyViolation = "23503"

type TagRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewTagRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *TagRepository {
	return &TagRepository{db: db, log: log, metrics: metrics}
}

func (t *TagRepository) observe(queryType string, start time.Time, success bool) {
	t.metrics.IncrementDatabaseQueries(queryType, success)
	t.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func (t *TagRepository) List(ctx context.Context) ([]*model.Tag, error) {
	start := time.Now()
	tags, err := t.queryTags(ctx, `SELECT id, name, slug FROM tags ORDER BY id`)
	if err != nil {
		t.observe("tag_list", start, false)
		t.log.Error("Error listing tags", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	t.observe("tag_list", start, true)
	return tags, nil
}

func (t *TagRepository) FindByIDs(ctx context.Context, ids []int64) ([]*model.Tag, error) {
	start := time.Now()
	if len(ids) == 0 {
		return []*model.Tag{}, nil
	}

	tags, err := t.queryTags(ctx, `SELECT id, name, slug FROM tags WHERE id = ANY(@ids) ORDER BY id`, pgx.NamedArgs{"ids": ids})
	if err != nil {
		t.observe("tag_find_by_ids", start, false)
		t.log.Error("Error finding tags by ids", slog.Any("ids", ids), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	t.observe("tag_find_by_ids", start, true)
	return tags, nil
}

func (t *TagRepository) FindByPost(ctx context.Context, postID int64) ([]*model.Tag, error) {
	start := time.Now()
	query := `
		SELECT t.id, t.name, t.slug
		FROM tags t
		INNER JOIN post_tag pt ON pt.tag_id = t.id
		WHERE pt.post_id = @post_id
		ORDER BY t.id`

	tags, err := t.queryTags(ctx, query, pgx.NamedArgs{"post_id": postID})
	if err != nil {
		t.observe("tag_find_by_post", start, false)
		t.log.Error("Error finding tags by post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	t.observe("tag_find_by_post", start, true)
	return tags, nil
}

func (t *TagRepository) FindByPosts(ctx context.Context, postIDs []int64) (map[int64][]*model.Tag, error) {
	start := time.Now()
	result := make(map[int64][]*model.Tag, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT pt.post_id, t.id, t.name, t.slug
		FROM post_tag pt
		INNER JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY(@post_ids)
		ORDER BY pt.post_id, t.id`

	rows, err := t.db.Query(ctx, query, pgx.NamedArgs{"post_ids": postIDs})
	if err != nil {
		t.observe("tag_find_by_posts", start, false)
		t.log.Error("Error finding tags by posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	for rows.Next() {
		var postID int64
		var tag model.Tag
		if err := rows.Scan(&postID, &tag.ID, &tag.Name, &tag.Slug); err != nil {
			t.observe("tag_find_by_posts", start, false)
			t.log.Error("Error scanning tag row", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
		result[postID] = append(result[postID], &tag)
	}
	if err := rows.Err(); err != nil {
		t.observe("tag_find_by_posts", start, false)
		t.log.Error("Error iterating tag rows", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	t.observe("tag_find_by_posts", start, true)
	return result, nil
}

// SyncPostTags makes the association set of postID equal to tagIDs. Rows
// for tags kept in both sets are not touched.
func (t *TagRepository) SyncPostTags(ctx context.Context, postID int64, tagIDs []int64) error {
	start := time.Now()

	current, err := t.currentTagIDs(ctx, postID)
	if err != nil {
		t.metrics.IncrementTagOperations("sync_post_tags", false)
		t.observe("tag_sync", start, false)
		t.log.Error("Error reading current post tags", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return custom_errors.ErrTagSyncFailed
	}

	toAdd, toRemove := model.DiffTagIDs(current, tagIDs)
	if len(toAdd) == 0 && len(toRemove) == 0 {
		t.metrics.IncrementTagOperations("sync_post_tags", true)
		t.observe("tag_sync", start, true)
		return nil
	}

	batch := &pgx.Batch{}
	if len(toRemove) > 0 {
		batch.Queue(`DELETE FROM post_tag WHERE post_id = @post_id AND tag_id = ANY(@tag_ids)`,
			pgx.NamedArgs{"post_id": postID, "tag_ids": toRemove})
	}
	for _, tagID := range toAdd {
		batch.Queue(`INSERT INTO post_tag (post_id, tag_id) VALUES (@post_id, @tag_id) ON CONFLICT DO NOTHING`,
			pgx.NamedArgs{"post_id": postID, "tag_id": tagID})
	}

	br := t.db.SendBatch(ctx, batch)
	defer func(br pgx.BatchResults) {
		if err := br.Close(); err != nil {
			t.log.Error("Failed to close batch result in SyncPostTags", slog.String("error", err.Error()), slog.Int64("post_id", postID))
		}
	}(br)

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			t.metrics.IncrementTagOperations("sync_post_tags", false)
			t.observe("tag_sync", start, false)
			var pgerr *pgconn.PgError
			if errors.As(err, &pgerr) && pgerr.Code == foreignKeyViolation {
				t.log.Debug("Tag or post missing during sync", slog.Int64("post_id", postID), slog.String("constraint", pgerr.ConstraintName))
				return custom_errors.ErrTagNotFound
			}
			t.log.Error("Error synchronizing post tags", slog.Int64("post_id", postID), slog.String("error", err.Error()))
			return custom_errors.ErrTagSyncFailed
		}
	}

	t.metrics.IncrementTagOperations("sync_post_tags", true)
	t.observe("tag_sync", start, true)
	t.log.Debug("Synchronized post tags", slog.Int64("post_id", postID),
		slog.Any("added", toAdd), slog.Any("removed", toRemove))
	return nil
}

func (t *TagRepository) currentTagIDs(ctx context.Context, postID int64) ([]int64, error) {
	rows, err := t.db.Query(ctx, `SELECT tag_id FROM post_tag WHERE post_id = @post_id`, pgx.NamedArgs{"post_id": postID})
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (t *TagRepository) queryTags(ctx context.Context, query string, args ...any) ([]*model.Tag, error) {
	rows, err := t.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]*model.Tag, 0)
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}

package tag_repository_postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	"blog-post-service/internal/infrastructure/logger"
	"blog-post-service/internal/infrastructure/outbound/metrics/prometheus"
	tag_repository_postgres "blog-post-service/internal/infrastructure/outbound/repository/tag/postgres"
)

func setup(t *testing.T) (pgxmock.PgxPoolIface, *tag_repository_postgres.TagRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, tag_repository_postgres.NewTagRepository(mock, logger.New("test"), prometheus.NewPrometheusMetricsProvider())
}

func TestTagRepository_List(t *testing.T) {
	mock, repo := setup(t)
	mock.ExpectQuery("FROM tags ORDER BY id").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(int64(1), "Go", "go").
			AddRow(int64(2), "SQL", "sql"))

	tags, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, model.TagIDs(tags))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_FindByIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty input skips the query", func(t *testing.T) {
		mock, repo := setup(t)
		tags, err := repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, tags)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Found subset", func(t *testing.T) {
		mock, repo := setup(t)
		mock.ExpectQuery("WHERE id = ANY").
			WithArgs(pgx.NamedArgs{"ids": []int64{2, 77}}).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "slug"}).AddRow(int64(2), "SQL", "sql"))

		tags, err := repo.FindByIDs(ctx, []int64{2, 77})
		require.NoError(t, err)
		assert.Equal(t, []int64{2}, model.TagIDs(tags))
	})

	t.Run("Query failure", func(t *testing.T) {
		mock, repo := setup(t)
		mock.ExpectQuery("WHERE id = ANY").
			WithArgs(pgx.NamedArgs{"ids": []int64{2}}).
			WillReturnError(errors.New("timeout"))

		_, err := repo.FindByIDs(ctx, []int64{2})
		assert.ErrorIs(t, err, custom_errors.ErrDatabaseQuery)
	})
}

func TestTagRepository_FindByPosts(t *testing.T) {
	ctx := context.Background()

	t.Run("Groups by post in one query", func(t *testing.T) {
		mock, repo := setup(t)
		mock.ExpectQuery("WHERE pt.post_id = ANY").
			WithArgs(pgx.NamedArgs{"post_ids": []int64{1, 2, 3}}).
			WillReturnRows(pgxmock.NewRows([]string{"post_id", "id", "name", "slug"}).
				AddRow(int64(1), int64(2), "SQL", "sql").
				AddRow(int64(1), int64(5), "Web", "web").
				AddRow(int64(3), int64(2), "SQL", "sql"))

		got, err := repo.FindByPosts(ctx, []int64{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 5}, model.TagIDs(got[1]))
		assert.Equal(t, []int64{2}, model.TagIDs(got[3]))
		assert.NotContains(t, got, int64(2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No posts", func(t *testing.T) {
		mock, repo := setup(t)
		got, err := repo.FindByPosts(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTagRepository_SyncPostTags(t *testing.T) {
	ctx := context.Background()

	t.Run("Unchanged set writes nothing", func(t *testing.T) {
		mock, repo := setup(t)
		mock.ExpectQuery("SELECT tag_id FROM post_tag").
			WithArgs(pgx.NamedArgs{"post_id": int64(1)}).
			WillReturnRows(pgxmock.NewRows([]string{"tag_id"}).AddRow(int64(5)).AddRow(int64(2)))

		require.NoError(t, repo.SyncPostTags(ctx, 1, []int64{2, 5, 5}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Reading current tags fails", func(t *testing.T) {
		mock, repo := setup(t)
		mock.ExpectQuery("SELECT tag_id FROM post_tag").
			WithArgs(pgx.NamedArgs{"post_id": int64(1)}).
			WillReturnError(errors.New("connection reset"))

		err := repo.SyncPostTags(ctx, 1, []int64{2})
		assert.ErrorIs(t, err, custom_errors.ErrTagSyncFailed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Removes dropped and inserts new in one batch", func(t *testing.T) {
		mock, repo := setup(t)
		mock.ExpectQuery("SELECT tag_id FROM post_tag").
			WithArgs(pgx.NamedArgs{"post_id": int64(1)}).
			WillReturnRows(pgxmock.NewRows([]string{"tag_id"}).AddRow(int64(2)).AddRow(int64(5)))
		batch := mock.ExpectBatch()
		batch.ExpectExec("DELETE FROM post_tag").
			WithArgs(pgx.NamedArgs{"post_id": int64(1), "tag_ids": []int64{2}}).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		batch.ExpectExec("INSERT INTO post_tag").
			WithArgs(pgx.NamedArgs{"post_id": int64(1), "tag_id": int64(9)}).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.SyncPostTags(ctx, 1, []int64{5, 9}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing tag maps to not found", func(t *testing.T) {
		mock, repo := setup(t)
		mock.ExpectQuery("SELECT tag_id FROM post_tag").
			WithArgs(pgx.NamedArgs{"post_id": int64(1)}).
			WillReturnRows(pgxmock.NewRows([]string{"tag_id"}).AddRow(int64(2)).AddRow(int64(5)))
		batch := mock.ExpectBatch()
		batch.ExpectExec("DELETE FROM post_tag").
			WithArgs(pgx.NamedArgs{"post_id": int64(1), "tag_ids": []int64{2}}).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		batch.ExpectExec("INSERT INTO post_tag").
			WithArgs(pgx.NamedArgs{"post_id": int64(1), "tag_id": int64(9)}).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "post_tag_tag_id_fkey"})

		err := repo.SyncPostTags(ctx, 1, []int64{5, 9})
		assert.ErrorIs(t, err, custom_errors.ErrTagNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Other batch failure", func(t *testing.T) {
		mock, repo := setup(t)
		mock.ExpectQuery("SELECT tag_id FROM post_tag").
			WithArgs(pgx.NamedArgs{"post_id": int64(1)}).
			WillReturnRows(pgxmock.NewRows([]string{"tag_id"}))
		batch := mock.ExpectBatch()
		batch.ExpectExec("INSERT INTO post_tag").
			WithArgs(pgx.NamedArgs{"post_id": int64(1), "tag_id": int64(9)}).
			WillReturnError(errors.New("connection reset"))

		err := repo.SyncPostTags(ctx, 1, []int64{9})
		assert.ErrorIs(t, err, custom_errors.ErrTagSyncFailed)
	})
}

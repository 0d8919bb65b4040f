package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "blog-post-service/internal/domain/models"
	"blog-post-service/internal/infrastructure/logger"
	"blog-post-service/internal/infrastructure/outbound/metrics/prometheus"
	"blog-post-service/internal/infrastructure/outbound/repository/postgres"
)

func TestPostgresUnitOfWork(t *testing.T) {
	ctx := context.Background()
	log := logger.New("test")
	metrics := prometheus.NewPrometheusMetricsProvider()

	t.Run("Writes run inside the transaction", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO posts").
			WithArgs(int64(7), (*int64)(nil), "T", "c", "t", false, (*string)(nil), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "category_id", "title", "content", "slug", "published", "image", "created_at", "updated_at"}).
				AddRow(int64(1), int64(7), (*int64)(nil), "T", "c", "t", false, (*string)(nil), now, now))
		mock.ExpectQuery("SELECT tag_id FROM post_tag").
			WithArgs(pgx.NamedArgs{"post_id": int64(1)}).
			WillReturnRows(pgxmock.NewRows([]string{"tag_id"}))
		mock.ExpectCommit()

		tx, err := postgres.NewPostgresUOW(mock, log, metrics).Begin(ctx)
		require.NoError(t, err)

		post, err := tx.PostRepository().Create(ctx, &model.Post{UserID: 7, Title: "T", Content: "c", Slug: "t"})
		require.NoError(t, err)
		require.NoError(t, tx.TagRepository().SyncPostTags(ctx, post.ID, nil))
		require.NoError(t, tx.Commit(ctx))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		tx, err := postgres.NewPostgresUOW(mock, log, metrics).Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Rollback(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Begin failure", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		tx, err := postgres.NewPostgresUOW(mock, log, metrics).Begin(ctx)
		assert.Error(t, err)
		assert.Nil(t, tx)
	})
}

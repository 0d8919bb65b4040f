package category_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"
	"blog-post-service/internal/infrastructure/outbound/repository/postgres/db"
)

type CategoryRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewCategoryRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *CategoryRepository {
	return &CategoryRepository{db: db, log: log, metrics: metrics}
}

func (c *CategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	start := time.Now()
	rows, err := c.db.Query(ctx, `SELECT id, name, slug FROM categories ORDER BY id`)
	if err != nil {
		c.metrics.IncrementDatabaseQueries("category_list", false)
		c.metrics.RecordDatabaseQueryDuration("category_list", time.Since(start))
		c.log.Error("Error listing categories", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByPos[model.Category])
	if err != nil {
		c.metrics.IncrementDatabaseQueries("category_list", false)
		c.metrics.RecordDatabaseQueryDuration("category_list", time.Since(start))
		c.log.Error("Error scanning categories", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	c.metrics.IncrementDatabaseQueries("category_list", true)
	c.metrics.RecordDatabaseQueryDuration("category_list", time.Since(start))
	return categories, nil
}

func (c *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	start := time.Now()
	var category model.Category
	err := c.db.QueryRow(ctx, `SELECT id, name, slug FROM categories WHERE id = @id`, pgx.NamedArgs{"id": id}).
		Scan(&category.ID, &category.Name, &category.Slug)
	if err != nil {
		c.metrics.IncrementDatabaseQueries("category_get_by_id", false)
		c.metrics.RecordDatabaseQueryDuration("category_get_by_id", time.Since(start))
		if errors.Is(err, pgx.ErrNoRows) {
			c.log.Debug("Category not found", slog.Int64("id", id))
			return nil, custom_errors.ErrCategoryNotFound
		}
		c.log.Error("Error getting category", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	c.metrics.IncrementDatabaseQueries("category_get_by_id", true)
	c.metrics.RecordDatabaseQueryDuration("category_get_by_id", time.Since(start))
	return &category, nil
}

package user_repository_postgres

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

type UserRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewUserRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *UserRepository {
	return &UserRepository{db: db, log: log, metrics: metrics}
}

func (u *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	start := time.Now()
	var user model.User
	err := u.db.QueryRow(ctx, `SELECT id, name, email FROM users WHERE id = @id`, pgx.NamedArgs{"id": id}).
		Scan(&user.ID, &user.Name, &user.Email)
	if err != nil {
		u.metrics.IncrementDatabaseQueries("user_get_by_id", false)
		u.metrics.RecordDatabaseQueryDuration("user_get_by_id", time.Since(start))
		if errors.Is(err, pgx.ErrNoRows) {
			u.log.Debug("User not found", slog.Int64("id", id))
			return nil, custom_errors.ErrUserNotFound
		}
		u.log.Error("Error getting user", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	u.metrics.IncrementDatabaseQueries("user_get_by_id", true)
	u.metrics.RecordDatabaseQueryDuration("user_get_by_id", time.Since(start))
	return &user, nil
}

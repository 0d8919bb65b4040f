package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	ports "blog-post-service/internal/domain/ports/output"
	post_repository "blog-post-service/internal/domain/ports/output/post"
	tag_repository "blog-post-service/internal/domain/ports/output/tag"
	post_repository_postgres "blog-post-service/internal/infrastructure/outbound/repository/post/postgres"
	tag_repository_postgres "blog-post-service/internal/infrastructure/outbound/repository/tag/postgres"
)

//go:generate mockery --name UnitOfWork --dir . --output ../../../../../mocks/postgres --outpkg postgres_mock --filename UnitOfWork.go
type UnitOfWork interface {
	Begin(ctx context.Context) (Transaction, error)
}

//go:generate mockery --name Transaction --dir . --output ../../../../../mocks/postgres --outpkg postgres_mock --filename Transaction.go
type Transaction interface {
	PostRepository() post_repository.Repository
	TagRepository() tag_repository.Repository
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxBeginner is satisfied by *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresUnitOfWork struct {
	pool    TxBeginner
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewPostgresUOW(pool TxBeginner, log ports.Logger, metrics ports.MetricsProvider) UnitOfWork {
	return &PostgresUnitOfWork{pool: pool, log: log, metrics: metrics}
}

func (uow *PostgresUnitOfWork) Begin(ctx context.Context) (Transaction, error) {
	tx, err := uow.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	return &PostgresTransaction{tx: tx, log: uow.log, metrics: uow.metrics}, nil
}

type PostgresTransaction struct {
	tx      pgx.Tx
	log     ports.Logger
	metrics ports.MetricsProvider
}

func (t *PostgresTransaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback is safe to call after Commit.
func (t *PostgresTransaction) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

func (t *PostgresTransaction) PostRepository() post_repository.Repository {
	return post_repository_postgres.NewPostRepository(t.tx, t.log, t.metrics)
}

func (t *PostgresTransaction) TagRepository() tag_repository.Repository {
	return tag_repository_postgres.NewTagRepository(t.tx, t.log, t.metrics)
}

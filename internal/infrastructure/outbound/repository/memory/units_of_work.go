package memory

import (
	"context"
	"sync"

	ports "blog-post-service/internal/domain/ports/output"
	post_repository "blog-post-service/internal/domain/ports/output/post"
	tag_repository "blog-post-service/internal/domain/ports/output/tag"
	"blog-post-service/internal/infrastructure/outbound/repository/postgres"
)

// txLog collects undo steps for writes made through a transaction.
type txLog struct {
	mu   sync.Mutex
	undo []func()
	done bool
}

func (l *txLog) record(fn func()) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.undo = append(l.undo, fn)
}

type UnitOfWork struct {
	store *Store
	log   ports.Logger
}

func NewUnitOfWork(store *Store, log ports.Logger) postgres.UnitOfWork {
	return &UnitOfWork{store: store, log: log}
}

func (u *UnitOfWork) Begin(ctx context.Context) (postgres.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Transaction{store: u.store, log: u.log, txLog: &txLog{}}, nil
}

type Transaction struct {
	store *Store
	log   ports.Logger
	txLog *txLog
}

func (t *Transaction) PostRepository() post_repository.Repository {
	return &PostRepository{store: t.store, log: t.log, tx: t.txLog}
}

func (t *Transaction) TagRepository() tag_repository.Repository {
	return &TagRepository{store: t.store, log: t.log, tx: t.txLog}
}

func (t *Transaction) Commit(ctx context.Context) error {
	t.txLog.mu.Lock()
	defer t.txLog.mu.Unlock()
	t.txLog.done = true
	t.txLog.undo = nil
	return nil
}

func (t *Transaction) Rollback(ctx context.Context) error {
	t.txLog.mu.Lock()
	undo := t.txLog.undo
	done := t.txLog.done
	t.txLog.undo = nil
	t.txLog.done = true
	t.txLog.mu.Unlock()
	if done {
		return nil
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := len(undo) - 1; i >= 0; i-- {
		undo[i]()
	}
	return nil
}

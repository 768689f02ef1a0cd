package uow

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

type transaction struct {
	repositories map[RepositoryName]RepositoryFactory
	tx           pgx.Tx
}

func newTransaction(tx pgx.Tx, repositories map[RepositoryName]RepositoryFactory) *transaction {
	return &transaction{
		repositories: repositories,
		tx:           tx,
	}
}

// Get возвращает репозиторий поверх транзакции или ошибку ErrRepositoryNotRegistered.
func (t *transaction) Get(name RepositoryName) (Repository, error) {
	if factory, ok := t.repositories[name]; ok {
		return factory(t.tx), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrRepositoryNotRegistered, name)
}

// GetAs возвращает репозиторий транзакции по имени name приведенный к типу T.
func GetAs[T any](t TX, name RepositoryName) (T, error) {
	repo, err := t.Get(name)
	if err != nil {
		var zero T
		return zero, err //nolint:wrapcheck
	}
	return castRepository[T](repo, name)
}

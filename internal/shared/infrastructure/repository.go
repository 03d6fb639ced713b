package infrastructure

import (
	"context"
	"database/sql"

	"otpreport/database"
)

// UnitOfWork gère les transactions pour les opérations d'écriture
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// DBUnitOfWork implémentation de UnitOfWork avec sql.DB
type DBUnitOfWork struct {
	db *sql.DB
}

// NewUnitOfWork crée une nouvelle instance de UnitOfWork
func NewUnitOfWork(h *database.Handle) UnitOfWork {
	return &DBUnitOfWork{db: h.DB}
}

// Execute exécute fn dans une transaction: commit si nil, rollback sinon (y compris panic)
func (uow *DBUnitOfWork) Execute(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := uow.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return rbErr
		}
		return err
	}

	return tx.Commit()
}

type executor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// BaseRepository structure de base pour les repositories.
// Les requêtes sont écrites avec $1..$n et réécrites selon le dialecte.
type BaseRepository struct {
	db      *sql.DB
	tx      *sql.Tx
	ctx     context.Context
	dialect database.Dialect
}

// NewBaseRepository crée un nouveau repository de base
func NewBaseRepository(h *database.Handle) BaseRepository {
	return BaseRepository{
		db:      h.DB,
		ctx:     context.Background(),
		dialect: h.Dialect,
	}
}

// WithContext retourne une copie liée à ctx
func (r BaseRepository) WithContext(ctx context.Context) BaseRepository {
	r.ctx = ctx
	return r
}

// WithTx retourne une copie qui exécute dans tx
func (r BaseRepository) WithTx(tx *sql.Tx) BaseRepository {
	r.tx = tx
	return r
}

// Executor retourne l'exécuteur approprié (DB ou Tx)
func (r *BaseRepository) Executor() executor {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// Query exécute une requête de lecture
func (r *BaseRepository) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return r.Executor().QueryContext(r.ctx, r.dialect.Rebind(query), args...)
}

// QueryRow exécute une requête de lecture pour une seule ligne
func (r *BaseRepository) QueryRow(query string, args ...interface{}) *sql.Row {
	return r.Executor().QueryRowContext(r.ctx, r.dialect.Rebind(query), args...)
}

// Exec exécute une requête d'écriture
func (r *BaseRepository) Exec(query string, args ...interface{}) (sql.Result, error) {
	return r.Executor().ExecContext(r.ctx, r.dialect.Rebind(query), args...)
}

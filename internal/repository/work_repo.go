package repository

import (
	"context"
	"errors"
	"fmt"

	"settlement-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WorkRepository is the read-only view of the catalog the settlement
// engine needs: author and listed price.
type WorkRepository interface {
	GetByID(ctx context.Context, tx pgx.Tx, id int64) (*domain.Work, error)
}

type workRepo struct {
	db *pgxpool.Pool
}

func NewWorkRepo(db *pgxpool.Pool) WorkRepository {
	return &workRepo{db: db}
}

func (r *workRepo) GetByID(ctx context.Context, tx pgx.Tx, id int64) (*domain.Work, error) {
	const query = `SELECT id, author_id, price FROM works WHERE id = $1`

	var row pgx.Row
	if tx != nil {
		row = tx.QueryRow(ctx, query, id)
	} else {
		row = r.db.QueryRow(ctx, query, id)
	}

	var w domain.Work
	if err := row.Scan(&w.ID, &w.AuthorID, &w.Price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkNotFound
		}
		return nil, fmt.Errorf("failed to get work: %w", err)
	}
	return &w, nil
}

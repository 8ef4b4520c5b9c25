package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Get(ctx context.Context, userID string) (Document, error)
	Save(ctx context.Context, userID string, doc Document) error
	Clear(ctx context.Context, userID string) error
}

// PGRepo persists one JSONB cart document per user. Writes are plain
// last-write-wins upserts: there is no version token, so concurrent
// sessions of the same user can overwrite each other.
type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Get(ctx context.Context, userID string) (Document, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var raw []byte
	err := r.db.QueryRow(ctx, `
		SELECT data FROM carts WHERE user_id=$1
	`, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		// A user without a cart row simply has an empty cart.
		return Document{}, nil
	}
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

func (r *PGRepo) Save(ctx context.Context, userID string, doc Document) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO carts (user_id, data, updated_at)
		VALUES ($1,$2,NOW())
		ON CONFLICT (user_id) DO UPDATE SET data=EXCLUDED.data, updated_at=NOW()
	`, userID, raw)
	return err
}

func (r *PGRepo) Clear(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM carts WHERE user_id=$1`, userID)
	return err
}

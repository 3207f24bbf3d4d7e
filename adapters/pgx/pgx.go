// Package pgx backs the key-value storage port with a Postgres table. Each
// storage key maps to one row holding a jsonb document, so the collections
// stay inspectable with plain SQL while the store above stays unchanged.
package pgx

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Syed-Zahaab-Hussain/e-ticketing/core"
)

type Adapter struct {
	pool *pgxpool.Pool
}

var _ core.KVStore = (*Adapter)(nil)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		pool: pool,
	}
}

// Setup creates the backing table if it does not exist yet.
func (a *Adapter) Setup(ctx context.Context) error {
	q := `CREATE TABLE IF NOT EXISTS public.eticket_kv (
		key text PRIMARY KEY,
		value jsonb NOT NULL,
		updated_at timestamptz NOT NULL DEFAULT now()
	)`
	_, err := a.pool.Exec(ctx, q)
	return err
}

func (a *Adapter) Load(key string) ([]byte, error) {
	ctx := context.Background()
	q := `SELECT value FROM public.eticket_kv WHERE key = $1`

	var value []byte
	err := a.pool.QueryRow(ctx, q, key).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

func (a *Adapter) Store(key string, value []byte) error {
	ctx := context.Background()
	q := `INSERT INTO public.eticket_kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	_, err := a.pool.Exec(ctx, q, key, value)
	return err
}

func (a *Adapter) Delete(key string) error {
	ctx := context.Background()
	_, err := a.pool.Exec(ctx, `DELETE FROM public.eticket_kv WHERE key = $1`, key)
	return err
}

func (a *Adapter) Reset() error {
	ctx := context.Background()
	_, err := a.pool.Exec(ctx, `TRUNCATE public.eticket_kv`)
	return err
}

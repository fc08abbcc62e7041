package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is a Registry backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the files table if it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS files (
			id          TEXT PRIMARY KEY,
			filename    TEXT NOT NULL,
			file_type   TEXT NOT NULL,
			size        BIGINT NOT NULL,
			uploaded_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("migrate files table: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, id string) (FileInfo, error) {
	var info FileInfo
	err := p.pool.QueryRow(ctx,
		`SELECT id, filename, file_type, size, uploaded_at FROM files WHERE id = $1`, id,
	).Scan(&info.ID, &info.Filename, &info.Format, &info.Size, &info.UploadedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return FileInfo{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return FileInfo{}, fmt.Errorf("get file %s: %w", id, err)
	}
	return info, nil
}

func (p *Postgres) Put(ctx context.Context, info FileInfo) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO files (id, filename, file_type, size, uploaded_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET filename = EXCLUDED.filename,
		    file_type = EXCLUDED.file_type,
		    size = EXCLUDED.size,
		    uploaded_at = EXCLUDED.uploaded_at`,
		info.ID, info.Filename, info.Format, info.Size, info.UploadedAt)
	if err != nil {
		return fmt.Errorf("put file %s: %w", info.ID, err)
	}
	return nil
}

func (p *Postgres) List(ctx context.Context) ([]FileInfo, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, filename, file_type, size, uploaded_at FROM files ORDER BY uploaded_at`)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()
	var out []FileInfo
	for rows.Next() {
		var info FileInfo
		if err := rows.Scan(&info.ID, &info.Filename, &info.Format, &info.Size, &info.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

func (p *Postgres) Delete(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete file %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bestemiy/inkstudio"
)

func boolToInt(b bool) int16 {
	if b {
		return 1
	}
	return 0
}

// TattooRepo implements inkstudio.TattooRepo on PostgreSQL.
type TattooRepo struct {
	pool *pgxpool.Pool
}

func NewTattooRepo(pool *pgxpool.Pool) *TattooRepo {
	return &TattooRepo{pool: pool}
}

const tattooColumns = `id, title, description, category, image_url, featured, created_at, updated_at`

func scanTattoo(row pgx.Row) (inkstudio.Tattoo, error) {
	var t inkstudio.Tattoo
	var featured int16

	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Category, &t.ImageURL, &featured, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return inkstudio.Tattoo{}, err
	}

	t.Featured = featured != 0
	return t, nil
}

func (r *TattooRepo) Get(ctx context.Context, id int64) (inkstudio.Tattoo, error) {
	query := `SELECT ` + tattooColumns + ` FROM tattoos WHERE id = $1`

	t, err := scanTattoo(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return inkstudio.Tattoo{}, inkstudio.ErrNotFound
		}
		return inkstudio.Tattoo{}, fmt.Errorf("get: %w", err)
	}

	return t, nil
}

func (r *TattooRepo) List(ctx context.Context, f inkstudio.TattooFilter) ([]inkstudio.Tattoo, error) {
	query := `SELECT ` + tattooColumns + ` FROM tattoos`

	var conds []string
	var args []any
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Featured != nil {
		args = append(args, boolToInt(*f.Featured))
		conds = append(conds, fmt.Sprintf("featured = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()

	items := make([]inkstudio.Tattoo, 0)
	for rows.Next() {
		t, scanErr := scanTattoo(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("list: %w", scanErr)
		}
		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list: rows: %w", err)
	}

	return items, nil
}

func (r *TattooRepo) Create(ctx context.Context, nt inkstudio.NewTattoo) (inkstudio.Tattoo, error) {
	query := `INSERT INTO tattoos (title, description, category, image_url, featured)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + tattooColumns

	t, err := scanTattoo(r.pool.QueryRow(ctx, query,
		nt.Title, nt.Description, nt.Category, nt.ImageURL, boolToInt(nt.Featured),
	))
	if err != nil {
		return inkstudio.Tattoo{}, fmt.Errorf("create: %w", err)
	}

	return t, nil
}

func (r *TattooRepo) Update(ctx context.Context, id int64, patch inkstudio.TattooPatch) (inkstudio.Tattoo, error) {
	// updated_at is always refreshed, even for an empty patch.
	sets := []string{"updated_at = NOW()"}
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	if patch.Featured != nil {
		add("featured", boolToInt(*patch.Featured))
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE tattoos SET %s WHERE id = $%d RETURNING `+tattooColumns,
		strings.Join(sets, ", "), len(args))

	t, err := scanTattoo(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return inkstudio.Tattoo{}, inkstudio.ErrNotFound
		}
		return inkstudio.Tattoo{}, fmt.Errorf("update: %w", err)
	}

	return t, nil
}

func (r *TattooRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM tattoos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete: %w", inkstudio.ErrNotFound)
	}

	return nil
}

// ContentRepo implements inkstudio.ContentRepo on PostgreSQL.
type ContentRepo struct {
	pool *pgxpool.Pool
}

func NewContentRepo(pool *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{pool: pool}
}

func (r *ContentRepo) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value FROM site_content`)
	if err != nil {
		return nil, fmt.Errorf("all: %w", err)
	}
	defer rows.Close()

	content := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("all: scan: %w", err)
		}
		content[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("all: rows: %w", err)
	}

	return content, nil
}

func (r *ContentRepo) Upsert(ctx context.Context, key, value string) (inkstudio.SiteContentEntry, error) {
	query := `INSERT INTO site_content (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING key, value, updated_at`

	var entry inkstudio.SiteContentEntry
	err := r.pool.QueryRow(ctx, query, key, value).Scan(&entry.Key, &entry.Value, &entry.UpdatedAt)
	if err != nil {
		return inkstudio.SiteContentEntry{}, fmt.Errorf("upsert: %w", err)
	}

	return entry, nil
}

// TestimonialRepo implements inkstudio.TestimonialRepo on PostgreSQL.
type TestimonialRepo struct {
	pool *pgxpool.Pool
}

func NewTestimonialRepo(pool *pgxpool.Pool) *TestimonialRepo {
	return &TestimonialRepo{pool: pool}
}

func (r *TestimonialRepo) List(ctx context.Context) ([]inkstudio.Testimonial, error) {
	query := `SELECT id, name, text, created_at FROM testimonials ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()

	items := make([]inkstudio.Testimonial, 0)
	for rows.Next() {
		var t inkstudio.Testimonial
		if err := rows.Scan(&t.ID, &t.Name, &t.Text, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("list: scan: %w", err)
		}
		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list: rows: %w", err)
	}

	return items, nil
}

func (r *TestimonialRepo) Create(ctx context.Context, nt inkstudio.NewTestimonial) (inkstudio.Testimonial, error) {
	query := `INSERT INTO testimonials (name, text)
		VALUES ($1, $2)
		RETURNING id, name, text, created_at`

	var t inkstudio.Testimonial
	err := r.pool.QueryRow(ctx, query, nt.Name, nt.Text).Scan(&t.ID, &t.Name, &t.Text, &t.CreatedAt)
	if err != nil {
		return inkstudio.Testimonial{}, fmt.Errorf("create: %w", err)
	}

	return t, nil
}

func (r *TestimonialRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete: %w", inkstudio.ErrNotFound)
	}

	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bestemiy/inkstudio"
)

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func parseTime(op, field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: parse %s: %w", op, field, err)
	}
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// TattooRepo implements inkstudio.TattooRepo on SQLite.
type TattooRepo struct {
	db *sql.DB
}

func NewTattooRepo(db *sql.DB) *TattooRepo {
	return &TattooRepo{db: db}
}

const tattooColumns = `id, title, description, category, image_url, featured, created_at, updated_at`

func scanTattoo(op string, row interface{ Scan(...any) error }) (inkstudio.Tattoo, error) {
	var t inkstudio.Tattoo
	var description sql.NullString
	var featured int
	var createdAt, updatedAt string

	err := row.Scan(&t.ID, &t.Title, &description, &t.Category, &t.ImageURL, &featured, &createdAt, &updatedAt)
	if err != nil {
		return inkstudio.Tattoo{}, err
	}

	if description.Valid {
		t.Description = &description.String
	}
	t.Featured = featured != 0

	if t.CreatedAt, err = parseTime(op, "created_at", createdAt); err != nil {
		return inkstudio.Tattoo{}, err
	}
	if t.UpdatedAt, err = parseTime(op, "updated_at", updatedAt); err != nil {
		return inkstudio.Tattoo{}, err
	}

	return t, nil
}

func (r *TattooRepo) Get(ctx context.Context, id int64) (inkstudio.Tattoo, error) {
	query := `SELECT ` + tattooColumns + ` FROM tattoos WHERE id = ?`

	t, err := scanTattoo("get", r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.Featured != nil {
		conds = append(conds, "featured = ?")
		args = append(args, boolToInt(*f.Featured))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]inkstudio.Tattoo, 0)
	for rows.Next() {
		t, scanErr := scanTattoo("list", rows)
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
	ts := now()
	query := `INSERT INTO tattoos (title, description, category, image_url, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	var description sql.NullString
	if nt.Description != nil {
		description = sql.NullString{String: *nt.Description, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, query,
		nt.Title, description, nt.Category, nt.ImageURL, boolToInt(nt.Featured), ts, ts,
	)
	if err != nil {
		return inkstudio.Tattoo{}, fmt.Errorf("create: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return inkstudio.Tattoo{}, fmt.Errorf("create: last insert id: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *TattooRepo) Update(ctx context.Context, id int64, patch inkstudio.TattooPatch) (inkstudio.Tattoo, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return inkstudio.Tattoo{}, err
	}

	// updated_at is always refreshed, even for an empty patch.
	sets := []string{"updated_at = ?"}
	args := []any{now()}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
	}
	if patch.ImageURL != nil {
		sets = append(sets, "image_url = ?")
		args = append(args, *patch.ImageURL)
	}
	if patch.Featured != nil {
		sets = append(sets, "featured = ?")
		args = append(args, boolToInt(*patch.Featured))
	}

	query := "UPDATE tattoos SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return inkstudio.Tattoo{}, fmt.Errorf("update: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *TattooRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tattoos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete: %w", inkstudio.ErrNotFound)
	}

	return nil
}

// ContentRepo implements inkstudio.ContentRepo on SQLite.
type ContentRepo struct {
	db *sql.DB
}

func NewContentRepo(db *sql.DB) *ContentRepo {
	return &ContentRepo{db: db}
}

func (r *ContentRepo) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM site_content`)
	if err != nil {
		return nil, fmt.Errorf("all: %w", err)
	}
	defer func() { _ = rows.Close() }()

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
	ts := now()
	query := `INSERT INTO site_content (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, query, key, value, ts); err != nil {
		return inkstudio.SiteContentEntry{}, fmt.Errorf("upsert: %w", err)
	}

	updatedAt, err := parseTime("upsert", "updated_at", ts)
	if err != nil {
		return inkstudio.SiteContentEntry{}, err
	}

	return inkstudio.SiteContentEntry{Key: key, Value: value, UpdatedAt: updatedAt}, nil
}

// TestimonialRepo implements inkstudio.TestimonialRepo on SQLite.
type TestimonialRepo struct {
	db *sql.DB
}

func NewTestimonialRepo(db *sql.DB) *TestimonialRepo {
	return &TestimonialRepo{db: db}
}

func (r *TestimonialRepo) List(ctx context.Context) ([]inkstudio.Testimonial, error) {
	query := `SELECT id, name, text, created_at FROM testimonials ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]inkstudio.Testimonial, 0)
	for rows.Next() {
		var t inkstudio.Testimonial
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Name, &t.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("list: scan: %w", err)
		}
		if t.CreatedAt, err = parseTime("list", "created_at", createdAt); err != nil {
			return nil, err
		}
		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list: rows: %w", err)
	}

	return items, nil
}

func (r *TestimonialRepo) Create(ctx context.Context, nt inkstudio.NewTestimonial) (inkstudio.Testimonial, error) {
	ts := now()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO testimonials (name, text, created_at) VALUES (?, ?, ?)`,
		nt.Name, nt.Text, ts,
	)
	if err != nil {
		return inkstudio.Testimonial{}, fmt.Errorf("create: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return inkstudio.Testimonial{}, fmt.Errorf("create: last insert id: %w", err)
	}

	createdAt, err := parseTime("create", "created_at", ts)
	if err != nil {
		return inkstudio.Testimonial{}, err
	}

	return inkstudio.Testimonial{ID: id, Name: nt.Name, Text: nt.Text, CreatedAt: createdAt}, nil
}

func (r *TestimonialRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete: %w", inkstudio.ErrNotFound)
	}

	return nil
}

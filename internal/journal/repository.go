package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Entry is one observation in the grow journal.
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Phase     string    `json:"phase"`
	PhotoPath string    `json:"photo_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository is a database-backed repository for journal entries.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save inserts or updates a journal entry.
func (r *Repository) Save(ctx context.Context, e Entry) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO journal_entries (id, title, body, phase, photo_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			body = excluded.body,
			phase = excluded.phase,
			photo_path = excluded.photo_path`,
		e.ID, e.Title, e.Body, e.Phase, e.PhotoPath, createdAt)
	if err != nil {
		return fmt.Errorf("failed to save journal entry %s: %w", e.ID, err)
	}
	return nil
}

// Get retrieves an entry by ID. Returns nil when no entry matches.
func (r *Repository) Get(ctx context.Context, id string) (*Entry, error) {
	var e Entry
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, body, phase, photo_path, created_at
		FROM journal_entries WHERE id = ?`, id).
		Scan(&e.ID, &e.Title, &e.Body, &e.Phase, &e.PhotoPath, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Entry not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}
	return &e, nil
}

// List retrieves the most recent entries, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, body, phase, photo_path, created_at
		FROM journal_entries ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Title, &e.Body, &e.Phase, &e.PhotoPath, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes an entry by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", id, err)
	}
	return nil
}

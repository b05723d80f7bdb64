package plan

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"growdash/internal/dosing"
)

// StoredPlan is a feeding plan with its storage metadata.
type StoredPlan struct {
	ID        string
	Cultivar  string
	Substrate string
	Plan      dosing.ManagedPlan
	UpdatedAt time.Time
}

// Repository is a database-backed repository for feeding plans.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save inserts or updates a plan.
func (r *Repository) Save(ctx context.Context, p StoredPlan) error {
	data, err := EncodePlan(p.Plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO plans (id, cultivar, substrate, data, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			cultivar = excluded.cultivar,
			substrate = excluded.substrate,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		p.ID, p.Cultivar, p.Substrate, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save plan %s: %w", p.ID, err)
	}
	return nil
}

// Get retrieves a plan by its ID. Returns nil when no plan matches.
func (r *Repository) Get(ctx context.Context, id string) (*StoredPlan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, cultivar, substrate, data, updated_at FROM plans WHERE id = ?`, id)
	return scanPlan(row)
}

// Find retrieves the plan for a cultivar/substrate pair, preferring the
// most recently updated one. Returns nil when no plan matches.
func (r *Repository) Find(ctx context.Context, cultivar, substrate string) (*StoredPlan, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, cultivar, substrate, data, updated_at FROM plans
		WHERE cultivar = ? AND substrate = ?
		ORDER BY updated_at DESC LIMIT 1`, cultivar, substrate)
	return scanPlan(row)
}

// List retrieves all stored plans.
func (r *Repository) List(ctx context.Context) ([]StoredPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, cultivar, substrate, data, updated_at FROM plans ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []StoredPlan
	for rows.Next() {
		var (
			p    StoredPlan
			data string
		)
		if err := rows.Scan(&p.ID, &p.Cultivar, &p.Substrate, &data, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		decoded, err := DecodePlan([]byte(data))
		if err != nil {
			fmt.Printf("Warning: failed to decode plan JSON for ID %s: %v\n", p.ID, err)
			continue
		}
		p.Plan = decoded
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Delete removes a plan by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete plan %s: %w", id, err)
	}
	return nil
}

// EnsureDefault seeds the built-in default plan when the store is empty.
func (r *Repository) EnsureDefault(ctx context.Context) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plans`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count plans: %w", err)
	}
	if count > 0 {
		return nil
	}
	return r.Save(ctx, StoredPlan{
		ID:        "default",
		Cultivar:  "generic",
		Substrate: "soil",
		Plan:      DefaultPlan(),
	})
}

func scanPlan(row *sql.Row) (*StoredPlan, error) {
	var (
		p    StoredPlan
		data string
	)
	err := row.Scan(&p.ID, &p.Cultivar, &p.Substrate, &data, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Plan not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	decoded, err := DecodePlan([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode plan JSON: %w", err)
	}
	p.Plan = decoded
	return &p, nil
}

package sensors

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Reading is one sensor measurement pulled from Home Assistant.
type Reading struct {
	EntityID   string
	Metric     string
	Value      float64
	Unit       string
	RecordedAt time.Time
}

// Store handles persistence of sensor readings to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a reading to the database.
func (s *Store) Record(ctx context.Context, r Reading) error {
	ts := r.RecordedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sensor_readings (entity_id, metric, value, unit, recorded_at)
		VALUES (?, ?, ?, ?, ?)`,
		r.EntityID, r.Metric, r.Value, r.Unit, ts)
	if err != nil {
		return fmt.Errorf("failed to record reading for %s: %w", r.EntityID, err)
	}
	return nil
}

// Latest returns the most recent reading for an entity. Returns nil when
// the entity has no readings.
func (s *Store) Latest(ctx context.Context, entityID string) (*Reading, error) {
	var r Reading
	err := s.db.QueryRowContext(ctx, `
		SELECT entity_id, metric, value, unit, recorded_at FROM sensor_readings
		WHERE entity_id = ? ORDER BY recorded_at DESC LIMIT 1`, entityID).
		Scan(&r.EntityID, &r.Metric, &r.Value, &r.Unit, &r.RecordedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest reading: %w", err)
	}
	return &r, nil
}

// DailyAverage represents the mean value of a metric for a single day.
type DailyAverage struct {
	Date    string
	Metric  string
	Average float64
	Count   int
}

// GetDailyAverages retrieves per-day averages of a metric for the last N days.
func (s *Store) GetDailyAverages(ctx context.Context, metric string, days int) ([]DailyAverage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(recorded_at) AS day, AVG(value), COUNT(*)
		FROM sensor_readings
		WHERE metric = ? AND recorded_at >= ?
		GROUP BY day ORDER BY day`, metric, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily averages: %w", err)
	}
	defer rows.Close()

	var results []DailyAverage
	for rows.Next() {
		u := DailyAverage{Metric: metric}
		if err := rows.Scan(&u.Date, &u.Average, &u.Count); err != nil {
			return nil, fmt.Errorf("failed to scan daily average: %w", err)
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup deletes readings older than the given number of days and returns
// the number of rows removed.
func (s *Store) Cleanup(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sensor_readings WHERE recorded_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up readings: %w", err)
	}
	return res.RowsAffected()
}

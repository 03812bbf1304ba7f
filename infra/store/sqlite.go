// Package store provides persistent decision store backends.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/steelworks-io/uplift/core/plan/logging"
)

// SQLiteStore persists decision records in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS decisions (
        plan_id TEXT PRIMARY KEY,
        ts INTEGER NOT NULL,
        strategy TEXT NOT NULL,
        feasible INTEGER NOT NULL,
        required_tonnes INTEGER NOT NULL,
        achieved_tonnes INTEGER NOT NULL,
        capex_usd INTEGER NOT NULL,
        payback_months REAL NOT NULL,
        plant_ids TEXT,
        breaches TEXT,
        allocations TEXT
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Append inserts or replaces the decision record.
func (s *SQLiteStore) Append(ctx context.Context, rec logging.Record) error {
	plantIDs, err := json.Marshal(rec.PlantIDs)
	if err != nil {
		return err
	}
	breaches, err := json.Marshal(rec.Breaches)
	if err != nil {
		return err
	}
	allocations, err := json.Marshal(rec.Allocations)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO decisions
        (plan_id, ts, strategy, feasible, required_tonnes, achieved_tonnes, capex_usd, payback_months, plant_ids, breaches, allocations)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.PlanID, rec.Timestamp.UnixMilli(), rec.Strategy, boolToInt(rec.Feasible),
		rec.RequiredIncrease, rec.AchievedIncrease, rec.TotalCapexUSD, rec.PaybackMonths,
		string(plantIDs), string(breaches), string(allocations))
	return err
}

// Query returns the records matching the filter in insertion time order.
func (s *SQLiteStore) Query(ctx context.Context, q logging.Query) ([]logging.Record, error) {
	query := `SELECT plan_id, ts, strategy, feasible, required_tonnes, achieved_tonnes, capex_usd, payback_months, plant_ids, breaches, allocations
        FROM decisions WHERE 1=1`
	var args []any
	if !q.Start.IsZero() {
		query += " AND ts >= ?"
		args = append(args, q.Start.UnixMilli())
	}
	if !q.End.IsZero() {
		query += " AND ts <= ?"
		args = append(args, q.End.UnixMilli())
	}
	if q.FeasibleOnly {
		query += " AND feasible = 1"
	}
	query += " ORDER BY ts"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res []logging.Record
	for rows.Next() {
		var (
			rec                            logging.Record
			ts                             int64
			feasible                       int
			plantIDs, breaches, allocation string
		)
		if err := rows.Scan(&rec.PlanID, &ts, &rec.Strategy, &feasible, &rec.RequiredIncrease,
			&rec.AchievedIncrease, &rec.TotalCapexUSD, &rec.PaybackMonths,
			&plantIDs, &breaches, &allocation); err != nil {
			return nil, err
		}
		rec.Timestamp = time.UnixMilli(ts).UTC()
		rec.Feasible = feasible == 1
		if err := json.Unmarshal([]byte(plantIDs), &rec.PlantIDs); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(breaches), &rec.Breaches); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(allocation), &rec.Allocations); err != nil {
			return nil, err
		}
		if q.PlantID != "" && !namesPlant(rec, q.PlantID) {
			continue
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func namesPlant(rec logging.Record, id string) bool {
	for _, p := range rec.PlantIDs {
		if p == id {
			return true
		}
	}
	_, ok := rec.Allocations[id]
	return ok
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/place-scout/pkg/types"
)

// WriteSQLite writes accepted candidates with their classification and
// score reasons to a fresh SQLite file at path. An existing file is replaced.
func WriteSQLite(ctx context.Context, path, runID string, center types.LatLng, scored []types.ScoredCandidate) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing old database: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := createSchema(ctx, db); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO run (id, created_at, center_lat, center_lng, accepted) VALUES (?, ?, ?, ?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339), center.Lat, center.Lng, len(scored),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	placeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO places (place_id, rank, name, address, website, phone, lat, lng,
			rating, rating_count, types, tier, tier_label, basis, score, decision)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing place insert: %w", err)
	}
	defer placeStmt.Close()

	reasonStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO score_reasons (place_id, reason, points) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing reason insert: %w", err)
	}
	defer reasonStmt.Close()

	for i, sc := range scored {
		c := sc.Candidate
		typesJSON, _ := json.Marshal(c.Types)

		var tier sql.NullInt64
		var label, basis sql.NullString
		if cl := sc.Classification; cl != nil {
			tier = sql.NullInt64{Int64: int64(cl.Tier), Valid: true}
			label = sql.NullString{String: cl.Label, Valid: true}
			basis = sql.NullString{String: cl.Basis, Valid: true}
		}
		var score float64
		if sc.Score != nil {
			score = sc.Score.Score
		}

		_, err := placeStmt.ExecContext(ctx,
			c.PlaceID, i+1, c.Name, c.Address, c.Website, c.Phone,
			c.Location.Lat, c.Location.Lng, c.Rating, c.RatingCount,
			string(typesJSON), tier, label, basis, score, string(sc.Decision.Reason),
		)
		if err != nil {
			return fmt.Errorf("inserting place %s: %w", c.PlaceID, err)
		}

		if sc.Score == nil {
			continue
		}
		for reason, pts := range sc.Score.Reasons {
			if _, err := reasonStmt.ExecContext(ctx, c.PlaceID, reason, pts); err != nil {
				return fmt.Errorf("inserting reason %s for %s: %w", reason, c.PlaceID, err)
			}
		}
	}

	return tx.Commit()
}

func createSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS run (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			center_lat REAL NOT NULL,
			center_lng REAL NOT NULL,
			accepted INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS places (
			place_id TEXT PRIMARY KEY,
			rank INTEGER NOT NULL,
			name TEXT,
			address TEXT,
			website TEXT,
			phone TEXT,
			lat REAL,
			lng REAL,
			rating REAL,
			rating_count INTEGER,
			types TEXT,
			tier INTEGER,
			tier_label TEXT,
			basis TEXT,
			score REAL NOT NULL,
			decision TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS score_reasons (
			place_id TEXT NOT NULL REFERENCES places(place_id),
			reason TEXT NOT NULL,
			points REAL NOT NULL,
			PRIMARY KEY (place_id, reason)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_places_score ON places(score)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

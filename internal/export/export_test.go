// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/place-scout/pkg/types"
)

func fullCandidate() types.Candidate {
	return types.Candidate{
		PlaceID:       "p1",
		Name:          "Elm Street Animal Hospital",
		Address:       "12 Elm St, Springfield, IL 62701, USA",
		Types:         []string{"veterinary_care", "establishment"},
		Location:      types.LatLng{Lat: 39.78, Lng: -89.65},
		Website:       "https://elmvet.example",
		Phone:         "(217) 555-0100",
		Rating:        4.6,
		RatingCount:   212,
		ReviewRatings: []float64{5, 4, 5, 1},
		WeekdayHours: []string{
			"Monday: 9:00 AM – 5:00 PM",
			"Saturday: Closed",
		},
		PlusCode: "86CFQ8H2+2X",
		Parts: types.AddressParts{
			PostalCode: "62701",
			City:       "Springfield",
			Region:     "Illinois",
			RegionCode: "IL",
		},
		MapsURL: "https://maps.google.com/?cid=1234567890",
	}
}

func TestFlatten(t *testing.T) {
	r := Flatten(fullCandidate())

	assert.Equal(t, "Elm Street Animal Hospital", r.Name)
	assert.Equal(t, "veterinary_care", r.PrimaryCategory)
	assert.Equal(t, "62701", r.PostalCode)
	assert.Equal(t, "Springfield", r.City)
	assert.Equal(t, "Illinois", r.Region)
	assert.Equal(t, "IL", r.RegionCode)
	assert.Equal(t, "86CFQ8H2+2X", r.PlusCode)
	assert.Equal(t, "1234567890", r.CID)
	assert.Equal(t, "39.78", r.Latitude)
	assert.Equal(t, "-89.65", r.Longitude)
	assert.Equal(t, "212", r.RatingCount)
	assert.Equal(t, "4.6", r.AverageRating)
	assert.Equal(t, "1", r.Star1)
	assert.Equal(t, "0", r.Star2)
	assert.Equal(t, "0", r.Star3)
	assert.Equal(t, "1", r.Star4)
	assert.Equal(t, "2", r.Star5)
	assert.Equal(t, "9:00 AM – 5:00 PM", r.MondayHours)
	assert.Equal(t, "Closed", r.SaturdayHours)
	assert.Equal(t, "", r.TuesdayHours)
}

func TestFlattenMissingValues(t *testing.T) {
	r := Flatten(types.Candidate{PlaceID: "p2", Name: "Bare"})

	assert.Equal(t, "Bare", r.Name)
	for i, v := range r.Row() {
		if Header[i] == "name" {
			continue
		}
		assert.Empty(t, v, "column %s", Header[i])
	}
}

func TestHeaderMatchesRow(t *testing.T) {
	assert.Len(t, Header, 27)
	assert.Len(t, types.FlatRecord{}.Row(), len(Header))
}

func TestStarBuckets(t *testing.T) {
	tests := []struct {
		name    string
		ratings []float64
		want    [5]int
	}{
		{"empty", nil, [5]int{}},
		{"clamped and rounded", []float64{0.4, 1.5, 5.6}, [5]int{1, 1, 0, 0, 1}},
		{"half to even", []float64{2.5, 3.5, 4.5}, [5]int{0, 1, 0, 2, 0}},
		{"integers", []float64{1, 2, 3, 4, 5, 5}, [5]int{1, 1, 1, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StarBuckets(tt.ratings))
		})
	}
}

func TestWeekdayHours(t *testing.T) {
	got := WeekdayHours([]string{
		"Monday: 9:00 AM – 5:00 PM",
		"SUNDAY:  Closed ",
		"Holiday hours vary",
		"Lunch: 12:00 PM",
	})

	assert.Equal(t, map[string]string{
		"monday": "9:00 AM – 5:00 PM",
		"sunday": "Closed",
	}, got)
}

func TestParseCID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://maps.google.com/?cid=1234567890", "1234567890"},
		{"https://maps.google.com/?q=vet&cid=42", "42"},
		{"https://maps.google.com/?cid=abc", ""},
		{"https://maps.google.com/?q=vet", ""},
		{"", ""},
		{"://bad", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCID(tt.in))
		})
	}
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "places_full", BaseName("results/places_full.json"))
	assert.Equal(t, "vets", BaseName("vets"))
	assert.Equal(t, "places", BaseName(""))
}

func TestOutputPaths(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	p := OutputPaths("outputs", "places", now)

	assert.Equal(t, filepath.Join("outputs", "places_20260304T050607.json"), p.JSON)
	assert.Equal(t, filepath.Join("outputs", "places_20260304T050607.csv"), p.CSV)
	assert.Equal(t, filepath.Join("outputs", "places_20260304T050607.db"), p.SQLite)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "places.json")
	center := types.LatLng{Lat: 40, Lng: -74}
	records := []types.FlatRecord{Flatten(fullCandidate())}

	require.NoError(t, WriteJSON(path, center, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, center, doc.SearchCenter)
	require.Len(t, doc.Places, 1)
	assert.Equal(t, "1234567890", doc.Places[0].CID)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "search_center")
	assert.Contains(t, raw, "places")
}

func TestWriteJSONEmptyPlaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.json")
	require.NoError(t, WriteJSON(path, types.LatLng{}, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"places": []`)
}

func TestWriteJSONFailsOnUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteJSON(filepath.Join(blocker, "places.json"), types.LatLng{}, nil)
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.csv")
	records := []types.FlatRecord{Flatten(fullCandidate()), {Name: "Second, Inc."}}

	require.NoError(t, WriteCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "Elm Street Animal Hospital", rows[1][0])
	assert.Equal(t, "Second, Inc.", rows[2][0])
}

func TestArchive(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"places_1.json", "places_1.csv", "other_1.json", "places.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	moved, err := Archive(dir, "places", []string{ExtJSON, ExtCSV}, now)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "archive", "csv", "2026-03-04", "places_1.csv"),
		filepath.Join(dir, "archive", "json", "2026-03-04", "places_1.json"),
	}, moved)
	for _, p := range moved {
		assert.FileExists(t, p)
	}
	assert.NoFileExists(t, filepath.Join(dir, "places_1.json"))
	assert.FileExists(t, filepath.Join(dir, "other_1.json"))
	assert.FileExists(t, filepath.Join(dir, "places.txt"))
}

func TestArchiveMissingDir(t *testing.T) {
	moved, err := Archive(filepath.Join(t.TempDir(), "nope"), "places", []string{ExtJSON}, time.Now())
	require.NoError(t, err)
	assert.Empty(t, moved)
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.db")
	c := fullCandidate()
	scored := []types.ScoredCandidate{{
		Candidate:      c,
		Classification: &types.ClassificationResult{Tier: 1, Label: "confirmed category", Basis: types.BasisType, MatchedTags: []string{"veterinary_care"}},
		Score:          &types.ScoreResult{Score: 71, Reasons: map[string]float64{"type:tier1": 60, "name:animal hospital": 6, "phone": 5}},
		Decision:       types.Decision{Include: true, Reason: types.ReasonStrongSignal},
	}}

	require.NoError(t, WriteSQLite(context.Background(), path, "run-1", types.LatLng{Lat: 40, Lng: -74}, scored))
	// Rewriting replaces the file rather than colliding on primary keys.
	require.NoError(t, WriteSQLite(context.Background(), path, "run-2", types.LatLng{Lat: 40, Lng: -74}, scored))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var runID string
	var accepted int
	require.NoError(t, db.QueryRow(`SELECT id, accepted FROM run`).Scan(&runID, &accepted))
	assert.Equal(t, "run-2", runID)
	assert.Equal(t, 1, accepted)

	var name string
	var tier int
	var score float64
	require.NoError(t, db.QueryRow(`SELECT name, tier, score FROM places WHERE place_id = ?`, "p1").Scan(&name, &tier, &score))
	assert.Equal(t, c.Name, name)
	assert.Equal(t, 1, tier)
	assert.Equal(t, 71.0, score)

	var reasons int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM score_reasons WHERE place_id = ?`, "p1").Scan(&reasons))
	assert.Equal(t, 3, reasons)
}

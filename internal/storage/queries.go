package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/pable/go-cr-wrapped/internal/model"
)

// Snapshot is a lightweight record for the list command.
type Snapshot struct {
	Tag       string
	Name      string
	Trophies  int
	Battles   int
	FetchedAt string
}

// canonicalTag stores tags in one shape regardless of how they were typed.
func canonicalTag(tag string) string {
	return "#" + strings.ToUpper(strings.ReplaceAll(tag, "#", ""))
}

// SaveSnapshot upserts a player's raw profile and battle log. The battle
// log JSON is zstd-compressed; profiles are small enough to store plain.
func (db *DB) SaveSnapshot(profile *model.Profile, battles []model.Battle, fetchedAt time.Time) error {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	battleJSON, err := json.Marshal(battles)
	if err != nil {
		return fmt.Errorf("marshal battle log: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	compressed := enc.EncodeAll(battleJSON, nil)
	enc.Close()

	_, err = db.conn.Exec(`
		INSERT OR REPLACE INTO players(tag, name, trophies, best_trophies, battles, profile_json, battlelog_zst, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		canonicalTag(profile.Tag), profile.Name, profile.Trophies, profile.BestTrophies,
		len(battles), string(profileJSON), compressed, fetchedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// GetSnapshot loads a cached profile and battle log by tag. Returns
// (nil, nil, nil) when the tag has never been fetched.
func (db *DB) GetSnapshot(tag string) (*model.Profile, []model.Battle, error) {
	var profileJSON string
	var compressed []byte
	err := db.conn.QueryRow(
		"SELECT profile_json, battlelog_zst FROM players WHERE tag = ?",
		canonicalTag(tag),
	).Scan(&profileJSON, &compressed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var profile model.Profile
	if err := json.Unmarshal([]byte(profileJSON), &profile); err != nil {
		return nil, nil, fmt.Errorf("decode cached profile: %w", err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()
	battleJSON, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("decompress battle log: %w", err)
	}

	var battles []model.Battle
	if err := json.Unmarshal(battleJSON, &battles); err != nil {
		return nil, nil, fmt.Errorf("decode cached battle log: %w", err)
	}
	if battles == nil {
		battles = []model.Battle{}
	}
	return &profile, battles, nil
}

// ListSnapshots returns all cached players, most recently fetched first.
func (db *DB) ListSnapshots() ([]Snapshot, error) {
	rows, err := db.conn.Query(`
		SELECT tag, name, trophies, battles, fetched_at
		FROM players ORDER BY fetched_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.Tag, &s.Name, &s.Trophies, &s.Battles, &s.FetchedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// QueryRaw runs an arbitrary SQL query and returns column names plus rows
// rendered as strings. BLOB columns are summarised rather than dumped.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch t := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = fmt.Sprintf("(%d bytes)", len(t))
			case float64:
				row[i] = strconv.FormatFloat(t, 'f', -1, 64)
			default:
				row[i] = fmt.Sprint(t)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

// DeleteSnapshot removes a cached player. Returns true if a row was deleted.
func (db *DB) DeleteSnapshot(tag string) (bool, error) {
	res, err := db.conn.Exec("DELETE FROM players WHERE tag = ?", canonicalTag(tag))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

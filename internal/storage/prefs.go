package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/dotcraft/internal/games/dotcraft"
)

const (
	successPrefix = "success"
	recordPrefix  = "record"
)

const upsertPref = `
	INSERT INTO prefs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// GetString returns the preference stored under key and whether it exists.
func (s *Store) GetString(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read pref %s: %w", key, err)
	}
	return value, true, nil
}

// PutString stores a preference, replacing any previous value.
func (s *Store) PutString(key, value string) error {
	if _, err := s.db.Exec(upsertPref, key, value); err != nil {
		return fmt.Errorf("storage: cannot write pref %s: %w", key, err)
	}
	return nil
}

// GetBool returns the boolean preference under key; absent or malformed
// values read as false.
func (s *Store) GetBool(key string) (bool, error) {
	v, ok, err := s.GetString(key)
	if err != nil || !ok {
		return false, err
	}
	b, _ := strconv.ParseBool(v)
	return b, nil
}

// PutBool stores a boolean preference.
func (s *Store) PutBool(key string, value bool) error {
	return s.PutString(key, strconv.FormatBool(value))
}

// SuccessKey is the pref key marking a configuration as solved at least once.
func SuccessKey(k dotcraft.RecordKey) string {
	return successPrefix + k.String()
}

// BestTimeKey is the pref key holding the best time for a configuration.
func BestTimeKey(k dotcraft.RecordKey) string {
	return recordPrefix + k.String()
}

// LoadRecords implements dotcraft.RecordPersister. Keys or values that do
// not parse are skipped.
func (s *Store) LoadRecords() (map[dotcraft.RecordKey]dotcraft.RecordEntry, error) {
	rows, err := s.db.Query(
		"SELECT key, value FROM prefs WHERE key LIKE ? OR key LIKE ?",
		successPrefix+"%", recordPrefix+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query records: %w", err)
	}
	defer rows.Close()

	out := make(map[dotcraft.RecordKey]dotcraft.RecordEntry)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if rest, ok := strings.CutPrefix(key, successPrefix); ok {
			k, ok := parseRecordKey(rest)
			if !ok {
				continue
			}
			e := out[k]
			e.Solved = e.Solved || value == "true"
			out[k] = e
			continue
		}

		rest, _ := strings.CutPrefix(key, recordPrefix)
		k, ok := parseRecordKey(rest)
		if !ok {
			continue
		}
		best, err := strconv.ParseFloat(value, 64)
		if err != nil || best < 0 {
			continue
		}
		e := out[k]
		e.Solved = true
		e.BestSeconds = best
		e.HasBest = true
		out[k] = e
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// SaveRecord implements dotcraft.RecordPersister. Both keys are written in
// one transaction. A stored best time that is already lower is kept.
func (s *Store) SaveRecord(key dotcraft.RecordKey, entry dotcraft.RecordEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(upsertPref, SuccessKey(key), strconv.FormatBool(entry.Solved)); err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", SuccessKey(key), err)
	}
	if entry.HasBest {
		var stored string
		err := tx.QueryRow("SELECT value FROM prefs WHERE key = ?", BestTimeKey(key)).Scan(&stored)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return fmt.Errorf("storage: cannot read %s: %w", BestTimeKey(key), err)
		default:
			if v, parseErr := strconv.ParseFloat(stored, 64); parseErr == nil && v >= 0 && v <= entry.BestSeconds {
				return commitRecord(tx)
			}
		}

		best := strconv.FormatFloat(entry.BestSeconds, 'f', -1, 64)
		if _, err := tx.Exec(upsertPref, BestTimeKey(key), best); err != nil {
			return fmt.Errorf("storage: cannot save %s: %w", BestTimeKey(key), err)
		}
	}

	return commitRecord(tx)
}

func commitRecord(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit record: %w", err)
	}
	return nil
}

// parseRecordKey parses "{size}-{targets}".
func parseRecordKey(s string) (dotcraft.RecordKey, bool) {
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		return dotcraft.RecordKey{}, false
	}
	size, err1 := strconv.Atoi(a)
	targets, err2 := strconv.Atoi(b)
	if err1 != nil || err2 != nil {
		return dotcraft.RecordKey{}, false
	}
	return dotcraft.RecordKey{Size: size, Targets: targets}, true
}

// Ensure Store implements RecordPersister
var _ dotcraft.RecordPersister = (*Store)(nil)

package storage

import (
	"fmt"
	"time"
)

// Completion is one solved board.
type Completion struct {
	ID        int64
	Size      int
	Targets   int
	Seconds   float64
	Moves     int
	Player    string // SSH user, empty for local play
	CreatedAt time.Time
}

// LevelStats aggregates the completions of one configuration.
type LevelStats struct {
	Size       int
	Targets    int
	Solves     int
	AvgSeconds float64
	AvgMoves   float64
	LastPlayed time.Time
}

// SaveCompletion records a solved board.
// Returns the ID of the inserted record.
func (s *Store) SaveCompletion(c Completion) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO completions (size, targets, seconds, moves, player) VALUES (?, ?, ?, ?, ?)",
		c.Size, c.Targets, c.Seconds, c.Moves, c.Player,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentCompletions returns the latest solves, newest first.
func (s *Store) RecentCompletions(limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, size, targets, seconds, moves, player, created_at
		 FROM completions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var c Completion
		var createdAt any
		if err := rows.Scan(&c.ID, &c.Size, &c.Targets, &c.Seconds, &c.Moves, &c.Player, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// LevelStatistics aggregates completions per configuration, ordered by
// size then targets.
func (s *Store) LevelStatistics() ([]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT size, targets, COUNT(*), AVG(seconds), AVG(moves), MAX(created_at)
		 FROM completions
		 GROUP BY size, targets
		 ORDER BY size, targets`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	var out []LevelStats
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.Size, &st.Targets, &st.Solves, &st.AvgSeconds, &st.AvgMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		out = append(out, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ClearCompletions deletes the completion history. Records are kept.
func (s *Store) ClearCompletions() error {
	if _, err := s.db.Exec("DELETE FROM completions"); err != nil {
		return fmt.Errorf("storage: cannot clear completions: %w", err)
	}
	return nil
}

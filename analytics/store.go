package analytics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for the visit log. It lives in its own
// SQLite file so analytics writes never contend with content reads.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the analytics database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			path TEXT NOT NULL,
			user_agent TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);
		CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
	`)
	return err
}

// SaveVisit appends a visit to the log.
func (s *Store) SaveVisit(v *Visit) error {
	_, err := s.db.Exec(`INSERT INTO visits (session_id, path, user_agent, timestamp) VALUES (?, ?, ?, ?)`,
		v.SessionID, normalizePath(v.Path), v.UserAgent, v.Timestamp.UTC())
	return err
}

// GetStats returns aggregate counts: total visits, distinct sessions, and
// the top pages by view count.
func (s *Store) GetStats(topN int) (Stats, error) {
	var stats Stats
	if err := s.db.QueryRow(`SELECT COUNT(*), COUNT(DISTINCT session_id) FROM visits`).
		Scan(&stats.TotalVisits, &stats.UniqueSessions); err != nil {
		return Stats{}, err
	}

	rows, err := s.db.Query(`SELECT path, COUNT(*) AS n FROM visits GROUP BY path ORDER BY n DESC, path LIMIT ?`, topN)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			return Stats{}, err
		}
		stats.TopPaths = append(stats.TopPaths, pc)
	}
	return stats, rows.Err()
}

// PurgeOlderThan deletes visits older than the retention window. Aggregate
// counts only need bounded history.
func (s *Store) PurgeOlderThan(days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	res, err := s.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartCleanupScheduler purges old visits on an interval. The returned func
// stops the scheduler.
func (s *Store) StartCleanupScheduler(retentionDays int, every time.Duration) func() {
	ticker := time.NewTicker(every)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				_, _ = s.PurgeOlderThan(retentionDays)
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	return func() { close(done) }
}

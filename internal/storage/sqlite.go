// Package storage provides SQLite implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/careermatch/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL,
		seed INTEGER NOT NULL,
		student_count INTEGER NOT NULL,
		cluster_count INTEGER NOT NULL,
		quality TEXT,
		summary TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_finished_at ON runs(finished_at);

	CREATE TABLE IF NOT EXISTS student_results (
		run_id TEXT NOT NULL,
		student_id TEXT NOT NULL,
		student_name TEXT,
		department TEXT,
		cluster_id INTEGER,
		payload TEXT NOT NULL,
		PRIMARY KEY (run_id, student_id),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_student_results_cluster ON student_results(run_id, cluster_id);

	CREATE TABLE IF NOT EXISTS cluster_profiles (
		run_id TEXT NOT NULL,
		cluster_id INTEGER NOT NULL,
		label TEXT NOT NULL,
		member_count INTEGER NOT NULL,
		payload TEXT NOT NULL,
		PRIMARY KEY (run_id, cluster_id),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveRun stores a run with all student results and cluster profiles in one
// transaction. Earlier runs are kept.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *models.RunResult) error {
	qualityJSON, err := json.Marshal(run.Quality)
	if err != nil {
		return fmt.Errorf("failed to marshal quality: %w", err)
	}
	summaryJSON, err := json.Marshal(run.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, seed, student_count, cluster_count, quality, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.FinishedAt.UTC(), run.Seed, len(run.Students), len(run.Clusters),
		string(qualityJSON), string(summaryJSON),
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO student_results (run_id, student_id, student_name, department, cluster_id, payload)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i := range run.Students {
		res := &run.Students[i]
		payload, err := json.Marshal(res)
		if err != nil {
			return fmt.Errorf("failed to marshal student %s: %w", res.StudentID, err)
		}
		var clusterID sql.NullInt64
		if res.Cluster != nil {
			clusterID = sql.NullInt64{Int64: int64(res.Cluster.ClusterID), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, run.ID, res.StudentID, res.StudentName, res.Department, clusterID, string(payload)); err != nil {
			return fmt.Errorf("failed to insert student %s: %w", res.StudentID, err)
		}
	}

	cstmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cluster_profiles (run_id, cluster_id, label, member_count, payload)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer cstmt.Close()
	for _, p := range run.Clusters {
		payload, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal cluster %d: %w", p.ClusterID, err)
		}
		if _, err := cstmt.ExecContext(ctx, run.ID, p.ClusterID, p.Label, p.MemberCount, string(payload)); err != nil {
			return fmt.Errorf("failed to insert cluster %d: %w", p.ClusterID, err)
		}
	}
	return tx.Commit()
}

const runColumns = `id, started_at, finished_at, seed, student_count, cluster_count, quality, summary`

// LatestRun returns the most recently finished run.
func (s *SQLiteStorage) LatestRun(ctx context.Context) (*models.RunInfo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY finished_at DESC, created_at DESC LIMIT 1`)
	info, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no runs: %w", ErrNotFound)
	}
	return info, err
}

// GetRun returns a run by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, runID string) (*models.RunInfo, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, runID)
	info, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	return info, err
}

func scanRun(row *sql.Row) (*models.RunInfo, error) {
	var info models.RunInfo
	var qualityJSON, summaryJSON sql.NullString
	var started, finished time.Time
	if err := row.Scan(&info.ID, &started, &finished, &info.Seed, &info.Students, &info.Clusters, &qualityJSON, &summaryJSON); err != nil {
		return nil, err
	}
	info.StartedAt, info.FinishedAt = started, finished
	if qualityJSON.Valid && qualityJSON.String != "" {
		if err := json.Unmarshal([]byte(qualityJSON.String), &info.Quality); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quality: %w", err)
		}
	}
	if summaryJSON.Valid && summaryJSON.String != "" {
		if err := json.Unmarshal([]byte(summaryJSON.String), &info.Summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
		}
	}
	return &info, nil
}

// CountRuns returns the total number of stored runs.
func (s *SQLiteStorage) CountRuns(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&count)
	return count, err
}

// GetStudentResult returns one student's result within a run.
func (s *SQLiteStorage) GetStudentResult(ctx context.Context, runID, studentID string) (*models.StudentResult, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM student_results WHERE run_id = ? AND student_id = ?`, runID, studentID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("student %s: %w", studentID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var res models.StudentResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return nil, fmt.Errorf("failed to unmarshal student result: %w", err)
	}
	return &res, nil
}

// ListStudentIDs returns student IDs of a run ordered by ID.
func (s *SQLiteStorage) ListStudentIDs(ctx context.Context, runID string, offset, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT student_id FROM student_results WHERE run_id = ?
		 ORDER BY student_id LIMIT ? OFFSET ?`,
		runID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountStudents returns the number of student results in a run.
func (s *SQLiteStorage) CountStudents(ctx context.Context, runID string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM student_results WHERE run_id = ?`, runID).Scan(&count)
	return count, err
}

// ListClusters returns the cluster profiles of a run ordered by cluster ID.
func (s *SQLiteStorage) ListClusters(ctx context.Context, runID string) ([]models.ClusterProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM cluster_profiles WHERE run_id = ? ORDER BY cluster_id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ClusterProfile{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var p models.ClusterProfile
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cluster profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetCluster returns one cluster profile.
func (s *SQLiteStorage) GetCluster(ctx context.Context, runID string, clusterID int) (*models.ClusterProfile, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM cluster_profiles WHERE run_id = ? AND cluster_id = ?`, runID, clusterID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cluster %d: %w", clusterID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var p models.ClusterProfile
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cluster profile: %w", err)
	}
	return &p, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

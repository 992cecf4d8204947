package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/iconaudit/internal/model"
)

// AuditDB provides SQLite-based storage for audit reports.
//
// Design decision: We keep one database file for all audited sites
// rather than one per site. History queries and the compare command
// work across sites, and a single file is easier to back up.
type AuditDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures AuditDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{CreateIfNotExists: true}
}

// Open opens or creates an AuditDB under dbDir.
func Open(dbDir string, opts Options) (*AuditDB, error) {
	dbPath := filepath.Join(dbDir, "iconaudit.db")

	var dsn string
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?mode=rwc"
	} else {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	adb := &AuditDB{db: db, dbPath: dbPath}
	if err := adb.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return adb, nil
}

// Close closes the database connection.
func (adb *AuditDB) Close() error {
	return adb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (adb *AuditDB) createTables() error {
	schema := `
	-- Audit reports store complete runs as JSON, indexed by outcome counts
	CREATE TABLE IF NOT EXISTS audit_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		base_url TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		report_json TEXT NOT NULL,
		error_count INTEGER NOT NULL DEFAULT 0,
		warning_count INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_reports_base_url ON audit_reports(base_url);
	CREATE INDEX IF NOT EXISTS idx_reports_timestamp ON audit_reports(timestamp);
	`

	_, err := adb.db.ExecContext(context.Background(), schema)
	return err
}

// RunMetadata describes one stored audit run without its full report.
type RunMetadata struct {
	// RunID is the generated id of the audit run.
	RunID string

	// BaseURL is the audited site.
	BaseURL string

	// Timestamp is when the run was stored.
	Timestamp time.Time

	// ErrorCount and WarningCount index the stored report's outcomes.
	ErrorCount   int
	WarningCount int
}

// SaveReport stores an audit report and returns its generated run id.
func (adb *AuditDB) SaveReport(ctx context.Context, report *model.FaviconReport) (string, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to serialize report: %w", err)
	}

	runID := uuid.NewString()
	query := `
	INSERT INTO audit_reports (run_id, base_url, report_json, error_count, warning_count)
	VALUES (?, ?, ?, ?, ?)
	`

	_, err = adb.db.ExecContext(ctx, query,
		runID,
		report.BaseURL,
		string(reportJSON),
		report.CountByStatus(model.StatusError),
		report.CountByStatus(model.StatusWarning),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save audit report: %w", err)
	}
	return runID, nil
}

// GetLatestReport retrieves the most recent report for a site.
// Returns nil without error when no report exists.
func (adb *AuditDB) GetLatestReport(ctx context.Context, baseURL string) (*model.FaviconReport, error) {
	query := `
	SELECT report_json FROM audit_reports
	WHERE base_url = ?
	ORDER BY id DESC
	LIMIT 1
	`

	var reportJSON string
	err := adb.db.QueryRowContext(ctx, query, baseURL).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit report: %w", err)
	}

	var report model.FaviconReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

// GetAuditHistory retrieves all reports for a site, newest first.
func (adb *AuditDB) GetAuditHistory(ctx context.Context, baseURL string) ([]*model.FaviconReport, error) {
	query := `
	SELECT report_json FROM audit_reports
	WHERE base_url = ?
	ORDER BY id DESC
	`

	rows, err := adb.db.QueryContext(ctx, query, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit history: %w", err)
	}
	defer rows.Close()

	var reports []*model.FaviconReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}

		var report model.FaviconReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			return nil, fmt.Errorf("failed to parse report: %w", err)
		}
		reports = append(reports, &report)
	}
	return reports, rows.Err()
}

// GetHistoryMetadata retrieves run metadata for a site, newest first,
// without deserializing the stored reports.
func (adb *AuditDB) GetHistoryMetadata(ctx context.Context, baseURL string) ([]RunMetadata, error) {
	query := `
	SELECT run_id, base_url, timestamp, error_count, warning_count
	FROM audit_reports
	WHERE base_url = ?
	ORDER BY id DESC
	`

	rows, err := adb.db.QueryContext(ctx, query, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit history: %w", err)
	}
	defer rows.Close()

	var runs []RunMetadata
	for rows.Next() {
		var run RunMetadata
		var timestamp string
		if err := rows.Scan(&run.RunID, &run.BaseURL, &timestamp, &run.ErrorCount, &run.WarningCount); err != nil {
			return nil, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		run.Timestamp = parseTimestamp(timestamp)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListAuditedSites returns all base URLs present in the database.
func (adb *AuditDB) ListAuditedSites(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT base_url FROM audit_reports
	ORDER BY base_url
	`

	rows, err := adb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	var sites []string
	for rows.Next() {
		var site string
		if err := rows.Scan(&site); err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

// parseTimestamp parses a timestamp string from SQLite.
// SQLite may return different formats depending on how the value was
// written; try the common ones and fall back to the zero time.
func parseTimestamp(s string) time.Time {
	formats := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02T15:04:05Z",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

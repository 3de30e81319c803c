package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/vetsec/url-security/internal/domain"
)

// PostgresStore implements ports.Storage for PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL storage instance
func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	// In production, should be set based on workload
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// InitSchema creates database tables if they don't exist
// In production, use proper migration tools
func (s *PostgresStore) InitSchema() error {
	schema := `
	-- ============================================================================
	-- URL_ANALYSES TABLE
	-- ============================================================================
	-- One row per analyzed URL: the input string, the accumulated score, the
	-- verdict it mapped to, and the reasons the rules reported.
	--
	-- Prototype simplifications:
	-- 1. reasons as a JSONB string array
	--    Why: Reasons are always read alongside their parent analysis, so no join is
	--    needed. JSONB violates First Normal Form, but a dedicated reasons table buys
	--    nothing until reasons need their own indexes.
	--    Production: Dedicated reasons table (id, analysis_id, rule, reason) to enable
	--                queries like "all typosquat hits this week" and per-rule statistics
	--
	-- 2. url stored as unbounded TEXT
	--    Why: Fraudulent URLs are padded far beyond any VARCHAR guess we could make;
	--         excessive length is itself one of the signals we score
	--
	-- 3. No deduplication on url
	--    Why: The same URL re-analyzed after a list update can legitimately produce a
	--         different verdict, so every analysis is its own record
	--    Production: Add list_version / engine_version columns to make re-scoring auditable

	CREATE TABLE IF NOT EXISTS url_analyses (
		id UUID PRIMARY KEY,
		url TEXT NOT NULL,
		score INTEGER NOT NULL,
		verdict VARCHAR(10) NOT NULL CHECK (verdict IN ('safe', 'suspicious', 'fraudulent')),
		reasons JSONB,
		analyzed_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	-- Backs ListRecent: dashboard view "most recent first"
	CREATE INDEX IF NOT EXISTS idx_url_analyses_analyzed_at ON url_analyses(analyzed_at DESC);
	-- Backs ListByVerdict and CountByVerdict: triage filters on a single verdict
	CREATE INDEX IF NOT EXISTS idx_url_analyses_verdict ON url_analyses(verdict, analyzed_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateAnalysis inserts an analysis record
func (s *PostgresStore) CreateAnalysis(ctx context.Context, record *domain.AnalysisRecord) error {
	reasonsJSON, err := json.Marshal(record.Reasons)
	if err != nil {
		return fmt.Errorf("failed to marshal reasons: %w", err)
	}

	query := `
		INSERT INTO url_analyses (id, url, score, verdict, reasons, analyzed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(ctx, query,
		record.ID, record.URL, record.Score, record.Verdict,
		reasonsJSON, record.AnalyzedAt,
	)
	return err
}

// GetAnalysis retrieves an analysis record by ID
func (s *PostgresStore) GetAnalysis(ctx context.Context, id uuid.UUID) (*domain.AnalysisRecord, error) {
	query := `
		SELECT id, url, score, verdict, reasons, analyzed_at
		FROM url_analyses
		WHERE id = $1
	`
	record := &domain.AnalysisRecord{}
	var reasonsJSON []byte

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID, &record.URL, &record.Score, &record.Verdict,
		&reasonsJSON, &record.AnalyzedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	json.Unmarshal(reasonsJSON, &record.Reasons)

	return record, nil
}

// ListRecent retrieves the most recently analyzed records
func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]domain.AnalysisRecord, error) {
	query := `
		SELECT id, url, score, verdict, reasons, analyzed_at
		FROM url_analyses
		ORDER BY analyzed_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.AnalysisRecord, 0)
	for rows.Next() {
		var record domain.AnalysisRecord
		var reasonsJSON []byte

		err := rows.Scan(
			&record.ID, &record.URL, &record.Score, &record.Verdict,
			&reasonsJSON, &record.AnalyzedAt,
		)
		if err != nil {
			return nil, err
		}

		json.Unmarshal(reasonsJSON, &record.Reasons)
		records = append(records, record)
	}

	return records, rows.Err()
}

// ListByVerdict retrieves the most recent records carrying the given verdict
func (s *PostgresStore) ListByVerdict(ctx context.Context, verdict domain.Verdict, limit int) ([]domain.AnalysisRecord, error) {
	query := `
		SELECT id, url, score, verdict, reasons, analyzed_at
		FROM url_analyses
		WHERE verdict = $1
		ORDER BY analyzed_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, verdict, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.AnalysisRecord, 0)
	for rows.Next() {
		var record domain.AnalysisRecord
		var reasonsJSON []byte

		err := rows.Scan(
			&record.ID, &record.URL, &record.Score, &record.Verdict,
			&reasonsJSON, &record.AnalyzedAt,
		)
		if err != nil {
			return nil, err
		}

		json.Unmarshal(reasonsJSON, &record.Reasons)
		records = append(records, record)
	}

	return records, rows.Err()
}

// CountByVerdict aggregates stored analyses per verdict
func (s *PostgresStore) CountByVerdict(ctx context.Context) (map[domain.Verdict]int, error) {
	query := `
		SELECT verdict, COUNT(*)
		FROM url_analyses
		GROUP BY verdict
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Verdict]int)
	for rows.Next() {
		var verdict domain.Verdict
		var count int
		if err := rows.Scan(&verdict, &count); err != nil {
			return nil, err
		}
		counts[verdict] = count
	}

	return counts, rows.Err()
}

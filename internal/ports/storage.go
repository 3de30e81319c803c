package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vetsec/url-security/internal/domain"
)

// Storage defines the contract for persisting and querying analysis records
type Storage interface {
	// Analysis operations
	CreateAnalysis(ctx context.Context, record *domain.AnalysisRecord) error
	GetAnalysis(ctx context.Context, id uuid.UUID) (*domain.AnalysisRecord, error)
	ListRecent(ctx context.Context, limit int) ([]domain.AnalysisRecord, error)
	ListByVerdict(ctx context.Context, verdict domain.Verdict, limit int) ([]domain.AnalysisRecord, error)

	// CountByVerdict returns how many stored records carry each verdict.
	// Verdicts with no records are absent from the map.
	CountByVerdict(ctx context.Context) (map[domain.Verdict]int, error)

	// Lifecycle
	Close() error
}

package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vetsec/url-security/internal/domain"
	"github.com/vetsec/url-security/internal/domain/heuristics"
	"github.com/vetsec/url-security/internal/ports"
)

// ErrNoStorage reports a query on a service that runs without persistence
var ErrNoStorage = errors.New("no storage configured")

// AnalysisService orchestrates URL scoring, persistence and alerting
type AnalysisService struct {
	storage ports.Storage

	// engine is swapped wholesale on ReloadLists; the mutex guards the
	// pointer only, never an analysis in flight
	mu     sync.RWMutex
	engine *heuristics.Engine
}

// NewAnalysisService creates a new analysis service with dependency injection
//
// storage may be nil for analysis-only use (the CLI without a database);
// query methods then return ErrNoStorage and results are simply not kept.
func NewAnalysisService(storage ports.Storage, engine *heuristics.Engine) *AnalysisService {
	return &AnalysisService{
		storage: storage,
		engine:  engine,
	}
}

// AnalyzeURL scores a single URL and persists the outcome when storage is
// configured
//
// Scoring itself cannot fail; the only error path is persistence.
func (s *AnalysisService) AnalyzeURL(ctx context.Context, rawURL string) (*domain.AnalysisRecord, error) {
	record := s.newRecord(rawURL)
	s.alertIfFraudulent(record)

	if s.storage != nil {
		if err := s.storage.CreateAnalysis(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to store analysis: %w", err)
		}
	}

	return record, nil
}

// AnalyzeBatch scores many URLs concurrently, preserving input order
//
// Error handling strategy:
//   - Scoring is pure and cannot fail; only persistence can
//   - Individual persistence failures are logged but don't halt the batch,
//     so one bad row still leaves every result usable
//   - Context cancellation aborts the remaining work
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, urls []string, concurrency int) ([]domain.AnalysisRecord, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	records := make([]domain.AnalysisRecord, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, rawURL := range urls {
		i, rawURL := i, rawURL
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			record := s.newRecord(rawURL)
			s.alertIfFraudulent(record)

			if s.storage != nil {
				if err := s.storage.CreateAnalysis(ctx, record); err != nil {
					log.Printf("Failed to store analysis for %s: %v", rawURL, err)
				}
			}

			records[i] = *record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

// Get retrieves one stored analysis, or nil when the ID is unknown
func (s *AnalysisService) Get(ctx context.Context, id uuid.UUID) (*domain.AnalysisRecord, error) {
	if s.storage == nil {
		return nil, ErrNoStorage
	}
	return s.storage.GetAnalysis(ctx, id)
}

// Recent retrieves the latest stored analyses
func (s *AnalysisService) Recent(ctx context.Context, limit int) ([]domain.AnalysisRecord, error) {
	if s.storage == nil {
		return nil, ErrNoStorage
	}
	return s.storage.ListRecent(ctx, limit)
}

// ByVerdict retrieves the latest stored analyses carrying the given verdict
func (s *AnalysisService) ByVerdict(ctx context.Context, verdict domain.Verdict, limit int) ([]domain.AnalysisRecord, error) {
	if s.storage == nil {
		return nil, ErrNoStorage
	}
	return s.storage.ListByVerdict(ctx, verdict, limit)
}

// Stats aggregates stored analyses per verdict
func (s *AnalysisService) Stats(ctx context.Context) (map[domain.Verdict]int, error) {
	if s.storage == nil {
		return nil, ErrNoStorage
	}
	return s.storage.CountByVerdict(ctx)
}

// ReloadLists swaps the scoring engine for one built on the given lists
//
// In-flight analyses keep the engine they started with; only calls entered
// after the swap see the updated lists.
func (s *AnalysisService) ReloadLists(lists heuristics.Lists) {
	lists = lists.Normalized()
	engine := heuristics.NewEngine(lists)

	s.mu.Lock()
	s.engine = engine
	s.mu.Unlock()

	log.Printf("Reference lists reloaded: %d popular domains, %d suspicious TLDs, %d fraud keywords",
		len(lists.PopularDomains), len(lists.SuspiciousTLDs), len(lists.FraudKeywords))
}

// newRecord runs the engine on one URL and stamps identity and time
func (s *AnalysisService) newRecord(rawURL string) *domain.AnalysisRecord {
	result := s.currentEngine().Analyze(rawURL)

	return &domain.AnalysisRecord{
		ID:         uuid.New(),
		URL:        rawURL,
		Score:      result.Score,
		Verdict:    result.Verdict,
		Reasons:    result.Reasons,
		AnalyzedAt: time.Now(),
	}
}

func (s *AnalysisService) currentEngine() *heuristics.Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// alertIfFraudulent logs fraudulent hits to the console
// In production, this would:
//   - Push the URL to a blocklist feed
//   - Send a webhook or Slack alert to the security team
//   - Raise a SIEM event for correlation
func (s *AnalysisService) alertIfFraudulent(record *domain.AnalysisRecord) {
	if record.Verdict != domain.VerdictFraudulent {
		return
	}

	log.Printf("🚨 FRAUDULENT URL DETECTED:")
	log.Printf("  URL: %s", record.URL)
	log.Printf("  Score: %d", record.Score)
	for _, reason := range record.Reasons {
		log.Printf("    - %s", reason)
	}
}

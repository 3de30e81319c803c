package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vetsec/url-security/internal/application"
	"github.com/vetsec/url-security/internal/domain"
)

const (
	defaultListLimit        = 20
	maxListLimit            = 100
	defaultBatchConcurrency = 8
)

// App exposes the analysis service over HTTP
type App struct {
	service *application.AnalysisService
}

// NewApp creates the HTTP application around an analysis service
func NewApp(service *application.AnalysisService) *App {
	return &App{service: service}
}

// Router builds the HTTP routing table
func (a *App) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { writeText(w, http.StatusOK, "ok\n") })

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyses", a.createAnalysis)
		r.Post("/analyses/batch", a.createBatch)
		r.Get("/analyses", a.listAnalyses)
		r.Get("/analyses/{id}", a.getAnalysis)
		r.Get("/stats", a.stats)
	})

	return r
}

func (a *App) createAnalysis(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return
	}
	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "url is required"})
		return
	}

	record, err := a.service.AnalyzeURL(r.Context(), req.URL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

func (a *App) createBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URLs        []string `json:"urls"`
		Concurrency int      `json:"concurrency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return
	}
	if len(req.URLs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "urls is required"})
		return
	}
	if req.Concurrency < 1 {
		req.Concurrency = defaultBatchConcurrency
	}

	records, err := a.service.AnalyzeBatch(r.Context(), req.URLs, req.Concurrency)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"count": len(records), "results": records})
}

func (a *App) listAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxListLimit)
	}

	var (
		records []domain.AnalysisRecord
		err     error
	)
	if raw := r.URL.Query().Get("verdict"); raw != "" {
		verdict, perr := domain.ParseVerdict(raw)
		if perr != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": perr.Error()})
			return
		}
		records, err = a.service.ByVerdict(r.Context(), verdict, limit)
	} else {
		records, err = a.service.Recent(r.Context(), limit)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"count": len(records), "results": records})
}

func (a *App) getAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid analysis id"})
		return
	}

	record, err := a.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if record == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "analysis not found"})
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (a *App) stats(w http.ResponseWriter, r *http.Request) {
	counts, err := a.service.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	// Zero-fill so every verdict key is present in the response
	verdicts := map[domain.Verdict]int{
		domain.VerdictSafe:       0,
		domain.VerdictSuspicious: 0,
		domain.VerdictFraudulent: 0,
	}
	total := 0
	for verdict, count := range counts {
		verdicts[verdict] = count
		total += count
	}

	writeJSON(w, http.StatusOK, map[string]any{"total": total, "verdicts": verdicts})
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, application.ErrNoStorage) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(s))
}

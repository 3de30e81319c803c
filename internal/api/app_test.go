package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetsec/url-security/internal/application"
	"github.com/vetsec/url-security/internal/domain"
	"github.com/vetsec/url-security/internal/domain/heuristics"
	"github.com/vetsec/url-security/internal/ports"
)

// memStore is an in-memory ports.Storage for handler tests
type memStore struct {
	mu      sync.Mutex
	records []domain.AnalysisRecord
}

var _ ports.Storage = (*memStore)(nil)

func (m *memStore) CreateAnalysis(_ context.Context, record *domain.AnalysisRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *record)
	return nil
}

func (m *memStore) GetAnalysis(_ context.Context, id uuid.UUID) (*domain.AnalysisRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id {
			record := m.records[i]
			return &record, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListRecent(_ context.Context, limit int) ([]domain.AnalysisRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := make([]domain.AnalysisRecord, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(records) < limit; i-- {
		records = append(records, m.records[i])
	}
	return records, nil
}

func (m *memStore) ListByVerdict(_ context.Context, verdict domain.Verdict, limit int) ([]domain.AnalysisRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := make([]domain.AnalysisRecord, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(records) < limit; i-- {
		if m.records[i].Verdict == verdict {
			records = append(records, m.records[i])
		}
	}
	return records, nil
}

func (m *memStore) CountByVerdict(_ context.Context) (map[domain.Verdict]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[domain.Verdict]int)
	for _, record := range m.records {
		counts[record.Verdict]++
	}
	return counts, nil
}

func (m *memStore) Close() error { return nil }

func newTestApp(t *testing.T) (http.Handler, *memStore) {
	t.Helper()

	store := &memStore{}
	service := application.NewAnalysisService(store, heuristics.NewEngine(heuristics.DefaultLists()))
	return NewApp(service).Router(), store
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	h, _ := newTestApp(t)

	rr := doRequest(t, h, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok\n", rr.Body.String())
}

func TestCreateAnalysis(t *testing.T) {
	h, store := newTestApp(t)

	rr := doRequest(t, h, http.MethodPost, "/api/v1/analyses", `{"url":"http://secure-login.xyz"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var record domain.AnalysisRecord
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&record))

	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, "http://secure-login.xyz", record.URL)
	assert.Equal(t, 7, record.Score)
	assert.Equal(t, domain.VerdictSuspicious, record.Verdict)
	assert.Len(t, record.Reasons, 3)
	assert.Len(t, store.records, 1)
}

func TestCreateAnalysis_BadRequests(t *testing.T) {
	h, _ := newTestApp(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "Invalid JSON", body: `{"url":`},
		{name: "Missing url field", body: `{}`},
		{name: "Empty url", body: `{"url":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, h, http.MethodPost, "/api/v1/analyses", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestCreateBatch(t *testing.T) {
	h, store := newTestApp(t)

	body := `{"urls":["https://www.google.com","http://paypa1-secure-login.tk/verify?account=update"]}`
	rr := doRequest(t, h, http.MethodPost, "/api/v1/analyses/batch", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Count   int                     `json:"count"`
		Results []domain.AnalysisRecord `json:"results"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))

	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "https://www.google.com", resp.Results[0].URL)
	assert.Equal(t, domain.VerdictSafe, resp.Results[0].Verdict)
	assert.Equal(t, domain.VerdictFraudulent, resp.Results[1].Verdict)
	assert.Len(t, store.records, 2)
}

func TestCreateBatch_EmptyURLs(t *testing.T) {
	h, _ := newTestApp(t)

	rr := doRequest(t, h, http.MethodPost, "/api/v1/analyses/batch", `{"urls":[]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListAnalyses(t *testing.T) {
	h, _ := newTestApp(t)

	for _, url := range []string{
		"https://www.google.com",
		"http://gooogle.com",
		"http://paypa1-secure-login.tk/verify?account=update",
	} {
		rr := doRequest(t, h, http.MethodPost, "/api/v1/analyses", `{"url":"`+url+`"}`)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	t.Run("All recent", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/v1/analyses", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Count   int                     `json:"count"`
			Results []domain.AnalysisRecord `json:"results"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, 3, resp.Count)
	})

	t.Run("Limit caps the result set", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/v1/analyses?limit=2", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, 2, resp.Count)
	})

	t.Run("Verdict filter", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/v1/analyses?verdict=fraudulent", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Results []domain.AnalysisRecord `json:"results"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Len(t, resp.Results, 1)
		assert.Equal(t, domain.VerdictFraudulent, resp.Results[0].Verdict)
	})

	t.Run("Unknown verdict", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/v1/analyses?verdict=scary", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Invalid limit", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/v1/analyses?limit=minus", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetAnalysis(t *testing.T) {
	h, _ := newTestApp(t)

	rr := doRequest(t, h, http.MethodPost, "/api/v1/analyses", `{"url":"http://gooogle.com"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created domain.AnalysisRecord
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))

	t.Run("Found", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/v1/analyses/"+created.ID.String(), "")
		require.Equal(t, http.StatusOK, rr.Code)

		var record domain.AnalysisRecord
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&record))
		assert.Equal(t, created.ID, record.ID)
		assert.Equal(t, "http://gooogle.com", record.URL)
	})

	t.Run("Unknown ID", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/v1/analyses/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Malformed ID", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/v1/analyses/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestStats(t *testing.T) {
	h, _ := newTestApp(t)

	for _, url := range []string{"https://www.google.com", "http://gooogle.com"} {
		rr := doRequest(t, h, http.MethodPost, "/api/v1/analyses", `{"url":"`+url+`"}`)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := doRequest(t, h, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Total    int            `json:"total"`
		Verdicts map[string]int `json:"verdicts"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.Verdicts["safe"])
	assert.Equal(t, 1, resp.Verdicts["suspicious"])

	// Zero-filled even when nothing is fraudulent yet
	count, ok := resp.Verdicts["fraudulent"]
	assert.True(t, ok)
	assert.Equal(t, 0, count)
}

func TestQueriesWithoutStorage(t *testing.T) {
	service := application.NewAnalysisService(nil, heuristics.NewEngine(heuristics.DefaultLists()))
	h := NewApp(service).Router()

	rr := doRequest(t, h, http.MethodGet, "/api/v1/analyses", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venture-feed/internal/domain/entity"
	ingestUC "venture-feed/internal/usecase/ingest"
	"venture-feed/internal/usecase/merge"
)

/* ───────── モック実装 ───────── */

type stubRunner struct {
	mu    sync.Mutex
	kinds []ingestUC.Kind
	stats *ingestUC.RunStats
	err   error
}

func (s *stubRunner) Run(_ context.Context, kind ingestUC.Kind) (*ingestUC.RunStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kinds = append(s.kinds, kind)
	return s.stats, s.err
}

type stubUpdater struct {
	got     []merge.CofounderUpdate
	updated int
	err     error
}

func (s *stubUpdater) SetCofounderLinkedIns(_ context.Context, updates []merge.CofounderUpdate) (int, error) {
	s.got = updates
	return s.updated, s.err
}

/* ───────── ヘルパ ───────── */

func newMux(runner Runner, updater CofounderUpdater, secret string) *http.ServeMux {
	mux := http.NewServeMux()
	Register(mux, runner, updater, secret)
	return mux
}

func post(mux http.Handler, path, body, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

/* ───────── テスト ───────── */

func TestRunHandler_Success(t *testing.T) {
	runner := &stubRunner{stats: &ingestUC.RunStats{Kind: ingestUC.KindNews, Fetched: 12, Ingested: 5, StartupsCreated: 2}}
	rec := post(newMux(runner, &stubUpdater{}, ""), "/ingest/news", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []ingestUC.Kind{ingestUC.KindNews}, runner.kinds)

	var got ingestUC.RunStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 5, got.Ingested)
	assert.Equal(t, 2, got.StartupsCreated)
}

func TestRunHandler_AllKindsRoute(t *testing.T) {
	runner := &stubRunner{stats: &ingestUC.RunStats{}}
	mux := newMux(runner, &stubUpdater{}, "")
	for _, k := range ingestUC.Kinds() {
		rec := post(mux, "/ingest/"+string(k), "", "")
		assert.Equal(t, http.StatusOK, rec.Code, k)
	}
	assert.Equal(t, ingestUC.Kinds(), runner.kinds)
}

func TestRunHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"unknown kind", "/ingest/podcasts", nil, http.StatusBadRequest, "unknown ingestion kind"},
		{"run in progress", "/ingest/research", ingestUC.ErrRunInProgress, http.StatusConflict, "ingestion run already in progress"},
		{"run failure", "/ingest/accelerators", errors.New("list articles: sk-ant-api03-leak"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &stubRunner{err: tt.err}
			rec := post(newMux(runner, &stubUpdater{}, ""), tt.path, "", "")
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
			assert.NotContains(t, rec.Body.String(), "leak")
		})
	}
}

func TestRunHandler_UnknownKindDoesNotRun(t *testing.T) {
	runner := &stubRunner{}
	post(newMux(runner, &stubUpdater{}, ""), "/ingest/podcasts", "", "")
	assert.Empty(t, runner.kinds)
}

func TestRequireSecret(t *testing.T) {
	tests := []struct {
		name     string
		auth     string
		wantCode int
	}{
		{"correct bearer", "Bearer s3cret", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong secret", "Bearer nope", http.StatusUnauthorized},
		{"missing scheme", "s3cret", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &stubRunner{stats: &ingestUC.RunStats{}}
			rec := post(newMux(runner, &stubUpdater{}, "s3cret"), "/ingest/events", "", tt.auth)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusUnauthorized {
				assert.Empty(t, runner.kinds)
				assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
			}
		})
	}
}

func TestRegister_GetNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newMux(&stubRunner{}, &stubUpdater{}, "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ingest/news", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCofounderHandler(t *testing.T) {
	updater := &stubUpdater{updated: 1}
	body := `{"updates":[
		{"startup_id":3,"cofounder_linkedins":[{"name":"Ada","url":"https://linkedin.com/in/ada"}]},
		{"startup_name":"acme","cofounder_linkedins":[]}
	]}`

	rec := post(newMux(&stubRunner{}, updater, ""), "/ingest/cofounder-linkedins", body, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":2,"updated":1}`, rec.Body.String())

	require.Len(t, updater.got, 2)
	assert.Equal(t, int64(3), updater.got[0].StartupID)
	assert.Equal(t, []entity.CofounderLinkedIn{{Name: "Ada", URL: "https://linkedin.com/in/ada"}}, updater.got[0].LinkedIns)
	assert.Equal(t, "acme", updater.got[1].StartupName)
}

func TestCofounderHandler_NotShadowedByKind(t *testing.T) {
	runner := &stubRunner{}
	rec := post(newMux(runner, &stubUpdater{}, ""), "/ingest/cofounder-linkedins", `{"updates":[{"startup_id":1}]}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, runner.kinds)
}

func TestCofounderHandler_BadRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"malformed", `{"updates":`, "invalid JSON body"},
		{"empty list", `{"updates":[]}`, "updates must be a non-empty array"},
		{"missing list", `{}`, "updates must be a non-empty array"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(newMux(&stubRunner{}, &stubUpdater{}, ""), "/ingest/cofounder-linkedins", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
		})
	}
}

func TestCofounderHandler_PartialFailureStillReports(t *testing.T) {
	updater := &stubUpdater{updated: 1, err: errors.New("row 2: deadlock")}
	rec := post(newMux(&stubRunner{}, updater, ""), "/ingest/cofounder-linkedins", `{"updates":[{"startup_id":1},{"startup_id":2}]}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":2,"updated":1}`, rec.Body.String())
}

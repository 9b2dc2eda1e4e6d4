package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deskscan-engine/internal/config"
	"deskscan-engine/internal/dedup"
	"deskscan-engine/internal/domain"
	"deskscan-engine/internal/events"
	"deskscan-engine/internal/scrape"
	"deskscan-engine/internal/scrape/types"
	"deskscan-engine/internal/session"
	"deskscan-engine/internal/store"
)

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "deskscan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db))

	sess, err := session.Load(context.Background(), db)
	require.NoError(t, err)

	cfgVal := &atomic.Value{}
	cfg, _ := config.NormalizeAndValidate(config.Config{})
	cfg.App.Port = 38620
	cfgVal.Store(cfg)

	stVal := &atomic.Value{}
	stVal.Store(types.ScrapeStatus{})

	return Deps{
		Sess:         sess,
		Hub:          events.NewHub(),
		CfgVal:       cfgVal,
		ScrapeStatus: stVal,
	}
}

func seed(t *testing.T, sess *session.Session) {
	t.Helper()
	_, err := sess.Cycle([]dedup.SourceBatch{
		{Source: "LinkedIn", Records: []domain.JobRecord{
			{Title: "IT Service Desk Analyst", Company: "Acme", Source: "LinkedIn", WorkMode: "Remote"},
			{Title: "Desktop Support Engineer", Company: "Globex", Source: "LinkedIn", WorkMode: "Hybrid"},
		}},
		{Source: "Naukri.com", Records: []domain.JobRecord{
			{Title: "L1 Support Engineer", Company: "Initech", Source: "Naukri.com", WorkMode: "Remote/Hybrid"},
		}},
	}, 0.85)
	require.NoError(t, err)
}

func TestJobsList(t *testing.T) {
	d := newTestDeps(t)
	seed(t, d.Sess)
	mux := NewMux(d)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/jobs", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Total int                `json:"total"`
		Jobs  []domain.JobRecord `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)
	// first-seen order survives the API boundary
	assert.Equal(t, "IT Service Desk Analyst", body.Jobs[0].Title)
}

func TestJobsListFilters(t *testing.T) {
	d := newTestDeps(t)
	seed(t, d.Sess)
	mux := NewMux(d)

	tests := []struct {
		url  string
		want int
	}{
		{"/jobs?source=naukri", 1},
		{"/jobs?work_mode=remote", 2},
		{"/jobs?q=desk", 2}, // "Service Desk" and "Desktop"
		{"/jobs?q=engineer&work_mode=hybrid", 2},
		{"/jobs?q=nomatch", 0},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.url, nil))
		require.Equal(t, http.StatusOK, rr.Code, tt.url)

		var body struct {
			Total int `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, tt.want, body.Total, tt.url)
	}
}

func TestJobsExportCSV(t *testing.T) {
	d := newTestDeps(t)
	seed(t, d.Sess)
	mux := NewMux(d)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/jobs/export", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rr.Body.String(), "IT Service Desk Analyst")
}

func TestJobsClear(t *testing.T) {
	d := newTestDeps(t)
	seed(t, d.Sess)
	mux := NewMux(d)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/jobs/clear", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Zero(t, d.Sess.Size())

	// GET on a POST-only route
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/jobs/clear", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestStats(t *testing.T) {
	d := newTestDeps(t)
	seed(t, d.Sess)
	mux := NewMux(d)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var tot session.Totals
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tot))
	assert.Equal(t, 3, tot.Total)
	assert.Equal(t, 2, tot.Sources)
}

func TestScrapeRunGuard(t *testing.T) {
	d := newTestDeps(t)
	release := make(chan struct{})
	started := make(chan struct{})
	d.RunCycle = func(ctx context.Context, cfg config.Config, sess *session.Session, progress scrape.Progress) (dedup.MergeStats, error) {
		close(started)
		<-release
		return dedup.MergeStats{TrulyNew: 1}, nil
	}
	mux := NewMux(d)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/scrape/run", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"ok":true`)
	<-started

	// second run while the first is in flight is refused
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/scrape/run", nil))
	assert.Contains(t, rr.Body.String(), "already running")

	close(release)
	require.Eventually(t, func() bool {
		return !d.ScrapeStatus.Load().(types.ScrapeStatus).Running
	}, 2*time.Second, 10*time.Millisecond)

	st := d.ScrapeStatus.Load().(types.ScrapeStatus)
	assert.Equal(t, 1, st.LastAdded)
	assert.Empty(t, st.LastError)
	assert.NotEmpty(t, st.LastOkAt)
}

func TestConfigGetAndPut(t *testing.T) {
	dir := t.TempDir()
	d := newTestDeps(t)
	d.UserCfgPath = filepath.Join(dir, "config.yml")
	d.LoadCfg = func() (config.Config, error) {
		cfg, err := config.Load(d.UserCfgPath)
		if err != nil {
			return cfg, err
		}
		out, _ := config.NormalizeAndValidate(cfg)
		return out, nil
	}
	mux := NewMux(d)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/config", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body := `{"app":{"port":38620},"dedup":{"threshold":0.9},"sources":[{"name":"linkedin","enabled":true}]}`
	req := httptest.NewRequest(http.MethodPut, "/config", strings.NewReader(body))
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	cur := d.CfgVal.Load().(config.Config)
	assert.InDelta(t, 0.9, cur.Dedup.Threshold, 1e-9)
}

func TestConfigPutRejectsBadThreshold(t *testing.T) {
	dir := t.TempDir()
	d := newTestDeps(t)
	d.UserCfgPath = filepath.Join(dir, "config.yml")
	d.LoadCfg = func() (config.Config, error) { return config.Load(d.UserCfgPath) }
	mux := NewMux(d)

	body := `{"app":{"port":38620},"dedup":{"threshold":0.5}}`
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/config", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "dedup.threshold")
}

func TestHealth(t *testing.T) {
	d := newTestDeps(t)
	mux := NewMux(d)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"ok":true`)
}

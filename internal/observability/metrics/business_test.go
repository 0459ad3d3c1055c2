package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordIngestRun(t *testing.T) {
	ok := IngestRunsTotal.WithLabelValues("news", "success")
	failed := IngestRunsTotal.WithLabelValues("news", "failure")
	okBefore, failBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordIngestRun("news", true, 3*time.Second)
	RecordIngestRun("news", false, time.Second)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failBefore+1, testutil.ToFloat64(failed))
}

func TestRecordIngestItem(t *testing.T) {
	for _, outcome := range []string{"ingested", "skipped", "classify_error", "persist_error"} {
		c := IngestItemsTotal.WithLabelValues("research", outcome)
		before := testutil.ToFloat64(c)
		RecordIngestItem("research", outcome)
		assert.Equal(t, before+1, testutil.ToFloat64(c), outcome)
	}
}

func TestRecordStartupMerge(t *testing.T) {
	c := StartupMergesTotal.WithLabelValues("accelerator", "updated")
	before := testutil.ToFloat64(c)
	RecordStartupMerge("accelerator", "updated")
	RecordStartupMerge("accelerator", "updated")
	assert.Equal(t, before+2, testutil.ToFloat64(c))
}

func TestRecordClassification(t *testing.T) {
	c := ClassificationsTotal.WithLabelValues("article", "failure")
	before := testutil.ToFloat64(c)
	RecordClassification("article", false, 200*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestRecordContentFetch(t *testing.T) {
	skipped := ContentFetchAttemptsTotal.WithLabelValues(FetchSkipped)
	before := testutil.ToFloat64(skipped)

	RecordContentFetch(FetchSuccess, 100*time.Millisecond)
	RecordContentFetch(FetchFailure, 2*time.Second)
	RecordContentFetch(FetchSkipped, 0)

	assert.Equal(t, before+1, testutil.ToFloat64(skipped))
	assert.GreaterOrEqual(t, testutil.ToFloat64(ContentFetchAttemptsTotal.WithLabelValues(FetchFailure)), 1.0)
}

func TestRecordHTTPRequest(t *testing.T) {
	c := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/startups", "200")
	before := testutil.ToFloat64(c)
	RecordHTTPRequest(http.MethodGet, "/startups", http.StatusOK, 15*time.Millisecond, 0, 512)
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestUpdateDBConnectionStats(t *testing.T) {
	UpdateDBConnectionStats(3, 7)
	assert.Equal(t, 3.0, testutil.ToFloat64(DBConnectionsInUse))
	assert.Equal(t, 7.0, testutil.ToFloat64(DBConnectionsIdle))
}

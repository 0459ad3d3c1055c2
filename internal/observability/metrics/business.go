package metrics

import (
	"strconv"
	"time"
)

// Content fetch results.
const (
	FetchSuccess = "success"
	FetchFailure = "failure"
	FetchSkipped = "skipped"
)

func status(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// RecordHTTPRequest records one served request. A non-positive size is not
// observed.
func RecordHTTPRequest(method, path string, code int, d time.Duration, reqSize int64, respSize int) {
	sc := strconv.Itoa(code)
	HTTPRequestsTotal.WithLabelValues(method, path, sc).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, sc).Observe(d.Seconds())
	if reqSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	}
	if respSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
	}
}

func RecordIngestRun(kind string, ok bool, d time.Duration) {
	IngestRunsTotal.WithLabelValues(kind, status(ok)).Inc()
	IngestRunDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func RecordIngestItem(kind, outcome string) {
	IngestItemsTotal.WithLabelValues(kind, outcome).Inc()
}

func RecordFeedFetchError(kind string) {
	FeedFetchErrors.WithLabelValues(kind).Inc()
}

func RecordStartupMerge(origin, result string) {
	StartupMergesTotal.WithLabelValues(origin, result).Inc()
}

func RecordClassification(classifier string, ok bool, d time.Duration) {
	ClassificationsTotal.WithLabelValues(classifier, status(ok)).Inc()
	ClassificationDuration.WithLabelValues(classifier).Observe(d.Seconds())
}

// RecordContentFetch counts one content fetch decision. Skipped fetches made
// no request, so their duration is not observed.
func RecordContentFetch(result string, d time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues(result).Inc()
	if result != FetchSkipped {
		ContentFetchDuration.Observe(d.Seconds())
	}
}

// UpdateDBConnectionStats mirrors sql.DBStats into the pool gauges.
func UpdateDBConnectionStats(inUse, idle int) {
	DBConnectionsInUse.Set(float64(inUse))
	DBConnectionsIdle.Set(float64(idle))
}

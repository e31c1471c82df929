package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestRecordContact(t *testing.T) {
	counter := ContactSubmissionsTotal.WithLabelValues(ContactSpam)
	before := counterValue(t, counter)
	RecordContact(ContactSpam)
	assert.Equal(t, before+1, counterValue(t, counter))
}

func TestRecordRequestUnmatchedRoute(t *testing.T) {
	counter := HTTPRequestsTotal.WithLabelValues("unmatched", http.MethodGet, "404")
	before := counterValue(t, counter)
	RecordRequest("", http.MethodGet, http.StatusNotFound, 0.01)
	assert.Equal(t, before+1, counterValue(t, counter))
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordContentLoad("post", 4)
	RecordContentSkip("post")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `inkwell_content_records{kind="post"} 4`)
	assert.Contains(t, body, "inkwell_content_skipped_total")
}

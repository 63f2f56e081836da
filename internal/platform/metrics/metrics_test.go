package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAttemptAndAssessment(t *testing.T) {
	before := testutil.ToFloat64(ModelAttempts.WithLabelValues(OutcomeRetry))
	ObserveAttempt(OutcomeRetry, 30*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(ModelAttempts.WithLabelValues(OutcomeRetry)))

	beforeA := testutil.ToFloat64(Assessments.WithLabelValues("model"))
	ObserveAssessment("model", time.Second)
	assert.Equal(t, beforeA+1, testutil.ToFloat64(Assessments.WithLabelValues("model")))

	SetInFlight(2)
	assert.Equal(t, 2.0, testutil.ToFloat64(LimiterInFlight))
	SetInFlight(0)
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveAttempt(OutcomeOK, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "creditrisk_model_attempts_total"))
	assert.True(t, strings.Contains(body, "creditrisk_limiter_in_flight"))
}

func TestObserveQueryAndRequest(t *testing.T) {
	before := testutil.ToFloat64(DBQueries.WithLabelValues("insert", "error"))
	ObserveQuery("insert", true)
	assert.Equal(t, before+1, testutil.ToFloat64(DBQueries.WithLabelValues("insert", "error")))

	beforeR := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "unmatched", "404"))
	ObserveRequest("GET", "", http.StatusNotFound)
	assert.Equal(t, beforeR+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}

package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordWrite(t *testing.T) {
	before := testutil.ToFloat64(writesCounter.WithLabelValues("user", "create", OutcomeOK))
	RecordWrite("user", "create", OutcomeOK)
	require.Equal(t, before+1, testutil.ToFloat64(writesCounter.WithLabelValues("user", "create", OutcomeOK)))
}

func TestRecordHTTPRequest_UnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsCounter.WithLabelValues("GET", "unmatched", "404"))
	RecordHTTPRequest("GET", "", 404, 5*time.Millisecond)
	require.Equal(t, before+1, testutil.ToFloat64(httpRequestsCounter.WithLabelValues("GET", "unmatched", "404")))
}

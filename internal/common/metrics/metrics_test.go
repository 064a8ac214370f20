package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveJob(t *testing.T) {
	completed := testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues("resolve-turn"))
	failed := testutil.ToFloat64(WorkerJobsFailed.WithLabelValues("submit-order", "MISSING_NAME"))

	ObserveJob("resolve-turn", "", 0.01)
	ObserveJob("submit-order", "MISSING_NAME", 0.02)

	assert.Equal(t, completed+1, testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues("resolve-turn")))
	assert.Equal(t, failed+1, testutil.ToFloat64(WorkerJobsFailed.WithLabelValues("submit-order", "MISSING_NAME")))
}

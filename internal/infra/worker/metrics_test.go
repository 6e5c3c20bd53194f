package worker

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestWorkerMetrics_RecordRun(t *testing.T) {
	before := testutil.ToFloat64(testMetrics.CollectRunsTotal.WithLabelValues("success"))
	testMetrics.RecordRun("success")
	testMetrics.RecordRun("success")
	testMetrics.RecordRun("failure")

	after := testutil.ToFloat64(testMetrics.CollectRunsTotal.WithLabelValues("success"))
	if after-before != 2 {
		t.Errorf("success runs delta = %v, want 2", after-before)
	}
	if v := testutil.ToFloat64(testMetrics.CollectRunsTotal.WithLabelValues("failure")); v < 1 {
		t.Errorf("failure runs = %v, want >= 1", v)
	}
}

func TestWorkerMetrics_RecordArticlesKept(t *testing.T) {
	before := testutil.ToFloat64(testMetrics.CollectArticlesKeptTotal)
	testMetrics.RecordArticlesKept(42)

	after := testutil.ToFloat64(testMetrics.CollectArticlesKeptTotal)
	if after-before != 42 {
		t.Errorf("articles kept delta = %v, want 42", after-before)
	}
}

func TestWorkerMetrics_RecordLastSuccess(t *testing.T) {
	testMetrics.RecordLastSuccess()
	if v := testutil.ToFloat64(testMetrics.CollectLastSuccessTimestamp); v <= 0 {
		t.Errorf("last success timestamp = %v, want > 0", v)
	}
}

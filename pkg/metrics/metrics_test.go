package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStorefrontMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStorefrontMetrics(reg)

	metrics.IncCatalogLoad("demo")
	metrics.IncOrderOutcome("accepted")
	metrics.ObserveSubmitDuration("accepted", 250*time.Millisecond)
	metrics.IncStockClamp()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "catalog_loads_total", "source", "demo"); err != nil {
		t.Fatalf("fetch catalog loads: %v", err)
	} else if got != 1 {
		t.Fatalf("expected catalog_loads_total=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "order_submissions_total", "outcome", "accepted"); err != nil {
		t.Fatalf("fetch order outcomes: %v", err)
	} else if got != 1 {
		t.Fatalf("expected order_submissions_total=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "order_submit_duration_seconds", "outcome", "accepted"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}

	if mf := findMetricFamily(mfs, "cart_stock_clamps_total"); mf == nil {
		t.Fatalf("expected cart_stock_clamps_total to be registered")
	} else if mf.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatalf("expected one stock clamp recorded")
	}
}

func TestNilRegistererIsSafe(t *testing.T) {
	metrics := NewStorefrontMetrics(nil)
	metrics.IncCatalogLoad("backend")
	metrics.IncOrderOutcome("failed")
	metrics.ObserveSubmitDuration("failed", time.Second)
	metrics.IncStockClamp()
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}

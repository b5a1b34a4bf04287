package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records catalog load and order submission outcomes.
type StorefrontMetrics struct {
	catalogLoads   *prometheus.CounterVec
	orderOutcomes  *prometheus.CounterVec
	submitDuration *prometheus.HistogramVec
	stockClamps    prometheus.Counter
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	catalogLoads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_loads_total",
		Help: "Catalog load attempts by source.",
	}, []string{"source"})
	orderOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_submissions_total",
		Help: "Order submission attempts by outcome.",
	}, []string{"outcome"})
	submitDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_submit_duration_seconds",
		Help:    "Duration of order submissions to the shop backend in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	stockClamps := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_stock_clamps_total",
		Help: "Cart quantity changes clamped to the stock ceiling.",
	})
	reg.MustRegister(catalogLoads, orderOutcomes, submitDuration, stockClamps)
	return &StorefrontMetrics{
		catalogLoads:   catalogLoads,
		orderOutcomes:  orderOutcomes,
		submitDuration: submitDuration,
		stockClamps:    stockClamps,
	}
}

// IncCatalogLoad increments the load counter for the named source
// ("backend" or "demo").
func (m *StorefrontMetrics) IncCatalogLoad(source string) {
	if m == nil || m.catalogLoads == nil {
		return
	}
	m.catalogLoads.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncOrderOutcome increments the submission counter for the named outcome.
func (m *StorefrontMetrics) IncOrderOutcome(outcome string) {
	if m == nil || m.orderOutcomes == nil {
		return
	}
	m.orderOutcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveSubmitDuration records the duration of one backend submission.
func (m *StorefrontMetrics) ObserveSubmitDuration(outcome string, duration time.Duration) {
	if m == nil || m.submitDuration == nil {
		return
	}
	m.submitDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncStockClamp counts a quantity change clamped at the line's maxQty.
func (m *StorefrontMetrics) IncStockClamp() {
	if m == nil || m.stockClamps == nil {
		return
	}
	m.stockClamps.Inc()
}

func normalizeLabel(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}

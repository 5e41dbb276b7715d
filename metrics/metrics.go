// Package metrics holds the Prometheus counters for store activity.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts store operations. A nil *Metrics or one that was never
// registered is valid and records nothing.
type Metrics struct {
	registerOnce sync.Once

	barcodesSaved     prometheus.Counter
	barcodesDuplicate prometheus.Counter
	barcodesDeleted   prometheus.Counter
	tokensIssued      prometheus.Counter
}

func New() *Metrics {
	return &Metrics{}
}

// Register creates the counters on registry. Calls after the first are
// no-ops; a nil registry leaves the metrics disabled.
func (m *Metrics) Register(registry prometheus.Registerer) {
	if m == nil || registry == nil {
		return
	}

	m.registerOnce.Do(func() {
		factory := promauto.With(registry)

		m.barcodesSaved = factory.NewCounter(prometheus.CounterOpts{
			Name: "barcode_scanner_barcodes_saved_total",
			Help: "Total number of barcodes written to the store",
		})
		m.barcodesDuplicate = factory.NewCounter(prometheus.CounterOpts{
			Name: "barcode_scanner_barcodes_duplicate_total",
			Help: "Total number of scans skipped because the barcode was already stored",
		})
		m.barcodesDeleted = factory.NewCounter(prometheus.CounterOpts{
			Name: "barcode_scanner_barcode_deletes_total",
			Help: "Total number of delete requests, single or bulk",
		})
		m.tokensIssued = factory.NewCounter(prometheus.CounterOpts{
			Name: "barcode_scanner_tokens_issued_total",
			Help: "Total number of tokens consumed",
		})
	})
}

func (m *Metrics) BarcodeSaved() {
	if m != nil && m.barcodesSaved != nil {
		m.barcodesSaved.Inc()
	}
}

func (m *Metrics) BarcodeDuplicate() {
	if m != nil && m.barcodesDuplicate != nil {
		m.barcodesDuplicate.Inc()
	}
}

func (m *Metrics) BarcodeDeleted() {
	if m != nil && m.barcodesDeleted != nil {
		m.barcodesDeleted.Inc()
	}
}

func (m *Metrics) TokenIssued() {
	if m != nil && m.tokensIssued != nil {
		m.tokensIssued.Inc()
	}
}

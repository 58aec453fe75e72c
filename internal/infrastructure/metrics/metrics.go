package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mahin/ledgercore/internal/domain"
)

// Metrics holds all Prometheus metrics. It implements usecase.MetricsRecorder.
type Metrics struct {
	// Account metrics
	AccountsCreated prometheus.Counter

	// Journal metrics
	EntriesPosted       *prometheus.CounterVec
	EntriesDeletedByRef prometheus.Counter
	BalanceRecomputes   prometheus.Counter

	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferAmount   prometheus.Histogram

	// Conversion metrics
	ConversionMisses *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgercore_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		EntriesPosted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgercore_journal_entries_posted_total",
				Help: "Total journal entries posted by kind",
			},
			[]string{"kind"},
		),
		EntriesDeletedByRef: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgercore_journal_entries_deleted_total",
			Help: "Total journal delete-by-reference operations",
		}),
		BalanceRecomputes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgercore_balance_recomputes_total",
			Help: "Total account balance recomputations from the journal",
		}),
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledgercore_transfers_created_total",
			Help: "Total number of transfers created",
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledgercore_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		ConversionMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgercore_conversion_misses_total",
				Help: "Total report conversions skipped for lack of a rate, by pair",
			},
			[]string{"pair"},
		),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgercore_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledgercore_http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// AccountCreated records an account creation.
func (m *Metrics) AccountCreated() {
	m.AccountsCreated.Inc()
}

// EntryPosted records a posted journal entry.
func (m *Metrics) EntryPosted(kind domain.EntryKind) {
	m.EntriesPosted.WithLabelValues(string(kind)).Inc()
}

// EntriesDeleted records a delete-by-reference touching count accounts.
func (m *Metrics) EntriesDeleted(count int) {
	m.EntriesDeletedByRef.Add(float64(count))
}

// TransferCreated records a transfer.
func (m *Metrics) TransferCreated() {
	m.TransfersCreated.Inc()
}

// BalanceRecomputed records a balance recomputation.
func (m *Metrics) BalanceRecomputed() {
	m.BalanceRecomputes.Inc()
}

// ConversionMiss records a skipped conversion for a currency pair.
func (m *Metrics) ConversionMiss(pair string) {
	m.ConversionMisses.WithLabelValues(pair).Inc()
}

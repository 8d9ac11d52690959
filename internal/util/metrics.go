package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PurchasesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "purchases_total",
		Help: "Total number of completed purchases",
	})

	PurchasesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "purchases_failed_total",
		Help: "Total number of rejected or failed purchases",
	}, []string{"reason"})

	PurchaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "purchase_latency_seconds",
		Help:    "Latency of the purchase workflow",
		Buckets: prometheus.DefBuckets,
	})

	CategoryDeletionsBlocked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "category_deletions_blocked_total",
		Help: "Category deletions refused because products still reference the category",
	})

	DuplicateNamesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "duplicate_product_names_rejected_total",
		Help: "Product creations refused by the duplicate-name guard",
	})

	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exports_total",
		Help: "Total number of spreadsheet exports",
	}, []string{"entity"})

	ExportLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "export_latency_seconds",
		Help:    "Latency of spreadsheet export generation",
		Buckets: prometheus.DefBuckets,
	})

	ActivityEventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "activity_events_published_total",
		Help: "Activity events published to the log sink",
	})

	ActivityEventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "activity_events_dropped_total",
		Help: "Activity events that could not be published or persisted",
	})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logins_total",
		Help: "Total number of login attempts",
	}, []string{"outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scanreport_scans_total",
		Help: "Scans submitted through the API, by outcome.",
	}, []string{"outcome"})

	batchItemsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scanreport_batch_items_enqueued_total",
		Help: "Batch scan items placed on the queue.",
	})

	reportsRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scanreport_reports_rendered_total",
		Help: "Report artifacts rendered, by format.",
	}, []string{"format"})
)

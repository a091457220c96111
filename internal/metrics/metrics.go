package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketing_events_created_total",
		Help: "Total number of events created.",
	})

	EventsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketing_events_updated_total",
		Help: "Total number of event updates applied.",
	})

	EventsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketing_events_deleted_total",
		Help: "Total number of events deleted.",
	})

	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ticketing_store_errors_total",
		Help: "Total number of backing-store failures, labelled by operation.",
	}, []string{"operation"})

	UploadAuthorizationsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketing_upload_authorizations_issued_total",
		Help: "Total number of presigned upload URLs issued.",
	})
)

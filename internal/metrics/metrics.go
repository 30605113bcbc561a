// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StructureValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "screening_structure_validations_total",
		Help: "Total number of ontology structure validations, labelled by outcome.",
	}, []string{"result"})

	StructureValidationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "screening_structure_validation_errors_total",
		Help: "Total number of validation errors reported across all validations.",
	})

	StructureValidationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "screening_structure_validation_duration_us",
		Help:    "Time to validate one ontology structure in microseconds.",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000, 25000},
	})

	StructureNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "screening_structure_nodes",
		Help:    "Number of layers and criteria per validated structure.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	EditsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "screening_edits_applied_total",
		Help: "Total number of structure edits, labelled by operation and status.",
	}, []string{"op", "status"})

	OntologiesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "screening_ontologies_saved_total",
		Help: "Total number of ontology records written.",
	})

	OntologiesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "screening_ontologies_rejected_total",
		Help: "Total number of saves refused, labelled by reason.",
	}, []string{"reason"})

	OntologiesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "screening_ontologies_deleted_total",
		Help: "Total number of ontology records deleted.",
	})

	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "screening_rpc_requests_total",
		Help: "Total number of gRPC requests, labelled by method and status code.",
	}, []string{"method", "code"})
)

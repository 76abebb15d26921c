// Package metrics registers the Prometheus counters of the material workflows
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Workflow outcomes used as the result label
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	// UploadsTotal counts upload workflow runs by result
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notespath_uploads_total",
			Help: "Total number of material uploads by result",
		},
		[]string{"result"},
	)

	// DeletesTotal counts delete workflow runs by result
	DeletesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notespath_deletes_total",
			Help: "Total number of material deletions by result",
		},
		[]string{"result"},
	)

	// OrphanedBlobsTotal counts blobs left behind without a record
	OrphanedBlobsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notespath_orphaned_blobs_total",
		Help: "Total number of stored files left without a material record",
	})

	// SubjectCacheHitsTotal counts subject suggestion cache hits
	SubjectCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notespath_subject_cache_hits_total",
		Help: "Total number of subject suggestion cache hits",
	})

	// SubjectCacheMissesTotal counts subject suggestion cache misses
	SubjectCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notespath_subject_cache_misses_total",
		Help: "Total number of subject suggestion cache misses",
	})
)

// Result maps an error to a result label
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

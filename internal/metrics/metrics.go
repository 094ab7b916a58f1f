// Package metrics records deployment outcomes as Prometheus metrics and writes
// them in the node_exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/s3deploy/internal/deploy"
)

const namespace = "s3deploy"

// Recorder holds the deployment metrics on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	stageDuration *prometheus.GaugeVec
	stageResult   *prometheus.GaugeVec
	runsTotal     *prometheus.CounterVec
	filesUploaded *prometheus.GaugeVec
	bytesUploaded *prometheus.GaugeVec
	lastSuccess   *prometheus.GaugeVec
	runDuration   *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		stageDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "stage",
				Name:      "duration_seconds",
				Help:      "Duration of each stage of the last deployment in seconds",
			},
			[]string{"bucket", "stage"},
		),
		stageResult: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "stage",
				Name:      "result",
				Help:      "Outcome of each stage of the last deployment (1 for the reported outcome)",
			},
			[]string{"bucket", "stage", "outcome"},
		),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Deployments by result",
			},
			[]string{"bucket", "result"},
		),
		filesUploaded: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "publish",
				Name:      "files",
				Help:      "Number of files uploaded by the last deployment",
			},
			[]string{"bucket"},
		),
		bytesUploaded: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "publish",
				Name:      "bytes",
				Help:      "Number of bytes uploaded by the last deployment",
			},
			[]string{"bucket"},
		),
		lastSuccess: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last successful deployment",
			},
			[]string{"bucket"},
		),
		runDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of the last deployment in seconds",
			},
			[]string{"bucket"},
		),
	}

	r.registry.MustRegister(
		r.stageDuration,
		r.stageResult,
		r.runsTotal,
		r.filesUploaded,
		r.bytesUploaded,
		r.lastSuccess,
		r.runDuration,
	)
	return r
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe records a finished deployment. finishedAt is used for the
// last-success timestamp.
func (r *Recorder) Observe(report *deploy.Report, finishedAt int64) {
	if report == nil {
		return
	}
	bucket := report.Bucket

	for _, s := range report.Stages {
		r.stageDuration.WithLabelValues(bucket, s.Name).Set(s.Duration.Seconds())
		r.stageResult.WithLabelValues(bucket, s.Name, string(s.Outcome)).Set(1)
	}

	result := "failure"
	if report.Succeeded {
		result = "success"
		r.lastSuccess.WithLabelValues(bucket).Set(float64(finishedAt))
	}
	r.runsTotal.WithLabelValues(bucket, result).Inc()
	r.filesUploaded.WithLabelValues(bucket).Set(float64(report.Files))
	r.bytesUploaded.WithLabelValues(bucket).Set(float64(report.Bytes))
	r.runDuration.WithLabelValues(bucket).Set(report.Duration.Seconds())
}

// WriteTextfile writes all metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

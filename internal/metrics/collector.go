// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Collector holds the Prometheus instruments for the vocab loader and
// the download layer.
type Collector struct {
	vocabCacheHits   *prometheus.CounterVec
	vocabCacheMisses *prometheus.CounterVec
	hashMismatches   *prometheus.CounterVec

	downloadsTotal   *prometheus.CounterVec
	downloadDuration *prometheus.HistogramVec

	logger *zap.Logger
}

// NewCollector creates a Collector and registers its instruments on the
// given registerer. A nil registerer uses the default registry.
func NewCollector(namespace string, reg prometheus.Registerer, logger *zap.Logger) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := promautoFactory{reg}

	c := &Collector{logger: logger.With(zap.String("component", "metrics"))}

	c.vocabCacheHits = factory.counterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vocab_cache_hits_total",
		Help:      "Pretrained vocab requests served from the local cache",
	}, []string{"name"})

	c.vocabCacheMisses = factory.counterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vocab_cache_misses_total",
		Help:      "Pretrained vocab requests that required a download",
	}, []string{"name"})

	c.hashMismatches = factory.counterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vocab_hash_mismatches_total",
		Help:      "SHA-1 verification failures for vocab files",
	}, []string{"name"})

	c.downloadsTotal = factory.counterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "downloads_total",
		Help:      "Completed download attempts by status",
	}, []string{"status"})

	c.downloadDuration = factory.histogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "download_duration_seconds",
		Help:      "Download duration in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	return c
}

type promautoFactory struct {
	reg prometheus.Registerer
}

func (f promautoFactory) counterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	v := prometheus.NewCounterVec(opts, labels)
	f.reg.MustRegister(v)
	return v
}

func (f promautoFactory) histogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	v := prometheus.NewHistogramVec(opts, labels)
	f.reg.MustRegister(v)
	return v
}

// RecordVocabCacheHit records a vocab request served from cache.
func (c *Collector) RecordVocabCacheHit(name string) {
	c.vocabCacheHits.WithLabelValues(name).Inc()
}

// RecordVocabCacheMiss records a vocab request that went to the network.
func (c *Collector) RecordVocabCacheMiss(name string) {
	c.vocabCacheMisses.WithLabelValues(name).Inc()
}

// RecordHashMismatch records a failed SHA-1 verification.
func (c *Collector) RecordHashMismatch(name string) {
	c.hashMismatches.WithLabelValues(name).Inc()
}

// RecordDownload records a download attempt and its duration.
func (c *Collector) RecordDownload(status string, elapsed time.Duration) {
	c.downloadsTotal.WithLabelValues(status).Inc()
	c.downloadDuration.WithLabelValues(status).Observe(elapsed.Seconds())
}

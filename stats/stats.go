/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
Package stats aggregates PHC offset measurements and exposes them to Prometheus.
*/
package stats

import (
	"errors"
	"sync"
	"time"

	"github.com/eclesh/welford"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/facebook/sysoff/sysoff"
)

// Error kinds we count separately
const (
	ErrorKindUnsupported = "unsupported"
	ErrorKindTransient   = "unavailable_transient"
	ErrorKindOther       = "other"
)

// Stats is a snapshot of aggregated measurements
type Stats struct {
	Measurements      int64
	ErrorsUnsupported int64
	ErrorsTransient   int64
	ErrorsOther       int64
	Method            sysoff.Method
	Offset            time.Duration
	Delay             time.Duration
	OffsetMean        float64
	OffsetStddev      float64
	DelayMean         float64
}

// Collector collects stats based on sysoff.Measure results
type Collector struct {
	mux    sync.Mutex
	stats  Stats
	offset *welford.Stats
	delay  *welford.Stats

	registry     *prometheus.Registry
	offsetNS     prometheus.Gauge
	delayNS      prometheus.Gauge
	offsetMean   prometheus.Gauge
	offsetStddev prometheus.Gauge
	delayMean    prometheus.Gauge
	method       prometheus.Gauge
	measurements prometheus.Counter
	errors       *prometheus.CounterVec
}

func gauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
}

// NewCollector creates a Collector with its own prometheus registry
func NewCollector() *Collector {
	c := &Collector{
		offset:       welford.New(),
		delay:        welford.New(),
		registry:     prometheus.NewRegistry(),
		offsetNS:     gauge("sysoff_offset_ns", "last offset between system clock and PHC"),
		delayNS:      gauge("sysoff_delay_ns", "last measurement uncertainty"),
		offsetMean:   gauge("sysoff_offset_mean_ns", "mean offset"),
		offsetStddev: gauge("sysoff_offset_stddev_ns", "offset standard deviation"),
		delayMean:    gauge("sysoff_delay_mean_ns", "mean measurement uncertainty"),
		method:       gauge("sysoff_method", "method used for the last measurement"),
		measurements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sysoff_measurements_total",
			Help: "successful measurements",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sysoff_errors_total",
			Help: "failed measurements by kind",
		}, []string{"kind"}),
	}
	c.registry.MustRegister(
		c.offsetNS, c.delayNS, c.offsetMean, c.offsetStddev, c.delayMean,
		c.method, c.measurements, c.errors,
	)
	return c
}

// Registry returns prometheus registry all metrics are registered in
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, sysoff.ErrUnsupportedByDevice):
		return ErrorKindUnsupported
	case errors.Is(err, sysoff.ErrTemporarilyUnavailable):
		return ErrorKindTransient
	default:
		return ErrorKindOther
	}
}

// Update processes result of Measure call and updates Stats
func (c *Collector) Update(res sysoff.Result, err error) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if err != nil {
		kind := errorKind(err)
		switch kind {
		case ErrorKindUnsupported:
			c.stats.ErrorsUnsupported++
		case ErrorKindTransient:
			c.stats.ErrorsTransient++
		default:
			c.stats.ErrorsOther++
		}
		c.errors.WithLabelValues(kind).Inc()
		return
	}
	c.offset.Add(float64(res.Offset))
	c.delay.Add(float64(res.Delay))

	c.stats.Measurements++
	c.stats.Method = res.Method
	c.stats.Offset = res.Offset
	c.stats.Delay = res.Delay
	c.stats.OffsetMean = c.offset.Mean()
	c.stats.OffsetStddev = c.offset.Stddev()
	c.stats.DelayMean = c.delay.Mean()

	c.measurements.Inc()
	c.method.Set(float64(res.Method))
	c.offsetNS.Set(float64(res.Offset))
	c.delayNS.Set(float64(res.Delay))
	c.offsetMean.Set(c.stats.OffsetMean)
	c.offsetStddev.Set(c.stats.OffsetStddev)
	c.delayMean.Set(c.stats.DelayMean)
}

// Stats returns collected stats
func (c *Collector) Stats() Stats {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.stats
}

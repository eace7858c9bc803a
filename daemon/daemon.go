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

package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	sddaemon "github.com/coreos/go-systemd/daemon"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/facebook/sysoff/stats"
	"github.com/facebook/sysoff/sysoff"
)

// Daemon periodically measures offset between PHC and system clock
type Daemon struct {
	cfg      *Config
	dev      sysoff.DeviceController
	stats    *stats.Collector
	method   sysoff.Method
	failures int
}

// New creates a Daemon for an already opened device
func New(cfg *Config, dev sysoff.DeviceController, collector *stats.Collector) *Daemon {
	return &Daemon{cfg: cfg, dev: dev, stats: collector}
}

// Method returns the method measurements are taken with
func (d *Daemon) Method() sysoff.Method {
	return d.method
}

// Setup selects the measurement method, either from config or by probing the device
func (d *Daemon) Setup() error {
	if d.cfg.Method != sysoff.MethodNone {
		if d.cfg.Method == sysoff.MethodCross {
			if err := sysoff.EnableCrossTimestamps(d.dev); err != nil {
				return fmt.Errorf("enabling cross timestamps: %w", err)
			}
		}
		d.method = d.cfg.Method
		log.Infof("using configured method %v", d.method)
		return nil
	}
	method, err := sysoff.Probe(d.dev, d.cfg.Samples)
	if err != nil {
		if d.cfg.Fallback && (errors.Is(err, sysoff.ErrUnavailable) || errors.Is(err, sysoff.ErrSampleCountTooLarge)) {
			log.Warningf("Falling back to clock_gettime method: %v", err)
			d.method = sysoff.MethodClockGettime
			return nil
		}
		return fmt.Errorf("probing PHC: %w", err)
	}
	d.method = method
	log.Infof("probed method %v", method)
	return nil
}

// Tick takes one measurement. Transient failures keep the method,
// but too many of them in a row make us probe the device again.
func (d *Daemon) Tick() (sysoff.Result, error) {
	res, err := sysoff.Measure(d.dev, d.method, d.cfg.Samples)
	d.stats.Update(res, err)
	if err == nil {
		d.failures = 0
		log.Debugf("method: %v, offset: %v, delay: %v", res.Method, res.Offset, res.Delay)
		return res, nil
	}
	if !errors.Is(err, sysoff.ErrTemporarilyUnavailable) {
		log.Errorf("measuring offset with %v: %v", d.method, err)
		return res, err
	}
	d.failures++
	log.Debugf("measuring offset with %v: %v (%d in a row)", d.method, err, d.failures)
	if d.cfg.ReprobeAfter > 0 && d.failures >= d.cfg.ReprobeAfter {
		log.Warningf("%d consecutive failures with %v, probing again", d.failures, d.method)
		d.failures = 0
		if serr := d.Setup(); serr != nil {
			log.Errorf("probing again: %v", serr)
		}
	}
	return res, err
}

func (d *Daemon) runMeasurements(ctx context.Context) error {
	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()
	for {
		_, _ = d.Tick()
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Run a daemon until ctx is done
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Setup(); err != nil {
		return err
	}
	if sent, err := sddaemon.SdNotify(false, sddaemon.SdNotifyReady); err != nil {
		log.Warningf("notifying systemd: %v", err)
	} else if sent {
		log.Debug("notified systemd we are ready")
	}

	eg, ctx := errgroup.WithContext(ctx)
	if d.cfg.MonitoringPort > 0 {
		srv := stats.NewServer(d.stats, d.cfg.MonitoringPort)
		eg.Go(func() error {
			return srv.Start(ctx)
		})
	}
	eg.Go(func() error {
		return d.runMeasurements(ctx)
	})
	return eg.Wait()
}

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

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/sysoff/stats"
	"github.com/facebook/sysoff/sysoff"
)

// flags
var (
	measureMethodFlag   sysoff.Method
	measureCountFlag    int
	measureIntervalFlag time.Duration
	measureJSONFlag     bool
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Measure offset between PHC and system clock",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		f, err := openDevice(deviceFlag, ifaceFlag)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		opts := measureOpts{
			method:   measureMethodFlag,
			samples:  samplesFlag,
			count:    measureCountFlag,
			interval: measureIntervalFlag,
			json:     measureJSONFlag,
		}
		if err := measureRun(os.Stdout, sysoff.FromFile(f), opts); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	RootCmd.AddCommand(measureCmd)
	addDeviceFlags(measureCmd)
	flags := measureCmd.Flags()
	flags.VarP(&measureMethodFlag, "method", "m", fmt.Sprintf("method to measure offset with, probe if not set: %v", sysoff.SupportedMethods))
	flags.IntVarP(&measureCountFlag, "count", "c", 1, "number of measurements")
	flags.DurationVarP(&measureIntervalFlag, "interval", "I", time.Second, "interval between measurements")
	flags.BoolVarP(&measureJSONFlag, "json", "j", false, "produce json output")
}

type measureOpts struct {
	method   sysoff.Method
	samples  int
	count    int
	interval time.Duration
	json     bool
}

type measurementJSON struct {
	Method      string `json:"method"`
	OffsetNS    int64  `json:"offset_ns"`
	DelayNS     int64  `json:"delay_ns"`
	TimestampNS int64  `json:"timestamp_ns"`
}

// selectMethod picks the method like a long running caller would, falling back to clock_gettime
func selectMethod(dev sysoff.DeviceController, method sysoff.Method, samples int) (sysoff.Method, error) {
	switch method {
	case sysoff.MethodNone:
		probed, err := sysoff.Probe(dev, samples)
		if errors.Is(err, sysoff.ErrUnavailable) || errors.Is(err, sysoff.ErrSampleCountTooLarge) {
			log.Warningf("Falling back to clock_gettime method: %v", err)
			return sysoff.MethodClockGettime, nil
		}
		return probed, err
	case sysoff.MethodCross:
		return method, sysoff.EnableCrossTimestamps(dev)
	}
	return method, nil
}

func printResult(w io.Writer, res sysoff.Result, asJSON bool) error {
	if asJSON {
		str, err := json.Marshal(measurementJSON{
			Method:      res.Method.String(),
			OffsetNS:    res.Offset.Nanoseconds(),
			DelayNS:     res.Delay.Nanoseconds(),
			TimestampNS: res.Timestamp.UnixNano(),
		})
		if err != nil {
			return fmt.Errorf("marshaling json: %w", err)
		}
		fmt.Fprintln(w, string(str))
		return nil
	}
	fmt.Fprintf(w, "Method: %v\n", res.Method)
	fmt.Fprintf(w, "SYS clock: %s\n", res.Timestamp)
	fmt.Fprintf(w, "Offset: %s\n", res.Offset)
	fmt.Fprintf(w, "Delay: %s\n", res.Delay)
	return nil
}

func printSummary(w io.Writer, s stats.Stats) {
	fmt.Fprintf(w, "Measurements: %d, errors: %d\n", s.Measurements, s.ErrorsUnsupported+s.ErrorsTransient+s.ErrorsOther)
	if s.Measurements > 1 {
		fmt.Fprintf(w, "Offset mean: %.1fns, stddev: %.1fns\n", s.OffsetMean, s.OffsetStddev)
		fmt.Fprintf(w, "Delay mean: %.1fns\n", s.DelayMean)
	}
}

func measureRun(w io.Writer, dev sysoff.DeviceController, opts measureOpts) error {
	method, err := selectMethod(dev, opts.method, opts.samples)
	if err != nil {
		return err
	}
	log.Debugf("measuring with %v", method)
	collector := stats.NewCollector()
	for i := 0; i < opts.count; i++ {
		if i > 0 {
			time.Sleep(opts.interval)
		}
		res, err := sysoff.Measure(dev, method, opts.samples)
		collector.Update(res, err)
		if err != nil {
			log.Warningf("measuring with %v: %v", method, err)
			continue
		}
		if err := printResult(w, res, opts.json); err != nil {
			return err
		}
	}
	s := collector.Stats()
	if !opts.json {
		printSummary(w, s)
	}
	if s.Measurements == 0 {
		return fmt.Errorf("no successful measurements with %v", method)
	}
	return nil
}

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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/sysoff/daemon"
	"github.com/facebook/sysoff/stats"
	"github.com/facebook/sysoff/sysoff"
)

var (
	runConfigFlag string
	runFlags      = daemon.Config{}
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Keep measuring PHC offset and export metrics",
	Run: func(c *cobra.Command, _ []string) {
		ConfigureVerbosity()
		setFlags := map[string]bool{}
		for _, name := range []string{"device", "iface", "samples", "interval", "method", "monitoringport"} {
			setFlags[name] = c.Flags().Changed(name)
		}
		if err := runRun(runConfigFlag, &runFlags, setFlags); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
	defaults := daemon.DefaultConfig()
	flags := runCmd.Flags()
	flags.StringVarP(&runConfigFlag, "config", "c", "", "path to the config")
	flags.StringVarP(&runFlags.Device, "device", "d", defaults.Device, "PHC device to measure")
	flags.StringVarP(&runFlags.Iface, "iface", "i", defaults.Iface, "network interface to find PHC device by")
	flags.IntVarP(&runFlags.Samples, "samples", "n", defaults.Samples, "number of samples for multi-sample methods")
	flags.DurationVarP(&runFlags.Interval, "interval", "I", defaults.Interval, "how often to measure")
	flags.VarP(&runFlags.Method, "method", "m", fmt.Sprintf("method to measure offset with, probe if not set: %v", sysoff.SupportedMethods))
	flags.IntVarP(&runFlags.MonitoringPort, "monitoringport", "p", defaults.MonitoringPort, "port to serve prometheus metrics on")
}

func runRun(cfgPath string, flags *daemon.Config, setFlags map[string]bool) error {
	cfg, err := daemon.PrepareConfig(cfgPath, flags, setFlags)
	if err != nil {
		return err
	}
	f, err := openDevice(cfg.Device, cfg.Iface)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	start := time.Now()
	d := daemon.New(cfg, sysoff.FromFile(f), stats.NewCollector())
	err = d.Run(ctx)
	log.Infof("stopped after %v", time.Since(start).Round(time.Second))
	return err
}

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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/sysoff/sysoff"
)

var probeAllFlag bool

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Find the most precise method to measure PHC offset the device supports",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		if err := probeRun(os.Stdout, deviceFlag, ifaceFlag, samplesFlag, probeAllFlag); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	RootCmd.AddCommand(probeCmd)
	addDeviceFlags(probeCmd)
	probeCmd.Flags().BoolVarP(&probeAllFlag, "all", "a", false, "try every method and print what is supported")
}

// methodSupport is an outcome of a single measurement attempt with a method
type methodSupport struct {
	method sysoff.Method
	result sysoff.Result
	err    error
}

// supportMatrix tries every method once. Cross timestamps are enabled before being read.
func supportMatrix(dev sysoff.DeviceController, samples int) []methodSupport {
	rows := []methodSupport{}
	for _, method := range sysoff.SupportedMethods {
		row := methodSupport{method: method}
		if method == sysoff.MethodCross {
			row.err = sysoff.EnableCrossTimestamps(dev)
		}
		if row.err == nil {
			row.result, row.err = sysoff.Measure(dev, method, samples)
		}
		rows = append(rows, row)
	}
	return rows
}

func supportString(err error) string {
	switch {
	case err == nil:
		return color.GreenString("yes")
	case errors.Is(err, sysoff.ErrTemporarilyUnavailable):
		return color.YellowString("no data yet")
	default:
		return color.RedString("no")
	}
}

func printSupport(w io.Writer, rows []methodSupport) error {
	table := tablewriter.NewWriter(w)
	table.Header("method", "supported", "offset", "delay", "error")
	for _, row := range rows {
		val := []string{row.method.String(), supportString(row.err)}
		if row.err != nil {
			val = append(val, "", "", row.err.Error())
		} else {
			val = append(val, row.result.Offset.String(), row.result.Delay.String(), "")
		}
		if err := table.Append(val); err != nil {
			return fmt.Errorf("adding %v to table: %w", row.method, err)
		}
	}
	return table.Render()
}

func probeRun(w io.Writer, device, iface string, samples int, all bool) error {
	f, err := openDevice(device, iface)
	if err != nil {
		return err
	}
	defer f.Close()
	dev := sysoff.FromFile(f)

	method, err := sysoff.Probe(dev, samples)
	if err != nil {
		return fmt.Errorf("probing %s: %w", f.Name(), err)
	}
	fmt.Fprintf(w, "Selected method: %v\n", method)
	if all {
		return printSupport(w, supportMatrix(dev, samples))
	}
	return nil
}

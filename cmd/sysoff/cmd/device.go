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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/facebook/sysoff/sysoff"
)

// flags shared by commands working with a device directly
var (
	deviceFlag  string
	ifaceFlag   string
	samplesFlag int
)

func addDeviceFlags(c *cobra.Command) {
	flags := c.Flags()
	flags.StringVarP(&deviceFlag, "device", "d", "/dev/ptp0", "PHC device to measure")
	flags.StringVarP(&ifaceFlag, "iface", "i", "", "network interface to find PHC device by, takes precedence over device")
	flags.IntVarP(&samplesFlag, "samples", "n", 5, fmt.Sprintf("number of samples for multi-sample methods, at most %d", sysoff.PTPMaxSamples))
}

// resolveDevice returns path to PHC device either given directly or found by network interface
func resolveDevice(device, iface string) (string, error) {
	if iface == "" {
		return device, nil
	}
	return sysoff.IfaceToPHCDevice(iface)
}

func openDevice(device, iface string) (*os.File, error) {
	path, err := resolveDevice(device, iface)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening device %q: %w", path, err)
	}
	return f, nil
}

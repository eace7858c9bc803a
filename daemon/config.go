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
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"

	"github.com/facebook/sysoff/sysoff"
)

// Config represents configuration we expect to read from file
type Config struct {
	Device         string        `yaml:"device"`          // PHC device, like /dev/ptp0
	Iface          string        `yaml:"iface"`           // network interface to find PHC device by, if device is not set
	Samples        int           `yaml:"samples"`         // how many samples multi-sample methods take
	Interval       time.Duration `yaml:"interval"`        // how often we measure
	Method         sysoff.Method `yaml:"method"`          // skip probing and use this method
	ReprobeAfter   int           `yaml:"reprobe_after"`   // probe again after that many transient failures in a row, 0 means never
	Fallback       bool          `yaml:"fallback"`        // use clock_gettime if no ioctl method works
	MonitoringPort int           `yaml:"monitoring_port"` // port to serve prometheus metrics on, 0 means disabled
}

// DefaultConfig returns Config initialized with default values
func DefaultConfig() *Config {
	return &Config{
		Device:         "/dev/ptp0",
		Samples:        5,
		Interval:       time.Second,
		ReprobeAfter:   10,
		Fallback:       true,
		MonitoringPort: 4271,
	}
}

// Validate makes sure config is valid
func (c *Config) Validate() error {
	if c.Device == "" && c.Iface == "" {
		return fmt.Errorf("bad config: 'device' or 'iface' must be specified")
	}
	if c.Samples <= 0 {
		return fmt.Errorf("bad config: 'samples' must be >0")
	}
	if (c.Method == sysoff.MethodExtended || c.Method == sysoff.MethodBasic) && c.Samples > sysoff.PTPMaxSamples {
		return fmt.Errorf("bad config: 'samples' must be at most %d for %v", sysoff.PTPMaxSamples, c.Method)
	}
	if c.Interval <= 0 || c.Interval > time.Minute {
		return fmt.Errorf("bad config: 'interval' must be between 0 and 1 minute")
	}
	if c.ReprobeAfter < 0 {
		return fmt.Errorf("bad config: 'reprobe_after' must be 0 or positive")
	}
	if c.MonitoringPort < 0 {
		return fmt.Errorf("bad config: 'monitoring_port' must be 0 or positive")
	}
	return nil
}

// ReadConfig reads config and unmarshals it from yaml into Config
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := DefaultConfig()
	err = yaml.UnmarshalStrict(data, c)
	return c, err
}

// PrepareConfig prepares final version of config based on defaults, CLI flags and on-disk config, and validates resulting config
func PrepareConfig(cfgPath string, flags *Config, setFlags map[string]bool) (*Config, error) {
	cfg := DefaultConfig()
	var err error
	warn := func(name string) {
		log.Warningf("overriding %s from CLI flag", name)
	}
	if cfgPath != "" {
		cfg, err = ReadConfig(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("reading config from %q: %w", cfgPath, err)
		}
	}
	if setFlags["device"] {
		warn("device")
		cfg.Device = flags.Device
	}
	if setFlags["iface"] {
		warn("iface")
		cfg.Iface = flags.Iface
		if !setFlags["device"] {
			cfg.Device = ""
		}
	}
	if setFlags["samples"] {
		warn("samples")
		cfg.Samples = flags.Samples
	}
	if setFlags["interval"] {
		warn("interval")
		cfg.Interval = flags.Interval
	}
	if setFlags["method"] {
		warn("method")
		cfg.Method = flags.Method
	}
	if setFlags["monitoringport"] {
		warn("monitoringport")
		cfg.MonitoringPort = flags.MonitoringPort
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	log.Debugf("config: %+v", cfg)
	return cfg, nil
}

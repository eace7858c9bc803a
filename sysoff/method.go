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

package sysoff

import (
	"fmt"
	"strings"
)

// Method is a way to measure offset between PHC and system clock
type Method int

// Methods ordered by precision, best first.
// MethodClockGettime is a software fallback and is never selected by Probe.
const (
	MethodNone Method = iota
	MethodCross
	MethodPrecise
	MethodExtended
	MethodBasic
	MethodClockGettime
)

// ProbeOrder is the order in which Probe tries methods once cross timestamps can't be enabled
var ProbeOrder = []Method{MethodPrecise, MethodExtended, MethodBasic}

var methodToString = map[Method]string{
	MethodNone:         "none",
	MethodCross:        "ioctl_PTP_CROSSTS_REQUEST",
	MethodPrecise:      "ioctl_PTP_SYS_OFFSET_PRECISE",
	MethodExtended:     "ioctl_PTP_SYS_OFFSET_EXTENDED",
	MethodBasic:        "ioctl_PTP_SYS_OFFSET",
	MethodClockGettime: "syscall_clock_gettime",
}

var methodAliases = map[string]Method{
	"":              MethodNone,
	"auto":          MethodNone,
	"cross":         MethodCross,
	"precise":       MethodPrecise,
	"extended":      MethodExtended,
	"basic":         MethodBasic,
	"clock_gettime": MethodClockGettime,
}

// SupportedMethods lists all methods by their full names
var SupportedMethods = []Method{MethodCross, MethodPrecise, MethodExtended, MethodBasic, MethodClockGettime}

func (m Method) String() string {
	if s, ok := methodToString[m]; ok {
		return s
	}
	return fmt.Sprintf("unknown(%d)", int(m))
}

// ParseMethod accepts either the full name or a short alias. Empty and "auto" mean MethodNone.
func ParseMethod(s string) (Method, error) {
	s = strings.TrimSpace(s)
	if m, ok := methodAliases[strings.ToLower(s)]; ok {
		return m, nil
	}
	for m, name := range methodToString {
		if name == s {
			return m, nil
		}
	}
	return MethodNone, fmt.Errorf("%w: %q", ErrInvalidStrategy, s)
}

// Set implements pflag.Value
func (m *Method) Set(s string) error {
	parsed, err := ParseMethod(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value
func (m *Method) Type() string {
	return "method"
}

// UnmarshalYAML implements yaml.Unmarshaler
func (m *Method) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return m.Set(s)
}

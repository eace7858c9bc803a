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
	"testing"

	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

func TestMethodString(t *testing.T) {
	require.Equal(t, "ioctl_PTP_CROSSTS_REQUEST", MethodCross.String())
	require.Equal(t, "ioctl_PTP_SYS_OFFSET_PRECISE", MethodPrecise.String())
	require.Equal(t, "ioctl_PTP_SYS_OFFSET_EXTENDED", MethodExtended.String())
	require.Equal(t, "ioctl_PTP_SYS_OFFSET", MethodBasic.String())
	require.Equal(t, "syscall_clock_gettime", MethodClockGettime.String())
	require.Equal(t, "none", MethodNone.String())
	require.Equal(t, "unknown(42)", Method(42).String())
}

func TestParseMethod(t *testing.T) {
	cases := map[string]Method{
		"":                              MethodNone,
		"auto":                          MethodNone,
		"Cross":                         MethodCross,
		"precise":                       MethodPrecise,
		" extended ":                    MethodExtended,
		"basic":                         MethodBasic,
		"clock_gettime":                 MethodClockGettime,
		"ioctl_PTP_SYS_OFFSET":          MethodBasic,
		"ioctl_PTP_SYS_OFFSET_EXTENDED": MethodExtended,
		"syscall_clock_gettime":         MethodClockGettime,
	}
	for in, want := range cases {
		got, err := ParseMethod(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseMethod("sundial")
	require.ErrorIs(t, err, ErrInvalidStrategy)
}

func TestMethodSet(t *testing.T) {
	var m Method
	require.NoError(t, m.Set("precise"))
	require.Equal(t, MethodPrecise, m)
	require.Error(t, m.Set("nope"))
	require.Equal(t, MethodPrecise, m)
	require.Equal(t, "method", m.Type())
}

func TestMethodYAML(t *testing.T) {
	var c struct {
		Method Method `yaml:"method"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("method: extended\n"), &c))
	require.Equal(t, MethodExtended, c.Method)
	require.Error(t, yaml.Unmarshal([]byte("method: bogus\n"), &c))
}

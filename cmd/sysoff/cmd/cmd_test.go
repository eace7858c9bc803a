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
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/facebook/sysoff/sysoff"
)

var errRejected = errors.New("operation not supported")

func preciseReading() *sysoff.PTPSysOffsetPrecise {
	return &sysoff.PTPSysOffsetPrecise{
		Device:      sysoff.PTPClockTime{Sec: 100},
		SysRealTime: sysoff.PTPClockTime{Sec: 100, NSec: 42},
	}
}

func extendedReading() *sysoff.PTPSysOffsetExtended {
	return &sysoff.PTPSysOffsetExtended{
		NSamples: 1,
		TS: [sysoff.PTPMaxSamples][3]sysoff.PTPClockTime{
			{{Sec: 10, NSec: 100}, {Sec: 10, NSec: 50}, {Sec: 10, NSec: 200}},
		},
	}
}

func TestResolveDevice(t *testing.T) {
	path, err := resolveDevice("/dev/ptp3", "")
	require.NoError(t, err)
	require.Equal(t, "/dev/ptp3", path)
}

func TestMeasureRunText(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev := sysoff.NewMockDeviceController(ctrl)
	dev.EXPECT().ReadSysoffPrecise().Return(preciseReading(), nil).Times(2)

	var out bytes.Buffer
	err := measureRun(&out, dev, measureOpts{method: sysoff.MethodPrecise, samples: 5, count: 2})
	require.NoError(t, err)
	require.Contains(t, out.String(), "Method: ioctl_PTP_SYS_OFFSET_PRECISE\n")
	require.Contains(t, out.String(), "Offset: 42ns\n")
	require.Contains(t, out.String(), "Measurements: 2, errors: 0\n")
	require.Contains(t, out.String(), "Offset mean: 42.0ns, stddev: 0.0ns\n")
}

func TestMeasureRunJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev := sysoff.NewMockDeviceController(ctrl)
	gomock.InOrder(
		dev.EXPECT().RequestCrossTimestamps(gomock.Any()).Return(errRejected),
		dev.EXPECT().ReadSysoffPrecise().Return(preciseReading(), nil),
		dev.EXPECT().ReadSysoffPrecise().Return(preciseReading(), nil),
	)

	var out bytes.Buffer
	err := measureRun(&out, dev, measureOpts{samples: 5, count: 1, json: true})
	require.NoError(t, err)
	require.Equal(t, `{"method":"ioctl_PTP_SYS_OFFSET_PRECISE","offset_ns":42,"delay_ns":0,"timestamp_ns":100000000042}`+"\n", out.String())
}

func TestMeasureRunFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev := sysoff.NewMockDeviceController(ctrl)
	gomock.InOrder(
		dev.EXPECT().RequestCrossTimestamps(gomock.Any()).Return(errRejected),
		dev.EXPECT().ReadSysoffPrecise().Return(nil, errRejected),
		dev.EXPECT().ReadSysoffExtended(uint32(1)).Return(nil, errRejected),
		dev.EXPECT().ReadSysoff(uint32(1)).Return(nil, errRejected),
		dev.EXPECT().ReadSysoffClockGettime(uint32(1)).Return(extendedReading(), nil),
	)

	var out bytes.Buffer
	err := measureRun(&out, dev, measureOpts{samples: 1, count: 1})
	require.NoError(t, err)
	require.Contains(t, out.String(), "Method: syscall_clock_gettime\n")
	require.Contains(t, out.String(), "Offset: 100ns\n")
	require.Contains(t, out.String(), "Delay: 100ns\n")
}

func TestMeasureRunAllFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev := sysoff.NewMockDeviceController(ctrl)
	dev.EXPECT().ReadSysoff(uint32(5)).Return(nil, errRejected).Times(3)

	var out bytes.Buffer
	err := measureRun(&out, dev, measureOpts{method: sysoff.MethodBasic, samples: 5, count: 3, interval: time.Millisecond})
	require.Error(t, err)
	require.Contains(t, out.String(), "Measurements: 0, errors: 3\n")
}

func TestMeasureRunCrossEnableFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev := sysoff.NewMockDeviceController(ctrl)
	dev.EXPECT().RequestCrossTimestamps(gomock.Any()).Return(errRejected)

	var out bytes.Buffer
	err := measureRun(&out, dev, measureOpts{method: sysoff.MethodCross, samples: 5, count: 1})
	require.ErrorIs(t, err, sysoff.ErrUnsupportedByDevice)
	require.Empty(t, out.String())
}

func TestSupportMatrix(t *testing.T) {
	ctrl := gomock.NewController(t)
	dev := sysoff.NewMockDeviceController(ctrl)
	dev.EXPECT().RequestCrossTimestamps(gomock.Any()).Return(nil)
	dev.EXPECT().PollEvents(0).Return(false, nil)
	dev.EXPECT().ReadSysoffPrecise().Return(preciseReading(), nil)
	dev.EXPECT().ReadSysoffExtended(uint32(5)).Return(nil, errRejected)
	dev.EXPECT().ReadSysoff(uint32(5)).Return(nil, errRejected)
	dev.EXPECT().ReadSysoffClockGettime(uint32(5)).Return(extendedReading(), nil)

	rows := supportMatrix(dev, 5)
	require.Len(t, rows, len(sysoff.SupportedMethods))
	require.ErrorIs(t, rows[0].err, sysoff.ErrTemporarilyUnavailable)
	require.NoError(t, rows[1].err)
	require.Equal(t, 42*time.Nanosecond, rows[1].result.Offset)
	require.ErrorIs(t, rows[2].err, sysoff.ErrUnsupportedByDevice)
	require.ErrorIs(t, rows[3].err, sysoff.ErrUnsupportedByDevice)
	require.NoError(t, rows[4].err)

	color.NoColor = true
	var out bytes.Buffer
	require.NoError(t, printSupport(&out, rows))
	table := out.String()
	require.Contains(t, strings.ToUpper(table), "SUPPORTED")
	for _, method := range sysoff.SupportedMethods {
		require.Contains(t, table, method.String())
	}
	require.Contains(t, table, "no data yet")
	require.Equal(t, 2, strings.Count(table, "yes"))
}

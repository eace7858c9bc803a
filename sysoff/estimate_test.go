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
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBestSample(t *testing.T) {
	samples := []Sample{
		{T1: 0, TP: 40, T2: 100},
		{T1: 200, TP: 245, T2: 260},
	}
	got, err := BestSample(samples)
	require.NoError(t, err)
	want := Result{
		Offset:    -15,
		Timestamp: time.Unix(0, 230),
		Delay:     60,
	}
	require.Equal(t, want, got)
}

func TestBestSampleEmpty(t *testing.T) {
	_, err := BestSample(nil)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = BestSample([]Sample{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestBestSampleSingle(t *testing.T) {
	got, err := BestSample([]Sample{{T1: 1000, TP: 400, T2: 1010}})
	require.NoError(t, err)
	require.Equal(t, Result{Offset: 605, Timestamp: time.Unix(0, 1005), Delay: 10}, got)
}

func TestBestSampleTieFirstWins(t *testing.T) {
	samples := []Sample{
		{T1: 0, TP: 10, T2: 100},
		{T1: 1000, TP: 1010, T2: 1100},
		{T1: 2000, TP: 2000, T2: 2100},
	}
	got, err := BestSample(samples)
	require.NoError(t, err)
	require.Equal(t, Result{Offset: 40, Timestamp: time.Unix(0, 50), Delay: 100}, got)
}

func TestBestSampleNegativeMidpoint(t *testing.T) {
	// midpoint truncates toward zero
	got, err := BestSample([]Sample{{T1: -3, TP: 0, T2: 0}})
	require.NoError(t, err)
	require.Equal(t, time.Duration(-1), got.Offset)
	require.Equal(t, time.Unix(0, -1), got.Timestamp)
	require.Equal(t, time.Duration(3), got.Delay)
}

func TestBestSampleMinimalWindow(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 100; round++ {
		n := 1 + r.Intn(PTPMaxSamples)
		samples := make([]Sample, n)
		start := r.Int63n(1 << 50)
		for i := range samples {
			t1 := start + int64(i)*1000
			t2 := t1 + 1 + r.Int63n(50)
			samples[i] = Sample{T1: t1, TP: t1 + r.Int63n(1<<40), T2: t2}
		}
		best := 0
		for i, s := range samples {
			if s.T2-s.T1 < samples[best].T2-samples[best].T1 {
				best = i
			}
		}
		got, err := BestSample(samples)
		require.NoError(t, err)
		again, err := BestSample(samples)
		require.NoError(t, err)
		require.Equal(t, got, again)

		s := samples[best]
		mid := (s.T2 + s.T1) / 2
		require.Equal(t, time.Duration(s.T2-s.T1), got.Delay)
		require.Equal(t, time.Unix(0, mid), got.Timestamp)
		require.Equal(t, time.Duration(mid-s.TP), got.Offset)
	}
}

func TestBestSampleExtended(t *testing.T) {
	extended := &PTPSysOffsetExtended{
		NSamples: 3,
		TS: [PTPMaxSamples][3]PTPClockTime{
			{{Sec: 1667818190, NSec: 552297411}, {Sec: 1667818153, NSec: 552297462}, {Sec: 1667818190, NSec: 552297522}},
			{{Sec: 1667818190, NSec: 552297533}, {Sec: 1667818153, NSec: 552297582}, {Sec: 1667818190, NSec: 552297622}},
			{{Sec: 1667818190, NSec: 552297644}, {Sec: 1667818153, NSec: 552297661}, {Sec: 1667818190, NSec: 552297722}},
		},
	}
	got, err := BestSample(extended.Samples())
	require.NoError(t, err)
	want := Result{
		Timestamp: time.Unix(0, 1667818190552297683),
		Delay:     time.Duration(78),
		Offset:    time.Duration(37000000022),
	}
	require.Equal(t, want, got)
}

func TestBestSampleBasic(t *testing.T) {
	basic := &PTPSysOffset{NSamples: 2}
	basic.TS[0] = PTPClockTime{NSec: 100}
	basic.TS[1] = PTPClockTime{NSec: 1040}
	basic.TS[2] = PTPClockTime{NSec: 200}
	basic.TS[3] = PTPClockTime{NSec: 1130}
	basic.TS[4] = PTPClockTime{NSec: 260}

	require.Equal(t, []Sample{{T1: 100, TP: 1040, T2: 200}, {T1: 200, TP: 1130, T2: 260}}, basic.Samples())
	got, err := BestSample(basic.Samples())
	require.NoError(t, err)
	require.Equal(t, Result{Offset: -900, Timestamp: time.Unix(0, 230), Delay: 60}, got)
}

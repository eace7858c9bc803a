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
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewPTPClockTime(t *testing.T) {
	require.Equal(t, PTPClockTime{Sec: 1667818190, NSec: 552297411}, NewPTPClockTime(1667818190552297411))
	require.Equal(t, PTPClockTime{Sec: 0, NSec: 1000000}, NewPTPClockTime(int64(time.Millisecond)))
	require.Equal(t, PTPClockTime{}, NewPTPClockTime(0))
}

func TestNewPTPClockTimeNegative(t *testing.T) {
	// truncating division, both parts carry the sign
	require.Equal(t, PTPClockTime{Sec: 0, NSec: -1}, NewPTPClockTime(-1))
	require.Equal(t, PTPClockTime{Sec: -1, NSec: -500000000}, NewPTPClockTime(-1500000000))
	require.Equal(t, PTPClockTime{Sec: -2, NSec: 0}, NewPTPClockTime(-2000000000))
}

func TestPTPClockTimeRoundTrip(t *testing.T) {
	values := []int64{
		0, 1, -1, 999999999, -999999999, 1000000000, -1000000000,
		1667818190552297411, -1667818190552297411,
		math.MaxInt64, math.MinInt64,
	}
	for _, v := range values {
		require.Equal(t, v, NewPTPClockTime(v).Nanoseconds(), "value %d", v)
	}
}

func TestPTPClockTimeTime(t *testing.T) {
	ct := PTPClockTime{Sec: 1667818153, NSec: 552297462}
	require.Equal(t, time.Unix(1667818153, 552297462), ct.Time())
}

func TestPTPClockTimeWire(t *testing.T) {
	ct := PTPClockTime{Sec: -3, NSec: -42, Reserved: 7}
	b := make([]byte, sizeofPTPClockTime)
	ct.put(b)
	require.Equal(t, uint64(0xfffffffffffffffd), hostOrder.Uint64(b[0:]))
	require.Equal(t, uint32(0xffffffd6), hostOrder.Uint32(b[8:]))
	require.Equal(t, uint32(7), hostOrder.Uint32(b[12:]))
	require.Equal(t, ct, readPTPClockTime(b))
}

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
	"encoding/binary"
	"time"
)

const (
	nsPerSec  = int64(time.Second)
	nsPerMsec = int64(time.Millisecond)
)

// sizeofPTPClockTime is the size of struct ptp_clock_time
const sizeofPTPClockTime = 16

// PTPClockTime as defined in linux/ptp_clock.h
type PTPClockTime struct {
	Sec      int64  /* seconds */
	NSec     int32  /* nanoseconds */
	Reserved uint32 /* Reserved for future use. */
}

// NewPTPClockTime splits nanoseconds into seconds and nanoseconds.
// Division truncates toward zero, so negative values produce a negative
// NSec as well. This is what the kernel expects and what Nanoseconds inverts.
func NewPTPClockTime(ns int64) PTPClockTime {
	return PTPClockTime{
		Sec:  ns / nsPerSec,
		NSec: int32(ns % nsPerSec),
	}
}

// Nanoseconds returns the clock time as a single nanosecond count
func (t PTPClockTime) Nanoseconds() int64 {
	return t.Sec*nsPerSec + int64(t.NSec)
}

// Time converts PTPClockTime to time.Time
func (t PTPClockTime) Time() time.Time {
	return time.Unix(0, t.Nanoseconds())
}

func (t PTPClockTime) put(b []byte) {
	hostOrder.PutUint64(b[0:], uint64(t.Sec))
	hostOrder.PutUint32(b[8:], uint32(t.NSec))
	hostOrder.PutUint32(b[12:], t.Reserved)
}

func readPTPClockTime(b []byte) PTPClockTime {
	return PTPClockTime{
		Sec:      int64(hostOrder.Uint64(b[0:])),
		NSec:     int32(hostOrder.Uint32(b[8:])),
		Reserved: hostOrder.Uint32(b[12:]),
	}
}

// kernel structures are laid out in host byte order
var hostOrder binary.ByteOrder = binary.NativeEndian

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

	"golang.org/x/sys/unix"
)

// PTPMaxSamples is the maximum number of samples the kernel takes in one PTP_SYS_OFFSET* call
const PTPMaxSamples = unix.PTP_MAX_SAMPLES

// Sizes of the kernel records we exchange with the device
const (
	sizeofPTPSysOffset         = 16 + (2*PTPMaxSamples+1)*sizeofPTPClockTime
	sizeofPTPSysOffsetExtended = 16 + PTPMaxSamples*3*sizeofPTPClockTime
	sizeofPTPSysOffsetPrecise  = 3*sizeofPTPClockTime + 16
	sizeofPTPCrossTSRequest    = sizeofPTPClockTime + 16
	sizeofPTPExttsEventCross   = sizeofPTPClockTime + 16
)

// Cross timestamp event flags
const (
	// PTPEventCross marks an event record as a valid cross timestamp
	PTPEventCross uint32 = 1 << 0
	// ptpEventCrossDelayShift is where the delay in ns starts in the flags field
	ptpEventCrossDelayShift = 8
)

func checkSize(name string, b []byte, size int) error {
	if len(b) < size {
		return fmt.Errorf("%s: need %d bytes, got %d", name, size, len(b))
	}
	return nil
}

// PTPSysOffset as defined in linux/ptp_clock.h
type PTPSysOffset struct {
	NSamples uint32    /* Desired number of measurements. */
	Reserved [3]uint32 /* Reserved for future use. */
	/*
	 * Array of interleaved system/phc time stamps. The kernel
	 * will provide 2*n_samples + 1 time stamps, with the last
	 * one as a system time stamp.
	 */
	TS [2*PTPMaxSamples + 1]PTPClockTime
}

// MarshalBinary encodes PTPSysOffset into kernel layout
func (p *PTPSysOffset) MarshalBinary() ([]byte, error) {
	b := make([]byte, sizeofPTPSysOffset)
	hostOrder.PutUint32(b[0:], p.NSamples)
	for i, r := range p.Reserved {
		hostOrder.PutUint32(b[4+4*i:], r)
	}
	for i, ts := range p.TS {
		ts.put(b[16+i*sizeofPTPClockTime:])
	}
	return b, nil
}

// UnmarshalBinary decodes PTPSysOffset from kernel layout
func (p *PTPSysOffset) UnmarshalBinary(b []byte) error {
	if err := checkSize("ptp_sys_offset", b, sizeofPTPSysOffset); err != nil {
		return err
	}
	p.NSamples = hostOrder.Uint32(b[0:])
	for i := range p.Reserved {
		p.Reserved[i] = hostOrder.Uint32(b[4+4*i:])
	}
	for i := range p.TS {
		p.TS[i] = readPTPClockTime(b[16+i*sizeofPTPClockTime:])
	}
	return nil
}

// Samples returns [system, phc, system] triples from interleaved time stamps
func (p *PTPSysOffset) Samples() []Sample {
	n := min(int(p.NSamples), PTPMaxSamples)
	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		samples = append(samples, Sample{
			T1: p.TS[2*i].Nanoseconds(),
			TP: p.TS[2*i+1].Nanoseconds(),
			T2: p.TS[2*i+2].Nanoseconds(),
		})
	}
	return samples
}

// PTPSysOffsetExtended as defined in linux/ptp_clock.h
type PTPSysOffsetExtended struct {
	NSamples uint32    /* Desired number of measurements. */
	Reserved [3]uint32 /* Reserved for future use. */
	/*
	 * Array of [system, phc, system] time stamps. The kernel will provide
	 * 3*n_samples time stamps.
	 * - system time right before reading the lowest bits of the PHC timestamp
	 * - PHC time
	 * - system time immediately after reading the lowest bits of the PHC timestamp
	 */
	TS [PTPMaxSamples][3]PTPClockTime
}

// MarshalBinary encodes PTPSysOffsetExtended into kernel layout
func (p *PTPSysOffsetExtended) MarshalBinary() ([]byte, error) {
	b := make([]byte, sizeofPTPSysOffsetExtended)
	hostOrder.PutUint32(b[0:], p.NSamples)
	for i, r := range p.Reserved {
		hostOrder.PutUint32(b[4+4*i:], r)
	}
	for i, triple := range p.TS {
		for j, ts := range triple {
			ts.put(b[16+(3*i+j)*sizeofPTPClockTime:])
		}
	}
	return b, nil
}

// UnmarshalBinary decodes PTPSysOffsetExtended from kernel layout
func (p *PTPSysOffsetExtended) UnmarshalBinary(b []byte) error {
	if err := checkSize("ptp_sys_offset_extended", b, sizeofPTPSysOffsetExtended); err != nil {
		return err
	}
	p.NSamples = hostOrder.Uint32(b[0:])
	for i := range p.Reserved {
		p.Reserved[i] = hostOrder.Uint32(b[4+4*i:])
	}
	for i := range p.TS {
		for j := range p.TS[i] {
			p.TS[i][j] = readPTPClockTime(b[16+(3*i+j)*sizeofPTPClockTime:])
		}
	}
	return nil
}

// Samples returns [system, phc, system] triples
func (p *PTPSysOffsetExtended) Samples() []Sample {
	n := min(int(p.NSamples), PTPMaxSamples)
	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		samples = append(samples, Sample{
			T1: p.TS[i][0].Nanoseconds(),
			TP: p.TS[i][1].Nanoseconds(),
			T2: p.TS[i][2].Nanoseconds(),
		})
	}
	return samples
}

// PTPSysOffsetPrecise as defined in linux/ptp_clock.h
type PTPSysOffsetPrecise struct {
	Device      PTPClockTime
	SysRealTime PTPClockTime
	SysMonoRaw  PTPClockTime
	Reserved    [4]uint32 /* Reserved for future use. */
}

// MarshalBinary encodes PTPSysOffsetPrecise into kernel layout
func (p *PTPSysOffsetPrecise) MarshalBinary() ([]byte, error) {
	b := make([]byte, sizeofPTPSysOffsetPrecise)
	p.Device.put(b[0:])
	p.SysRealTime.put(b[16:])
	p.SysMonoRaw.put(b[32:])
	for i, r := range p.Reserved {
		hostOrder.PutUint32(b[48+4*i:], r)
	}
	return b, nil
}

// UnmarshalBinary decodes PTPSysOffsetPrecise from kernel layout
func (p *PTPSysOffsetPrecise) UnmarshalBinary(b []byte) error {
	if err := checkSize("ptp_sys_offset_precise", b, sizeofPTPSysOffsetPrecise); err != nil {
		return err
	}
	p.Device = readPTPClockTime(b[0:])
	p.SysRealTime = readPTPClockTime(b[16:])
	p.SysMonoRaw = readPTPClockTime(b[32:])
	for i := range p.Reserved {
		p.Reserved[i] = hostOrder.Uint32(b[48+4*i:])
	}
	return nil
}

// PTPCrossTSRequest configures periodic cross timestamp events
type PTPCrossTSRequest struct {
	Period   PTPClockTime /* Desired period between events. */
	Flags    uint32
	Reserved [3]uint32 /* Reserved for future use. */
}

// MarshalBinary encodes PTPCrossTSRequest into kernel layout
func (p *PTPCrossTSRequest) MarshalBinary() ([]byte, error) {
	b := make([]byte, sizeofPTPCrossTSRequest)
	p.Period.put(b[0:])
	hostOrder.PutUint32(b[16:], p.Flags)
	for i, r := range p.Reserved {
		hostOrder.PutUint32(b[20+4*i:], r)
	}
	return b, nil
}

// UnmarshalBinary decodes PTPCrossTSRequest from kernel layout
func (p *PTPCrossTSRequest) UnmarshalBinary(b []byte) error {
	if err := checkSize("ptp_crossts_request", b, sizeofPTPCrossTSRequest); err != nil {
		return err
	}
	p.Period = readPTPClockTime(b[0:])
	p.Flags = hostOrder.Uint32(b[16:])
	for i := range p.Reserved {
		p.Reserved[i] = hostOrder.Uint32(b[20+4*i:])
	}
	return nil
}

// PTPExttsEventCross is a single event read from the PHC when cross timestamps are enabled
type PTPExttsEventCross struct {
	T      PTPClockTime /* Time the event occurred. */
	TStamp int64        /* Peer time stamp in nanoseconds. */
	Index  uint32       /* Which channel produced the event. */
	Flags  uint32       /* Event type and delay. */
}

// MarshalBinary encodes PTPExttsEventCross into kernel layout
func (e *PTPExttsEventCross) MarshalBinary() ([]byte, error) {
	b := make([]byte, sizeofPTPExttsEventCross)
	e.T.put(b[0:])
	hostOrder.PutUint64(b[16:], uint64(e.TStamp))
	hostOrder.PutUint32(b[24:], e.Index)
	hostOrder.PutUint32(b[28:], e.Flags)
	return b, nil
}

// UnmarshalBinary decodes PTPExttsEventCross from kernel layout
func (e *PTPExttsEventCross) UnmarshalBinary(b []byte) error {
	if err := checkSize("ptp_extts_event_cross", b, sizeofPTPExttsEventCross); err != nil {
		return err
	}
	e.T = readPTPClockTime(b[0:])
	e.TStamp = int64(hostOrder.Uint64(b[16:]))
	e.Index = hostOrder.Uint32(b[24:])
	e.Flags = hostOrder.Uint32(b[28:])
	return nil
}

// Valid reports whether flags mark the event as a cross timestamp
func (e *PTPExttsEventCross) Valid() bool {
	return e.Flags&PTPEventCross != 0
}

// Delay returns the delay packed into the upper bits of flags
func (e *PTPExttsEventCross) Delay() int64 {
	return int64(e.Flags >> ptpEventCrossDelayShift)
}

// CrossFlags packs validity and delay into the flags field of a cross event
func CrossFlags(valid bool, delay uint32) uint32 {
	flags := delay << ptpEventCrossDelayShift
	if valid {
		flags |= PTPEventCross
	}
	return flags
}

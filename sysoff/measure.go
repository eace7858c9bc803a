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
	"time"

	log "github.com/sirupsen/logrus"
)

// CrossTimestampPeriod is how often the device emits cross timestamp events
const CrossTimestampPeriod = time.Duration(1 * nsPerMsec)

// crossEventsBufSize is how much we read from the device in one go
const crossEventsBufSize = 4096

func checkSamples(samples int) error {
	if samples < 1 {
		return fmt.Errorf("%w: need at least 1 sample, got %d", ErrInvalidInput, samples)
	}
	if samples > PTPMaxSamples {
		return fmt.Errorf("%w: %d exceeds kernel max readings %d", ErrSampleCountTooLarge, samples, PTPMaxSamples)
	}
	return nil
}

// SysoffFromPrecise returns Result built from PTPSysOffsetPrecise.
// Hardware pairs both readings, so there is no delay to report.
func SysoffFromPrecise(precise *PTPSysOffsetPrecise) Result {
	sys := precise.SysRealTime.Nanoseconds()
	return Result{
		Method:    MethodPrecise,
		Offset:    time.Duration(sys - precise.Device.Nanoseconds()),
		Timestamp: time.Unix(0, sys),
	}
}

// SysoffFromCross returns Result built from a cross timestamp event
func SysoffFromCross(event *PTPExttsEventCross) Result {
	t := event.T.Nanoseconds()
	return Result{
		Method:    MethodCross,
		Offset:    time.Duration(t - event.TStamp),
		Timestamp: time.Unix(0, t),
		Delay:     time.Duration(event.Delay()),
	}
}

func measurePrecise(dev DeviceController) (Result, error) {
	precise, err := dev.ReadSysoffPrecise()
	if err != nil {
		log.Debugf("sysoff precise: %v", err)
		return Result{}, fmt.Errorf("%w: %w", ErrUnsupportedByDevice, err)
	}
	return SysoffFromPrecise(precise), nil
}

// EnableCrossTimestamps configures the device to emit cross timestamp events every CrossTimestampPeriod
func EnableCrossTimestamps(dev DeviceController) error {
	req := &PTPCrossTSRequest{Period: NewPTPClockTime(int64(CrossTimestampPeriod))}
	if err := dev.RequestCrossTimestamps(req); err != nil {
		log.Debugf("sysoff cross enable: %v", err)
		return fmt.Errorf("%w: %w", ErrUnsupportedByDevice, err)
	}
	return nil
}

// measureCross never waits for an event. If nothing is queued yet we report it
// and let the caller try again on the next cycle.
func measureCross(dev DeviceController) (Result, error) {
	ready, err := dev.PollEvents(0)
	if err != nil {
		log.Debugf("poll sysoff cross: %v", err)
		return Result{}, fmt.Errorf("%w: %w", ErrTemporarilyUnavailable, err)
	}
	if !ready {
		log.Debug("poll sysoff cross: no events")
		return Result{}, fmt.Errorf("%w: no cross timestamp events", ErrTemporarilyUnavailable)
	}
	buf := make([]byte, crossEventsBufSize)
	n, err := dev.ReadEvents(buf)
	if err != nil {
		log.Debugf("read sysoff cross: %v", err)
		return Result{}, fmt.Errorf("%w: %w", ErrTemporarilyUnavailable, err)
	}
	if n < sizeofPTPExttsEventCross {
		log.Debugf("invalid event size %d", n)
		return Result{}, fmt.Errorf("%w: invalid event size %d", ErrTemporarilyUnavailable, n)
	}
	// only the most recent event matters
	last := (n/sizeofPTPExttsEventCross - 1) * sizeofPTPExttsEventCross
	event := &PTPExttsEventCross{}
	if err := event.UnmarshalBinary(buf[last : last+sizeofPTPExttsEventCross]); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrTemporarilyUnavailable, err)
	}
	if !event.Valid() {
		log.Debugf("invalid event flags %#x", event.Flags)
		return Result{}, fmt.Errorf("%w: invalid event flags %#x", ErrTemporarilyUnavailable, event.Flags)
	}
	return SysoffFromCross(event), nil
}

func measureExtended(dev DeviceController, samples int) (Result, error) {
	if err := checkSamples(samples); err != nil {
		return Result{}, err
	}
	extended, err := dev.ReadSysoffExtended(uint32(samples))
	if err != nil {
		log.Debugf("sysoff extended: %v", err)
		return Result{}, fmt.Errorf("%w: %w", ErrUnsupportedByDevice, err)
	}
	res, err := BestSample(extended.Samples())
	res.Method = MethodExtended
	return res, err
}

func measureBasic(dev DeviceController, samples int) (Result, error) {
	if err := checkSamples(samples); err != nil {
		return Result{}, err
	}
	basic, err := dev.ReadSysoff(uint32(samples))
	if err != nil {
		log.Debugf("sysoff basic: %v", err)
		return Result{}, fmt.Errorf("%w: %w", ErrUnsupportedByDevice, err)
	}
	res, err := BestSample(basic.Samples())
	res.Method = MethodBasic
	return res, err
}

func measureClockGettime(dev DeviceController, samples int) (Result, error) {
	if samples < 1 {
		return Result{}, fmt.Errorf("%w: need at least 1 sample, got %d", ErrInvalidInput, samples)
	}
	emulated, err := dev.ReadSysoffClockGettime(uint32(samples))
	if err != nil {
		log.Debugf("sysoff clock_gettime: %v", err)
		return Result{}, fmt.Errorf("%w: %w", ErrUnsupportedByDevice, err)
	}
	res, err := BestSample(emulated.Samples())
	res.Method = MethodClockGettime
	return res, err
}

// Measure returns offset between system clock and PHC using the given method.
// Errors are returned as is, retrying is up to the caller.
func Measure(dev DeviceController, method Method, samples int) (Result, error) {
	switch method {
	case MethodCross:
		return measureCross(dev)
	case MethodPrecise:
		return measurePrecise(dev)
	case MethodExtended:
		return measureExtended(dev, samples)
	case MethodBasic:
		return measureBasic(dev, samples)
	case MethodClockGettime:
		return measureClockGettime(dev, samples)
	case MethodNone:
	}
	return Result{}, fmt.Errorf("%w: %v", ErrInvalidStrategy, method)
}

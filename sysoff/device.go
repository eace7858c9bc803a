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

// DeviceController is the set of PHC device operations offset measurement relies on.
// Implementations don't need to be safe for concurrent use.
type DeviceController interface {
	// ReadSysoffPrecise issues PTP_SYS_OFFSET_PRECISE
	ReadSysoffPrecise() (*PTPSysOffsetPrecise, error)
	// ReadSysoffExtended issues PTP_SYS_OFFSET_EXTENDED for given number of samples
	ReadSysoffExtended(samples uint32) (*PTPSysOffsetExtended, error)
	// ReadSysoff issues PTP_SYS_OFFSET for given number of samples
	ReadSysoff(samples uint32) (*PTPSysOffset, error)
	// ReadSysoffClockGettime brackets clock_gettime on PHC with system clock readings
	ReadSysoffClockGettime(samples uint32) (*PTPSysOffsetExtended, error)
	// RequestCrossTimestamps issues PTP_CROSSTS_REQUEST
	RequestCrossTimestamps(req *PTPCrossTSRequest) error
	// PollEvents waits for readable events no longer than timeoutMs, 0 means don't wait
	PollEvents(timeoutMs int) (bool, error)
	// ReadEvents reads raw event records
	ReadEvents(buf []byte) (int, error)
}

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
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Device represents a PHC device opened as a file
type Device struct {
	file *os.File
}

// FromFile returns a *Device corresponding to an *os.File
func FromFile(file *os.File) *Device {
	return &Device{file: file}
}

// File returns the underlying *os.File
func (dev *Device) File() *os.File {
	return dev.file
}

// Fd returns the underlying file descriptor
func (dev *Device) Fd() uintptr {
	return dev.file.Fd()
}

// ClockID derives the clock ID from the file descriptor number
func (dev *Device) ClockID() int32 {
	return FDToClockID(dev.Fd())
}

// FDToClockID converts a file descriptor number to a clockID, see FD_TO_CLOCKID in linux kernel
func FDToClockID(fd uintptr) int32 {
	return int32((int(^fd) << 3) | 3)
}

func (dev *Device) ioctl(req uintptr, buf []byte) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, dev.Fd(), req, uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return errno
	}
	return nil
}

// ReadSysoffPrecise reads device and system time as one hardware-paired reading
func (dev *Device) ReadSysoffPrecise() (*PTPSysOffsetPrecise, error) {
	res := &PTPSysOffsetPrecise{}
	buf, _ := res.MarshalBinary()
	if err := dev.ioctl(ioctlPTPSysOffsetPrecise, buf); err != nil {
		return nil, fmt.Errorf("ioctl PTP_SYS_OFFSET_PRECISE: %w", err)
	}
	return res, res.UnmarshalBinary(buf)
}

// ReadSysoffExtended reads samples of [system, phc, system] time
func (dev *Device) ReadSysoffExtended(samples uint32) (*PTPSysOffsetExtended, error) {
	res := &PTPSysOffsetExtended{NSamples: samples}
	buf, _ := res.MarshalBinary()
	if err := dev.ioctl(ioctlPTPSysOffsetExtended, buf); err != nil {
		return nil, fmt.Errorf("ioctl PTP_SYS_OFFSET_EXTENDED: %w", err)
	}
	return res, res.UnmarshalBinary(buf)
}

// ReadSysoff reads interleaved system and phc time
func (dev *Device) ReadSysoff(samples uint32) (*PTPSysOffset, error) {
	res := &PTPSysOffset{NSamples: samples}
	buf, _ := res.MarshalBinary()
	if err := dev.ioctl(ioctlPTPSysOffset, buf); err != nil {
		return nil, fmt.Errorf("ioctl PTP_SYS_OFFSET: %w", err)
	}
	return res, res.UnmarshalBinary(buf)
}

// ReadSysoffClockGettime emulates PTP_SYS_OFFSET_EXTENDED with clock_gettime calls
func (dev *Device) ReadSysoffClockGettime(samples uint32) (*PTPSysOffsetExtended, error) {
	if samples > PTPMaxSamples {
		samples = PTPMaxSamples
	}
	res := &PTPSysOffsetExtended{NSamples: samples}
	clockID := dev.ClockID()
	var ts unix.Timespec
	for i := 0; i < int(samples); i++ {
		ts1 := time.Now()
		err := unix.ClockGettime(clockID, &ts)
		ts2 := time.Now()
		if err != nil {
			return nil, fmt.Errorf("failed clock_gettime: %w", err)
		}
		sec, nsec := ts.Unix()
		res.TS[i] = [3]PTPClockTime{
			NewPTPClockTime(ts1.UnixNano()),
			{Sec: sec, NSec: int32(nsec)},
			NewPTPClockTime(ts2.UnixNano()),
		}
	}
	return res, nil
}

// RequestCrossTimestamps asks the device to produce periodic cross timestamp events
func (dev *Device) RequestCrossTimestamps(req *PTPCrossTSRequest) error {
	buf, _ := req.MarshalBinary()
	if err := dev.ioctl(ioctlPTPCrossTSRequest, buf); err != nil {
		return fmt.Errorf("ioctl PTP_CROSSTS_REQUEST: %w", err)
	}
	return nil
}

// PollEvents checks if there are events to read
func (dev *Device) PollEvents(timeoutMs int) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(dev.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, timeoutMs)
	if err != nil {
		return false, fmt.Errorf("poll: %w", err)
	}
	return n > 0 && fds[0].Revents&unix.POLLIN != 0, nil
}

// ReadEvents reads raw events from the device
func (dev *Device) ReadEvents(buf []byte) (int, error) {
	n, err := unix.Read(int(dev.Fd()), buf)
	if err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}
	return n, nil
}

// IfaceToPHCDevice returns path to PHC device associated with given network card iface
func IfaceToPHCDevice(iface string) (string, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return "", fmt.Errorf("failed to create socket for ioctl: %w", err)
	}
	defer unix.Close(fd)
	info, err := unix.IoctlGetEthtoolTsInfo(fd, iface)
	if err != nil {
		return "", fmt.Errorf("getting interface %s info: %w", iface, err)
	}
	if info.Phc_index < 0 {
		return "", fmt.Errorf("%s: no PHC support", iface)
	}
	return fmt.Sprintf("/dev/ptp%d", info.Phc_index), nil
}

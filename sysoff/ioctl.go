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
	"github.com/vtolstov/go-ioctl"
	"golang.org/x/sys/unix"
)

// ptpClkMagic is the ioctl type of PTP clock requests
const ptpClkMagic = '='

// IOCTLs we send to the PHC device
var (
	ioctlPTPSysOffset         uintptr = unix.PTP_SYS_OFFSET
	ioctlPTPSysOffsetPrecise  uintptr = unix.PTP_SYS_OFFSET_PRECISE
	ioctlPTPSysOffsetExtended uintptr = unix.PTP_SYS_OFFSET_EXTENDED
	// ioctlPTPCrossTSRequest is PTP_CROSSTS_REQUEST, missing from sys/unix package
	ioctlPTPCrossTSRequest = ioctl.IOW(ptpClkMagic, 0x1f, sizeofPTPCrossTSRequest)
)

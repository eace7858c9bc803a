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

import "errors"

// Errors returned by probing and measurement. None of them is fatal:
// callers pick another method or another time source.
var (
	// ErrUnsupportedByDevice means the device rejected the request outright
	ErrUnsupportedByDevice = errors.New("unsupported by device")
	// ErrTemporarilyUnavailable means no data was ready, retry on the next cycle
	ErrTemporarilyUnavailable = errors.New("temporarily unavailable")
	// ErrSampleCountTooLarge means requested sample count exceeds PTPMaxSamples
	ErrSampleCountTooLarge = errors.New("sample count too large")
	// ErrInvalidInput is a contract violation, like an empty sample list
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable means no method could be probed successfully
	ErrUnavailable = errors.New("no supported method")
	// ErrInvalidStrategy means an unknown method was requested
	ErrInvalidStrategy = errors.New("invalid method")
)

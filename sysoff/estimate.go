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
)

// Sample is a PHC reading bracketed by two system clock readings, all in nanoseconds
type Sample struct {
	T1 int64 // system time before reading PHC
	TP int64 // PHC time
	T2 int64 // system time after reading PHC
}

// Result is a result of PHC offset measurement with related data
type Result struct {
	Method    Method
	Offset    time.Duration // system time minus PHC time
	Timestamp time.Time     // when the measurement was taken
	Delay     time.Duration // uncertainty of the measurement, 0 if unknown
}

// BestSample picks the sample with the narrowest [T1, T2] window.
// Midpoint of the window is the best guess of when PHC was read.
// On equal windows the first sample wins.
// loosely based on sysoff_estimate from ptp4l sysoff.c
func BestSample(samples []Sample) (Result, error) {
	if len(samples) == 0 {
		return Result{}, fmt.Errorf("%w: no samples to estimate offset from", ErrInvalidInput)
	}
	shortestInterval := samples[0].T2 - samples[0].T1
	bestTS := (samples[0].T2 + samples[0].T1) / 2
	bestOffset := bestTS - samples[0].TP
	for _, s := range samples[1:] {
		interval := s.T2 - s.T1
		if interval < shortestInterval {
			shortestInterval = interval
			bestTS = (s.T2 + s.T1) / 2
			bestOffset = bestTS - s.TP
		}
	}
	return Result{
		Offset:    time.Duration(bestOffset),
		Timestamp: time.Unix(0, bestTS),
		Delay:     time.Duration(shortestInterval),
	}, nil
}

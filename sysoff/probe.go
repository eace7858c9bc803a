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

	log "github.com/sirupsen/logrus"
)

// Probe finds the most precise method the device supports.
// Cross timestamps win as soon as they can be enabled, even though reading
// them may still fail transiently later. Otherwise each method from ProbeOrder
// gets one measurement attempt and the first one to succeed is returned.
// A failed cross timestamp enable is not retried.
// ErrUnavailable means the caller has to read PHC some other way.
func Probe(dev DeviceController, samples int) (Method, error) {
	if samples > PTPMaxSamples {
		log.Debugf("%d exceeds kernel max readings %d", samples, PTPMaxSamples)
		return MethodNone, fmt.Errorf("%w: %d exceeds kernel max readings %d", ErrSampleCountTooLarge, samples, PTPMaxSamples)
	}
	if samples < 1 {
		return MethodNone, fmt.Errorf("%w: need at least 1 sample, got %d", ErrInvalidInput, samples)
	}

	if err := EnableCrossTimestamps(dev); err == nil {
		return MethodCross, nil
	}

	for _, method := range ProbeOrder {
		if _, err := Measure(dev, method, samples); err != nil {
			log.Debugf("probing %v: %v", method, err)
			continue
		}
		return method, nil
	}
	return MethodNone, ErrUnavailable
}

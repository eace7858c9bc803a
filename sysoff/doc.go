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

/*
Package sysoff measures offset between a PTP hardware clock (PHC) and the system clock.

Typical use is to call Probe once after opening the device, then call Measure
with the returned Method every cycle:

	dev := sysoff.FromFile(f)
	method, err := sysoff.Probe(dev, 5)
	...
	res, err := sysoff.Measure(dev, method, 5)

Methods, from the most precise:

  - cross timestamps: periodic hardware events carrying both clocks and a delay
  - PTP_SYS_OFFSET_PRECISE: a single hardware-paired reading
  - PTP_SYS_OFFSET_EXTENDED: samples of [system, phc, system] readings
  - PTP_SYS_OFFSET: interleaved system and phc readings

Multi-sample methods keep the sample with the narrowest system clock window.
*/
package sysoff

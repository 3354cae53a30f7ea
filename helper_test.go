/*

  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved

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

package timeuuid_test

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var sample = time.Date(2019, time.August, 15, 4, 42, 45, 188573500, time.UTC)

// mock clock, every reading advances time by step
type clock struct {
	ns   atomic.Int64
	step int64
}

func newClock(t time.Time, step time.Duration) *clock {
	c := &clock{step: int64(step)}
	c.ns.Store(t.UnixNano())
	return c
}

func (c *clock) Now() time.Time {
	return time.Unix(0, c.ns.Add(c.step)-c.step).UTC()
}

func (c *clock) Add(d time.Duration) {
	c.ns.Add(int64(d))
}

// reader of constant byte
type constant byte

func (c constant) Read(b []byte) (int, error) {
	for i := range b {
		b[i] = byte(c)
	}
	return len(b), nil
}

// value of the counter, zero if the counter is not collected
func counter(reg prometheus.Gatherer, name string) float64 {
	mfs, err := reg.Gather()
	if err != nil {
		return 0
	}

	for _, mf := range mfs {
		if mf.GetName() == name && len(mf.GetMetric()) > 0 {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}

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

package timeuuid

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// generator counters, nil receiver disables metrics
type metrics struct {
	allocations prometheus.Counter
	retries     prometheus.Counter
	waits       prometheus.Counter
	regressions prometheus.Counter
}

func newMetrics(registry prometheus.Registerer) *metrics {
	if registry == nil {
		return nil
	}

	m := &metrics{
		allocations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timeuuid_allocations_total",
			Help: "Total number of allocated timestamps",
		}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timeuuid_cas_retries_total",
			Help: "Total number of lost compare-and-swap races",
		}),
		waits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timeuuid_clock_waits_total",
			Help: "Total number of yields waiting for the clock to catch up",
		}),
		regressions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timeuuid_clock_regressions_total",
			Help: "Total number of identity regenerations caused by clock moving backwards",
		}),
	}

	m.allocations = register(registry, m.allocations)
	m.retries = register(registry, m.retries)
	m.waits = register(registry, m.waits)
	m.regressions = register(registry, m.regressions)
	return m
}

// generators sharing the registry share the counters
func register(registry prometheus.Registerer, c prometheus.Counter) prometheus.Counter {
	err := registry.Register(c)
	if err == nil {
		return c
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
			return existing
		}
	}

	panic(err)
}

func (m *metrics) allocated() {
	if m != nil {
		m.allocations.Inc()
	}
}

func (m *metrics) retried() {
	if m != nil {
		m.retries.Inc()
	}
}

func (m *metrics) waited() {
	if m != nil {
		m.waits.Inc()
	}
}

func (m *metrics) regressed() {
	if m != nil {
		m.regressions.Inc()
	}
}

//
//  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package timeuuid

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fogfish/timeuuid/ticks"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultAccuracy is assumed resolution of the wall clock
const DefaultAccuracy = time.Millisecond

// EnvAccuracy is the environment variable read by WithAccuracyFromEnv
const EnvAccuracy = "CONFIG_TIMEUUID_ACCURACY"

// Creates instance of generator
func NewGenerator(opts ...Config) *Generator {
	g := &Generator{
		clock:    time.Now,
		random:   rand.Reader,
		accuracy: uint64(ticks.PerMillisecond),
		logger:   logr.Discard(),
	}

	for _, opt := range opts {
		opt(g)
	}

	// options are order independent, config errors are reported to the final logger
	for _, err := range g.misconfig {
		g.logger.Error(err, "invalid config")
	}
	g.misconfig = nil

	if g.state == nil {
		id, err := NewIdentity(g.random)
		if err != nil {
			panic(err.Error())
		}
		g.state = NewState(id)
	}

	return g
}

// Config option of generator.
// Config options allows to define custom time source, random source and
// tolerance to clock jitter.
type Config func(*Generator)

// WithClock configures a custom time source
func WithClock(clock func() time.Time) Config {
	return func(g *Generator) {
		g.clock = clock
	}
}

// WithRandom configures random source of identity, crypto/rand is default one
func WithRandom(random io.Reader) Config {
	return func(g *Generator) {
		g.random = random
	}
}

// WithAccuracy configures assumed resolution of the wall clock. Generator
// borrows timestamps ahead of the clock up to this value, the clock moving
// backwards more than this value regenerates identity.
func WithAccuracy(accuracy time.Duration) Config {
	return func(g *Generator) {
		if x := ticks.FromDuration(accuracy).Value; x > 0 {
			g.accuracy = uint64(x)
		}
	}
}

// WithAccuracyFromEnv configures accuracy using env variable.
//
// CONFIG_TIMEUUID_ACCURACY - defines accuracy as duration string (e.g. 1ms)
//
// Malformed value is ignored and logged with the logger of generator.
func WithAccuracyFromEnv() Config {
	return func(g *Generator) {
		val, has := os.LookupEnv(EnvAccuracy)
		if !has {
			return
		}

		accuracy, err := time.ParseDuration(val)
		if err != nil {
			g.misconfig = append(g.misconfig, fmt.Errorf("%s=%q: %w", EnvAccuracy, val, err))
			return
		}

		WithAccuracy(accuracy)(g)
	}
}

// WithState configures shared state, generators sharing the state never
// collide.
func WithState(state *State) Config {
	return func(g *Generator) {
		g.state = state
	}
}

// WithLogger configures logger
func WithLogger(logger logr.Logger) Config {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithMetrics registers generator metrics. Generators sharing the registry
// share the counters.
func WithMetrics(registry prometheus.Registerer) Config {
	return func(g *Generator) {
		g.metrics = newMetrics(registry)
	}
}

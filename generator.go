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
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/fogfish/timeuuid/ticks"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

/*

State is the shared state of generators: the last allocated timestamp and the
current identity. Both cells are updated with compare-and-swap only.
Generators sharing the state never produce the same UUID.
*/
type State struct {
	last     atomic.Uint64
	identity atomic.Uint64
}

// NewState creates state with the identity and zero timestamp
func NewState(id Identity) *State {
	s := &State{}
	s.identity.Store(uint64(id))
	return s
}

// Load returns the last allocated timestamp and the current identity
func (s *State) Load() (uint64, Identity) {
	return s.last.Load(), Identity(s.identity.Load())
}

/*

Generator allocates time-based UUIDs. It is safe for concurrent use.
*/
type Generator struct {
	state    *State
	clock    func() time.Time
	random   io.Reader
	accuracy uint64
	logger   logr.Logger
	metrics  *metrics

	misconfig []error
}

/*

Allocate resolves unique pair of timestamp and identity. The timestamp is
strictly increasing for the identity.

  clock advanced     : the timestamp is the current time
  clock roughly level: the timestamp is last + 1, while it is within accuracy
                       of the current time, otherwise wait for the clock
  clock jumped back  : the identity is regenerated, the timestamp is the
                       current time
*/
func (g *Generator) Allocate() (uint64, Identity, error) {
	for {
		last := g.state.last.Load()
		now, err := g.now()
		if err != nil {
			return 0, 0, err
		}
		// validity of the identity is checked by CAS on last
		id := Identity(g.state.identity.Load())

		switch {
		case now > last:
			if g.state.last.CompareAndSwap(last, now) {
				g.metrics.allocated()
				return now, id, nil
			}

		case last-now < g.accuracy:
			next := last + 1
			if next-now >= g.accuracy {
				g.metrics.waited()
				runtime.Gosched()
				continue
			}

			if g.state.last.CompareAndSwap(last, next) {
				g.metrics.allocated()
				return next, id, nil
			}

		default:
			fresh, err := NewIdentity(g.random)
			if err != nil {
				return 0, 0, err
			}

			if g.state.identity.CompareAndSwap(uint64(id), uint64(fresh)) {
				if g.state.last.CompareAndSwap(last, now) {
					g.metrics.regressed()
					g.metrics.allocated()
					g.logger.Info("clock moved backwards, identity regenerated",
						"last", last,
						"now", now,
						"drift", time.Duration((last-now)*ticks.NanosPerTick),
						"identity", fresh.String(),
					)
					return now, fresh, nil
				}
			}
		}

		g.metrics.retried()
	}
}

// current time as 60-bit UUID timestamp
func (g *Generator) now() (uint64, error) {
	t := g.clock()
	ts, err := toTimestamp(t)
	if err != nil {
		g.logger.Error(err, "clock reading rejected", "time", t)
		return 0, err
	}
	return ts, nil
}

// NewUUID generates time-based UUID
func (g *Generator) NewUUID() (uuid.UUID, error) {
	t, id, err := g.Allocate()
	if err != nil {
		return uuid.Nil, err
	}
	return assemble(t, id), nil
}

// New generates time-based UUID, it panics if the clock or random source fails.
func (g *Generator) New() uuid.UUID {
	return uuid.Must(g.NewUUID())
}

// State returns the shared state of generator
func (g *Generator) State() *State {
	return g.state
}

// Default is global default instance of generator
var Default = NewGenerator()

// NewUUID generates time-based UUID using default generator
func NewUUID() (uuid.UUID, error) { return Default.NewUUID() }

// New generates time-based UUID using default generator
func New() uuid.UUID { return Default.New() }

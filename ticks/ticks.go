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

/*

Package ticks represents instants and durations as a count of 100-nanosecond
intervals (ticks). An instant is always measured from one of the fixed
reference points (epochs):

  DotNet  0001-01-01T00:00:00Z  (System.DateTime.Ticks)
  UUID    1582-10-15T00:00:00Z  (RFC 4122 version 1 timestamp)
  Unix    1970-01-01T00:00:00Z

Values of different epochs are not comparable, they have to be converted to
the same epoch first. All arithmetic is checked, the conversion fails with
ErrOverflow instead of wrapping around.
*/
package ticks

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Errors
var (
	ErrOverflow      = errors.New("ticks: arithmetic overflow")
	ErrEpochMismatch = errors.New("ticks: epoch mismatch")
	ErrNotTimestamp  = errors.New("ticks: not a timestamp")
)

const (
	// NanosPerTick is the length of one tick
	NanosPerTick = 100

	// PerSecond is number of ticks in one second
	PerSecond = int64(time.Second / NanosPerTick)

	// PerMillisecond is number of ticks in one millisecond
	PerMillisecond = int64(time.Millisecond / NanosPerTick)
)

// Epoch is a kind of tick value: either duration (Span) or timestamp relative
// to one of the reference points.
type Epoch int

const (
	// Span is an amount of time without a reference point
	Span Epoch = iota
	// DotNet counts ticks since midnight, January 1, 1 UTC
	DotNet
	// UUID counts ticks since midnight, October 15, 1582 UTC
	UUID
	// Unix counts ticks since midnight, January 1, 1970 UTC
	Unix
)

func (e Epoch) String() string {
	switch e {
	case Span:
		return "span"
	case DotNet:
		return "dotnet"
	case UUID:
		return "uuid"
	case Unix:
		return "unix"
	default:
		return fmt.Sprintf("epoch(%d)", int(e))
	}
}

// ticks between the epoch zero point and the Unix epoch
var (
	dotnetOffset = mustOffsetOf(time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC))
	uuidOffset   = mustOffsetOf(time.Date(1582, time.October, 15, 0, 0, 0, 0, time.UTC))
)

func mustOffsetOf(t time.Time) int64 {
	offset, err := unixTicks(t)
	if err != nil {
		panic(err)
	}
	return offset
}

// Offset returns tick distance between the epoch zero point and the Unix epoch.
func (e Epoch) Offset() (int64, error) {
	switch e {
	case DotNet:
		return dotnetOffset, nil
	case UUID:
		return uuidOffset, nil
	case Unix:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %s has no offset", ErrNotTimestamp, e)
	}
}

// Ticks is a tick count tagged with its epoch.
type Ticks struct {
	Epoch Epoch
	Value int64
}

// Of builds tick value of given kind
func Of(epoch Epoch, value int64) Ticks {
	return Ticks{Epoch: epoch, Value: value}
}

/*

FromTime converts instant to ticks since the epoch. Sub-tick precision is
discarded.
*/
func FromTime(t time.Time, epoch Epoch) (Ticks, error) {
	offset, err := epoch.Offset()
	if err != nil {
		return Ticks{}, err
	}

	abs, err := unixTicks(t)
	if err != nil {
		return Ticks{}, err
	}

	value, err := sub(abs, offset)
	if err != nil {
		return Ticks{}, fmt.Errorf("%w: %s is out of %s range", err, t, epoch)
	}

	return Ticks{Epoch: epoch, Value: value}, nil
}

// DotNetTime is FromTime(t, DotNet)
func DotNetTime(t time.Time) (Ticks, error) { return FromTime(t, DotNet) }

// UUIDTime is FromTime(t, UUID)
func UUIDTime(t time.Time) (Ticks, error) { return FromTime(t, UUID) }

// UnixTime is FromTime(t, Unix)
func UnixTime(t time.Time) (Ticks, error) { return FromTime(t, Unix) }

// FromDuration converts duration to Span ticks. Sub-tick precision is discarded.
func FromDuration(d time.Duration) Ticks {
	return Ticks{Epoch: Span, Value: int64(d / NanosPerTick)}
}

// Time converts timestamp to the instant (UTC).
func (t Ticks) Time() (time.Time, error) {
	abs, err := t.unix()
	if err != nil {
		return time.Time{}, err
	}

	sec := abs / PerSecond
	nsec := (abs % PerSecond) * NanosPerTick
	return time.Unix(sec, nsec).UTC(), nil
}

// Duration converts Span ticks to the duration. time.Duration is limited to
// about 292 years, longer spans fail with ErrOverflow.
func (t Ticks) Duration() (time.Duration, error) {
	if t.Epoch != Span {
		return 0, fmt.Errorf("%w: %s is not a span", ErrEpochMismatch, t.Epoch)
	}

	ns, err := mul(t.Value, NanosPerTick)
	if err != nil {
		return 0, fmt.Errorf("%w: %d ticks exceeds duration range", err, t.Value)
	}

	return time.Duration(ns), nil
}

// In converts timestamp to the same instant measured from another epoch.
func (t Ticks) In(epoch Epoch) (Ticks, error) {
	if t.Epoch == epoch {
		return t, nil
	}

	abs, err := t.unix()
	if err != nil {
		return Ticks{}, err
	}

	offset, err := epoch.Offset()
	if err != nil {
		return Ticks{}, err
	}

	value, err := sub(abs, offset)
	if err != nil {
		return Ticks{}, err
	}

	return Ticks{Epoch: epoch, Value: value}, nil
}

// Equal is true if both values share the epoch and the tick count.
func (t Ticks) Equal(x Ticks) bool {
	return t.Epoch == x.Epoch && t.Value == x.Value
}

// Compare returns -1, 0, +1. Values of different epochs are not comparable.
func (t Ticks) Compare(x Ticks) (int, error) {
	if t.Epoch != x.Epoch {
		return 0, fmt.Errorf("%w: %s vs %s", ErrEpochMismatch, t.Epoch, x.Epoch)
	}

	switch {
	case t.Value < x.Value:
		return -1, nil
	case t.Value > x.Value:
		return 1, nil
	default:
		return 0, nil
	}
}

func (t Ticks) String() string {
	if t.Epoch == Span {
		if d, err := t.Duration(); err == nil {
			return fmt.Sprintf("%d ticks (%s)", t.Value, d)
		}
		return fmt.Sprintf("%d ticks", t.Value)
	}

	if v, err := t.Time(); err == nil {
		return fmt.Sprintf("%d ticks (%s)", t.Value, v.Format(time.RFC3339Nano))
	}
	return fmt.Sprintf("%d ticks (%s)", t.Value, t.Epoch)
}

// ticks since Unix epoch
func (t Ticks) unix() (int64, error) {
	offset, err := t.Epoch.Offset()
	if err != nil {
		return 0, err
	}

	abs, err := add(t.Value, offset)
	if err != nil {
		return 0, fmt.Errorf("%w: %d ticks is out of %s range", err, t.Value, t.Epoch)
	}
	return abs, nil
}

func unixTicks(t time.Time) (int64, error) {
	sec, err := mul(t.Unix(), PerSecond)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", err, t)
	}

	// Nanosecond is [0, 1e9), the sum is of the same sign as seconds or crosses zero
	return add(sec, int64(t.Nanosecond()/NanosPerTick))
}

func mul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, ErrOverflow
	}
	return c, nil
}

func add(a, b int64) (int64, error) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, ErrOverflow
	}
	return c, nil
}

func sub(a, b int64) (int64, error) {
	c := a - b
	if (c < a) != (b > 0) {
		return 0, ErrOverflow
	}
	return c, nil
}

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
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fogfish/it/v2"
	"github.com/fogfish/timeuuid"
	"github.com/google/uuid"
	"pgregory.net/rapid"
)

var sampleUUID = uuid.MustParse("1fe6d6a7-bf17-11e9-ad24-2c4d54d05ed4")

func TestIsTimeBased(t *testing.T) {
	it.Then(t).Should(
		it.True(timeuuid.IsTimeBased(sampleUUID)),
		it.True(!timeuuid.IsTimeBased(uuid.New())),
		it.True(!timeuuid.IsTimeBased(uuid.NewMD5(uuid.NameSpaceDNS, nil))),
		it.True(!timeuuid.IsTimeBased(uuid.Nil)),
	)
}

func TestInstantSample(t *testing.T) {
	at, err := timeuuid.Instant(sampleUUID)

	it.Then(t).Should(
		it.Equal(err, nil),
		it.True(at.Equal(sample)),
		it.Equal(at.Format(time.RFC3339Nano), "2019-08-15T04:42:45.1885735Z"),
	)
}

func TestInstantNonTimeBased(t *testing.T) {
	_, err1 := timeuuid.Instant(uuid.New())
	_, err2 := timeuuid.Timestamp(uuid.NewSHA1(uuid.NameSpaceURL, []byte("x")))

	it.Then(t).Should(
		it.True(errors.Is(err1, timeuuid.ErrUnsupported)),
		it.True(errors.Is(err2, timeuuid.ErrUnsupported)),
	)
}

func TestTimestampSample(t *testing.T) {
	ts, err := timeuuid.Timestamp(sampleUUID)

	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(ts, 0x1e9bf171fe6d6a7),
		it.Equal(int64(ts), int64(sampleUUID.Time())),
	)
}

func TestFromTimestampSample(t *testing.T) {
	ts, _ := timeuuid.Timestamp(sampleUUID)
	id, err := timeuuid.FromTimestamp(ts, timeuuid.IdentityOf(sampleUUID))

	it.Then(t).Should(
		it.Equal(err, nil),
		it.Equal(id, sampleUUID),
		it.Equal(id.String(), "1fe6d6a7-bf17-11e9-ad24-2c4d54d05ed4"),
	)
}

func TestFromTimestampInvalid(t *testing.T) {
	_, err := timeuuid.FromTimestamp(1<<60, timeuuid.IdentityOf(sampleUUID))

	it.Then(t).Should(
		it.True(errors.Is(err, timeuuid.ErrInvalidTimestamp)),
	)
}

func TestFromTimestampInterop(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ts := rapid.Uint64Range(0, 1<<60-1).Draw(rt, "ts")
		seq := rapid.Uint64Range(0, 1<<14-1).Draw(rt, "seq")
		node := rapid.Uint64Range(0, 1<<48-1).Draw(rt, "node")
		identity := timeuuid.Identity(1<<63 | seq<<48 | node)

		id, err := timeuuid.FromTimestamp(ts, identity)
		if err != nil {
			rt.Fatalf("FromTimestamp(%d): %v", ts, err)
		}

		if id.Version() != 1 || id.Variant() != uuid.RFC4122 {
			rt.Fatalf("invalid version %s or variant %s", id.Version(), id.Variant())
		}

		if uint64(id.Time()) != ts {
			rt.Fatalf("timestamp %d, expected %d", id.Time(), ts)
		}

		if uint64(id.ClockSequence()) != seq {
			rt.Fatalf("clock sequence %d, expected %d", id.ClockSequence(), seq)
		}

		parsed, err := uuid.Parse(id.String())
		if err != nil || parsed != id {
			rt.Fatalf("string %s is not parsable: %v", id, err)
		}

		x, _ := timeuuid.Timestamp(parsed)
		if x != ts || timeuuid.IdentityOf(parsed) != identity {
			rt.Fatalf("lenses of %s are broken", id)
		}
	})
}

func TestFromTime(t *testing.T) {
	id, err := timeuuid.FromTime(sample)
	at, _ := timeuuid.Instant(id)

	it.Then(t).Should(
		it.Equal(err, nil),
		it.True(timeuuid.IsTimeBased(id)),
		it.Equal(timeuuid.Variant(id), 2),
		it.Equal(timeuuid.ClockSeq(id), 0),
		it.True(at.Equal(sample)),
		it.Equal(id.String(), "1fe6d6a7-bf17-11e9-8000-000000000000"),
	)
}

func TestFromTimeOutOfRange(t *testing.T) {
	_, err1 := timeuuid.FromTime(time.Date(1500, time.January, 1, 0, 0, 0, 0, time.UTC))
	_, err2 := timeuuid.FromTime(time.Date(6000, time.January, 1, 0, 0, 0, 0, time.UTC))
	_, err3 := timeuuid.FromTime(time.Date(100000, time.January, 1, 0, 0, 0, 0, time.UTC))

	it.Then(t).Should(
		it.True(errors.Is(err1, timeuuid.ErrInvalidTimestamp)),
		it.True(errors.Is(err2, timeuuid.ErrInvalidTimestamp)),
		it.True(errors.Is(err3, timeuuid.ErrOverflow)),
	)
}

func TestLensesSample(t *testing.T) {
	it.Then(t).Should(
		it.Equal(timeuuid.Variant(sampleUUID), 2),
		it.Equal(timeuuid.ClockSeq(sampleUUID), 0x2d24),
		it.True(bytes.Equal(timeuuid.Node(sampleUUID), []byte{0x2c, 0x4d, 0x54, 0xd0, 0x5e, 0xd4})),
		it.Equal(timeuuid.IdentityOf(sampleUUID).String(), "ad24-2c4d54d05ed4"),
	)
}

func TestBefore(t *testing.T) {
	a, _ := timeuuid.FromTime(sample)
	b, _ := timeuuid.FromTime(sample.Add(time.Millisecond))
	c, _ := timeuuid.FromTimestamp(0x1e9bf171fe6d6a7, timeuuid.Identity(0x8000000000000001))

	it.Then(t).Should(
		it.True(timeuuid.Before(a, b)),
		it.True(!timeuuid.Before(b, a)),
		it.True(!timeuuid.Before(a, a)),
		it.True(timeuuid.Before(a, c)),
		it.True(!timeuuid.Before(a, uuid.New())),
	)
}

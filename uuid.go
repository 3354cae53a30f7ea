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
	"encoding/binary"
	"fmt"
	"time"

	"github.com/fogfish/timeuuid/ticks"
	"github.com/google/uuid"
)

/*

FromTimestamp packs 60-bit timestamp and identity into version 1 UUID.

     32 bit           16 bit    4 bit  12 bit
  |----------------|--------|----|------------|
      time_low      time_mid  ver    time_hi
  t[31:0]           t[47:32]  0001   t[59:48]

  2bit    14 bit                48 bit
  |--|--------------|----------------------------------|
  var     clock_seq                 node
*/
func FromTimestamp(t uint64, id Identity) (uuid.UUID, error) {
	if t>>timestampBits != 0 {
		return uuid.Nil, fmt.Errorf("%w: %d", ErrInvalidTimestamp, t)
	}

	return assemble(t, id), nil
}

func assemble(t uint64, id Identity) (u uuid.UUID) {
	hi := (t&0xffffffff)<<32 |
		(t>>32&0xffff)<<16 |
		(t >> 48 & 0x0fff) |
		version1

	binary.BigEndian.PutUint64(u[0:8], hi)
	binary.BigEndian.PutUint64(u[8:16], uint64(id))
	return
}

/*

FromTime returns the smallest time-based UUID for the instant: clock sequence
and node are zero. It is suitable as a lower bound of range queries.
*/
func FromTime(t time.Time) (uuid.UUID, error) {
	ts, err := toTimestamp(t)
	if err != nil {
		return uuid.Nil, err
	}

	return assemble(ts, Identity(variantRFC)), nil
}

// converts instant into 60-bit UUID timestamp
func toTimestamp(t time.Time) (uint64, error) {
	x, err := ticks.UUIDTime(t)
	if err != nil {
		return 0, err
	}

	if x.Value < 0 || uint64(x.Value)>>timestampBits != 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTimestamp, t)
	}

	return uint64(x.Value), nil
}

/*******************************************************************************

Lenses of time-based UUID

*******************************************************************************/

// IsTimeBased checks the version of UUID is 1
func IsTimeBased(u uuid.UUID) bool {
	return u.Version() == 1
}

/*

Timestamp returns 60-bit timestamp, count of 100-nanosecond intervals since
midnight, October 15, 1582 UTC.
*/
func Timestamp(u uuid.UUID) (uint64, error) {
	if !IsTimeBased(u) {
		return 0, fmt.Errorf("%w: %s is version %d", ErrUnsupported, u, u.Version())
	}

	hi := binary.BigEndian.Uint64(u[0:8])
	t := hi>>32 |
		(hi>>16&0xffff)<<32 |
		(hi&0x0fff)<<48

	return t, nil
}

// Instant returns timestamp of time-based UUID as time.Time (UTC).
func Instant(u uuid.UUID) (time.Time, error) {
	t, err := Timestamp(u)
	if err != nil {
		return time.Time{}, err
	}

	return ticks.Of(ticks.UUID, int64(t)).Time()
}

// IdentityOf returns clock sequence and node fractions of UUID
func IdentityOf(u uuid.UUID) Identity {
	return Identity(binary.BigEndian.Uint64(u[8:16]))
}

// Variant returns top two bits of clock_seq_hi_and_reserved, 2 for RFC 4122
func Variant(u uuid.UUID) byte {
	return u[8] >> 6
}

// ClockSeq returns 14-bit clock sequence
func ClockSeq(u uuid.UUID) uint16 {
	return IdentityOf(u).ClockSeq()
}

// Node returns 6 bytes of node
func Node(u uuid.UUID) []byte {
	return IdentityOf(u).Node()
}

/*

Before compares time-based UUIDs, returns true if a is allocated before b.
UUIDs are ordered by timestamp first, identity resolves ties. Non time-based
UUIDs are never ordered.
*/
func Before(a, b uuid.UUID) bool {
	ta, erra := Timestamp(a)
	tb, errb := Timestamp(b)
	if erra != nil || errb != nil {
		return false
	}

	if ta != tb {
		return ta < tb
	}

	return IdentityOf(a) < IdentityOf(b)
}

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
	"errors"
	"fmt"
	"io"

	"github.com/fogfish/timeuuid/ticks"
)

// Errors
var (
	// ErrUnsupported is returned by lenses applied to non time-based UUID
	ErrUnsupported = errors.New("timeuuid: not a time-based uuid")

	// ErrInvalidTimestamp is returned when timestamp does not fit 60-bit field
	ErrInvalidTimestamp = errors.New("timeuuid: invalid timestamp")

	// ErrOverflow is returned when instant is out of the tick range
	ErrOverflow = ticks.ErrOverflow
)

const (
	version1   = 0x1000
	variantRFC = uint64(0b10) << 62

	clockSeqBits = 14
	clockSeqMask = uint64(1)<<clockSeqBits - 1

	nodeBits = 48
	nodeMask = uint64(1)<<nodeBits - 1

	// multicast and locally administered bits of the first node octet
	nodeLocal = uint64(0x03) << 40

	timestampBits = 60
)

/*

Identity is the clock sequence and node fractions of time-based UUID, the
lower 64 bits of the identifier.

   2bit    14 bit                48 bit
  |--|--------------|----------------------------------|
  ⟨𝒗⟩       ⟨𝒔⟩                       ⟨𝒍⟩

↣ ⟨𝒗⟩ is variant, always 0b10 (RFC 4122)

↣ ⟨𝒔⟩ is clock sequence

↣ ⟨𝒍⟩ is node, random with multicast and locally administered bits set
so that it never collides with IEEE 802 hardware address.
*/
type Identity uint64

/*

NewIdentity allocates random identity, using 64 bits from the reader.
*/
func NewIdentity(r io.Reader) (Identity, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("timeuuid: random source failed: %w", err)
	}

	x := binary.BigEndian.Uint64(b[:])
	seq := (x >> nodeBits) & clockSeqMask
	node := (x & nodeMask) | nodeLocal

	return Identity(variantRFC | seq<<nodeBits | node), nil
}

// ClockSeq returns ⟨𝒔⟩ clock sequence
func (id Identity) ClockSeq() uint16 {
	return uint16((uint64(id) >> nodeBits) & clockSeqMask)
}

// Node returns ⟨𝒍⟩ 6 bytes of node
func (id Identity) Node() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return b[2:]
}

func (id Identity) String() string {
	return fmt.Sprintf("%04x-%012x", uint64(id)>>nodeBits, uint64(id)&nodeMask)
}

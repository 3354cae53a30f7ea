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

Package timeuuid implements lock-free generator of time-based (version 1)
UUIDs as defined by RFC 4122 (https://tools.ietf.org/html/rfc4122).

Key features

↣ UUIDs allocation does not require locks. The generator state is a pair of
atomic cells, concurrent allocations are resolved using compare-and-swap.

↣ Timestamps are strictly increasing for the process. Allocations within the
same clock tick borrow the next tick ahead of the wall clock.

↣ Clock moving backwards is detected, the generator regenerates the clock
sequence and node so that reused timestamps never collide with UUIDs issued
before.

↣ The node is random with multicast and locally administered bits set, the
library never exposes hardware address.

Identity Schema

Time-based UUID is a pair ⟨𝒕, 𝒊⟩:

↣ ⟨𝒕⟩ is 60-bit timestamp, count of 100-nanosecond intervals since midnight,
October 15, 1582 UTC.

↣ ⟨𝒊⟩ is identity: 14-bit clock sequence and 48-bit node.

     32 bit           16 bit    4 bit  12 bit
  |----------------|--------|----|------------|
      time_low      time_mid  ver    time_hi

  2bit    14 bit                48 bit
  |--|--------------|----------------------------------|
  var     clock_seq                 node

Allocation

The generator keeps the last allocated timestamp. On each call it reads the
wall clock:

↣ the clock advanced: the current time is used.

↣ the clock is level with the last timestamp (within accuracy, 1ms by
default): the last timestamp + 1 tick is used, as long as it does not run
ahead of the clock more than accuracy. Otherwise the caller yields the
processor until the clock catches up.

↣ the clock is far behind: new identity is generated and the current time is
used.

Usage

  id := timeuuid.New()
  t, err := timeuuid.Instant(id)

Independent generators are created with NewGenerator, generators sharing the
State never collide.
*/
package timeuuid

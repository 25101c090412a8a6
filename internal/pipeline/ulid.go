package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// ULID job ids: 26-character Crockford Base32, 48-bit millisecond
// timestamp prefix, random tail with a per-millisecond sequence so ids
// issued in the same millisecond stay unique and sortable.

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

func newULID() string {
	ulidMu.Lock()
	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}
	seq := lastSeq
	ulidMu.Unlock()

	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], ts<<16)
	rand.Read(b[6:])
	binary.BigEndian.PutUint16(b[6:8], seq)

	// 128 bits left-padded with 2 zero bits into 26 5-bit groups.
	var out [26]byte
	for i := range out {
		out[i] = crockford[fiveBits(b, i*5-2)]
	}
	return string(out[:])
}

func fiveBits(b [16]byte, start int) int {
	v := 0
	for k := start; k < start+5; k++ {
		v <<= 1
		if k < 0 {
			continue
		}
		v |= int(b[k/8]>>(7-k%8)) & 1
	}
	return v
}

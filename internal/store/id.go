package store

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"time"
)

// NewID generates a transaction identifier the way the legacy local store
// did: base36 millisecond timestamp plus a short random suffix.
func NewID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Timestamp alone still yields a usable, roughly unique id.
		return ts
	}
	suffix := strconv.FormatUint(uint64(binary.BigEndian.Uint32(buf[:])), 36)
	return ts + suffix
}

// Package digest computes a running xxHash64 over emitted records.
//
// The digest identifies a rescaled output independent of how it is
// compressed or where it is stored: two runs over the same input with the
// same factor produce the same digest.
package digest

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// Digest accumulates output lines. The zero value is not usable; call New.
type Digest struct {
	h       *xxhash.Digest
	records uint64
}

// New creates an empty Digest.
func New() *Digest {
	return &Digest{h: xxhash.New()}
}

// AddRecord feeds one encoded record, including its line terminator.
func (d *Digest) AddRecord(line []byte) {
	_, _ = d.h.Write(line) // xxhash.Digest.Write never fails
	d.records++
}

// Records returns the number of records fed so far.
func (d *Digest) Records() uint64 {
	return d.records
}

// Sum64 returns the xxHash64 of all records fed so far.
func (d *Digest) Sum64() uint64 {
	return d.h.Sum64()
}

// Format renders a digest value as 16 lower-case hex digits, big-endian.
func Format(sum uint64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)

	return hex.EncodeToString(b[:])
}

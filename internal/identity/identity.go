// Package identity mints the connection-scoped tokens that name a seat for
// the lifetime of a WebSocket session. Tokens are UUIDv7 values encoded as
// 26-character base32 strings, so they sort by creation time in logs and in
// the stats store.
package identity

import (
	"crypto/rand"
	"time"
)

// Base32 alphabet used by TypeID (Crockford's base32: no i, l, o, u).
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random tail of a token. Tests inject a
// deterministic source; production tokens use crypto/rand.
type RandSource interface {
	Intn(n int) int
}

// Generator mints identity tokens with configurable randomness.
type Generator struct {
	randSource RandSource
}

// NewGenerator returns a generator using the given source, or crypto/rand
// when the source is nil.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// New mints a token using crypto/rand.
func New() string {
	return NewGenerator(nil).Generate()
}

// Generate mints a new token from the generator's source.
func (g *Generator) Generate() string {
	return encodeBase32(g.newUUIDv7())
}

// newUUIDv7 builds a 128-bit UUIDv7: a 48-bit millisecond timestamp followed
// by random bits, with the version and variant bits set per RFC 9562.
func (g *Generator) newUUIDv7() [16]byte {
	var id [16]byte

	now := time.Now().UnixMilli()
	id[0] = byte(now >> 40)
	id[1] = byte(now >> 32)
	id[2] = byte(now >> 24)
	id[3] = byte(now >> 16)
	id[4] = byte(now >> 8)
	id[5] = byte(now)

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.randSource.Intn(256))
		}
	} else {
		if _, err := rand.Read(id[6:]); err != nil {
			panic("identity: crypto/rand failed: " + err.Error())
		}
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // variant 10

	return id
}

// encodeBase32 packs 128 bits into 26 base32 characters, five bits per
// character, with the final character carrying two zero padding bits.
func encodeBase32(data [16]byte) string {
	result := make([]byte, 26)

	for i := 0; i < 26; i++ {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if byteIndex < 16 {
			if bitIndex <= 3 {
				value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
			} else {
				value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
				if byteIndex+1 < 16 {
					value |= data[byteIndex+1] >> (11 - bitIndex)
				}
			}
		}

		result[i] = alphabet[value]
	}

	return string(result)
}

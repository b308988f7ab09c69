// Package hmacsha512 implements HMAC-SHA512 from first principles per
// RFC 2104, built directly on internal/sha512core rather than crypto/hmac.
// The inner hash is primed with the inner pad once per key and then
// streams message bytes; the outer hash is not kept as a primed context but
// is rebuilt from the stored outer pad on every Sum.
package hmacsha512

import "github.com/aescrypt/fileseal/internal/sha512core"

const (
	blockSize = sha512core.BlockSize
	// Size is the MAC output size in bytes.
	Size = sha512core.Size
)

// MAC is a streaming HMAC-SHA512 state keyed at construction time.
type MAC struct {
	outerKeyPad [blockSize]byte
	inner       *sha512core.Digest // primed with the inner key pad
}

// New keys a fresh MAC. key may be any length; RFC 2104 hashes keys longer
// than the block size and zero-pads keys shorter than it.
func New(key []byte) *MAC {
	m := &MAC{}

	var keyBlock [blockSize]byte
	if len(key) > blockSize {
		sum := sha512core.New()
		sum.Write(key)
		copy(keyBlock[:], sum.Sum(nil))
	} else {
		copy(keyBlock[:], key)
	}

	var innerPad, outerPad [blockSize]byte
	for i := 0; i < blockSize; i++ {
		innerPad[i] = keyBlock[i] ^ 0x36
		outerPad[i] = keyBlock[i] ^ 0x5c
	}
	m.outerKeyPad = outerPad

	m.inner = sha512core.New()
	m.inner.Write(innerPad[:])
	return m
}

// Write absorbs message bytes.
func (m *MAC) Write(p []byte) (int, error) {
	return m.inner.Write(p)
}

// Sum returns the MAC over everything written so far, without disturbing
// the running state (matching hash.Hash semantics, so callers may keep
// streaming after an intermediate Sum if ever needed).
func (m *MAC) Sum(b []byte) []byte {
	innerDigest := m.inner.Sum(nil)

	outer := sha512core.New()
	outer.Write(m.outerKeyPad[:])
	outer.Write(innerDigest)
	return outer.Sum(b)
}

// Reset is unsupported: HMAC-SHA512 as used here is always one-shot per
// keyed MAC instance (one container, one MAC). Construct a new MAC with New
// instead of resetting this one.

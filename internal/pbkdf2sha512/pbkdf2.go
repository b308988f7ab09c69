// Package pbkdf2sha512 implements PBKDF2 with HMAC-SHA512 as the
// pseudorandom function, per RFC 8018, built on internal/hmacsha512
// instead of golang.org/x/crypto/pbkdf2 so the PRF stays entirely
// hand-rolled end to end.
package pbkdf2sha512

import (
	"encoding/binary"

	"github.com/aescrypt/fileseal/internal/hmacsha512"
)

// EmptySaltFallback is substituted for the salt whenever the caller passes
// a zero-length salt, matching the documented container behavior for
// containers that carry no salt field value.
var EmptySaltFallback = []byte{0x41, 0x45, 0x53, 0x43} // "AESC"

// Key derives dkLen bytes from password and salt using iter rounds of
// HMAC-SHA512. An empty salt is replaced with EmptySaltFallback before
// derivation, so Key(p, nil, n, l) and Key(p, EmptySaltFallback, n, l)
// always agree.
func Key(password, salt []byte, iter, dkLen int) []byte {
	if len(salt) == 0 {
		salt = EmptySaltFallback
	}

	hLen := hmacsha512.Size
	numBlocks := (dkLen + hLen - 1) / hLen
	dk := make([]byte, 0, numBlocks*hLen)

	var intBuf [4]byte
	for block := 1; block <= numBlocks; block++ {
		binary.BigEndian.PutUint32(intBuf[:], uint32(block))

		u := prf(password, salt, intBuf[:])
		t := make([]byte, len(u))
		copy(t, u)

		for i := 1; i < iter; i++ {
			u = prf(password, u)
			for j := range t {
				t[j] ^= u[j]
			}
		}
		dk = append(dk, t...)
	}
	return dk[:dkLen]
}

// prf computes HMAC-SHA512(password, concat(parts...)). A fresh MAC is
// keyed per call rather than reusing one across U_c iterations: the MAC
// type accumulates written bytes with no reset, so each independent
// message needs its own instance.
func prf(password []byte, parts ...[]byte) []byte {
	mac := hmacsha512.New(password)
	for _, p := range parts {
		mac.Write(p)
	}
	return mac.Sum(nil)
}

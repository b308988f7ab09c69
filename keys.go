package fileseal

import "github.com/aescrypt/fileseal/internal/pbkdf2sha512"

// macKeyLen is fixed at 24 bytes regardless of AES key width (§4.4).
const macKeyLen = 24

// kdfOutputLen is the full PBKDF2 output the key split is carved from:
// 32 bytes reserved for the AES key (enough for the widest, AES-256, key)
// plus the 24-byte MAC key starting at offset 32, plus 8 bytes of unused
// trailing material from the fixed 64-byte derivation.
const kdfOutputLen = 64

// derivedKeys holds the AES and MAC keys split out of one PBKDF2 run.
type derivedKeys struct {
	aesKey []byte
	macKey []byte
}

// deriveKeys runs PBKDF2-HMAC-SHA512(password, salt, Iterations, 64) and
// splits the output per §4.4: AES key = first keyBits/8 bytes, MAC key =
// 24 bytes starting at offset 32.
func deriveKeys(password, salt []byte, keyBits KeyBits) derivedKeys {
	out := pbkdf2sha512.Key(password, salt, Iterations, kdfOutputLen)
	aesLen := int(keyBits) / 8
	aesKey := make([]byte, aesLen)
	copy(aesKey, out[:aesLen])
	macKey := make([]byte, macKeyLen)
	copy(macKey, out[32:32+macKeyLen])
	zero(out)
	return derivedKeys{aesKey: aesKey, macKey: macKey}
}

// zero overwrites b with zeros; used to scrub key material once a
// Sealer operation is done with it (spec §3 "Lifecycles").
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

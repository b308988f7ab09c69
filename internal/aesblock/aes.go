// Package aesblock implements the AES block cipher from first principles:
// key expansion and single 16-byte block encrypt/decrypt for 128, 192, and
// 256-bit keys, per FIPS-197. There is no mode of operation here — that is
// internal/ctrstream's job — only the block primitive.
package aesblock

import "fmt"

// BlockSize is the AES block size in bytes, fixed regardless of key length.
const BlockSize = 16

// sbox is the FIPS-197 S-box.
var sbox = [256]byte{
	0x63, 0x7c, 0x77, 0x7b, 0xf2, 0x6b, 0x6f, 0xc5, 0x30, 0x01, 0x67, 0x2b, 0xfe, 0xd7, 0xab, 0x76,
	0xca, 0x82, 0xc9, 0x7d, 0xfa, 0x59, 0x47, 0xf0, 0xad, 0xd4, 0xa2, 0xaf, 0x9c, 0xa4, 0x72, 0xc0,
	0xb7, 0xfd, 0x93, 0x26, 0x36, 0x3f, 0xf7, 0xcc, 0x34, 0xa5, 0xe5, 0xf1, 0x71, 0xd8, 0x31, 0x15,
	0x04, 0xc7, 0x23, 0xc3, 0x18, 0x96, 0x05, 0x9a, 0x07, 0x12, 0x80, 0xe2, 0xeb, 0x27, 0xb2, 0x75,
	0x09, 0x83, 0x2c, 0x1a, 0x1b, 0x6e, 0x5a, 0xa0, 0x52, 0x3b, 0xd6, 0xb3, 0x29, 0xe3, 0x2f, 0x84,
	0x53, 0xd1, 0x00, 0xed, 0x20, 0xfc, 0xb1, 0x5b, 0x6a, 0xcb, 0xbe, 0x39, 0x4a, 0x4c, 0x58, 0xcf,
	0xd0, 0xef, 0xaa, 0xfb, 0x43, 0x4d, 0x33, 0x85, 0x45, 0xf9, 0x02, 0x7f, 0x50, 0x3c, 0x9f, 0xa8,
	0x51, 0xa3, 0x40, 0x8f, 0x92, 0x9d, 0x38, 0xf5, 0xbc, 0xb6, 0xda, 0x21, 0x10, 0xff, 0xf3, 0xd2,
	0xcd, 0x0c, 0x13, 0xec, 0x5f, 0x97, 0x44, 0x17, 0xc4, 0xa7, 0x7e, 0x3d, 0x64, 0x5d, 0x19, 0x73,
	0x60, 0x81, 0x4f, 0xdc, 0x22, 0x2a, 0x90, 0x88, 0x46, 0xee, 0xb8, 0x14, 0xde, 0x5e, 0x0b, 0xdb,
	0xe0, 0x32, 0x3a, 0x0a, 0x49, 0x06, 0x24, 0x5c, 0xc2, 0xd3, 0xac, 0x62, 0x91, 0x95, 0xe4, 0x79,
	0xe7, 0xc8, 0x37, 0x6d, 0x8d, 0xd5, 0x4e, 0xa9, 0x6c, 0x56, 0xf4, 0xea, 0x65, 0x7a, 0xae, 0x08,
	0xba, 0x78, 0x25, 0x2e, 0x1c, 0xa6, 0xb4, 0xc6, 0xe8, 0xdd, 0x74, 0x1f, 0x4b, 0xbd, 0x8b, 0x8a,
	0x70, 0x3e, 0xb5, 0x66, 0x48, 0x03, 0xf6, 0x0e, 0x61, 0x35, 0x57, 0xb9, 0x86, 0xc1, 0x1d, 0x9e,
	0xe1, 0xf8, 0x98, 0x11, 0x69, 0xd9, 0x8e, 0x94, 0x9b, 0x1e, 0x87, 0xe9, 0xce, 0x55, 0x28, 0xdf,
	0x8c, 0xa1, 0x89, 0x0d, 0xbf, 0xe6, 0x42, 0x68, 0x41, 0x99, 0x2d, 0x0f, 0xb0, 0x54, 0xbb, 0x16,
}

var invSbox [256]byte

var rcon = [15]byte{
	0x8d, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36, 0x6c, 0xd8, 0xab, 0x4d,
}

// encT[n] holds the precomputed word produced by mixing sbox[b] with the
// MixColumns matrix for the n-th row position; xoring the four rotations
// together for a 4-byte column reproduces SubBytes+ShiftRows+MixColumns in
// four table lookups, the classic T-table construction.
var encT [4][256]uint32
var decT [4][256]uint32

func gmul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

func init() {
	for i, s := range sbox {
		invSbox[s] = byte(i)
	}
	for x := 0; x < 256; x++ {
		s := sbox[x]
		// encryption column: [2,1,1,3] x s
		w := uint32(gmul(s, 2))<<24 | uint32(s)<<16 | uint32(s)<<8 | uint32(gmul(s, 3))
		encT[0][x] = w
		encT[1][x] = rotr32(w, 8)
		encT[2][x] = rotr32(w, 16)
		encT[3][x] = rotr32(w, 24)

		is := invSbox[x]
		w = uint32(gmul(is, 0x0e))<<24 | uint32(gmul(is, 0x09))<<16 | uint32(gmul(is, 0x0d))<<8 | uint32(gmul(is, 0x0b))
		decT[0][x] = w
		decT[1][x] = rotr32(w, 8)
		decT[2][x] = rotr32(w, 16)
		decT[3][x] = rotr32(w, 24)
	}
}

func rotl32(x uint32, n uint) uint32 { return (x << n) | (x >> (32 - n)) }

func rotr32(x uint32, n uint) uint32 { return (x >> n) | (x << (32 - n)) }

// Cipher holds an expanded AES key schedule for one key length.
type Cipher struct {
	encRoundKeys [][4]uint32 // Nr+1 round keys, each a 4-word column
	decRoundKeys [][4]uint32
	nr           int // number of rounds: 10, 12, or 14
}

// New expands key into round keys. key must be 16, 24, or 32 bytes
// (AES-128/192/256); any other length is rejected.
func New(key []byte) (*Cipher, error) {
	var nk, nr int
	switch len(key) {
	case 16:
		nk, nr = 4, 10
	case 24:
		nk, nr = 6, 12
	case 32:
		nk, nr = 8, 14
	default:
		return nil, fmt.Errorf("aesblock: unsupported key length %d", len(key))
	}

	nw := 4 * (nr + 1)
	w := make([]uint32, nw)
	for i := 0; i < nk; i++ {
		w[i] = uint32(key[4*i])<<24 | uint32(key[4*i+1])<<16 | uint32(key[4*i+2])<<8 | uint32(key[4*i+3])
	}
	for i := nk; i < nw; i++ {
		temp := w[i-1]
		if i%nk == 0 {
			temp = subWord(rotl32(temp, 8)) ^ uint32(rcon[i/nk])<<24
		} else if nk > 6 && i%nk == 4 {
			temp = subWord(temp)
		}
		w[i] = w[i-nk] ^ temp
	}

	c := &Cipher{nr: nr}
	c.encRoundKeys = make([][4]uint32, nr+1)
	for r := 0; r <= nr; r++ {
		c.encRoundKeys[r] = [4]uint32{w[4*r], w[4*r+1], w[4*r+2], w[4*r+3]}
	}

	// Decryption round keys are the encryption ones in reverse order, with
	// the inner rounds run through InvMixColumns (equivalent-inverse-cipher
	// form), which lets decryption reuse the same T-table structure as
	// encryption instead of a separate ShiftRows/SubBytes/AddRoundKey pass.
	c.decRoundKeys = make([][4]uint32, nr+1)
	c.decRoundKeys[0] = c.encRoundKeys[nr]
	c.decRoundKeys[nr] = c.encRoundKeys[0]
	for r := 1; r < nr; r++ {
		c.decRoundKeys[r] = invMixColumnsWord(c.encRoundKeys[nr-r])
	}

	return c, nil
}

func subWord(w uint32) uint32 {
	b0 := sbox[byte(w>>24)]
	b1 := sbox[byte(w>>16)]
	b2 := sbox[byte(w>>8)]
	b3 := sbox[byte(w)]
	return uint32(b0)<<24 | uint32(b1)<<16 | uint32(b2)<<8 | uint32(b3)
}

func invMixColumnsWord(w [4]uint32) [4]uint32 {
	var out [4]uint32
	for c := 0; c < 4; c++ {
		a0 := byte(w[c] >> 24)
		a1 := byte(w[c] >> 16)
		a2 := byte(w[c] >> 8)
		a3 := byte(w[c])
		r0 := gmul(a0, 0x0e) ^ gmul(a1, 0x0b) ^ gmul(a2, 0x0d) ^ gmul(a3, 0x09)
		r1 := gmul(a0, 0x09) ^ gmul(a1, 0x0e) ^ gmul(a2, 0x0b) ^ gmul(a3, 0x0d)
		r2 := gmul(a0, 0x0d) ^ gmul(a1, 0x09) ^ gmul(a2, 0x0e) ^ gmul(a3, 0x0b)
		r3 := gmul(a0, 0x0b) ^ gmul(a1, 0x0d) ^ gmul(a2, 0x09) ^ gmul(a3, 0x0e)
		out[c] = uint32(r0)<<24 | uint32(r1)<<16 | uint32(r2)<<8 | uint32(r3)
	}
	return out
}

// BlockSize returns aesblock.BlockSize; present so callers holding only a
// *Cipher can size their buffers without importing the package constant.
func (c *Cipher) BlockSize() int { return BlockSize }

// KeyLen returns the number of rounds implied by the expanded key, mapped
// back to its original key length in bytes (16, 24, or 32).
func (c *Cipher) KeyLen() int {
	switch c.nr {
	case 10:
		return 16
	case 12:
		return 24
	default:
		return 32
	}
}

func loadState(src []byte) [4]uint32 {
	var s [4]uint32
	for col := 0; col < 4; col++ {
		s[col] = uint32(src[4*col])<<24 | uint32(src[4*col+1])<<16 | uint32(src[4*col+2])<<8 | uint32(src[4*col+3])
	}
	return s
}

func storeState(s [4]uint32, dst []byte) {
	for col := 0; col < 4; col++ {
		dst[4*col] = byte(s[col] >> 24)
		dst[4*col+1] = byte(s[col] >> 16)
		dst[4*col+2] = byte(s[col] >> 8)
		dst[4*col+3] = byte(s[col])
	}
}

func addRoundKey(s [4]uint32, rk [4]uint32) [4]uint32 {
	return [4]uint32{s[0] ^ rk[0], s[1] ^ rk[1], s[2] ^ rk[2], s[3] ^ rk[3]}
}

// Encrypt encrypts one 16-byte block from src into dst. src and dst may
// overlap fully but not partially.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("aesblock: block length must be 16 bytes")
	}
	s := addRoundKey(loadState(src), c.encRoundKeys[0])

	for round := 1; round < c.nr; round++ {
		rk := c.encRoundKeys[round]
		s = [4]uint32{
			encT[0][byte(s[0]>>24)] ^ encT[1][byte(s[1]>>16)] ^ encT[2][byte(s[2]>>8)] ^ encT[3][byte(s[3])] ^ rk[0],
			encT[0][byte(s[1]>>24)] ^ encT[1][byte(s[2]>>16)] ^ encT[2][byte(s[3]>>8)] ^ encT[3][byte(s[0])] ^ rk[1],
			encT[0][byte(s[2]>>24)] ^ encT[1][byte(s[3]>>16)] ^ encT[2][byte(s[0]>>8)] ^ encT[3][byte(s[1])] ^ rk[2],
			encT[0][byte(s[3]>>24)] ^ encT[1][byte(s[0]>>16)] ^ encT[2][byte(s[1]>>8)] ^ encT[3][byte(s[2])] ^ rk[3],
		}
	}

	// Final round has no MixColumns: apply ShiftRows+SubBytes via the sbox
	// directly rather than the MixColumns-folded T-tables.
	final := c.encRoundKeys[c.nr]
	out := [4]uint32{
		finalWord(s[0], s[1], s[2], s[3]) ^ final[0],
		finalWord(s[1], s[2], s[3], s[0]) ^ final[1],
		finalWord(s[2], s[3], s[0], s[1]) ^ final[2],
		finalWord(s[3], s[0], s[1], s[2]) ^ final[3],
	}
	storeState(out, dst)
}

func finalWord(a, b, c, d uint32) uint32 {
	return uint32(sbox[byte(a>>24)])<<24 | uint32(sbox[byte(b>>16)])<<16 | uint32(sbox[byte(c>>8)])<<8 | uint32(sbox[byte(d)])
}

// Decrypt decrypts one 16-byte block from src into dst.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("aesblock: block length must be 16 bytes")
	}
	s := addRoundKey(loadState(src), c.decRoundKeys[0])

	for round := 1; round < c.nr; round++ {
		rk := c.decRoundKeys[round]
		s = [4]uint32{
			decT[0][byte(s[0]>>24)] ^ decT[1][byte(s[3]>>16)] ^ decT[2][byte(s[2]>>8)] ^ decT[3][byte(s[1])] ^ rk[0],
			decT[0][byte(s[1]>>24)] ^ decT[1][byte(s[0]>>16)] ^ decT[2][byte(s[3]>>8)] ^ decT[3][byte(s[2])] ^ rk[1],
			decT[0][byte(s[2]>>24)] ^ decT[1][byte(s[1]>>16)] ^ decT[2][byte(s[0]>>8)] ^ decT[3][byte(s[3])] ^ rk[2],
			decT[0][byte(s[3]>>24)] ^ decT[1][byte(s[2]>>16)] ^ decT[2][byte(s[1]>>8)] ^ decT[3][byte(s[0])] ^ rk[3],
		}
	}

	final := c.decRoundKeys[c.nr]
	out := [4]uint32{
		invFinalWord(s[0], s[3], s[2], s[1]) ^ final[0],
		invFinalWord(s[1], s[0], s[3], s[2]) ^ final[1],
		invFinalWord(s[2], s[1], s[0], s[3]) ^ final[2],
		invFinalWord(s[3], s[2], s[1], s[0]) ^ final[3],
	}
	storeState(out, dst)
}

func invFinalWord(a, b, c, d uint32) uint32 {
	return uint32(invSbox[byte(a>>24)])<<24 | uint32(invSbox[byte(b>>16)])<<16 | uint32(invSbox[byte(c>>8)])<<8 | uint32(invSbox[byte(d)])
}

package aesblock

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

// FIPS-197 Appendix B/C worked examples.
func TestEncryptDecryptKAT(t *testing.T) {
	cases := []struct {
		name       string
		key        string
		plaintext  string
		ciphertext string
	}{
		{
			name:       "AES-128",
			key:        "000102030405060708090a0b0c0d0e0f",
			plaintext:  "00112233445566778899aabbccddeeff",
			ciphertext: "69c4e0d86a7b0430d8cdb78070b4c55a",
		},
		{
			name:       "AES-192",
			key:        "000102030405060708090a0b0c0d0e0f1011121314151617",
			plaintext:  "00112233445566778899aabbccddeeff",
			ciphertext: "dda97ca4864cdfe06eaf70a0ec0d7191",
		},
		{
			name:       "AES-256",
			key:        "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
			plaintext:  "00112233445566778899aabbccddeeff",
			ciphertext: "8ea2b7ca516745bfeafc49904b496089",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			key := mustHex(t, c.key)
			pt := mustHex(t, c.plaintext)
			want := mustHex(t, c.ciphertext)

			cipher, err := New(key)
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			got := make([]byte, BlockSize)
			cipher.Encrypt(got, pt)
			if !bytes.Equal(got, want) {
				t.Fatalf("encrypt mismatch:\n got  %x\n want %x", got, want)
			}

			back := make([]byte, BlockSize)
			cipher.Decrypt(back, got)
			if !bytes.Equal(back, pt) {
				t.Fatalf("decrypt mismatch:\n got  %x\n want %x", back, pt)
			}
		})
	}
}

func TestRoundTripAllKeyWidths(t *testing.T) {
	plaintexts := [][]byte{
		bytes.Repeat([]byte{0x00}, BlockSize),
		bytes.Repeat([]byte{0xff}, BlockSize),
		mustHex(t, "00112233445566778899aabbccddeeff"),
	}
	for _, keyLen := range []int{16, 24, 32} {
		key := make([]byte, keyLen)
		for i := range key {
			key[i] = byte(i * 7)
		}
		cipher, err := New(key)
		if err != nil {
			t.Fatalf("New(%d): %v", keyLen, err)
		}
		for _, pt := range plaintexts {
			ct := make([]byte, BlockSize)
			cipher.Encrypt(ct, pt)
			back := make([]byte, BlockSize)
			cipher.Decrypt(back, ct)
			if !bytes.Equal(back, pt) {
				t.Fatalf("key len %d: round trip mismatch: got %x want %x", keyLen, back, pt)
			}
		}
	}
}

func TestNewRejectsBadKeyLength(t *testing.T) {
	for _, n := range []int{0, 1, 15, 17, 23, 25, 31, 33, 64} {
		if _, err := New(make([]byte, n)); err == nil {
			t.Fatalf("New(%d bytes): expected error, got nil", n)
		}
	}
}

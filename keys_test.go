package fileseal

import (
	"bytes"
	"testing"
)

func TestDeriveKeysSplit(t *testing.T) {
	for _, kb := range []KeyBits{KeyBits128, KeyBits192, KeyBits256} {
		keys := deriveKeys([]byte("correct horse"), []byte("0123456789abcdef"), kb)
		if len(keys.aesKey) != int(kb)/8 {
			t.Fatalf("%s: aes key length = %d, want %d", kb, len(keys.aesKey), int(kb)/8)
		}
		if len(keys.macKey) != macKeyLen {
			t.Fatalf("%s: mac key length = %d, want %d", kb, len(keys.macKey), macKeyLen)
		}
	}
}

func TestDeriveKeysDeterministic(t *testing.T) {
	a := deriveKeys([]byte("pw"), []byte("saltsaltsaltsalt"), KeyBits256)
	b := deriveKeys([]byte("pw"), []byte("saltsaltsaltsalt"), KeyBits256)
	if !bytes.Equal(a.aesKey, b.aesKey) || !bytes.Equal(a.macKey, b.macKey) {
		t.Fatalf("deriveKeys not deterministic for identical inputs")
	}
}

func TestDeriveKeysDifferByPassphrase(t *testing.T) {
	a := deriveKeys([]byte("pw1"), []byte("saltsaltsaltsalt"), KeyBits256)
	b := deriveKeys([]byte("pw2"), []byte("saltsaltsaltsalt"), KeyBits256)
	if bytes.Equal(a.aesKey, b.aesKey) {
		t.Fatalf("aes key identical across different passphrases")
	}
}

func TestDeriveKeysEmptySaltFallback(t *testing.T) {
	withNil := deriveKeys([]byte("pw"), nil, KeyBits256)
	withFallback := deriveKeys([]byte("pw"), []byte{0x41, 0x45, 0x53, 0x43}, KeyBits256)
	if !bytes.Equal(withNil.aesKey, withFallback.aesKey) {
		t.Fatalf("empty-salt fallback not reproduced by deriveKeys")
	}
}

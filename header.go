package fileseal

import "bytes"

// Container layout constants (§3). HeaderSize and MACSize are fixed
// regardless of key width or input length; ciphertext runs from
// HeaderSize+MACSize to EOF.
const (
	HeaderSize = 56
	MACSize    = 64

	signature       = "AESC"
	formatVersion   = 0x02
	modeCTR         = 0x02
	macEnabledFlag  = 0x01
	formatTagLen    = 8
	saltLen         = 16
	reservedLen     = 16
	nonceLen        = 8
)

// Header is the 56-byte on-disk container header.
type Header struct {
	Version      byte
	KeyBits      KeyBits
	MACEnabled   bool
	Nonce        [nonceLen]byte
	FormatTag    [formatTagLen]byte
	Salt         [saltLen]byte
}

// ExtensionTag derives the header's format-tag field from a path: the
// file extension (including its leading dot), truncated to fit the
// 8-byte NUL-padded field (7 bytes of content plus the pad), or all-zero
// if the path has no extension. Grounded on the original cryptoworker's
// extension-preserving save-path handling.
func ExtensionTag(path string) [formatTagLen]byte {
	var tag [formatTagLen]byte
	dot := -1
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			break
		}
		if path[i] == '.' {
			dot = i
			break
		}
	}
	if dot < 0 {
		return tag
	}
	ext := path[dot:]
	if len(ext) > formatTagLen-1 {
		ext = ext[:formatTagLen-1]
	}
	copy(tag[:], ext)
	return tag
}

// marshal serializes the header to its 56-byte wire form.
func (h *Header) marshal() ([HeaderSize]byte, error) {
	var buf [HeaderSize]byte
	copy(buf[0:4], signature)
	buf[4] = h.Version
	code, err := h.KeyBits.code()
	if err != nil {
		return buf, err
	}
	buf[5] = code
	buf[6] = modeCTR
	if h.MACEnabled {
		buf[7] = macEnabledFlag
	}
	copy(buf[8:16], h.Nonce[:])
	copy(buf[16:24], h.FormatTag[:])
	copy(buf[24:40], h.Salt[:])
	// buf[40:56] reserved, left zero.
	return buf, nil
}

// unmarshalHeader parses a 56-byte buffer into a Header, validating the
// signature and key-length code per §7 (InvalidSignature,
// UnsupportedKeyLength). The version byte is stored without being checked
// and the mode-code byte is not read at all: §9 leaves reserved bytes
// unchecked, and this implementation extends that tolerance to the mode
// byte since CTR is presently the only mode this format defines.
func unmarshalHeader(buf []byte) (*Header, error) {
	if len(buf) < HeaderSize {
		return nil, &HeaderError{Field: "length", Message: "short header"}
	}
	if !bytes.Equal(buf[0:4], []byte(signature)) {
		return nil, &HeaderError{Field: "signature", Message: "does not start with \"AESC\"", Err: ErrInvalidSignature}
	}
	kb, err := keyBitsFromCode(buf[5])
	if err != nil {
		return nil, &HeaderError{Field: "keyLengthCode", Message: "unsupported key length code", Err: ErrUnsupportedKeyLength}
	}

	h := &Header{
		Version:    buf[4],
		KeyBits:    kb,
		MACEnabled: buf[7]&macEnabledFlag != 0,
	}
	copy(h.Nonce[:], buf[8:16])
	copy(h.FormatTag[:], buf[16:24])
	copy(h.Salt[:], buf[24:40])
	return h, nil
}

// saltForKDF returns the salt to feed the KDF: the header's stored salt
// for version >= 0x02 containers, or nil (triggering the KDF's own
// empty-salt fallback) for older versions that never stored one (§4.6
// step 3 of the decrypt path).
func (h *Header) saltForKDF() []byte {
	if h.Version < 0x02 {
		return nil
	}
	return h.Salt[:]
}

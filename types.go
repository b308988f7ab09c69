package fileseal

// KeyBits selects the AES key width used for a container.
type KeyBits uint16

const (
	KeyBits128 KeyBits = 128
	KeyBits192 KeyBits = 192
	KeyBits256 KeyBits = 256
)

// String returns the human-readable key width, e.g. "AES-256".
func (k KeyBits) String() string {
	switch k {
	case KeyBits128:
		return "AES-128"
	case KeyBits192:
		return "AES-192"
	case KeyBits256:
		return "AES-256"
	default:
		return "unknown"
	}
}

// code maps a KeyBits value to the on-disk key-length code (§3).
func (k KeyBits) code() (byte, error) {
	switch k {
	case KeyBits128:
		return 0x01, nil
	case KeyBits192:
		return 0x02, nil
	case KeyBits256:
		return 0x03, nil
	default:
		return 0, &ValidationError{Field: "keyBits", Value: uint16(k), Message: "key width must be 128, 192, or 256"}
	}
}

func keyBitsFromCode(code byte) (KeyBits, error) {
	switch code {
	case 0x01:
		return KeyBits128, nil
	case 0x02:
		return KeyBits192, nil
	case 0x03:
		return KeyBits256, nil
	default:
		return 0, &HeaderError{Field: "keyLengthCode", Message: "unsupported key length code"}
	}
}

// ProgressFunc is invoked once per streamed chunk during Encrypt/Decrypt,
// reporting cumulative bytes processed against the known total. It must be
// safe to call from the streaming goroutine; it grants no cancellation.
type ProgressFunc func(processed, total int64)

// Iterations is the fixed PBKDF2 iteration count used by the container
// format (§4.4); it is not configurable per file, so every container of a
// given version derives keys identically from (password, salt).
const Iterations = 10000

// ChunkSize is the default streaming chunk size recommended by §4.6 step 6.
const ChunkSize = 1 << 20 // 1 MiB

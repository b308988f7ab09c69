package fileseal

import "fmt"

// Input validation helpers, kept in the teacher's defensive-programming
// style: small, single-purpose checks that return a *ValidationError
// rather than panicking, so a Sealer's public operations fail cleanly on
// caller mistakes instead of corrupting a container mid-stream.

// validateBuffer checks that buf is non-nil and at least minSize bytes.
func validateBuffer(buf []byte, name string, minSize int) error {
	if buf == nil {
		return &ValidationError{Field: name, Message: "buffer cannot be nil"}
	}
	if minSize > 0 && len(buf) < minSize {
		return &ValidationError{
			Field:   name,
			Value:   len(buf),
			Message: fmt.Sprintf("buffer too small: got %d bytes, need at least %d", len(buf), minSize),
		}
	}
	return nil
}

// validatePassphrase enforces only what spec §3/§6 requires of the core:
// a non-nil byte sequence. Length and charset policy belong to the
// operator surface (cmd/aescryptctl), not here.
func validatePassphrase(passphrase []byte) error {
	if passphrase == nil {
		return &ValidationError{Field: "passphrase", Message: "passphrase cannot be nil"}
	}
	return nil
}

// validateKeyBits checks that bits is one of the three supported widths.
func validateKeyBits(bits KeyBits) error {
	_, err := bits.code()
	return err
}

// validatePath checks that path is non-empty.
func validatePath(path, field string) error {
	if path == "" {
		return &ValidationError{Field: field, Message: "path cannot be empty"}
	}
	return nil
}

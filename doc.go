// Package fileseal implements a from-scratch AES/SHA-512 cryptographic
// engine and a versioned, authenticated binary file-container format on
// top of it.
//
// # Overview
//
// Every primitive below the container layer is implemented in this
// module rather than borrowed from crypto/aes or crypto/sha512:
//
//   - AES-128/192/256 key schedule and T-table block cipher (internal/aesblock)
//   - SHA-512 streaming digest (internal/sha512core)
//   - HMAC-SHA512 streaming MAC (internal/hmacsha512)
//   - PBKDF2-HMAC-SHA512 key stretching (internal/pbkdf2sha512)
//   - AES-CTR streaming mode (internal/ctrstream)
//
// Sealer, at the root of this package, drives those primitives through
// the authenticated-container protocol: derive (k_aes, k_mac) from a
// passphrase and salt, CTR-encrypt the plaintext while feeding it to a
// running HMAC, and write header + MAC + ciphertext to the output sink.
// Decryption is two-pass: ciphertext is decrypted to a scratch sink
// first, the MAC is recomputed and compared in constant time, and only a
// verified scratch sink is copied to the final output path.
//
// # Basic usage
//
//	sealer := fileseal.New(osFS)
//	err := sealer.Encrypt("report.pdf", "report.pdf.enc", fileseal.KeyBits256, passphrase, nil)
//
//	outPath, err := sealer.Decrypt("report.pdf.enc", "report", passphrase, nil)
//
// # Container format
//
// On disk: a 56-byte header (signature, version, key-length code, mode
// code, MAC-enabled flag, nonce, format tag, KDF salt, reserved), a
// 64-byte MAC slot, then ciphertext to EOF. The MAC covers the header and
// the recovered plaintext — never the ciphertext or the MAC slot itself.
//
// # Security considerations
//
// Protected against: tampering with the header, MAC slot, or ciphertext
// (any single-byte flip causes decrypt to fail, never to silently
// succeed); passphrase-probing via MAC-comparison timing (the final
// compare is constant-time); degraded randomness (salt/nonce generation
// failures abort the operation rather than falling back to a
// non-cryptographic source).
//
// Not protected against: compromised hosts, memory-resident plaintext
// while a file is open, side-channel attacks on the running process, or
// metadata leakage (the container reveals its own size and, via the
// format tag, the original extension).
//
// # Non-goals
//
// No asymmetric cryptography, no CBC/GCM/XTS modes, no compression, no
// key escrow, no multi-recipient keys. The protocol is explicit
// encrypt-then-MAC, not a single-pass AEAD construction.
package fileseal

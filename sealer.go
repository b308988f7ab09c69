package fileseal

import (
	"crypto/rand"
	"crypto/subtle"
	"io"

	"github.com/absfs/absfs"
	"github.com/google/uuid"

	"github.com/aescrypt/fileseal/internal/aesblock"
	"github.com/aescrypt/fileseal/internal/ctrstream"
	"github.com/aescrypt/fileseal/internal/hmacsha512"
)

// Sealer is the C6 authenticated-container orchestrator: it drives the
// encrypt and decrypt state machines described in spec §4.6 over an
// absfs.FileSystem collaborator, the filesystem abstraction the container
// format treats as opaque (open-for-read, open-for-write, scratch-file
// creation, remove-by-path).
type Sealer struct {
	fs   absfs.FileSystem
	rand io.Reader
}

// New returns a Sealer backed by fs, using crypto/rand for salt and nonce
// generation.
func New(fs absfs.FileSystem) *Sealer {
	return &Sealer{fs: fs, rand: rand.Reader}
}

// NewWithRand returns a Sealer that draws its salt and nonce bytes from r
// instead of crypto/rand, for deterministic testing.
func NewWithRand(fs absfs.FileSystem, r io.Reader) *Sealer {
	return &Sealer{fs: fs, rand: r}
}

func (s *Sealer) fillRandom(b []byte) error {
	if _, err := io.ReadFull(s.rand, b); err != nil {
		// §9 open question: refuse to encrypt rather than degrade to a
		// non-cryptographic fallback.
		return &IOError{Operation: "random", Path: "", Err: err}
	}
	return nil
}

// Encrypt reads inputPath in full, derives a key from passphrase, and
// writes the authenticated container to outputPath, following the
// encrypt state machine of spec §4.6. progress, if non-nil, is invoked
// once per streamed chunk.
func (s *Sealer) Encrypt(inputPath, outputPath string, keyBits KeyBits, passphrase []byte, progress ProgressFunc) error {
	if err := validateKeyBits(keyBits); err != nil {
		return err
	}
	if err := validatePath(inputPath, "inputPath"); err != nil {
		return err
	}
	if err := validatePath(outputPath, "outputPath"); err != nil {
		return err
	}
	if err := validatePassphrase(passphrase); err != nil {
		return err
	}

	in, err := s.fs.Open(inputPath)
	if err != nil {
		return &IOError{Operation: "open", Path: inputPath, Err: err}
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return &IOError{Operation: "stat", Path: inputPath, Err: err}
	}
	total := info.Size()

	var salt [saltLen]byte
	var nonce [nonceLen]byte
	if err := s.fillRandom(salt[:]); err != nil {
		return err
	}
	if err := s.fillRandom(nonce[:]); err != nil {
		return err
	}

	keys := deriveKeys(passphrase, salt[:], keyBits)
	defer zero(keys.aesKey)
	defer zero(keys.macKey)

	header := &Header{
		Version:    formatVersion,
		KeyBits:    keyBits,
		MACEnabled: true,
		Nonce:      nonce,
		FormatTag:  ExtensionTag(inputPath),
		Salt:       salt,
	}
	headerBytes, err := header.marshal()
	if err != nil {
		return err
	}

	out, err := s.fs.Create(outputPath)
	if err != nil {
		return &IOError{Operation: "create", Path: outputPath, Err: err}
	}
	defer out.Close()

	mac := hmacsha512.New(keys.macKey)
	mac.Write(headerBytes[:])

	if _, err := out.Write(headerBytes[:]); err != nil {
		return &IOError{Operation: "write", Path: outputPath, Err: err}
	}
	var zeroMAC [MACSize]byte
	if _, err := out.Write(zeroMAC[:]); err != nil {
		return &IOError{Operation: "write", Path: outputPath, Err: err}
	}

	blockCipher, err := aesblock.New(keys.aesKey)
	if err != nil {
		return &ValidationError{Field: "key", Message: err.Error()}
	}
	stream := ctrstream.New(blockCipher, nonce[:])

	buf := make([]byte, ChunkSize)
	var processed int64
	for {
		n, rerr := in.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			mac.Write(chunk)
			stream.XORKeyStream(chunk, chunk)
			if _, werr := out.Write(chunk); werr != nil {
				return &IOError{Operation: "write", Path: outputPath, Err: werr}
			}
			processed += int64(n)
			if progress != nil {
				progress(processed, total)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return &IOError{Operation: "read", Path: inputPath, Err: rerr}
		}
	}

	sum := mac.Sum(nil)
	if _, err := out.Seek(HeaderSize, io.SeekStart); err != nil {
		return &IOError{Operation: "seek", Path: outputPath, Err: err}
	}
	if _, err := out.Write(sum); err != nil {
		return &IOError{Operation: "write", Path: outputPath, Err: err}
	}
	return nil
}

// Decrypt validates and decrypts the container at inputPath, writing the
// recovered plaintext to a path derived from outputBasePath and the
// container's stored format tag, per spec §4.6 decrypt step 6. It never
// exposes unauthenticated plaintext at the final path: the candidate
// plaintext is written to a scratch sink first and only copied to the
// final path after the MAC verifies.
func (s *Sealer) Decrypt(inputPath, outputBasePath string, passphrase []byte, progress ProgressFunc) (string, error) {
	if err := validatePath(inputPath, "inputPath"); err != nil {
		return "", err
	}
	if err := validatePath(outputBasePath, "outputBasePath"); err != nil {
		return "", err
	}
	if err := validatePassphrase(passphrase); err != nil {
		return "", err
	}

	in, err := s.fs.Open(inputPath)
	if err != nil {
		return "", &IOError{Operation: "open", Path: inputPath, Err: err}
	}
	defer in.Close()

	var headerBuf [HeaderSize]byte
	if _, err := io.ReadFull(in, headerBuf[:]); err != nil {
		return "", &HeaderError{Message: "could not read header", Err: err}
	}
	header, err := unmarshalHeader(headerBuf[:])
	if err != nil {
		return "", err
	}

	var storedMAC [MACSize]byte
	if _, err := io.ReadFull(in, storedMAC[:]); err != nil {
		return "", &HeaderError{Message: "could not read MAC slot", Err: err}
	}

	var ciphertextTotal int64
	if info, serr := in.Stat(); serr == nil {
		ciphertextTotal = info.Size() - HeaderSize - MACSize
	}

	keys := deriveKeys(passphrase, header.saltForKDF(), header.KeyBits)
	defer zero(keys.aesKey)
	defer zero(keys.macKey)

	blockCipher, err := aesblock.New(keys.aesKey)
	if err != nil {
		return "", &ValidationError{Field: "key", Message: err.Error()}
	}
	stream := ctrstream.New(blockCipher, header.Nonce[:])

	scratchPath := ".aescrypt-scratch-" + uuid.NewString()
	scratch, err := s.fs.Create(scratchPath)
	if err != nil {
		return "", &IOError{Operation: "create", Path: scratchPath, Err: err}
	}
	removeScratch := func() {
		scratch.Close()
		s.fs.Remove(scratchPath)
	}

	mac := hmacsha512.New(keys.macKey)
	mac.Write(headerBuf[:])

	buf := make([]byte, ChunkSize)
	var processed int64
	for {
		n, rerr := in.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			stream.XORKeyStream(chunk, chunk)
			mac.Write(chunk)
			if _, werr := scratch.Write(chunk); werr != nil {
				removeScratch()
				return "", &IOError{Operation: "write", Path: scratchPath, Err: werr}
			}
			processed += int64(n)
			if progress != nil {
				progress(processed, ciphertextTotal)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			removeScratch()
			return "", &IOError{Operation: "read", Path: inputPath, Err: rerr}
		}
	}

	computed := mac.Sum(nil)
	if subtle.ConstantTimeCompare(computed, storedMAC[:]) != 1 {
		removeScratch()
		return "", &IntegrityError{Path: inputPath}
	}

	finalPath := resolveOutputPath(outputBasePath, header.FormatTag)

	if _, err := scratch.Seek(0, io.SeekStart); err != nil {
		removeScratch()
		return "", &IOError{Operation: "seek", Path: scratchPath, Err: err}
	}
	final, err := s.fs.Create(finalPath)
	if err != nil {
		removeScratch()
		return "", &IOError{Operation: "create", Path: finalPath, Err: err}
	}
	if _, err := io.Copy(final, scratch); err != nil {
		final.Close()
		removeScratch()
		return "", &IOError{Operation: "write", Path: finalPath, Err: err}
	}
	if err := final.Close(); err != nil {
		removeScratch()
		return "", &IOError{Operation: "close", Path: finalPath, Err: err}
	}

	removeScratch()
	return finalPath, nil
}

// resolveOutputPath appends a non-empty format tag to base as an
// extension, matching spec §4.6 decrypt step 6.
func resolveOutputPath(base string, tag [formatTagLen]byte) string {
	end := 0
	for end < len(tag) && tag[end] != 0 {
		end++
	}
	if end == 0 {
		return base
	}
	ext := string(tag[:end])
	if ext[0] == '.' {
		return base + ext
	}
	return base + "." + ext
}

// Inspect reads and validates only the 56-byte header of the container at
// path, without deriving keys or touching ciphertext. Grounded on the
// original implementation's read_aes_key_length-style header peek, useful
// for a caller to display container metadata before prompting for a
// passphrase.
func (s *Sealer) Inspect(path string) (*Header, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, &IOError{Operation: "open", Path: path, Err: err}
	}
	defer f.Close()

	var headerBuf [HeaderSize]byte
	if _, err := io.ReadFull(f, headerBuf[:]); err != nil {
		return nil, &HeaderError{Message: "could not read header", Err: err}
	}
	return unmarshalHeader(headerBuf[:])
}

package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aescrypt/fileseal"
	"github.com/aescrypt/fileseal/internal/osfs"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt <input> <output>",
	Short: "Encrypt a file into a fileseal container",
	Args:  cobra.ExactArgs(2),
	RunE:  runEncrypt,
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	applyDebug()

	passphrase := passphraseFromEnv()
	if err := validatePassphrasePolicy(passphrase); err != nil {
		return err
	}

	keyBits, err := keyBitsFromFlag(viper.GetInt("key-bits"))
	if err != nil {
		return err
	}

	inputPath, outputPath := args[0], args[1]
	root, err := osfs.New(filepath.Dir(inputPath))
	if err != nil {
		return err
	}
	sealer := fileseal.New(root)

	slog.Info("encrypting", "input", inputPath, "keyBits", keyBits)
	err = sealer.Encrypt(filepath.Base(inputPath), relTo(filepath.Dir(inputPath), outputPath), keyBits, []byte(passphrase), func(processed, total int64) {
		slog.Debug("progress", "processed", processed, "total", total)
	})
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}
	slog.Info("wrote container", "output", outputPath)
	return nil
}

func keyBitsFromFlag(bits int) (fileseal.KeyBits, error) {
	switch bits {
	case 128:
		return fileseal.KeyBits128, nil
	case 192:
		return fileseal.KeyBits192, nil
	case 256:
		return fileseal.KeyBits256, nil
	default:
		return 0, fmt.Errorf("--key-bits must be 128, 192, or 256, got %d", bits)
	}
}

// relTo best-efforts outputPath relative to root so the osfs.FS rooted at
// root can address it; if that fails, only the base name of outputPath is
// used, so the file lands directly under root.
func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Base(path)
	}
	return rel
}

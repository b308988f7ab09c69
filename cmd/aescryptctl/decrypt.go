package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aescrypt/fileseal"
	"github.com/aescrypt/fileseal/internal/osfs"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt <input> <output-base>",
	Short: "Decrypt a fileseal container",
	Args:  cobra.ExactArgs(2),
	RunE:  runDecrypt,
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	applyDebug()

	passphrase := passphraseFromEnv()
	if err := validatePassphrasePolicy(passphrase); err != nil {
		return err
	}

	inputPath, outputBase := args[0], args[1]
	root, err := osfs.New(filepath.Dir(inputPath))
	if err != nil {
		return err
	}
	sealer := fileseal.New(root)

	slog.Info("decrypting", "input", inputPath)
	outPath, err := sealer.Decrypt(filepath.Base(inputPath), relTo(filepath.Dir(inputPath), outputBase), []byte(passphrase), func(processed, total int64) {
		slog.Debug("progress", "processed", processed, "total", total)
	})
	if err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}
	slog.Info("recovered plaintext", "output", outPath)
	return nil
}

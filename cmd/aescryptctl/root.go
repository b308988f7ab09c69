package main

import (
	"log/slog"
	"os"
	"regexp"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"hermannm.dev/devlog"
)

var logLevel slog.LevelVar

var rootCmd = &cobra.Command{
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Use:               "aescryptctl",
	Short:             "Encrypt and decrypt files with the fileseal container format",
}

func init() {
	slog.SetDefault(slog.New(devlog.NewHandler(os.Stdout, &devlog.Options{Level: &logLevel})))

	rootCmd.PersistentFlags().Bool("debug", false, "print debug logging")
	rootCmd.PersistentFlags().Int("key-bits", 256, "AES key width: 128, 192, or 256")
	rootCmd.PersistentFlags().Int64("chunk-size", 1<<20, "streaming chunk size in bytes (not applied: the sealer always streams in 1 MiB chunks)")
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("key-bits", rootCmd.PersistentFlags().Lookup("key-bits"))
	_ = viper.BindPFlag("chunk-size", rootCmd.PersistentFlags().Lookup("chunk-size"))
	viper.SetEnvPrefix("aescrypt")
	viper.AutomaticEnv()

	rootCmd.AddCommand(encryptCmd, decryptCmd, inspectCmd)
}

func applyDebug() {
	if viper.GetBool("debug") {
		logLevel.Set(slog.LevelDebug)
	}
}

// passphraseMaxLength and passphraseAlnum enforce the operator-surface
// password policy spec §6 places outside the core: up to 32 ASCII
// alphanumeric characters, grounded on the original test harness's
// password_utils.h MAX_PASSWORD_LENGTH/charset check.
const passphraseMaxLength = 32

var passphraseAlnum = regexp.MustCompile(`^[A-Za-z0-9]+$`)

func validatePassphrasePolicy(p string) error {
	if p == "" {
		return errMissingPassphrase
	}
	if len(p) > passphraseMaxLength {
		return errPassphraseTooLong
	}
	if !passphraseAlnum.MatchString(p) {
		return errPassphraseCharset
	}
	return nil
}

func passphraseFromEnv() string {
	return os.Getenv("AESCRYPT_PASSPHRASE")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

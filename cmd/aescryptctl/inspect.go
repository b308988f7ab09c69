package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aescrypt/fileseal"
	"github.com/aescrypt/fileseal/internal/osfs"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <container>",
	Short: "Print a container's header without decrypting it",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	root, err := osfs.New(filepath.Dir(path))
	if err != nil {
		return err
	}
	sealer := fileseal.New(root)

	header, err := sealer.Inspect(filepath.Base(path))
	if err != nil {
		return err
	}
	fmt.Printf("version:     0x%02x\n", header.Version)
	fmt.Printf("key width:   %s\n", header.KeyBits)
	fmt.Printf("mac enabled: %v\n", header.MACEnabled)
	fmt.Printf("format tag:  %q\n", trimTrailingZeros(header.FormatTag[:]))
	return nil
}

func trimTrailingZeros(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end])
}

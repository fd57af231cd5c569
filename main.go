package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	root := newRootCommand()
	root.SetArgs(args)
	return root.Execute()
}

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "stegohelix",
		Short: "Hide passphrase-encrypted messages in lossless images",
		Long: `stegohelix - Hide encrypted messages in image pixel LSBs

The message is encrypted with ChaCha20-Poly1305 under an Argon2id key
(4 iterations, 100 MiB, 2 lanes) and written one bit per colour byte.
Output images are always lossless (PNG, BMP or TIFF); re-encoding them
as JPEG destroys the message.

PASSPHRASE:
    Set ` + PassphraseEnvVar + ` environment variable, or enter interactively.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "verbose logging")

	root.AddCommand(newEncodeCommand(), newDecodeCommand(), newCapacityCommand())
	return root
}

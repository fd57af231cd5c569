package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stegohelix/internal/imageio"
	"stegohelix/internal/stego"
)

func newDecodeCommand() *cobra.Command {
	var opts DecodeOptions

	cmd := &cobra.Command{
		Use:     "decode",
		Short:   "Recover a hidden message",
		Example: `    stegohelix decode -i protected.png`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return decode(opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.Input, "in", "i", "", "image holding the message")
	cobra.CheckErr(cmd.MarkFlagRequired("in"))
	return cmd
}

func decode(opts DecodeOptions, w io.Writer) error {
	img, err := imageio.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	passphrase, err := getPassphrase("Enter passphrase: ")
	if err != nil {
		return fmt.Errorf("failed to get passphrase: %w", err)
	}
	defer stego.Wipe(passphrase)

	if len(passphrase) == 0 {
		return fmt.Errorf("passphrase cannot be empty")
	}

	message, err := stego.NewCodec().Reveal(img.Buf, passphrase)
	switch {
	case errors.Is(err, stego.ErrAuthentication):
		return fmt.Errorf("decryption failed: %w", err)
	case errors.Is(err, stego.ErrCapacity), errors.Is(err, stego.ErrFormat):
		return fmt.Errorf("no complete message found (was the image re-encoded lossily?): %w", err)
	case err != nil:
		return err
	}

	logrus.Debugf("recovered %d bytes", len(message))
	if _, err := fmt.Fprintln(w, string(message)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stegohelix/internal/imageio"
	"stegohelix/internal/stego"
)

func newEncodeCommand() *cobra.Command {
	var opts EncodeOptions

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Hide a message in a cover image",
		Example: `    stegohelix encode -i cover.png -m "meet at noon" -o protected.png
    stegohelix encode -i cover.jpg -f secret.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return encode(opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Input, "in", "i", "", "cover image (png, jpg, bmp, tiff)")
	cmd.Flags().StringVarP(&opts.Output, "out", "o", DefaultOutput, "output image (png, bmp, tiff)")
	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", "secret message")
	cmd.Flags().StringVarP(&opts.MessageFile, "message-file", "f", "", "path to secret message file")
	cobra.CheckErr(cmd.MarkFlagRequired("in"))
	cmd.MarkFlagsMutuallyExclusive("message", "message-file")
	return cmd
}

func encode(opts EncodeOptions) error {
	// Fail on a lossy output name before asking for anything.
	if _, err := imageio.FormatFromPath(opts.Output); err != nil {
		return err
	}

	message, err := readMessage(opts)
	if err != nil {
		return err
	}
	if len(message) == 0 {
		return fmt.Errorf("message cannot be empty")
	}

	cover, err := imageio.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("failed to load cover image: %w", err)
	}

	if limit := stego.Capacity(len(cover.Buf)); len(message) > limit {
		return fmt.Errorf("message is %d bytes, %s holds at most %d", len(message), opts.Input, limit)
	}

	passphrase, err := getPassphraseWithConfirm("Enter passphrase: ", "Confirm passphrase: ")
	if err != nil {
		return fmt.Errorf("failed to get passphrase: %w", err)
	}
	defer stego.Wipe(passphrase)

	if len(passphrase) == 0 {
		return fmt.Errorf("passphrase cannot be empty")
	}

	logrus.Debugf("deriving key and embedding %d bytes", len(message))
	buf, err := stego.NewCodec().Hide(cover.Buf, message, passphrase)
	if err != nil {
		return fmt.Errorf("encoding failed: %w", err)
	}

	out := &imageio.Pixels{Width: cover.Width, Height: cover.Height, Buf: buf}
	if err := imageio.Save(opts.Output, out); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Output, err)
	}

	logrus.Infof("message hidden; image written to %s", opts.Output)
	return nil
}

func readMessage(opts EncodeOptions) ([]byte, error) {
	source := lo.Ternary(opts.MessageFile != "", "file", "flag")
	logrus.Debugf("reading secret from %s", source)

	if opts.MessageFile == "" {
		return []byte(opts.Message), nil
	}
	message, err := os.ReadFile(opts.MessageFile)
	if err != nil {
		return nil, fmt.Errorf("could not read secret (%s): %w", opts.MessageFile, err)
	}
	return message, nil
}

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"stegohelix/internal/imageio"
	"stegohelix/internal/stego"
)

func newCapacityCommand() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Show how many message bytes a cover image can hold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return capacity(input, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&input, "in", "i", "", "cover image")
	cobra.CheckErr(cmd.MarkFlagRequired("in"))
	return cmd
}

func capacity(input string, w io.Writer) error {
	img, err := imageio.Load(input)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	_, err = fmt.Fprintf(w, "%s: %dx%d, %d bytes of message capacity\n",
		input, img.Width, img.Height, stego.Capacity(len(img.Buf)))
	return err
}

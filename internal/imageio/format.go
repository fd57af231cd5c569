package imageio

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is a lossless output format.
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

var extensions = map[string]Format{
	".png":  PNG,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
}

var lossyExtensions = []string{".jpg", ".jpeg", ".webp", ".gif"}

// FormatFromPath picks the output format from a file extension.
// Paths without an extension default to PNG.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return PNG, nil
	}
	if lo.Contains(lossyExtensions, ext) {
		return "", fmt.Errorf("%w: %s (use %s)", ErrLossyFormat, ext, strings.Join(SupportedExtensions(), ", "))
	}
	format, ok := extensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, ext)
	}
	return format, nil
}

// SupportedExtensions lists the extensions Save accepts, sorted.
func SupportedExtensions() []string {
	exts := lo.Keys(extensions)
	slices.Sort(exts)
	return exts
}

// Encode writes p to w in the given lossless format.
func Encode(w io.Writer, format Format, p *Pixels) error {
	img, err := p.Image()
	if err != nil {
		return err
	}

	switch format {
	case PNG:
		err = png.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// Save writes p to path, choosing the format from the extension.
func Save(path string, p *Pixels) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	logrus.Debugf("writing %s image %s", format, path)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file (%s): %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := Encode(w, format, p); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return f.Close()
}

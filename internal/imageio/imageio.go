// Package imageio converts image files to and from the flattened pixel
// buffers the stego core works on.
//
// Buffers are 3 bytes per pixel in B, G, R order, row-major. Alpha is
// discarded on load and written as fully opaque on save.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Channels is the number of buffer bytes per pixel.
const Channels = 3

var (
	// ErrLossyFormat is returned when asked to write a format that would
	// destroy the hidden bits.
	ErrLossyFormat = errors.New("lossy output format")

	// ErrUnknownFormat is returned for an extension with no codec.
	ErrUnknownFormat = errors.New("unknown image format")
)

// Pixels is a decoded image flattened to a byte buffer.
type Pixels struct {
	Width  int
	Height int
	Buf    []byte
}

// FromImage flattens img.
func FromImage(img image.Image) *Pixels {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)

	p := &Pixels{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Buf:    make([]byte, 0, bounds.Dx()*bounds.Dy()*Channels),
	}
	for y := 0; y < p.Height; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+p.Width*4]
		for x := 0; x < len(row); x += 4 {
			p.Buf = append(p.Buf, row[x+2], row[x+1], row[x])
		}
	}
	return p
}

// Image rebuilds an opaque image from the buffer.
func (p *Pixels) Image() (*image.NRGBA, error) {
	if want := p.Width * p.Height * Channels; len(p.Buf) != want {
		return nil, fmt.Errorf("buffer holds %d bytes, %dx%d image needs %d", len(p.Buf), p.Width, p.Height, want)
	}
	img := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	for i, j := 0, 0; i < len(p.Buf); i, j = i+Channels, j+4 {
		img.Pix[j] = p.Buf[i+2]
		img.Pix[j+1] = p.Buf[i+1]
		img.Pix[j+2] = p.Buf[i]
		img.Pix[j+3] = 0xff
	}
	return img, nil
}

// Decode reads any registered format (PNG, JPEG, BMP, TIFF).
func Decode(r io.Reader) (*Pixels, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), format, nil
}

// Load opens and decodes an image file.
func Load(path string) (*Pixels, error) {
	logrus.Debugf("opening image %s", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, format, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logrus.WithFields(logrus.Fields{
		"format": format,
		"width":  p.Width,
		"height": p.Height,
	}).Debug("decoded image")
	return p, nil
}

package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPixels(w, h int) *Pixels {
	p := &Pixels{Width: w, Height: h, Buf: make([]byte, w*h*Channels)}
	for i := range p.Buf {
		p.Buf[i] = byte(i*13 + 5)
	}
	return p
}

func TestFromImage_BGROrder(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.Set(1, 0, color.NRGBA{R: 40, G: 50, B: 60, A: 255})

	p := FromImage(img)
	assert.Equal(t, 2, p.Width)
	assert.Equal(t, 1, p.Height)
	assert.Equal(t, []byte{30, 20, 10, 60, 50, 40}, p.Buf)
}

func TestFromImage_OffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	img.Set(5, 5, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	img.Set(6, 5, color.NRGBA{R: 4, G: 5, B: 6, A: 255})

	p := FromImage(img)
	assert.Equal(t, []byte{3, 2, 1, 6, 5, 4}, p.Buf)
}

func TestPixels_ImageSizeMismatch(t *testing.T) {
	p := &Pixels{Width: 2, Height: 2, Buf: make([]byte, 5)}
	_, err := p.Image()
	assert.Error(t, err)
}

func TestEncodeDecode_Lossless(t *testing.T) {
	for _, format := range []Format{PNG, BMP, TIFF} {
		t.Run(string(format), func(t *testing.T) {
			want := testPixels(7, 5)

			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, format, want))

			got, name, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, string(format), name)
			assert.Equal(t, want, got)
		})
	}
}

func TestDecode_JPEGCover(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	p, name, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", name)
	assert.Len(t, p.Buf, 8*8*Channels)
}

func TestDecode_Garbage(t *testing.T) {
	_, _, err := Decode(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  error
	}{
		{"out.png", PNG, nil},
		{"OUT.PNG", PNG, nil},
		{"out.bmp", BMP, nil},
		{"out.tif", TIFF, nil},
		{"out.tiff", TIFF, nil},
		{"out", PNG, nil},
		{"out.jpg", "", ErrLossyFormat},
		{"out.jpeg", "", ErrLossyFormat},
		{"out.xyz", "", ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".bmp", ".png", ".tif", ".tiff"}, SupportedExtensions())
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	want := testPixels(4, 3)

	path := filepath.Join(dir, "protected.png")
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.ErrorIs(t, Save(filepath.Join(dir, "protected.jpg"), want), ErrLossyFormat)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

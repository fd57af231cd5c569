package stego

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/chacha20poly1305"
)

// Frame layout, all integers big-endian:
//
//	Header     4 bytes   u32 = len(Salt)+len(Nonce)+len(Tag)+len(Ciphertext)
//	Salt      16 bytes   Argon2id salt
//	Nonce     12 bytes   ChaCha20-Poly1305 nonce
//	Tag       16 bytes   Poly1305 tag
//	Ciphertext           len(plaintext) bytes
//
// The header is not bound into the AEAD as associated data, so it is only
// checked indirectly: a shifted length either exceeds the image or breaks
// the tag. Binding it would change the format.
const (
	HeaderSize = 4
	SaltSize   = 16
	NonceSize  = chacha20poly1305.NonceSize
	TagSize    = chacha20poly1305.Overhead

	// Overhead is the fixed part of the payload following the header.
	Overhead = SaltSize + NonceSize + TagSize
)

// Frame is a parsed payload. Its slices alias the buffer it was parsed from.
type Frame struct {
	Salt       []byte
	Nonce      []byte
	Tag        []byte
	Ciphertext []byte
}

// FrameSize returns the number of bytes a frame carrying n plaintext bytes occupies.
func FrameSize(n int) int {
	return HeaderSize + Overhead + n
}

// Codec builds and opens frames.
type Codec struct {
	deriver KeyDeriver
	rand    io.Reader
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithKeyDeriver replaces the Argon2id deriver. Frames produced with a
// different deriver are not readable by the default one.
func WithKeyDeriver(d KeyDeriver) CodecOption {
	return func(c *Codec) {
		c.deriver = d
	}
}

// WithRandom sets the source used for salts.
func WithRandom(r io.Reader) CodecOption {
	return func(c *Codec) {
		c.rand = r
	}
}

// NewCodec returns a Codec using Argon2id and crypto/rand.
func NewCodec(opts ...CodecOption) *Codec {
	c := &Codec{
		deriver: Argon2idDeriver{},
		rand:    rand.Reader,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildFrame encrypts plaintext under a key derived from passphrase and a
// fresh salt, and returns the complete frame including its header.
func (c *Codec) BuildFrame(plaintext, passphrase []byte) ([]byte, error) {
	if !utf8.Valid(plaintext) {
		return nil, fmt.Errorf("%w: plaintext is not valid UTF-8", ErrFormat)
	}
	if uint64(Overhead)+uint64(len(plaintext)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: plaintext of %d bytes does not fit the length header", ErrFormat, len(plaintext))
	}

	// Generate random salt
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(c.rand, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	// Only this slice is wiped; the Tink keyset built below keeps its own copy.
	key := c.deriver.DeriveKey(passphrase, salt)
	defer Wipe(key)

	primitive, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	// Tink draws a fresh nonce per call and returns nonce || ciphertext || tag.
	sealed, err := primitive.Encrypt(plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("encryption failed: %w", err)
	}
	if len(sealed) != NonceSize+len(plaintext)+TagSize {
		return nil, fmt.Errorf("unexpected sealed length %d for %d plaintext bytes", len(sealed), len(plaintext))
	}
	nonce := sealed[:NonceSize]
	ciphertext := sealed[NonceSize : len(sealed)-TagSize]
	tag := sealed[len(sealed)-TagSize:]

	payloadLen := Overhead + len(ciphertext)
	frame := make([]byte, HeaderSize, HeaderSize+payloadLen)
	binary.BigEndian.PutUint32(frame, uint32(payloadLen))
	frame = append(frame, salt...)
	frame = append(frame, nonce...)
	frame = append(frame, tag...)
	frame = append(frame, ciphertext...)

	logrus.WithFields(logrus.Fields{
		"plaintext_bytes": len(plaintext),
		"frame_bytes":     len(frame),
	}).Debug("built frame")

	return frame, nil
}

// ParseFrame splits a frame into its fields without decrypting it.
// Bytes beyond the length announced by the header are ignored.
func ParseFrame(frame []byte) (*Frame, error) {
	if len(frame) < HeaderSize {
		return nil, fmt.Errorf("%w: frame of %d bytes has no header", ErrFormat, len(frame))
	}
	payloadLen := uint64(binary.BigEndian.Uint32(frame))
	if uint64(len(frame)-HeaderSize) < payloadLen {
		return nil, fmt.Errorf("%w: header announces %d bytes, %d present", ErrFormat, payloadLen, len(frame)-HeaderSize)
	}
	if payloadLen < Overhead {
		return nil, fmt.Errorf("%w: payload of %d bytes is shorter than salt, nonce and tag", ErrFormat, payloadLen)
	}

	payload := frame[HeaderSize : HeaderSize+int(payloadLen)]
	return &Frame{
		Salt:       payload[:SaltSize],
		Nonce:      payload[SaltSize : SaltSize+NonceSize],
		Tag:        payload[SaltSize+NonceSize : Overhead],
		Ciphertext: payload[Overhead:],
	}, nil
}

// OpenFrame verifies and decrypts a frame built by BuildFrame.
func (c *Codec) OpenFrame(frame, passphrase []byte) ([]byte, error) {
	f, err := ParseFrame(frame)
	if err != nil {
		return nil, err
	}
	return c.open(f, passphrase)
}

func (c *Codec) open(f *Frame, passphrase []byte) ([]byte, error) {
	key := c.deriver.DeriveKey(passphrase, f.Salt)
	defer Wipe(key)

	primitive, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, NonceSize+len(f.Ciphertext)+TagSize)
	sealed = append(sealed, f.Nonce...)
	sealed = append(sealed, f.Ciphertext...)
	sealed = append(sealed, f.Tag...)

	plaintext, err := primitive.Decrypt(sealed, nil)
	if err != nil {
		// The cause is dropped so callers cannot tell a wrong passphrase
		// from tampered data.
		return nil, ErrAuthentication
	}

	if !utf8.Valid(plaintext) {
		return nil, fmt.Errorf("%w: plaintext is not valid UTF-8", ErrFormat)
	}
	return plaintext, nil
}

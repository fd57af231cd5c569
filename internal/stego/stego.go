// Package stego hides passphrase-encrypted messages in the least
// significant bits of a flattened pixel buffer.
//
// A message is sealed with ChaCha20-Poly1305 under an Argon2id key, framed
// with a length header, and written one bit per buffer byte starting at
// offset zero. The buffer must reach the reader losslessly.
package stego

import (
	"encoding/binary"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Hide seals plaintext and returns a new buffer holding cover with the
// frame embedded. cover is left untouched.
func (c *Codec) Hide(cover, plaintext, passphrase []byte) ([]byte, error) {
	// Refuse before paying for key derivation.
	if required := uint64(FrameSize(len(plaintext))) * 8; required > uint64(len(cover)) {
		return nil, &CapacityError{Required: required, Available: uint64(len(cover))}
	}

	frame, err := c.BuildFrame(plaintext, passphrase)
	if err != nil {
		return nil, err
	}

	out, err := Embed(cover, frame)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"bits_used":      len(frame) * 8,
		"bits_available": len(cover),
	}).Debug("embedded frame")

	return out, nil
}

// Reveal extracts and opens the frame hidden in pixels.
func (c *Codec) Reveal(pixels, passphrase []byte) ([]byte, error) {
	header, err := Extract(pixels, HeaderSize)
	if err != nil {
		return nil, err
	}
	payloadLen := uint64(binary.BigEndian.Uint32(header))

	totalBits := (payloadLen + HeaderSize) * 8
	if totalBits > uint64(len(pixels)) {
		return nil, &CapacityError{Required: totalBits, Available: uint64(len(pixels))}
	}
	if payloadLen < Overhead {
		return nil, fmt.Errorf("%w: payload of %d bytes is shorter than salt, nonce and tag", ErrFormat, payloadLen)
	}

	logrus.WithField("payload_bytes", payloadLen).Debug("read frame header")

	frame, err := Extract(pixels, int(payloadLen)+HeaderSize)
	if err != nil {
		return nil, err
	}
	return c.OpenFrame(frame, passphrase)
}

// Capacity returns the largest plaintext, in bytes, that fits a cover of
// coverLen bytes. A cover that holds at most an empty message reports zero.
func Capacity(coverLen int) int {
	n := coverLen/8 - HeaderSize - Overhead
	if n < 0 {
		return 0
	}
	return n
}

// Hide seals plaintext into cover using Argon2id and crypto/rand.
func Hide(cover []byte, plaintext, passphrase string) ([]byte, error) {
	return NewCodec().Hide(cover, []byte(plaintext), []byte(passphrase))
}

// Reveal recovers the message hidden in pixels.
func Reveal(pixels []byte, passphrase string) (string, error) {
	plaintext, err := NewCodec().Reveal(pixels, []byte(passphrase))
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

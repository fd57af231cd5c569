package stego

import (
	"golang.org/x/crypto/argon2"
)

// cheapDeriver keeps Argon2id but with parameters small enough for unit tests.
type cheapDeriver struct{}

func (cheapDeriver) DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64, 1, KeySize)
}

func newTestCodec(opts ...CodecOption) *Codec {
	return NewCodec(append([]CodecOption{WithKeyDeriver(cheapDeriver{})}, opts...)...)
}

// flipLSB returns a copy of buf with the LSB at bit position i inverted.
func flipLSB(buf []byte, i int) []byte {
	out := append([]byte(nil), buf...)
	out[i] ^= 1
	return out
}

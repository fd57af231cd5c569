package stego

import (
	"runtime"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. These are part of the wire format: an image sealed
// with one set of values can only be opened with the same values.
const (
	ArgonTime    = 4
	ArgonMemory  = 100 * 1024 // in KiB
	ArgonThreads = 2
	KeySize      = 32
)

// KeyDeriver turns a passphrase and salt into a symmetric key.
// The same inputs must always produce the same key.
type KeyDeriver interface {
	DeriveKey(passphrase, salt []byte) []byte
}

// Argon2idDeriver derives keys with Argon2id using the fixed parameters above.
type Argon2idDeriver struct{}

// DeriveKey implements KeyDeriver.
func (Argon2idDeriver) DeriveKey(passphrase, salt []byte) []byte {
	return DeriveKey(passphrase, salt)
}

// DeriveKey derives a KeySize-byte key from a passphrase using Argon2id
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, ArgonTime, ArgonMemory, ArgonThreads, KeySize)
}

// Wipe overwrites a byte slice with zeros. It only clears b itself; copies
// made elsewhere are untouched.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

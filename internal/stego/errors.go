package stego

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacity matches any *CapacityError via errors.Is.
	ErrCapacity = errors.New("insufficient capacity")

	// ErrFormat reports a frame whose structure is inconsistent or whose
	// plaintext is not valid UTF-8.
	ErrFormat = errors.New("corrupted or incomplete payload")

	// ErrAuthentication is returned when the AEAD tag does not verify.
	// A wrong passphrase and a tampered image are deliberately reported
	// the same way.
	ErrAuthentication = errors.New("incorrect passphrase or corrupted payload")
)

// CapacityError reports that a pixel buffer holds fewer bits than needed.
type CapacityError struct {
	Required  uint64 // bits
	Available uint64 // bits
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("image too small to hold payload: required bits: %d; available: %d", e.Required, e.Available)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}

package main

const (
	Version = "1.0.0"

	// Environment variable for passphrase
	PassphraseEnvVar = "STEGOHELIX_PASSPHRASE"

	// DefaultOutput is used when encode is given no --out
	DefaultOutput = "protected.png"
)

// EncodeOptions holds encode parameters
type EncodeOptions struct {
	Input       string
	Output      string
	Message     string
	MessageFile string
}

// DecodeOptions holds decode parameters
type DecodeOptions struct {
	Input string
}

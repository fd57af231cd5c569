package stego

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/tink-crypto/tink-go/v2/aead"
	"github.com/tink-crypto/tink-go/v2/insecurecleartextkeyset"
	"github.com/tink-crypto/tink-go/v2/keyset"
	chacha20poly1305pb "github.com/tink-crypto/tink-go/v2/proto/chacha20_poly1305_go_proto"
	"github.com/tink-crypto/tink-go/v2/tink"
	"google.golang.org/protobuf/proto"
)

// newAEAD wraps a raw derived key in a single-key Tink keyset and returns
// its ChaCha20-Poly1305 primitive. The RAW output prefix keeps Tink's
// ciphertext as nonce || ciphertext || tag with no key id prepended.
// The keyset holds its own copy of key until it is garbage collected.
func newAEAD(key []byte) (tink.AEAD, error) {
	handle, err := createKeysetFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create keyset: %w", err)
	}
	primitive, err := aead.New(handle)
	if err != nil {
		return nil, fmt.Errorf("failed to create AEAD: %w", err)
	}
	return primitive, nil
}

// createKeysetFromKey creates a Tink keyset handle from a raw key
func createKeysetFromKey(key []byte) (*keyset.Handle, error) {
	value, err := chaCha20Poly1305KeyValue(key)
	if err != nil {
		return nil, fmt.Errorf("failed to encode key: %w", err)
	}
	keyValue := base64.StdEncoding.EncodeToString(value)

	keysetJSON := fmt.Sprintf(`{
		"primaryKeyId": 1,
		"key": [{
			"keyData": {
				"typeUrl": "type.googleapis.com/google.crypto.tink.ChaCha20Poly1305Key",
				"keyMaterialType": "SYMMETRIC",
				"value": "%s"
			},
			"outputPrefixType": "RAW",
			"keyId": 1,
			"status": "ENABLED"
		}]
	}`, keyValue)

	return insecurecleartextkeyset.Read(
		keyset.NewJSONReader(strings.NewReader(keysetJSON)),
	)
}

// chaCha20Poly1305KeyValue serializes a raw key as a ChaCha20Poly1305Key proto
func chaCha20Poly1305KeyValue(key []byte) ([]byte, error) {
	return proto.Marshal(&chacha20poly1305pb.ChaCha20Poly1305Key{
		Version:  0,
		KeyValue: key,
	})
}

package nep413

import (
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

const ed25519Prefix = "ed25519:"

// ParsePublicKey accepts the tagged form "ed25519:<base58>" NEAR APIs hand
// out, or a bare base58 string, and returns the raw 32-byte key.
func ParsePublicKey(raw string) (ed25519.PublicKey, error) {
	encoded := strings.TrimPrefix(raw, ed25519Prefix)
	if encoded == "" {
		return nil, fmt.Errorf("empty public key")
	}

	decoded, err := base58.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode public key %q: %w", raw, err)
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(decoded))
	}

	return ed25519.PublicKey(decoded), nil
}

// VerifySignature checks a 64-byte ed25519 signature over the payload hash.
// It fails closed: structurally malformed keys or signatures return an error
// alongside valid=false, while a well-formed but wrong signature returns
// valid=false with no error.
func VerifySignature(payload *Payload, publicKey string, signature []byte) (bool, error) {
	if len(signature) != ed25519.SignatureSize {
		return false, fmt.Errorf("signature must be %d bytes, got %d", ed25519.SignatureSize, len(signature))
	}

	key, err := ParsePublicKey(publicKey)
	if err != nil {
		return false, err
	}

	digest, err := payload.Hash()
	if err != nil {
		return false, err
	}

	return ed25519.Verify(key, digest[:], signature), nil
}

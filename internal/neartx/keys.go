// Package neartx assembles, signs and serializes NEAR transactions. The
// borsh field and enum order in this package is the protocol wire format;
// reordering anything here produces transactions every node rejects.
package neartx

import (
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

const ed25519Prefix = "ed25519:"

const keyTypeEd25519 uint8 = 0

// PublicKey is the borsh form of a NEAR public key: one key-type byte
// followed by the raw key.
type PublicKey struct {
	KeyType uint8
	Data    [32]uint8
}

func PublicKeyFromString(s string) (PublicKey, error) {
	var key PublicKey
	if !strings.HasPrefix(s, ed25519Prefix) {
		return key, fmt.Errorf("public key %q does not carry the ed25519 prefix", s)
	}
	raw, err := base58.Decode(strings.TrimPrefix(s, ed25519Prefix))
	if err != nil {
		return key, fmt.Errorf("public key %q is not valid base58: %w", s, err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return key, fmt.Errorf("public key %q decodes to %d bytes, expected %d", s, len(raw), ed25519.PublicKeySize)
	}
	key.KeyType = keyTypeEd25519
	copy(key.Data[:], raw)
	return key, nil
}

func (pk PublicKey) String() string {
	return ed25519Prefix + base58.Encode(pk.Data[:])
}

func (pk PublicKey) Ed25519() ed25519.PublicKey {
	return ed25519.PublicKey(pk.Data[:])
}

// ParsePrivateKey decodes a NEAR secret key string. The base58 payload is
// the 64-byte ed25519 expanded key (seed followed by the public key).
func ParsePrivateKey(s string) (ed25519.PrivateKey, error) {
	if !strings.HasPrefix(s, ed25519Prefix) {
		return nil, fmt.Errorf("private key does not carry the ed25519 prefix")
	}
	raw, err := base58.Decode(strings.TrimPrefix(s, ed25519Prefix))
	if err != nil {
		return nil, fmt.Errorf("private key is not valid base58: %w", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("private key decodes to %d bytes, expected %d", len(raw), ed25519.PrivateKeySize)
	}
	return ed25519.PrivateKey(raw), nil
}

// PublicKeyFromPrivate extracts the borsh public key of a secret key.
func PublicKeyFromPrivate(privateKey ed25519.PrivateKey) PublicKey {
	var key PublicKey
	key.KeyType = keyTypeEd25519
	copy(key.Data[:], privateKey.Public().(ed25519.PublicKey))
	return key
}

// ParseBlockHash decodes the base58 block hash strings the RPC hands out.
func ParseBlockHash(s string) ([32]byte, error) {
	var hash [32]byte
	raw, err := base58.Decode(s)
	if err != nil {
		return hash, fmt.Errorf("block hash %q is not valid base58: %w", s, err)
	}
	if len(raw) != len(hash) {
		return hash, fmt.Errorf("block hash %q decodes to %d bytes, expected %d", s, len(raw), len(hash))
	}
	copy(hash[:], raw)
	return hash, nil
}

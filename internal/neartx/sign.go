package neartx

import (
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"

	"github.com/near/borsh-go"
)

// Signature is the borsh form of a transaction signature: one key-type byte
// followed by the raw 64 bytes.
type Signature struct {
	KeyType uint8
	Data    [64]uint8
}

type SignedTransaction struct {
	Transaction Transaction
	Signature   Signature
}

// Sign serializes the transaction, hashes it with sha256 and signs the
// digest. Nodes verify the signature over that digest, not the raw bytes.
func Sign(transaction Transaction, privateKey ed25519.PrivateKey) (*SignedTransaction, error) {
	if len(privateKey) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("private key has %d bytes, expected %d", len(privateKey), ed25519.PrivateKeySize)
	}
	payload, err := borsh.Serialize(transaction)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize transaction: %w", err)
	}
	digest := sha256.Sum256(payload)

	signed := &SignedTransaction{Transaction: transaction}
	signed.Signature.KeyType = keyTypeEd25519
	copy(signed.Signature.Data[:], ed25519.Sign(privateKey, digest[:]))
	return signed, nil
}

// Serialize returns the borsh bytes broadcast calls expect.
func (st *SignedTransaction) Serialize() ([]byte, error) {
	payload, err := borsh.Serialize(*st)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize signed transaction: %w", err)
	}
	return payload, nil
}

// Hash returns the sha256 digest of the unsigned transaction, which is also
// the transaction id the network reports.
func (st *SignedTransaction) Hash() ([32]byte, error) {
	payload, err := borsh.Serialize(st.Transaction)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(payload), nil
}

package nep413

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/near/borsh-go"
)

// SignMessageTag is the NEP-413 prefix (2^31 + 413). Prefixing the payload
// with a value outside the valid transaction discriminant range guarantees a
// signed message can never double as a signed transaction.
const SignMessageTag uint32 = 1<<31 + 413

// NonceLength is fixed by the signing convention; wallets sign exactly 32
// bytes of nonce.
const NonceLength = 32

// Payload is the canonical structure wallets sign off-chain. Field order
// matters: Borsh serializes in declaration order and the signature binds to
// these exact bytes. CallbackURL stays nil for backend-driven verification.
type Payload struct {
	Message     string
	Nonce       [32]uint8
	Recipient   string
	CallbackURL *string
}

func NewPayload(message string, nonce []byte, recipient string) (*Payload, error) {
	if len(nonce) != NonceLength {
		return nil, fmt.Errorf("nonce must be exactly %d bytes, got %d", NonceLength, len(nonce))
	}

	payload := &Payload{
		Message:   message,
		Recipient: recipient,
	}
	copy(payload.Nonce[:], nonce)

	return payload, nil
}

// Hash computes sha256(le32(SignMessageTag) || borsh(payload)), the digest a
// wallet actually signs.
func (p *Payload) Hash() ([32]byte, error) {
	serialized, err := borsh.Serialize(*p)
	if err != nil {
		return [32]byte{}, fmt.Errorf("borsh serialize payload: %w", err)
	}

	var buf bytes.Buffer
	tag := make([]byte, 4)
	binary.LittleEndian.PutUint32(tag, SignMessageTag)
	buf.Write(tag)
	buf.Write(serialized)

	return sha256.Sum256(buf.Bytes()), nil
}

func (p *Payload) HashHex() (string, error) {
	digest, err := p.Hash()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(digest[:]), nil
}

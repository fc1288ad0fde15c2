package ledger

import (
	"fmt"
	"strconv"
)

// ByteArray marshals as a JSON array of numbers. encoding/json turns a plain
// []byte into a base64 string, which the contract does not accept for its
// signature and nonce fields.
type ByteArray []byte

func (b ByteArray) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, len(b)*4+2)
	out = append(out, '[')
	for i, value := range b {
		if i > 0 {
			out = append(out, ',')
		}
		out = strconv.AppendUint(out, uint64(value), 10)
	}
	return append(out, ']'), nil
}

// StoreVerificationArgs is the registry contract's write payload.
type StoreVerificationArgs struct {
	AccountId     string    `json:"account_id"`
	IdentityKey   string    `json:"identity_key"`
	AttestationId uint8     `json:"attestation_id"`
	Message       string    `json:"message,omitempty"`
	Signature     ByteArray `json:"signature,omitempty"`
	PublicKey     string    `json:"public_key,omitempty"`
	Nonce         ByteArray `json:"nonce,omitempty"`
	VerifiedAt    int64     `json:"verified_at,omitempty"`
}

func (a StoreVerificationArgs) validate() error {
	if a.AccountId == "" {
		return fmt.Errorf("store verification args missing account id")
	}
	if a.IdentityKey == "" {
		return fmt.Errorf("store verification args missing identity key")
	}
	if a.AttestationId == 0 {
		return fmt.Errorf("store verification args missing attestation id")
	}
	if len(a.Signature) > 0 && len(a.Signature) != 64 {
		return fmt.Errorf("signature must be 64 bytes, got %d", len(a.Signature))
	}
	if len(a.Nonce) > 0 && len(a.Nonce) != 32 {
		return fmt.Errorf("nonce must be 32 bytes, got %d", len(a.Nonce))
	}
	return nil
}

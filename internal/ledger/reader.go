package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/nearrpc"
)

// Reader serves the registry contract's idempotent view calls.
type Reader struct {
	provider   *nearrpc.Provider
	contractId string
}

func NewReader(provider *nearrpc.Provider, contractId string) *Reader {
	return &Reader{provider: provider, contractId: contractId}
}

// VerificationRecord is the registry's stored entry for one account.
type VerificationRecord struct {
	AccountId     string `json:"account_id"`
	IdentityKey   string `json:"identity_key"`
	AttestationId uint8  `json:"attestation_id"`
	VerifiedAt    int64  `json:"verified_at"`
}

// IsAccountVerified asks the contract whether the account already has a
// verification entry.
func (r *Reader) IsAccountVerified(ctx context.Context, accountId string) (bool, error) {
	args, err := json.Marshal(map[string]string{"account_id": accountId})
	if err != nil {
		return false, err
	}
	result, _, err := r.provider.CallFunction(ctx, r.contractId, "is_account_verified", args)
	if err != nil {
		return false, err
	}
	var verified bool
	if err := json.Unmarshal(result.Result, &verified); err != nil {
		return false, fmt.Errorf("is_account_verified returned malformed data %q: %w", result.Result, err)
	}
	return verified, nil
}

// GetVerificationRecord fetches the stored record, or nil when the account
// has none.
func (r *Reader) GetVerificationRecord(ctx context.Context, accountId string) (*VerificationRecord, error) {
	args, err := json.Marshal(map[string]string{"account_id": accountId})
	if err != nil {
		return nil, err
	}
	result, _, err := r.provider.CallFunction(ctx, r.contractId, "get_verification_record", args)
	if err != nil {
		return nil, err
	}
	if len(result.Result) == 0 || string(result.Result) == "null" {
		return nil, nil
	}
	var record VerificationRecord
	if err := json.Unmarshal(result.Result, &record); err != nil {
		return nil, fmt.Errorf("get_verification_record returned malformed data %q: %w", result.Result, err)
	}
	return &record, nil
}

package dtocommon

import (
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/reasoncodes"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/utilities"
)

// LedgerWriteJobDto is published by the API once signature and proof checks
// passed, and consumed by the chain worker that persists the record.
type LedgerWriteJobDto struct {
	SessionId      string   `json:"session_id"`
	AccountId      string   `json:"account_id"`
	IdentityKey    string   `json:"identity_key"`
	AttestationId  uint8    `json:"attestation_id"`
	Message        string   `json:"message,omitempty"`
	VerifiedAt     int64    `json:"verified_at"`
	PublicSignals  []string `json:"public_signals,omitempty"`
	UserContextHex string   `json:"user_context_hex,omitempty"`
}

func (j LedgerWriteJobDto) Serialize() ([]byte, error) {
	return utilities.Serialize[LedgerWriteJobDto](j)
}

// LedgerWriteResultDto travels back from the chain worker to the API once the
// write is confirmed on the ledger.
type LedgerWriteResultDto struct {
	SessionId string `json:"session_id"`
	AccountId string `json:"account_id"`
	TxHash    string `json:"tx_hash"`
	Outcome   string `json:"outcome"`
	Attempts  int    `json:"attempts"`
}

func (r LedgerWriteResultDto) Serialize() ([]byte, error) {
	return utilities.Serialize[LedgerWriteResultDto](r)
}

type LedgerWriteFailureDto struct {
	SessionId   string                 `json:"session_id"`
	RequestBody []byte                 `json:"request_body"`
	Error       string                 `json:"error"`
	ReasonCode  reasoncodes.ReasonCode `json:"reason_code"`
}

func (f LedgerWriteFailureDto) Serialize() ([]byte, error) {
	return utilities.Serialize[LedgerWriteFailureDto](f)
}

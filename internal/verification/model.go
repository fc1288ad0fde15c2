// Package verification orchestrates a submission end to end: decode the
// wallet context, check the NEP-413 signature, check the identity proof
// against the on-chain verifier, then queue the ledger write and track its
// session until a worker reports the outcome.
package verification

import (
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/statusstore"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/zkproof"
)

// SubmitRequest is the public submission body. UserContext is the opaque
// wallet blob (hex or raw JSON) the decoder turns into a signature bundle.
type SubmitRequest struct {
	SessionId     string        `json:"session_id,omitempty"`
	AccountId     string        `json:"account_id" binding:"required"`
	AttestationId uint8         `json:"attestation_id" binding:"required"`
	Message       string        `json:"message" binding:"required"`
	Recipient     string        `json:"recipient" binding:"required"`
	Proof         zkproof.Proof `json:"proof"`
	PublicSignals []string      `json:"public_signals" binding:"required"`
	UserContext   string        `json:"user_context" binding:"required"`
}

// SubmitResult reports how far a submission got. Queued means both checks
// passed and a ledger write job is on the queue; an invalid signature or
// proof is a normal outcome, not an error.
type SubmitResult struct {
	SessionId      string         `json:"session_id,omitempty"`
	SignatureValid bool           `json:"signature_valid"`
	ProofValid     bool           `json:"proof_valid"`
	Queued         bool           `json:"queued"`
	IdentityKey    string         `json:"identity_key,omitempty"`
	ProofDetail    *zkproof.Result `json:"proof_detail,omitempty"`
}

// BlockingResult extends SubmitResult with the inline write outcome for the
// synchronous endpoint.
type BlockingResult struct {
	SubmitResult
	Outcome    string `json:"outcome,omitempty"`
	TxHash     string `json:"tx_hash,omitempty"`
	ReasonCode string `json:"reason_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// KycWebhookRequest is the callback body a KYC provider posts once an
// applicant review finishes. The applicant id doubles as the identity key;
// no proof verification happens on this path.
type KycWebhookRequest struct {
	SessionId     string `json:"session_id,omitempty"`
	ApplicantId   string `json:"applicant_id" binding:"required"`
	AccountId     string `json:"account_id" binding:"required"`
	AttestationId uint8  `json:"attestation_id" binding:"required"`
	ReviewAnswer  string `json:"review_answer" binding:"required"`
}

// StatusResponse is the session lookup body for polling clients.
type StatusResponse struct {
	SessionId    string `json:"session_id"`
	State        string `json:"state"`
	TxHash       string `json:"tx_hash,omitempty"`
	Outcome      string `json:"outcome,omitempty"`
	ReasonCode   string `json:"reason_code,omitempty"`
	Error        string `json:"error,omitempty"`
	PollAttempts int    `json:"poll_attempts,omitempty"`
	VerifiedAt   int64  `json:"verified_at,omitempty"`
}

func statusFromSession(session *statusstore.VerificationSession) StatusResponse {
	return StatusResponse{
		SessionId:    session.SessionId,
		State:        string(session.State),
		TxHash:       session.TxHash,
		Outcome:      session.Outcome,
		ReasonCode:   string(session.ReasonCode),
		Error:        session.LastError,
		PollAttempts: session.PollAttempts,
		VerifiedAt:   session.VerifiedAt,
	}
}

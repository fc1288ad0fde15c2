package reasoncodes

type ReasonCode string

// Codes produced while moving a verification through the queue pipeline.
const (
	ErrUnmarshal          ReasonCode = "UnmarshalError"
	ErrVerifierResolution ReasonCode = "VerifierResolutionError"
	ErrProofInvalid       ReasonCode = "ProofInvalidError"
	ErrNearBlockchain     ReasonCode = "NearBlockchainError"
)

// Codes translated from contract-level rejection text. The ledger contract is
// the sole authority on duplicates and pauses, so these arrive as free-text
// panics and are mapped by TranslateContractError.
const (
	ErrDuplicateIdentity      ReasonCode = "DuplicateIdentityError"
	ErrAccountAlreadyVerified ReasonCode = "AccountAlreadyVerifiedError"
	ErrContractPaused         ReasonCode = "ContractPausedError"
	ErrSignatureInvalid       ReasonCode = "SignatureInvalidError"
	ErrVerificationFailed     ReasonCode = "VerificationFailedError"
	ErrStorageFailed          ReasonCode = "StorageFailedError"
)

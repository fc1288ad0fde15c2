package reasoncodes

import "strings"

// translationRule maps known contract error phrasing onto a domain code.
// Matching is case-insensitive substring search; rules are evaluated in
// order, so more specific phrases must come before generic ones.
type translationRule struct {
	Code    ReasonCode
	Phrases []string
}

// The phrase table mirrors the wording the ledger contract panics with today.
// It is best-effort by nature: if the contract rewords an error, this table
// is the single place to update.
var translationRules = []translationRule{
	{ErrDuplicateIdentity, []string{
		"identity already used",
		"identity already registered",
		"nullifier already",
		"duplicate identity",
	}},
	{ErrAccountAlreadyVerified, []string{
		"already verified",
	}},
	{ErrContractPaused, []string{
		"paused",
	}},
	{ErrSignatureInvalid, []string{
		"signature",
	}},
	{ErrVerificationFailed, []string{
		"verification failed",
		"invalid proof",
	}},
}

// TranslateContractError maps free-text contract failure messages onto the
// closed ReasonCode set, falling back to ErrStorageFailed when nothing
// matches.
func TranslateContractError(message string) ReasonCode {
	lowered := strings.ToLower(message)

	for _, rule := range translationRules {
		for _, phrase := range rule.Phrases {
			if strings.Contains(lowered, phrase) {
				return rule.Code
			}
		}
	}

	return ErrStorageFailed
}

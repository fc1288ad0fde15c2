package reasoncodes

import "testing"

type translateTestCase struct {
	name     string
	message  string
	expected ReasonCode
}

func TestTranslateContractErrorKnownPhrases(t *testing.T) {
	cases := []translateTestCase{
		{"duplicate identity", "Smart contract panicked: Identity already used for another account", ErrDuplicateIdentity},
		{"duplicate nullifier", "panic: nullifier already present in registry", ErrDuplicateIdentity},
		{"duplicate mixed case", "DUPLICATE IDENTITY detected", ErrDuplicateIdentity},
		{"account already verified", "Smart contract panicked: Account already verified", ErrAccountAlreadyVerified},
		{"contract paused", "Smart contract panicked: Contract is paused", ErrContractPaused},
		{"bad signature", "Smart contract panicked: Signature verification failed", ErrSignatureInvalid},
		{"generic verification", "Smart contract panicked: Verification failed", ErrVerificationFailed},
		{"invalid proof", "execution error: Invalid proof supplied", ErrVerificationFailed},
		{"unknown text", "some totally novel failure", ErrStorageFailed},
		{"empty message", "", ErrStorageFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TranslateContractError(tc.message)
			if got != tc.expected {
				t.Errorf("TranslateContractError(%q) = %s, expected %s", tc.message, got, tc.expected)
			}
		})
	}
}

// Rules are ordered: a message carrying both a duplicate phrase and a
// signature phrase must resolve to the duplicate code.
func TestTranslateContractErrorPriority(t *testing.T) {
	msg := "Identity already used, signature check skipped, verification failed"
	if got := TranslateContractError(msg); got != ErrDuplicateIdentity {
		t.Errorf("expected duplicate code to win, got %s", got)
	}

	msg = "Account already verified, verification failed"
	if got := TranslateContractError(msg); got != ErrAccountAlreadyVerified {
		t.Errorf("expected already-verified code to win, got %s", got)
	}

	msg = "Contract is paused, invalid signature"
	if got := TranslateContractError(msg); got != ErrContractPaused {
		t.Errorf("expected paused code to win, got %s", got)
	}
}

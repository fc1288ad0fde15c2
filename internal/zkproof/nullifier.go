package zkproof

import "fmt"

// NullifierIndex is where the disclose circuits place the nullifier in the
// public signal list. All supported attestation types share the layout.
const NullifierIndex = 7

// Validate runs the full shape check (curve points, field ranges, signal
// parsing) without touching the network. Callers use it to reject malformed
// submissions before queueing any remote work.
func (r VerificationRequest) Validate() error {
	_, _, err := r.parse()
	return err
}

// Nullifier extracts the identity-unique nullifier the proof discloses,
// normalized to its canonical decimal form.
func (r VerificationRequest) Nullifier() (string, error) {
	if len(r.PublicSignals) <= NullifierIndex {
		return "", fmt.Errorf("proof carries %d public signals, nullifier expected at index %d", len(r.PublicSignals), NullifierIndex)
	}
	value, err := ParseFieldElement(r.PublicSignals[NullifierIndex])
	if err != nil {
		return "", fmt.Errorf("nullifier: %w", err)
	}
	return value.String(), nil
}

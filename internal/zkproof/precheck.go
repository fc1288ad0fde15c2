package zkproof

import (
	"context"
	"fmt"
	"os"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
)

// PrecheckVerifier runs the in-process pairing check alongside the remote
// verifier. The local answer is advisory: a disagreement is logged loudly so
// stale verification keys surface early, and the contract answer is returned
// either way.
type PrecheckVerifier struct {
	remote *Verifier
	local  map[AttestationId]*LocalVerifier
	log    *logger.Logger
}

func NewPrecheckVerifier(remote *Verifier, local map[AttestationId]*LocalVerifier, log *logger.Logger) *PrecheckVerifier {
	return &PrecheckVerifier{
		remote: remote,
		local:  local,
		log:    log,
	}
}

// LoadPrecheckVerifiers reads snarkjs verification key files keyed by
// attestation name ("passport", "national_id", "biometric").
func LoadPrecheckVerifiers(keyFiles map[string]string) (map[AttestationId]*LocalVerifier, error) {
	verifiers := make(map[AttestationId]*LocalVerifier, len(keyFiles))
	for name, path := range keyFiles {
		id, ok := ParseAttestation(name)
		if !ok {
			return nil, fmt.Errorf("unknown attestation %q in precheck key table", name)
		}
		vkJson, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read verification key for %s: %w", name, err)
		}
		local, err := NewLocalVerifier(vkJson)
		if err != nil {
			return nil, fmt.Errorf("verification key for %s: %w", name, err)
		}
		verifiers[id] = local
	}
	return verifiers, nil
}

// Verify asks the verifier contract for its answer and, when a verification
// key is configured for the attestation, replays the pairing check locally.
// Only the contract answer decides the result.
func (p *PrecheckVerifier) Verify(ctx context.Context, request VerificationRequest, attestation AttestationId) (Result, error) {
	var (
		localValid bool
		localErr   error
	)
	local := p.local[attestation]
	if local != nil {
		localValid, localErr = local.Verify(request)
	}

	result, err := p.remote.Verify(ctx, request, attestation)
	if err != nil || local == nil {
		return result, err
	}

	switch {
	case localErr != nil:
		p.log.Warnf("Local precheck for %s proof did not complete: %v", attestation, localErr)
	case localValid != result.Valid:
		p.log.Warnf("Local precheck disagrees with verifier %s for %s proof: local=%t contract=%t",
			result.VerifierAddress, attestation, localValid, result.Valid)
	}
	return result, nil
}

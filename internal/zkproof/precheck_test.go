package zkproof

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/ethcall"
)

func TestPrecheckWithoutKeyIsPassthrough(t *testing.T) {
	chain := newFakeChain(t)
	precheck := NewPrecheckVerifier(chain.newVerifier(t), nil, testLogger())

	result, err := precheck.Verify(context.Background(), validRequest(), AttestationPassport)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Valid {
		t.Error("contract-accepted proof reported invalid")
	}
}

func TestPrecheckDisagreementStillReturnsContractAnswer(t *testing.T) {
	fx := loadFixture(t)
	local, err := NewLocalVerifier(fx.vkJson)
	if err != nil {
		t.Fatal(err)
	}

	chain := newFakeChain(t)
	precheck := NewPrecheckVerifier(
		chain.newVerifier(t),
		map[AttestationId]*LocalVerifier{AttestationPassport: local},
		testLogger(),
	)

	// The proof passes the local pairing check but the contract does not
	// recognize it; the contract answer must win.
	result, err := precheck.Verify(context.Background(), fx.request, AttestationPassport)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Error("local precheck answer overrode the contract answer")
	}
	if chain.verifierCalls != 1 {
		t.Errorf("verifier contract called %d times, want 1", chain.verifierCalls)
	}
}

func TestPrecheckLocalErrorDefersToContract(t *testing.T) {
	fx := loadFixture(t)
	local, err := NewLocalVerifier(fx.vkJson)
	if err != nil {
		t.Fatal(err)
	}

	chain := newFakeChain(t)
	precheck := NewPrecheckVerifier(
		chain.newVerifier(t),
		map[AttestationId]*LocalVerifier{AttestationPassport: local},
		testLogger(),
	)

	// validRequest carries two signals against a one-signal key, so the
	// local check cannot run; the contract answer stands alone.
	result, err := precheck.Verify(context.Background(), validRequest(), AttestationPassport)
	if err != nil {
		t.Fatalf("advisory precheck failure must not surface: %v", err)
	}
	if !result.Valid {
		t.Error("contract-accepted proof reported invalid")
	}
}

func TestPrecheckRemoteFailureIsStillAnError(t *testing.T) {
	fx := loadFixture(t)
	local, err := NewLocalVerifier(fx.vkJson)
	if err != nil {
		t.Fatal(err)
	}

	chain := newFakeChain(t)
	chain.hubReturns = ethcall.ZeroAddress
	precheck := NewPrecheckVerifier(
		chain.newVerifier(t),
		map[AttestationId]*LocalVerifier{AttestationPassport: local},
		testLogger(),
	)

	if _, err := precheck.Verify(context.Background(), fx.request, AttestationPassport); !errors.Is(err, ErrVerifierNotConfigured) {
		t.Fatalf("error = %v, want ErrVerifierNotConfigured", err)
	}
}

func TestLoadPrecheckVerifiers(t *testing.T) {
	fx := loadFixture(t)
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "passport_vk.json")
	if err := os.WriteFile(keyPath, fx.vkJson, 0o600); err != nil {
		t.Fatal(err)
	}

	verifiers, err := LoadPrecheckVerifiers(map[string]string{"passport": keyPath})
	if err != nil {
		t.Fatal(err)
	}
	if verifiers[AttestationPassport] == nil {
		t.Fatal("passport verifier missing from the table")
	}

	if _, err := LoadPrecheckVerifiers(map[string]string{"grail": keyPath}); err == nil {
		t.Error("unknown attestation name accepted")
	}
	if _, err := LoadPrecheckVerifiers(map[string]string{"passport": filepath.Join(dir, "missing.json")}); err == nil {
		t.Error("missing key file accepted")
	}
}

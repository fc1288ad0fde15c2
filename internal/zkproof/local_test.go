package zkproof

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark/backend/groth16"
	groth16_bn254 "github.com/consensys/gnark/backend/groth16/bn254"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// squareCircuit proves knowledge of x such that x*x == y.
type squareCircuit struct {
	X frontend.Variable
	Y frontend.Variable `gnark:",public"`
}

func (c *squareCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(api.Mul(c.X, c.X), c.Y)
	return nil
}

type localFixture struct {
	request VerificationRequest
	vkJson  []byte
	err     error
}

var (
	fixtureOnce sync.Once
	fixture     localFixture
)

func g1Strings(point bn254.G1Affine) []string {
	return []string{point.X.String(), point.Y.String(), "1"}
}

func g2Strings(point bn254.G2Affine) [][]string {
	return [][]string{
		{point.X.A0.String(), point.X.A1.String()},
		{point.Y.A0.String(), point.Y.A1.String()},
		{"1", "0"},
	}
}

// buildLocalFixture generates a real Groth16 proof and exports it in the
// snarkjs JSON shape the decoder consumes in production.
func buildLocalFixture() localFixture {
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &squareCircuit{})
	if err != nil {
		return localFixture{err: err}
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return localFixture{err: err}
	}
	fullWitness, err := frontend.NewWitness(&squareCircuit{X: 3, Y: 9}, ecc.BN254.ScalarField())
	if err != nil {
		return localFixture{err: err}
	}
	proof, err := groth16.Prove(ccs, pk, fullWitness)
	if err != nil {
		return localFixture{err: err}
	}

	bnProof := proof.(*groth16_bn254.Proof)
	bnVk := vk.(*groth16_bn254.VerifyingKey)

	request := VerificationRequest{
		Proof: Proof{
			PiA: g1Strings(bnProof.Ar),
			PiB: [][]string{
				{bnProof.Bs.X.A0.String(), bnProof.Bs.X.A1.String()},
				{bnProof.Bs.Y.A0.String(), bnProof.Bs.Y.A1.String()},
				{"1", "0"},
			},
			PiC:      g1Strings(bnProof.Krs),
			Protocol: "groth16",
			Curve:    "bn128",
		},
		PublicSignals: []string{"9"},
	}

	ic := make([][]string, len(bnVk.G1.K))
	for i := range bnVk.G1.K {
		ic[i] = g1Strings(bnVk.G1.K[i])
	}
	vkJson, err := json.Marshal(map[string]interface{}{
		"protocol":   "groth16",
		"curve":      "bn128",
		"nPublic":    1,
		"vk_alpha_1": g1Strings(bnVk.G1.Alpha),
		"vk_beta_2":  g2Strings(bnVk.G2.Beta),
		"vk_gamma_2": g2Strings(bnVk.G2.Gamma),
		"vk_delta_2": g2Strings(bnVk.G2.Delta),
		"IC":         ic,
	})
	if err != nil {
		return localFixture{err: err}
	}
	return localFixture{request: request, vkJson: vkJson}
}

func loadFixture(t *testing.T) localFixture {
	t.Helper()
	fixtureOnce.Do(func() {
		fixture = buildLocalFixture()
	})
	if fixture.err != nil {
		t.Fatalf("failed to build proof fixture: %v", fixture.err)
	}
	return fixture
}

func TestLocalVerifierAcceptsRealProof(t *testing.T) {
	fx := loadFixture(t)
	verifier, err := NewLocalVerifier(fx.vkJson)
	if err != nil {
		t.Fatal(err)
	}
	if verifier.SignalCount() != 1 {
		t.Errorf("SignalCount = %d, want 1", verifier.SignalCount())
	}

	valid, err := verifier.Verify(fx.request)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !valid {
		t.Error("freshly generated proof reported invalid")
	}
}

func TestLocalVerifierRejectsTamperedSignal(t *testing.T) {
	fx := loadFixture(t)
	verifier, err := NewLocalVerifier(fx.vkJson)
	if err != nil {
		t.Fatal(err)
	}

	tampered := fx.request
	tampered.PublicSignals = []string{"16"}

	valid, err := verifier.Verify(tampered)
	if err != nil {
		t.Fatalf("pairing mismatch must be boolean, not error: %v", err)
	}
	if valid {
		t.Error("proof verified against a public signal it was not produced for")
	}
}

func TestLocalVerifierRejectsSwappedProofPoints(t *testing.T) {
	fx := loadFixture(t)
	verifier, err := NewLocalVerifier(fx.vkJson)
	if err != nil {
		t.Fatal(err)
	}

	swapped := fx.request
	swapped.Proof.PiA, swapped.Proof.PiC = swapped.Proof.PiC, swapped.Proof.PiA

	valid, err := verifier.Verify(swapped)
	if err != nil {
		t.Fatalf("swapped points are still valid curve points, expected boolean: %v", err)
	}
	if valid {
		t.Error("proof with swapped A and C verified")
	}
}

func TestLocalVerifierEnforcesSignalArity(t *testing.T) {
	fx := loadFixture(t)
	verifier, err := NewLocalVerifier(fx.vkJson)
	if err != nil {
		t.Fatal(err)
	}

	request := fx.request
	request.PublicSignals = []string{"9", "9"}
	if _, err := verifier.Verify(request); err == nil {
		t.Error("signal arity mismatch against the key must be an error")
	}
}

func TestNewLocalVerifierRejectsBadKeys(t *testing.T) {
	fx := loadFixture(t)

	if _, err := NewLocalVerifier([]byte("{broken")); err == nil {
		t.Error("malformed JSON accepted")
	}

	var vk map[string]interface{}
	if err := json.Unmarshal(fx.vkJson, &vk); err != nil {
		t.Fatal(err)
	}
	vk["protocol"] = "plonk"
	raw, _ := json.Marshal(vk)
	if _, err := NewLocalVerifier(raw); err == nil {
		t.Error("non-groth16 key accepted")
	}

	if err := json.Unmarshal(fx.vkJson, &vk); err != nil {
		t.Fatal(err)
	}
	vk["IC"] = [][]string{}
	raw, _ = json.Marshal(vk)
	if _, err := NewLocalVerifier(raw); err == nil {
		t.Error("key without IC points accepted")
	}
}

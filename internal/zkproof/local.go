package zkproof

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// verifyingKeyJson is the snarkjs verification key export.
type verifyingKeyJson struct {
	Protocol string     `json:"protocol"`
	Curve    string     `json:"curve"`
	NPublic  int        `json:"nPublic"`
	AlphaG1  []string   `json:"vk_alpha_1"`
	BetaG2   [][]string `json:"vk_beta_2"`
	GammaG2  [][]string `json:"vk_gamma_2"`
	DeltaG2  [][]string `json:"vk_delta_2"`
	IC       [][]string `json:"IC"`
}

// LocalVerifier runs the Groth16 pairing check in-process against a snarkjs
// verification key, for environments where a round trip to the verifier
// contract is undesirable (prechecks, offline tooling). The on-chain
// verifier remains authoritative for the verification pipeline itself.
type LocalVerifier struct {
	alpha bn254.G1Affine
	beta  bn254.G2Affine
	gamma bn254.G2Affine
	delta bn254.G2Affine
	ic    []bn254.G1Affine
}

func NewLocalVerifier(vkJson []byte) (*LocalVerifier, error) {
	var vk verifyingKeyJson
	if err := json.Unmarshal(vkJson, &vk); err != nil {
		return nil, fmt.Errorf("failed to parse verification key: %w", err)
	}
	if protocol := strings.ToLower(vk.Protocol); protocol != "groth16" {
		return nil, fmt.Errorf("unsupported verification key protocol %q", vk.Protocol)
	}
	if curve := strings.ToLower(vk.Curve); curve != "bn128" && curve != "bn254" {
		return nil, fmt.Errorf("unsupported verification key curve %q", vk.Curve)
	}
	if len(vk.IC) < 2 {
		return nil, fmt.Errorf("verification key must carry at least 2 IC points, got %d", len(vk.IC))
	}

	lv := &LocalVerifier{ic: make([]bn254.G1Affine, len(vk.IC))}

	var err error
	if lv.alpha, err = g1FromStrings(vk.AlphaG1, "vk_alpha_1"); err != nil {
		return nil, err
	}
	if lv.beta, err = g2FromStrings(vk.BetaG2, "vk_beta_2"); err != nil {
		return nil, err
	}
	if lv.gamma, err = g2FromStrings(vk.GammaG2, "vk_gamma_2"); err != nil {
		return nil, err
	}
	if lv.delta, err = g2FromStrings(vk.DeltaG2, "vk_delta_2"); err != nil {
		return nil, err
	}
	for i, point := range vk.IC {
		if lv.ic[i], err = g1FromStrings(point, fmt.Sprintf("IC[%d]", i)); err != nil {
			return nil, err
		}
	}

	if !lv.alpha.IsInSubGroup() {
		return nil, fmt.Errorf("vk_alpha_1 is not in the G1 subgroup")
	}
	for _, point := range []struct {
		name  string
		value *bn254.G2Affine
	}{{"vk_beta_2", &lv.beta}, {"vk_gamma_2", &lv.gamma}, {"vk_delta_2", &lv.delta}} {
		if !point.value.IsInSubGroup() {
			return nil, fmt.Errorf("%s is not in the G2 subgroup", point.name)
		}
	}
	for i := range lv.ic {
		if !lv.ic[i].IsInSubGroup() {
			return nil, fmt.Errorf("IC[%d] is not in the G1 subgroup", i)
		}
	}

	return lv, nil
}

// SignalCount returns the number of public signals the key expects.
func (lv *LocalVerifier) SignalCount() int {
	return len(lv.ic) - 1
}

// Verify runs the pairing check
//
//	e(A, B) == e(alpha, beta) * e(sum_i s_i*IC, gamma) * e(C, delta)
//
// A mathematically failing proof is a false result, not an error; errors are
// reserved for malformed inputs.
func (lv *LocalVerifier) Verify(request VerificationRequest) (bool, error) {
	words, signals, err := request.parse()
	if err != nil {
		return false, err
	}
	if len(signals) != lv.SignalCount() {
		return false, fmt.Errorf("verification key expects %d public signals, got %d", lv.SignalCount(), len(signals))
	}

	var a, c bn254.G1Affine
	a.X.SetBigInt(words.A[0])
	a.Y.SetBigInt(words.A[1])
	c.X.SetBigInt(words.C[0])
	c.Y.SetBigInt(words.C[1])

	var b bn254.G2Affine
	b.X.A0.SetBigInt(words.B[0][0])
	b.X.A1.SetBigInt(words.B[0][1])
	b.Y.A0.SetBigInt(words.B[1][0])
	b.Y.A1.SetBigInt(words.B[1][1])

	for _, point := range []struct {
		name    string
		onCurve bool
	}{
		{"pi_a", a.IsOnCurve() && a.IsInSubGroup()},
		{"pi_b", b.IsOnCurve() && b.IsInSubGroup()},
		{"pi_c", c.IsOnCurve() && c.IsInSubGroup()},
	} {
		if !point.onCurve {
			return false, fmt.Errorf("%s is not a valid curve point", point.name)
		}
	}

	// Linear combination of the public signals over the IC points.
	var vkx bn254.G1Affine
	vkx.Set(&lv.ic[0])
	for i, signal := range signals {
		var term bn254.G1Affine
		term.ScalarMultiplication(&lv.ic[i+1], signal)
		vkx.Add(&vkx, &term)
	}

	left, err := bn254.Pair([]bn254.G1Affine{a}, []bn254.G2Affine{b})
	if err != nil {
		return false, fmt.Errorf("pairing e(A,B) failed: %w", err)
	}

	right, err := bn254.Pair([]bn254.G1Affine{lv.alpha}, []bn254.G2Affine{lv.beta})
	if err != nil {
		return false, fmt.Errorf("pairing e(alpha,beta) failed: %w", err)
	}
	vkxGamma, err := bn254.Pair([]bn254.G1Affine{vkx}, []bn254.G2Affine{lv.gamma})
	if err != nil {
		return false, fmt.Errorf("pairing e(vkx,gamma) failed: %w", err)
	}
	right.Mul(&right, &vkxGamma)
	cDelta, err := bn254.Pair([]bn254.G1Affine{c}, []bn254.G2Affine{lv.delta})
	if err != nil {
		return false, fmt.Errorf("pairing e(C,delta) failed: %w", err)
	}
	right.Mul(&right, &cDelta)

	return left.Equal(&right), nil
}

func g1FromStrings(point []string, name string) (bn254.G1Affine, error) {
	var out bn254.G1Affine
	coords, err := parseG1(point, name)
	if err != nil {
		return out, err
	}
	out.X.SetBigInt(coords[0])
	out.Y.SetBigInt(coords[1])
	if !out.IsOnCurve() {
		return out, fmt.Errorf("%s is not on the curve", name)
	}
	return out, nil
}

func g2FromStrings(point [][]string, name string) (bn254.G2Affine, error) {
	var out bn254.G2Affine
	coords, err := parseG2(point, name)
	if err != nil {
		return out, err
	}
	out.X.A0.SetBigInt(coords[0][0])
	out.X.A1.SetBigInt(coords[0][1])
	out.Y.A0.SetBigInt(coords[1][0])
	out.Y.A1.SetBigInt(coords[1][1])
	if !out.IsOnCurve() {
		return out, fmt.Errorf("%s is not on the curve", name)
	}
	return out, nil
}

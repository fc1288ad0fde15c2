// Package zkproof checks Groth16 identity proofs against on-chain verifier
// contracts. Proofs arrive in the snarkjs JSON shape with every field element
// as a decimal string.
package zkproof

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

type Proof struct {
	PiA      []string   `json:"pi_a"`
	PiB      [][]string `json:"pi_b"`
	PiC      []string   `json:"pi_c"`
	Protocol string     `json:"protocol"`
	Curve    string     `json:"curve"`
}

type VerificationRequest struct {
	Proof         Proof    `json:"proof"`
	PublicSignals []string `json:"publicSignals"`
}

// proofWords holds the proof in affine coordinates, ready for encoding.
// B keeps the snarkjs inner-pair order (c0 first); the EVM encoder swaps it.
type proofWords struct {
	A [2]*big.Int
	B [2][2]*big.Int
	C [2]*big.Int
}

// ParseFieldElement converts a decimal field-element string to an integer.
// Anything that is not a plain base-10 non-negative number is a hard error,
// never coerced to zero.
func ParseFieldElement(s string) (*big.Int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, fmt.Errorf("empty field element")
	}
	value, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, fmt.Errorf("field element %q is not a decimal integer", s)
	}
	if value.Sign() < 0 {
		return nil, fmt.Errorf("field element %q is negative", s)
	}
	return value, nil
}

func parseCoordinate(s string) (*big.Int, error) {
	value, err := ParseFieldElement(s)
	if err != nil {
		return nil, err
	}
	if value.Cmp(fp.Modulus()) >= 0 {
		return nil, fmt.Errorf("coordinate %q exceeds the base field modulus", s)
	}
	return value, nil
}

func parseSignal(s string) (*big.Int, error) {
	value, err := ParseFieldElement(s)
	if err != nil {
		return nil, err
	}
	if value.Cmp(fr.Modulus()) >= 0 {
		return nil, fmt.Errorf("public signal %q exceeds the scalar field modulus", s)
	}
	return value, nil
}

// parseG1 accepts the snarkjs projective form ["x","y","1"] or a bare
// affine pair. Any non-trivial z coordinate is rejected.
func parseG1(point []string, name string) ([2]*big.Int, error) {
	var out [2]*big.Int
	if len(point) != 2 && len(point) != 3 {
		return out, fmt.Errorf("%s must have 2 or 3 coordinates, got %d", name, len(point))
	}
	if len(point) == 3 && strings.TrimSpace(point[2]) != "1" {
		return out, fmt.Errorf("%s has non-trivial projective coordinate %q", name, point[2])
	}
	for i := 0; i < 2; i++ {
		value, err := parseCoordinate(point[i])
		if err != nil {
			return out, fmt.Errorf("%s[%d]: %w", name, i, err)
		}
		out[i] = value
	}
	return out, nil
}

func parseG2(point [][]string, name string) ([2][2]*big.Int, error) {
	var out [2][2]*big.Int
	if len(point) != 2 && len(point) != 3 {
		return out, fmt.Errorf("%s must have 2 or 3 coordinate pairs, got %d", name, len(point))
	}
	if len(point) == 3 {
		z := point[2]
		if len(z) != 2 || strings.TrimSpace(z[0]) != "1" || strings.TrimSpace(z[1]) != "0" {
			return out, fmt.Errorf("%s has non-trivial projective pair %v", name, z)
		}
	}
	for i := 0; i < 2; i++ {
		if len(point[i]) != 2 {
			return out, fmt.Errorf("%s[%d] must be a coordinate pair, got %d values", name, i, len(point[i]))
		}
		for j := 0; j < 2; j++ {
			value, err := parseCoordinate(point[i][j])
			if err != nil {
				return out, fmt.Errorf("%s[%d][%d]: %w", name, i, j, err)
			}
			out[i][j] = value
		}
	}
	return out, nil
}

// parse validates the whole request and returns the proof coordinates plus
// the public signals as integers.
func (r VerificationRequest) parse() (proofWords, []*big.Int, error) {
	var words proofWords

	if protocol := strings.ToLower(strings.TrimSpace(r.Proof.Protocol)); protocol != "" && protocol != "groth16" {
		return words, nil, fmt.Errorf("unsupported proof protocol %q", r.Proof.Protocol)
	}

	a, err := parseG1(r.Proof.PiA, "pi_a")
	if err != nil {
		return words, nil, err
	}
	b, err := parseG2(r.Proof.PiB, "pi_b")
	if err != nil {
		return words, nil, err
	}
	c, err := parseG1(r.Proof.PiC, "pi_c")
	if err != nil {
		return words, nil, err
	}
	words.A, words.B, words.C = a, b, c

	if len(r.PublicSignals) == 0 {
		return words, nil, fmt.Errorf("proof has no public signals")
	}
	signals := make([]*big.Int, len(r.PublicSignals))
	for i, raw := range r.PublicSignals {
		value, err := parseSignal(raw)
		if err != nil {
			return words, nil, fmt.Errorf("publicSignals[%d]: %w", i, err)
		}
		signals[i] = value
	}
	return words, signals, nil
}

package zkproof

import (
	"fmt"
	"math/big"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/ethcall"
)

func verifySignature(signalCount int) string {
	return fmt.Sprintf("verifyProof(uint256[2],uint256[2][2],uint256[2],uint256[%d])", signalCount)
}

// EncodeVerifyCall builds the verifyProof calldata for a remote verifier.
//
// The b coordinate pairs are transposed on the way out: snarkjs emits each
// Fp2 element as [c0, c1] but the pairing precompile behind the verifier
// contract consumes [c1, c0]. Sending the pairs unswapped does not error,
// it just verifies garbage, so the swap lives here in one place.
func EncodeVerifyCall(request VerificationRequest) ([]byte, error) {
	words, signals, err := request.parse()
	if err != nil {
		return nil, err
	}

	ordered := make([]*big.Int, 0, 8+len(signals))
	ordered = append(ordered, words.A[0], words.A[1])
	ordered = append(ordered, words.B[0][1], words.B[0][0])
	ordered = append(ordered, words.B[1][1], words.B[1][0])
	ordered = append(ordered, words.C[0], words.C[1])
	ordered = append(ordered, signals...)

	data := make([]byte, 0, 4+len(ordered)*ethcall.WordSize)
	data = append(data, ethcall.Selector(verifySignature(len(signals)))...)
	for i, value := range ordered {
		word, err := ethcall.EncodeUint256(value)
		if err != nil {
			return nil, fmt.Errorf("calldata word %d: %w", i, err)
		}
		data = append(data, word...)
	}
	return data, nil
}

package ethcall

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"
)

const WordSize = 32

type Address [20]byte

var ZeroAddress Address

func ParseAddress(s string) (Address, error) {
	var address Address
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "0x")
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return address, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if len(raw) != len(address) {
		return address, fmt.Errorf("invalid address %q: expected 20 bytes, got %d", s, len(raw))
	}
	copy(address[:], raw)
	return address, nil
}

func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// Selector returns the 4-byte function selector for a canonical signature
// such as "verifiers(uint256)".
func Selector(signature string) []byte {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(signature))
	return hasher.Sum(nil)[:4]
}

// EncodeUint256 encodes a non-negative integer as a 32-byte ABI word.
func EncodeUint256(value *big.Int) ([]byte, error) {
	if value == nil {
		return nil, fmt.Errorf("cannot encode nil as uint256")
	}
	if value.Sign() < 0 {
		return nil, fmt.Errorf("cannot encode negative value %s as uint256", value)
	}
	if value.BitLen() > 256 {
		return nil, fmt.Errorf("value %s overflows uint256", value)
	}
	word := make([]byte, WordSize)
	value.FillBytes(word)
	return word, nil
}

// DecodeAddress extracts an address from a 32-byte return word. Addresses
// are right-aligned in the word.
func DecodeAddress(returnData []byte) (Address, error) {
	var address Address
	if len(returnData) < WordSize {
		return address, fmt.Errorf("return data too short for address: %d bytes", len(returnData))
	}
	copy(address[:], returnData[WordSize-len(address):WordSize])
	return address, nil
}

// DecodeBool interprets a 32-byte return word as a Solidity bool.
func DecodeBool(returnData []byte) (bool, error) {
	if len(returnData) < WordSize {
		return false, fmt.Errorf("return data too short for bool: %d bytes", len(returnData))
	}
	for _, b := range returnData[:WordSize-1] {
		if b != 0 {
			return false, fmt.Errorf("malformed bool return word")
		}
	}
	return returnData[WordSize-1] != 0, nil
}

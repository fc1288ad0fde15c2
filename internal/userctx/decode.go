// Package userctx extracts the wallet signature bundle from the opaque
// user-context blob attached to a verification submission. The blob arrives
// from fixed-width storage and untrusted clients, so decoding is total: any
// malformed input yields "no bundle" rather than an error or a panic.
package userctx

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
)

const (
	signatureLength = 64
	nonceLength     = 32
)

// SignatureBundle is the decoded wallet attestation: who signed, with which
// key, over which nonce.
type SignatureBundle struct {
	AccountId string
	PublicKey string
	Signature [signatureLength]byte
	Nonce     [nonceLength]byte
}

type bundleWire struct {
	AccountId string          `json:"accountId"`
	PublicKey string          `json:"publicKey"`
	Signature string          `json:"signature"`
	Nonce     json.RawMessage `json:"nonce"`
}

// Decode turns an opaque string into a SignatureBundle. Accepted forms: plain
// JSON, hex-encoded JSON, and either of those padded with NUL bytes or other
// binary noise. Returns ok=false on any failure; never a partial bundle.
func Decode(raw string) (SignatureBundle, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return SignatureBundle{}, false
	}

	data := []byte(trimmed)
	if isHexString(trimmed) {
		decoded, err := hex.DecodeString(trimmed)
		if err != nil {
			return SignatureBundle{}, false
		}
		data = decoded
	}

	data = bytes.ReplaceAll(data, []byte{0}, nil)

	// Bounded scan: the JSON object may be wrapped in garbage from a
	// fixed-size buffer, so cut from the first '{' to the last '}'.
	start := bytes.IndexByte(data, '{')
	end := bytes.LastIndexByte(data, '}')
	if start < 0 || end < start {
		return SignatureBundle{}, false
	}
	data = data[start : end+1]

	var wire bundleWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return SignatureBundle{}, false
	}

	if wire.AccountId == "" || wire.PublicKey == "" || wire.Signature == "" || len(wire.Nonce) == 0 {
		return SignatureBundle{}, false
	}

	signature, err := base64.StdEncoding.DecodeString(wire.Signature)
	if err != nil || len(signature) != signatureLength {
		return SignatureBundle{}, false
	}

	nonce, ok := decodeNonce(wire.Nonce)
	if !ok {
		return SignatureBundle{}, false
	}

	bundle := SignatureBundle{
		AccountId: wire.AccountId,
		PublicKey: wire.PublicKey,
		Nonce:     nonce,
	}
	copy(bundle.Signature[:], signature)

	return bundle, true
}

// decodeNonce accepts either a base64 string or a JSON numeric array and
// normalizes it to 32 bytes.
func decodeNonce(raw json.RawMessage) ([nonceLength]byte, bool) {
	var out [nonceLength]byte

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		decoded, err := base64.StdEncoding.DecodeString(asString)
		if err != nil || len(decoded) != nonceLength {
			return out, false
		}
		copy(out[:], decoded)
		return out, true
	}

	var asArray []int
	if err := json.Unmarshal(raw, &asArray); err != nil {
		return out, false
	}
	if len(asArray) != nonceLength {
		return out, false
	}
	for i, v := range asArray {
		if v < 0 || v > 255 {
			return out, false
		}
		out[i] = byte(v)
	}
	return out, true
}

// EncodeHex renders a bundle as the hex blob wallets transmit. Used by dev
// tooling and round-trip tests; production decoding never depends on it.
func EncodeHex(bundle SignatureBundle) string {
	wire := map[string]string{
		"accountId": bundle.AccountId,
		"publicKey": bundle.PublicKey,
		"signature": base64.StdEncoding.EncodeToString(bundle.Signature[:]),
		"nonce":     base64.StdEncoding.EncodeToString(bundle.Nonce[:]),
	}
	data, _ := json.Marshal(wire)
	return hex.EncodeToString(data)
}

func isHexString(s string) bool {
	if len(s) == 0 || len(s)%2 != 0 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

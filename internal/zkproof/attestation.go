package zkproof

import "fmt"

// AttestationId enumerates the identity document categories accepted by the
// proof producer. The numeric values match the registry contract's keys.
type AttestationId uint8

const (
	AttestationPassport   AttestationId = 1
	AttestationNationalId AttestationId = 2
	AttestationBiometric  AttestationId = 3
)

func (id AttestationId) Valid() bool {
	switch id {
	case AttestationPassport, AttestationNationalId, AttestationBiometric:
		return true
	}
	return false
}

func (id AttestationId) String() string {
	switch id {
	case AttestationPassport:
		return "passport"
	case AttestationNationalId:
		return "national_id"
	case AttestationBiometric:
		return "biometric"
	}
	return fmt.Sprintf("attestation(%d)", uint8(id))
}

// ParseAttestation maps a config-file attestation name back to its id.
func ParseAttestation(name string) (AttestationId, bool) {
	switch name {
	case "passport":
		return AttestationPassport, true
	case "national_id":
		return AttestationNationalId, true
	case "biometric":
		return AttestationBiometric, true
	}
	return 0, false
}

// ExpectedSignalCount returns the public-signal arity each circuit declares.
// The count is advisory: a mismatch is logged and the request still goes to
// the remote verifier, which enforces arity itself by rejecting the call.
func (id AttestationId) ExpectedSignalCount() int {
	switch id {
	case AttestationPassport:
		return 21
	case AttestationNationalId:
		return 21
	case AttestationBiometric:
		return 19
	}
	return 0
}

package zkproof

import (
	"context"
	"fmt"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/ethcall"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/rpcpool"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
)

type Config struct {
	RpcEndpoints []string `json:"rpc_endpoints"`
	HubAddress   string   `json:"hub_address"`

	// PrecheckKeyFiles optionally maps attestation names to snarkjs
	// verification key files for the in-process advisory precheck.
	PrecheckKeyFiles map[string]string `json:"precheck_key_files,omitempty"`
}

// Result is the detailed outcome of a remote verification. Valid carries the
// verifier contract's answer, which is the sole source of truth. No local
// freshness or time-window rule is applied on top: proofs issued earlier
// stay checkable for as long as the contract accepts them.
type Result struct {
	Valid           bool   `json:"valid"`
	VerifierAddress string `json:"verifier_address,omitempty"`
	Endpoint        string `json:"endpoint,omitempty"`
	SignalCount     int    `json:"signal_count"`
	Error           string `json:"error,omitempty"`
}

type Verifier struct {
	client   *ethcall.Client
	registry *Registry
	log      *logger.Logger
}

func NewVerifier(config Config, log *logger.Logger) (*Verifier, error) {
	hub, err := ethcall.ParseAddress(config.HubAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid hub address: %w", err)
	}
	if hub.IsZero() {
		return nil, fmt.Errorf("hub address is the zero address")
	}
	pool, err := rpcpool.New(config.RpcEndpoints, rpcpool.WithLogger(log))
	if err != nil {
		return nil, err
	}
	client := ethcall.NewClient(pool)
	return &Verifier{
		client:   client,
		registry: NewRegistry(client, hub),
		log:      log,
	}, nil
}

// Verify resolves the verifier contract for the attestation type and asks it
// whether the proof holds.
func (v *Verifier) Verify(ctx context.Context, request VerificationRequest, attestation AttestationId) (Result, error) {
	result := Result{SignalCount: len(request.PublicSignals)}

	// Shape problems are rejected before anything touches the network.
	data, err := EncodeVerifyCall(request)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}

	if expected := attestation.ExpectedSignalCount(); len(request.PublicSignals) != expected {
		v.log.Warnf("Attestation %s declares %d public signals but the proof carries %d, deferring to the verifier contract",
			attestation, expected, len(request.PublicSignals))
	}

	verifier, err := v.registry.VerifierFor(ctx, attestation)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}
	result.VerifierAddress = verifier.Hex()

	returnData, endpoint, err := v.client.Call(ctx, verifier, data)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}
	result.Endpoint = endpoint

	valid, err := ethcall.DecodeBool(returnData)
	if err != nil {
		result.Error = err.Error()
		return result, fmt.Errorf("verifier %s returned malformed data: %w", verifier.Hex(), err)
	}
	result.Valid = valid
	return result, nil
}

// VerifyProof is the boolean-only variant of Verify.
func (v *Verifier) VerifyProof(ctx context.Context, request VerificationRequest, attestation AttestationId) (bool, error) {
	result, err := v.Verify(ctx, request, attestation)
	if err != nil {
		return false, err
	}
	return result.Valid, nil
}

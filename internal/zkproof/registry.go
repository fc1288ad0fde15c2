package zkproof

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/ethcall"
)

// ErrVerifierNotConfigured means the hub holds no verifier contract for the
// requested attestation type. This is a deployment problem, not an invalid
// proof, and callers must not translate it into a proof-validity answer.
var ErrVerifierNotConfigured = errors.New("no verifier configured for attestation type")

// Registry resolves verifier contract addresses through the hub contract and
// caches them for the life of the process. Verifier deployments only change
// with a hub migration, so there is no TTL.
type Registry struct {
	client *ethcall.Client
	hub    ethcall.Address

	mu    sync.Mutex
	cache map[AttestationId]ethcall.Address
}

func NewRegistry(client *ethcall.Client, hub ethcall.Address) *Registry {
	return &Registry{
		client: client,
		hub:    hub,
		cache:  make(map[AttestationId]ethcall.Address),
	}
}

// VerifierFor returns the verifier contract address for an attestation type,
// resolving it with a single hub call on first use.
func (r *Registry) VerifierFor(ctx context.Context, attestation AttestationId) (ethcall.Address, error) {
	if !attestation.Valid() {
		return ethcall.ZeroAddress, fmt.Errorf("unknown attestation type %d", attestation)
	}

	r.mu.Lock()
	cached, ok := r.cache[attestation]
	r.mu.Unlock()
	if ok {
		return cached, nil
	}

	key, err := ethcall.EncodeUint256(big.NewInt(int64(attestation)))
	if err != nil {
		return ethcall.ZeroAddress, err
	}
	data := append(ethcall.Selector("verifiers(uint256)"), key...)

	returnData, _, err := r.client.Call(ctx, r.hub, data)
	if err != nil {
		return ethcall.ZeroAddress, fmt.Errorf("failed to resolve verifier for %s: %w", attestation, err)
	}
	address, err := ethcall.DecodeAddress(returnData)
	if err != nil {
		return ethcall.ZeroAddress, fmt.Errorf("hub returned malformed verifier address for %s: %w", attestation, err)
	}
	if address.IsZero() {
		return ethcall.ZeroAddress, fmt.Errorf("%w: %s", ErrVerifierNotConfigured, attestation)
	}

	r.mu.Lock()
	r.cache[attestation] = address
	r.mu.Unlock()
	return address, nil
}

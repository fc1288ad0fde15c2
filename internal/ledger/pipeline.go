package ledger

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/nearrpc"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/neartx"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/reasoncodes"
)

const storeVerificationMethod = "store_verification"

// DefaultGas covers the registry write with room for contract-side checks.
const DefaultGas uint64 = 100_000_000_000_000

type Outcome string

const (
	OutcomeConfirmedByPoll               Outcome = "ConfirmedByPoll"
	OutcomeConfirmedAfterTimeoutRecovery Outcome = "ConfirmedAfterTimeoutRecovery"
	OutcomeFailed                        Outcome = "Failed"
)

// WriteResult reports how a single write attempt ended. ReasonCode is set
// when the attempt failed in a way the caller should surface to users.
type WriteResult struct {
	Outcome      Outcome
	TxHash       string
	PollAttempts int
	ReasonCode   reasoncodes.ReasonCode
}

type Config struct {
	ContractId   string `json:"contract_id"`
	SignerId     string `json:"signer_id"`
	SignerKey    string `json:"signer_key"`
	Network      string `json:"network"`
	Gas          uint64 `json:"gas"`
	DepositYocto string `json:"deposit_yocto"`

	// Profile overrides the Network-derived confirmation schedule.
	Profile *NetworkProfile `json:"-"`
}

type Pipeline struct {
	provider        *nearrpc.Provider
	reader          *Reader
	profile         NetworkProfile
	contractId      string
	signerId        string
	signerKey       ed25519.PrivateKey
	signerPublicKey neartx.PublicKey
	gas             uint64
	deposit         *big.Int
	log             *logger.Logger
}

func NewPipeline(provider *nearrpc.Provider, config Config, log *logger.Logger) (*Pipeline, error) {
	if config.ContractId == "" {
		return nil, fmt.Errorf("ledger pipeline requires a contract id")
	}
	signerKey, err := neartx.ParsePrivateKey(config.SignerKey)
	if err != nil {
		return nil, fmt.Errorf("invalid signer key: %w", err)
	}

	profile, err := ProfileForNetwork(config.Network)
	if config.Profile != nil {
		profile = *config.Profile
	} else if err != nil {
		return nil, err
	}

	gas := config.Gas
	if gas == 0 {
		gas = DefaultGas
	}
	deposit := big.NewInt(1) // anti-spam minimum the contract requires
	if config.DepositYocto != "" {
		parsed, ok := new(big.Int).SetString(config.DepositYocto, 10)
		if !ok || parsed.Sign() < 0 {
			return nil, fmt.Errorf("invalid deposit %q", config.DepositYocto)
		}
		deposit = parsed
	}

	return &Pipeline{
		provider:        provider,
		reader:          NewReader(provider, config.ContractId),
		profile:         profile,
		contractId:      config.ContractId,
		signerId:        config.SignerId,
		signerKey:       signerKey,
		signerPublicKey: neartx.PublicKeyFromPrivate(signerKey),
		gas:             gas,
		deposit:         deposit,
		log:             log,
	}, nil
}

func (p *Pipeline) Reader() *Reader {
	return p.reader
}

// StoreVerification runs one write attempt through the state machine
// Initiated -> Broadcast -> {ConfirmedByPoll | ConfirmedAfterTimeoutRecovery
// | Failed}.
func (p *Pipeline) StoreVerification(ctx context.Context, args StoreVerificationArgs) (WriteResult, error) {
	result := WriteResult{Outcome: OutcomeFailed}

	if err := args.validate(); err != nil {
		result.ReasonCode = reasoncodes.ErrVerificationFailed
		return result, err
	}

	overallCtx, cancel := context.WithTimeout(ctx, p.profile.OverallTimeout)
	defer cancel()

	txHash, broadcastErr := p.broadcast(overallCtx, args)
	result.TxHash = txHash

	if broadcastErr == nil {
		p.log.Infof("Broadcast verification write for %s as %s, polling for confirmation", args.AccountId, txHash)
		confirmed, attempts := p.pollForConfirmation(overallCtx, args.AccountId)
		result.PollAttempts = attempts
		if confirmed {
			result.Outcome = OutcomeConfirmedByPoll
			return result, nil
		}
		result.ReasonCode = reasoncodes.ErrNearBlockchain
		return result, fmt.Errorf("write %s broadcast but unconfirmed after %d polls", txHash, attempts)
	}

	if isTransientFault(broadcastErr) {
		// The node may have executed the write even though the call failed
		// client-side. Poll before declaring failure.
		p.log.Warnf("Broadcast for %s failed with a transient fault, checking whether the write landed: %v", args.AccountId, broadcastErr)
		confirmed, attempts := p.pollForConfirmation(overallCtx, args.AccountId)
		result.PollAttempts = attempts
		if confirmed {
			result.Outcome = OutcomeConfirmedAfterTimeoutRecovery
			return result, nil
		}
		result.ReasonCode = reasoncodes.ErrNearBlockchain
		return result, fmt.Errorf("broadcast failed and the write never appeared: %w", broadcastErr)
	}

	// A ledger-level rejection cannot land later, so it skips polling and
	// goes straight to translation.
	result.ReasonCode = reasoncodes.TranslateContractError(nodeErrorText(broadcastErr))
	return result, broadcastErr
}

// broadcast assembles, signs and submits the write without waiting for
// execution.
func (p *Pipeline) broadcast(ctx context.Context, args StoreVerificationArgs) (string, error) {
	broadcastCtx, cancel := context.WithTimeout(ctx, BroadcastTimeout)
	defer cancel()

	accessKey, err := p.provider.ViewAccessKey(broadcastCtx, p.signerId, p.signerPublicKey.String())
	if err != nil {
		return "", fmt.Errorf("failed to fetch signer access key: %w", err)
	}
	blockHash, err := neartx.ParseBlockHash(accessKey.BlockHash)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("failed to marshal contract args: %w", err)
	}

	transaction := neartx.Transaction{
		SignerId:   p.signerId,
		PublicKey:  p.signerPublicKey,
		Nonce:      accessKey.Nonce + 1,
		ReceiverId: p.contractId,
		BlockHash:  blockHash,
		Actions: []neartx.Action{
			neartx.NewFunctionCallAction(storeVerificationMethod, payload, p.gas, p.deposit),
		},
	}
	signed, err := neartx.Sign(transaction, p.signerKey)
	if err != nil {
		return "", err
	}
	raw, err := signed.Serialize()
	if err != nil {
		return "", err
	}
	return p.provider.BroadcastTxAsync(broadcastCtx, raw)
}

// pollForConfirmation reads "is the account recorded" until it turns true or
// the attempt budget runs out. Individual poll failures are logged and do
// not end the loop; transient RPC unavailability must not cut polling short.
func (p *Pipeline) pollForConfirmation(ctx context.Context, accountId string) (bool, int) {
	delay := p.profile.InitialPollDelay
	for attempt := 1; attempt <= p.profile.MaxPollAttempts; attempt++ {
		if ctx.Err() != nil {
			return false, attempt - 1
		}

		pollCtx, cancel := context.WithTimeout(ctx, PollTimeout)
		verified, err := p.reader.IsAccountVerified(pollCtx, accountId)
		cancel()
		if err != nil {
			p.log.Warnf("Confirmation poll %d/%d for %s failed, continuing: %v", attempt, p.profile.MaxPollAttempts, accountId, err)
		} else if verified {
			return true, attempt
		}

		if attempt == p.profile.MaxPollAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return false, attempt
		case <-time.After(delay):
		}
		delay = p.profile.nextDelay(delay)
	}
	return false, p.profile.MaxPollAttempts
}

// transientFaultMarkers are the error fragments that mean "the RPC call
// failed but the write may still have landed". The deadline text covers this
// client's own timeouts.
var transientFaultMarkers = []string{
	"internal server error",
	"timeout",
	"timed out",
	"deadline exceeded",
	"500",
}

// nodeErrorText returns the node-reported error when one is wrapped inside
// err, falling back to the full text. Pool aggregates embed endpoint URLs,
// and a port number must not match a marker like "500".
func nodeErrorText(err error) string {
	var rpcErr *nearrpc.RpcError
	if errors.As(err, &rpcErr) {
		return rpcErr.Error()
	}
	return err.Error()
}

func isTransientFault(err error) bool {
	message := strings.ToLower(nodeErrorText(err))
	for _, marker := range transientFaultMarkers {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}

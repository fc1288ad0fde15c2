// Package ledger drives verification writes to the registry contract and
// confirms them by polling, instead of waiting synchronously for execution.
// Broadcast and confirmation are decoupled on purpose: congested RPC nodes
// regularly time out on synchronous writes that actually landed.
package ledger

import (
	"fmt"
	"time"
)

const (
	// BroadcastTimeout bounds the fire-and-forget submission call.
	BroadcastTimeout = 30 * time.Second
	// PollTimeout bounds each single confirmation read.
	PollTimeout = 10 * time.Second
)

// NetworkProfile is the confirmation schedule for one network class.
// Faster-finality networks poll sooner and give up earlier.
type NetworkProfile struct {
	Name             string
	InitialPollDelay time.Duration
	BackoffFactor    float64
	MaxPollDelay     time.Duration
	MaxPollAttempts  int
	// OverallTimeout is the hard ceiling over broadcast plus confirmation,
	// bounding caller latency no matter how the retries play out.
	OverallTimeout time.Duration
}

var (
	TestnetProfile = NetworkProfile{
		Name:             "testnet",
		InitialPollDelay: 500 * time.Millisecond,
		BackoffFactor:    1.5,
		MaxPollDelay:     5 * time.Second,
		MaxPollAttempts:  10,
		OverallTimeout:   60 * time.Second,
	}
	MainnetProfile = NetworkProfile{
		Name:             "mainnet",
		InitialPollDelay: 2 * time.Second,
		BackoffFactor:    1.5,
		MaxPollDelay:     8 * time.Second,
		MaxPollAttempts:  15,
		OverallTimeout:   90 * time.Second,
	}
)

func ProfileForNetwork(network string) (NetworkProfile, error) {
	switch network {
	case "testnet":
		return TestnetProfile, nil
	case "mainnet":
		return MainnetProfile, nil
	}
	return NetworkProfile{}, fmt.Errorf("unknown network %q, expected testnet or mainnet", network)
}

// nextDelay advances the backoff, clamped at the profile cap.
func (p NetworkProfile) nextDelay(current time.Duration) time.Duration {
	next := time.Duration(float64(current) * p.BackoffFactor)
	if next > p.MaxPollDelay {
		return p.MaxPollDelay
	}
	return next
}

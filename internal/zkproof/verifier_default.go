package zkproof

import (
	"errors"
	"sync"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
)

// ErrNotConfigured is returned by Default when Setup was never called.
var ErrNotConfigured = errors.New("proof verifier not configured, call zkproof.Setup first")

var (
	defaultMu       sync.Mutex
	defaultConfig   *Config
	defaultLog      *logger.Logger
	defaultVerifier *Verifier
)

// Setup records the verifier configuration. It performs no network work;
// the shared verifier is built lazily on the first Default call.
func Setup(config Config, log *logger.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultConfig = &config
	defaultLog = log
	defaultVerifier = nil
}

// Default returns the process-wide verifier, constructing it on first use.
func Default() (*Verifier, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultVerifier != nil {
		return defaultVerifier, nil
	}
	if defaultConfig == nil {
		return nil, ErrNotConfigured
	}
	verifier, err := NewVerifier(*defaultConfig, defaultLog)
	if err != nil {
		return nil, err
	}
	defaultVerifier = verifier
	return defaultVerifier, nil
}

// Package rpcpool provides ordered failover across a set of RPC endpoints.
//
// A pool walks its endpoints in configuration order and returns the first
// successful result. The endpoint that last served a successful call is
// remembered for a short period and tried first on subsequent calls, so a
// healthy endpoint keeps serving traffic without re-probing the ones before
// it. One failure evicts it and the walk falls back to configuration order.
package rpcpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
)

const (
	DefaultAttemptTimeout = 5 * time.Second
	DefaultLastGoodTTL    = 5 * time.Minute
)

var ErrNoEndpoints = errors.New("rpc pool requires at least one endpoint")

type Pool struct {
	endpoints      []string
	attemptTimeout time.Duration
	lastGoodTTL    time.Duration
	log            *logger.Logger

	mu         sync.Mutex
	lastGood   string
	lastGoodAt time.Time
}

type Option func(*Pool)

// WithAttemptTimeout bounds each single-endpoint attempt. The caller's
// context still caps the whole walk.
func WithAttemptTimeout(d time.Duration) Option {
	return func(p *Pool) {
		p.attemptTimeout = d
	}
}

// WithLastGoodTTL sets how long a successful endpoint stays preferred.
func WithLastGoodTTL(d time.Duration) Option {
	return func(p *Pool) {
		p.lastGoodTTL = d
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(p *Pool) {
		p.log = log
	}
}

func New(endpoints []string, options ...Option) (*Pool, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoEndpoints
	}
	pool := &Pool{
		endpoints:      append([]string(nil), endpoints...),
		attemptTimeout: DefaultAttemptTimeout,
		lastGoodTTL:    DefaultLastGoodTTL,
	}
	for _, option := range options {
		option(pool)
	}
	return pool, nil
}

func (p *Pool) Endpoints() []string {
	return append([]string(nil), p.endpoints...)
}

// attemptOrder returns the endpoints to try, most recently successful first
// while its TTL holds, then the rest in configuration order.
func (p *Pool) attemptOrder() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.lastGood == "" || time.Since(p.lastGoodAt) > p.lastGoodTTL {
		return p.endpoints
	}
	order := make([]string, 0, len(p.endpoints))
	order = append(order, p.lastGood)
	for _, endpoint := range p.endpoints {
		if endpoint != p.lastGood {
			order = append(order, endpoint)
		}
	}
	return order
}

func (p *Pool) markGood(endpoint string) {
	p.mu.Lock()
	p.lastGood = endpoint
	p.lastGoodAt = time.Now()
	p.mu.Unlock()
}

func (p *Pool) markFailed(endpoint string) {
	p.mu.Lock()
	if p.lastGood == endpoint {
		p.lastGood = ""
	}
	p.mu.Unlock()
}

func (p *Pool) warnf(format string, v ...interface{}) {
	if p.log != nil {
		p.log.Warnf(format, v...)
	}
}

// Operation is a single RPC against one endpoint. It must honor ctx.
type Operation[T any] func(ctx context.Context, endpoint string) (T, error)

// Execute walks the pool until an operation succeeds and returns its result
// together with the endpoint that served it. When every endpoint fails the
// returned error names each one with its failure reason; the last attempt
// error stays unwrappable so callers can inspect the node's response.
func Execute[T any](ctx context.Context, p *Pool, op Operation[T]) (T, string, error) {
	var zero T
	failures := make([]error, 0, len(p.endpoints))

	for _, endpoint := range p.attemptOrder() {
		if err := ctx.Err(); err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", endpoint, err))
			continue
		}

		attemptCtx, cancel := context.WithTimeout(ctx, p.attemptTimeout)
		result, err := op(attemptCtx, endpoint)
		cancel()
		if err == nil {
			p.markGood(endpoint)
			return result, endpoint, nil
		}

		p.markFailed(endpoint)
		p.warnf("RPC endpoint %s failed, trying next: %v", endpoint, err)
		failures = append(failures, fmt.Errorf("%s: %w", endpoint, err))
	}

	return zero, "", fmt.Errorf("all RPC endpoints failed: %w", errors.Join(failures...))
}

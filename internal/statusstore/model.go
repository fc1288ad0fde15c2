// Package statusstore keeps the per-session outcome of verification
// attempts. The ledger stays the source of truth for who is verified; this
// store only answers "what happened to the submission with this session id"
// for clients polling the API.
package statusstore

import (
	"time"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/reasoncodes"
)

type SessionState string

const (
	StatePending   SessionState = "pending"
	StateConfirmed SessionState = "confirmed"
	StateFailed    SessionState = "failed"
	StateExpired   SessionState = "expired"
)

type VerificationSession struct {
	Id            int    `gorm:"primaryKey;autoIncrement"`
	SessionId     string `gorm:"uniqueIndex;not null"`
	AccountId     string `gorm:"index"`
	IdentityKey   string
	AttestationId uint8
	State         SessionState `gorm:"index;not null"`
	TxHash        string
	Outcome       string
	ReasonCode    reasoncodes.ReasonCode
	LastError     string
	PollAttempts  int
	VerifiedAt    int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Terminal reports whether the session can still change state. Consumers
// skip updates for terminal sessions so a late queue delivery cannot revive
// an expired or failed attempt.
func (s VerificationSession) Terminal() bool {
	return s.State == StateConfirmed || s.State == StateFailed
}

package statusstore

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/reasoncodes"
)

var ErrSessionNotFound = errors.New("verification session not found")

type Repository interface {
	CreateSession(session *VerificationSession) error
	GetBySessionId(sessionId string) (*VerificationSession, error)
	MarkConfirmed(sessionId, txHash, outcome string, pollAttempts int) error
	MarkFailed(sessionId string, reasonCode reasoncodes.ReasonCode, message string) error
	ExpireStale(cutoff time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateSession(session *VerificationSession) error {
	if session.State == "" {
		session.State = StatePending
	}
	return r.db.Create(session).Error
}

func (r *gormRepository) GetBySessionId(sessionId string) (*VerificationSession, error) {
	var session VerificationSession
	err := r.db.Where("session_id = ?", sessionId).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// MarkConfirmed records the ledger write outcome. Expired sessions are still
// eligible: the ledger is authoritative, and a write that landed after the
// sweeper gave up on it is a confirmation, not a conflict.
func (r *gormRepository) MarkConfirmed(sessionId, txHash, outcome string, pollAttempts int) error {
	result := r.db.Model(&VerificationSession{}).
		Where("session_id = ? AND state IN ?", sessionId, []SessionState{StatePending, StateExpired}).
		Updates(map[string]interface{}{
			"state":         StateConfirmed,
			"tx_hash":       txHash,
			"outcome":       outcome,
			"poll_attempts": pollAttempts,
			"verified_at":   time.Now().UTC().Unix(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *gormRepository) MarkFailed(sessionId string, reasonCode reasoncodes.ReasonCode, message string) error {
	result := r.db.Model(&VerificationSession{}).
		Where("session_id = ? AND state IN ?", sessionId, []SessionState{StatePending, StateExpired}).
		Updates(map[string]interface{}{
			"state":       StateFailed,
			"reason_code": reasonCode,
			"last_error":  message,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ExpireStale flips pending sessions older than the cutoff to expired and
// returns how many it touched.
func (r *gormRepository) ExpireStale(cutoff time.Time) (int64, error) {
	result := r.db.Model(&VerificationSession{}).
		Where("state = ? AND created_at < ?", StatePending, cutoff).
		Update("state", StateExpired)
	return result.RowsAffected, result.Error
}

package statusstore

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/reasoncodes"
)

func TestMain(m *testing.M) {
	logger.InitDefaultLogger(logger.GlobalLoggerConfig{
		Args: []logger.LoggerArg{
			{Key: "service", Value: "statusstore-test"},
		},
	})
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "Failed to open in-memory database")
	require.NoError(t, AutoMigrate(db), "Failed to migrate test database")
	return db
}

func createTestSession(t *testing.T, repo Repository) *VerificationSession {
	t.Helper()
	session := &VerificationSession{
		SessionId:     uuid.New().String(),
		AccountId:     "alice.testnet",
		IdentityKey:   "12345678901234567890",
		AttestationId: 1,
	}
	require.NoError(t, repo.CreateSession(session))
	return session
}

func TestCreateSessionDefaultsToPending(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	session := createTestSession(t, repo)

	loaded, err := repo.GetBySessionId(session.SessionId)
	require.NoError(t, err)
	assert.Equal(t, StatePending, loaded.State)
	assert.Equal(t, "alice.testnet", loaded.AccountId)
	assert.False(t, loaded.Terminal())
}

func TestCreateSessionRejectsDuplicateSessionId(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	session := createTestSession(t, repo)

	duplicate := &VerificationSession{
		SessionId: session.SessionId,
		AccountId: "bob.testnet",
	}
	assert.Error(t, repo.CreateSession(duplicate))
}

func TestGetBySessionIdUnknown(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	_, err := repo.GetBySessionId(uuid.New().String())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMarkConfirmed(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	session := createTestSession(t, repo)

	err := repo.MarkConfirmed(session.SessionId, "8kZvX", "ConfirmedByPoll", 3)
	require.NoError(t, err)

	loaded, err := repo.GetBySessionId(session.SessionId)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, loaded.State)
	assert.Equal(t, "8kZvX", loaded.TxHash)
	assert.Equal(t, "ConfirmedByPoll", loaded.Outcome)
	assert.Equal(t, 3, loaded.PollAttempts)
	assert.NotZero(t, loaded.VerifiedAt)
	assert.True(t, loaded.Terminal())
}

func TestMarkFailed(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	session := createTestSession(t, repo)

	err := repo.MarkFailed(session.SessionId, reasoncodes.ErrDuplicateIdentity, "Smart contract panicked: Identity already used")
	require.NoError(t, err)

	loaded, err := repo.GetBySessionId(session.SessionId)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, loaded.State)
	assert.Equal(t, reasoncodes.ErrDuplicateIdentity, loaded.ReasonCode)
	assert.Contains(t, loaded.LastError, "Identity already used")
}

func TestTerminalSessionsStayTerminal(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	session := createTestSession(t, repo)

	require.NoError(t, repo.MarkFailed(session.SessionId, reasoncodes.ErrContractPaused, "paused"))

	// A late confirmation for a failed session must not flip it back.
	err := repo.MarkConfirmed(session.SessionId, "late", "ConfirmedByPoll", 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	loaded, err := repo.GetBySessionId(session.SessionId)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, loaded.State)
}

func TestMarkConfirmedRevivesExpiredSession(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	session := createTestSession(t, repo)

	expired, err := repo.ExpireStale(time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, expired)

	// The write landed after the sweeper gave up; the ledger wins.
	require.NoError(t, repo.MarkConfirmed(session.SessionId, "9aBcD", "ConfirmedAfterTimeoutRecovery", 7))

	loaded, err := repo.GetBySessionId(session.SessionId)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, loaded.State)
	assert.Equal(t, "ConfirmedAfterTimeoutRecovery", loaded.Outcome)
}

func TestExpireStaleOnlyTouchesOldPending(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	stale := createTestSession(t, repo)
	fresh := createTestSession(t, repo)
	confirmed := createTestSession(t, repo)
	require.NoError(t, repo.MarkConfirmed(confirmed.SessionId, "tx", "ConfirmedByPoll", 1))

	// Age the stale session past the cutoff.
	aged := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, db.Model(&VerificationSession{}).
		Where("session_id = ?", stale.SessionId).
		Update("created_at", aged).Error)

	expired, err := repo.ExpireStale(time.Now().UTC().Add(-30 * time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 1, expired)

	staleLoaded, _ := repo.GetBySessionId(stale.SessionId)
	freshLoaded, _ := repo.GetBySessionId(fresh.SessionId)
	confirmedLoaded, _ := repo.GetBySessionId(confirmed.SessionId)
	assert.Equal(t, StateExpired, staleLoaded.State)
	assert.Equal(t, StatePending, freshLoaded.State)
	assert.Equal(t, StateConfirmed, confirmedLoaded.State)
}

package chainworker

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/ledger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/userctx"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/dtocommon"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/reasoncodes"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/utilities"
)

func TestMain(m *testing.M) {
	logger.InitDefaultLogger(logger.GlobalLoggerConfig{
		Args: []logger.LoggerArg{
			{Key: "service", Value: "chainworker-test"},
		},
	})
	os.Exit(m.Run())
}

type fakeWriter struct {
	result   ledger.WriteResult
	err      error
	calls    int
	lastArgs ledger.StoreVerificationArgs
	block    bool
}

func (f *fakeWriter) StoreVerification(ctx context.Context, args ledger.StoreVerificationArgs) (ledger.WriteResult, error) {
	f.calls++
	f.lastArgs = args
	if f.block {
		<-ctx.Done()
		return ledger.WriteResult{Outcome: ledger.OutcomeFailed}, ctx.Err()
	}
	return f.result, f.err
}

type fakePublisher struct {
	published []utilities.Serializable
}

func (f *fakePublisher) Publish(body utilities.Serializable) error {
	f.published = append(f.published, body)
	return nil
}

func (f *fakePublisher) lastResult(t *testing.T) dtocommon.LedgerWriteResultDto {
	t.Helper()
	require.NotEmpty(t, f.published, "no result was published")
	raw, err := f.published[len(f.published)-1].Serialize()
	require.NoError(t, err)
	var dto dtocommon.LedgerWriteResultDto
	require.NoError(t, json.Unmarshal(raw, &dto))
	return dto
}

func (f *fakePublisher) lastFailure(t *testing.T) dtocommon.LedgerWriteFailureDto {
	t.Helper()
	require.NotEmpty(t, f.published, "no failure was published")
	raw, err := f.published[len(f.published)-1].Serialize()
	require.NoError(t, err)
	var dto dtocommon.LedgerWriteFailureDto
	require.NoError(t, json.Unmarshal(raw, &dto))
	return dto
}

func newTestWorker(writer LedgerWriter) (*Worker, *fakePublisher, *fakePublisher) {
	results := &fakePublisher{}
	failures := &fakePublisher{}
	worker := &Worker{
		writer:   writer,
		results:  results,
		failures: failures,
		timeout:  time.Second,
		log:      logger.Default(),
	}
	return worker, results, failures
}

func signedJob(t *testing.T) (dtocommon.LedgerWriteJobDto, userctx.SignatureBundle) {
	t.Helper()
	bundle := userctx.SignatureBundle{
		AccountId: "alice.testnet",
		PublicKey: "ed25519:6aQ3rXDYXBDQpsSRwUyeLHXBLHM3BM7eBPLM5F5RcQxN",
	}
	for i := range bundle.Signature {
		bundle.Signature[i] = byte(i)
	}
	for i := range bundle.Nonce {
		bundle.Nonce[i] = byte(255 - i)
	}

	job := dtocommon.LedgerWriteJobDto{
		SessionId:      "session-1",
		AccountId:      "alice.testnet",
		IdentityKey:    "987654321",
		AttestationId:  1,
		Message:        "Verify citizenship for voting",
		VerifiedAt:     1700000000,
		PublicSignals:  []string{"1", "2", "3", "4", "5", "6", "7", "987654321"},
		UserContextHex: userctx.EncodeHex(bundle),
	}
	return job, bundle
}

func rawJob(t *testing.T, job dtocommon.LedgerWriteJobDto) []byte {
	t.Helper()
	raw, err := job.Serialize()
	require.NoError(t, err)
	return raw
}

func TestProcessConfirmedJobPublishesResult(t *testing.T) {
	writer := &fakeWriter{result: ledger.WriteResult{
		Outcome:      ledger.OutcomeConfirmedByPoll,
		TxHash:       "8kZvTxHash",
		PollAttempts: 3,
	}}
	worker, results, failures := newTestWorker(writer)
	job, bundle := signedJob(t)

	worker.Process(job, rawJob(t, job))

	require.Equal(t, 1, writer.calls)
	assert.Empty(t, failures.published)

	dto := results.lastResult(t)
	assert.Equal(t, "session-1", dto.SessionId)
	assert.Equal(t, "alice.testnet", dto.AccountId)
	assert.Equal(t, "8kZvTxHash", dto.TxHash)
	assert.Equal(t, string(ledger.OutcomeConfirmedByPoll), dto.Outcome)
	assert.Equal(t, 3, dto.Attempts)

	args := writer.lastArgs
	assert.Equal(t, "alice.testnet", args.AccountId)
	assert.Equal(t, "987654321", args.IdentityKey)
	assert.Equal(t, job.Message, args.Message)
	assert.Equal(t, bundle.PublicKey, args.PublicKey)
	assert.Equal(t, ledger.ByteArray(bundle.Signature[:]), args.Signature)
	assert.Equal(t, ledger.ByteArray(bundle.Nonce[:]), args.Nonce)
	assert.Equal(t, int64(1700000000), args.VerifiedAt)
}

func TestProcessContractRejectionKeepsTranslatedReason(t *testing.T) {
	writer := &fakeWriter{
		result: ledger.WriteResult{
			Outcome:    ledger.OutcomeFailed,
			ReasonCode: reasoncodes.ErrDuplicateIdentity,
		},
		err: errors.New("Smart contract panicked: Identity already used"),
	}
	worker, results, failures := newTestWorker(writer)
	job, _ := signedJob(t)

	worker.Process(job, rawJob(t, job))

	assert.Empty(t, results.published)
	dto := failures.lastFailure(t)
	assert.Equal(t, "session-1", dto.SessionId)
	assert.Equal(t, reasoncodes.ErrDuplicateIdentity, dto.ReasonCode)
	assert.Contains(t, dto.Error, "Identity already used")
}

func TestProcessInfrastructureFailureDefaultsToBlockchainReason(t *testing.T) {
	writer := &fakeWriter{
		result: ledger.WriteResult{Outcome: ledger.OutcomeFailed},
		err:    errors.New("all 3 endpoints failed"),
	}
	worker, _, failures := newTestWorker(writer)
	job, _ := signedJob(t)

	worker.Process(job, rawJob(t, job))

	dto := failures.lastFailure(t)
	assert.Equal(t, reasoncodes.ErrNearBlockchain, dto.ReasonCode)
}

func TestProcessRejectsUndecodableUserContext(t *testing.T) {
	writer := &fakeWriter{}
	worker, results, failures := newTestWorker(writer)
	job, _ := signedJob(t)
	job.UserContextHex = "deadbeef"

	worker.Process(job, rawJob(t, job))

	assert.Zero(t, writer.calls, "the pipeline must not run on a broken payload")
	assert.Empty(t, results.published)
	dto := failures.lastFailure(t)
	assert.Equal(t, reasoncodes.ErrVerificationFailed, dto.ReasonCode)
}

func TestProcessRejectsBundleAccountMismatch(t *testing.T) {
	writer := &fakeWriter{}
	worker, _, failures := newTestWorker(writer)
	job, _ := signedJob(t)
	job.AccountId = "mallory.testnet"

	worker.Process(job, rawJob(t, job))

	assert.Zero(t, writer.calls)
	dto := failures.lastFailure(t)
	assert.Equal(t, reasoncodes.ErrVerificationFailed, dto.ReasonCode)
}

func TestProcessKycJobWritesWithoutSignatureMaterials(t *testing.T) {
	writer := &fakeWriter{result: ledger.WriteResult{
		Outcome: ledger.OutcomeConfirmedByPoll,
		TxHash:  "KycTx",
	}}
	worker, results, _ := newTestWorker(writer)

	job := dtocommon.LedgerWriteJobDto{
		SessionId:     "session-kyc",
		AccountId:     "bob.near",
		IdentityKey:   "applicant-77",
		AttestationId: 2,
		VerifiedAt:    1700000000,
	}
	worker.Process(job, rawJob(t, job))

	require.Equal(t, 1, writer.calls)
	assert.Empty(t, writer.lastArgs.Signature)
	assert.Empty(t, writer.lastArgs.PublicKey)
	assert.Empty(t, writer.lastArgs.Nonce)
	assert.Equal(t, "applicant-77", writer.lastArgs.IdentityKey)
	assert.Equal(t, "KycTx", results.lastResult(t).TxHash)
}

func TestProcessJobBudgetExceeded(t *testing.T) {
	writer := &fakeWriter{block: true}
	worker, results, failures := newTestWorker(writer)
	worker.timeout = 20 * time.Millisecond
	job, _ := signedJob(t)

	worker.Process(job, rawJob(t, job))

	assert.Empty(t, results.published)
	dto := failures.lastFailure(t)
	assert.Equal(t, reasoncodes.ErrNearBlockchain, dto.ReasonCode)
}

func TestHandleDeliveryUnmarshalFailure(t *testing.T) {
	writer := &fakeWriter{}
	worker, results, failures := newTestWorker(writer)

	worker.handleDelivery(amqp.Delivery{Body: []byte("{not json")})

	assert.Zero(t, writer.calls)
	assert.Empty(t, results.published)
	dto := failures.lastFailure(t)
	assert.Equal(t, reasoncodes.ErrUnmarshal, dto.ReasonCode)
	assert.Equal(t, []byte("{not json"), dto.RequestBody)
}

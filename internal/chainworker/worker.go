// Package chainworker drains the ledger-write queue. Each job runs through
// the write/confirm pipeline and ends as exactly one published message: a
// result on confirmation, a failure with a reason code on anything else.
package chainworker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/ledger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/userctx"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/dtocommon"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/rabbitmq"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/reasoncodes"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/utilities"
)

const (
	jobsConsumerAlias      = "LedgerJobsConsumer"
	resultsPublisherAlias  = "LedgerResultsPublisher"
	failuresPublisherAlias = "LedgerFailuresPublisher"
)

// DefaultJobTimeout caps one job end to end. It sits above the pipeline's
// own mainnet ceiling so the pipeline, not the worker, normally decides.
const DefaultJobTimeout = 2 * time.Minute

// LedgerWriter is the blocking write/confirm call the worker drives.
// Satisfied by ledger.Pipeline.
type LedgerWriter interface {
	StoreVerification(ctx context.Context, args ledger.StoreVerificationArgs) (ledger.WriteResult, error)
}

type Worker struct {
	writer   LedgerWriter
	consumer rabbitmq.IRabbitmqConsumer
	results  rabbitmq.IRabbitmqPublisher
	failures rabbitmq.IRabbitmqPublisher
	timeout  time.Duration
	log      *logger.Logger
}

// NewWorker wires the worker against the rabbitmq registries, so they must be
// initialized first.
func NewWorker(writer LedgerWriter) *Worker {
	return &Worker{
		writer:   writer,
		consumer: rabbitmq.GetConsumer(jobsConsumerAlias),
		results:  rabbitmq.GetPublisher(resultsPublisherAlias),
		failures: rabbitmq.GetPublisher(failuresPublisherAlias),
		timeout:  DefaultJobTimeout,
		log:      logger.Default(),
	}
}

func (w *Worker) GetServiceName() string {
	return jobsConsumerAlias
}

func (w *Worker) StartService() {
	w.consumer.StartConsuming(w.handleDelivery)
	w.log.Info("Listening for ledger write jobs...")
}

func (w *Worker) handleDelivery(d amqp.Delivery) {
	var job dtocommon.LedgerWriteJobDto
	if err := json.Unmarshal(d.Body, &job); err != nil {
		w.log.Errorf(err, "Dropping undecodable job")
		factory := dtocommon.NewLedgerWriteFailureFactory("", d.Body)
		w.publishFailure(factory.CreateErrorDto(err, reasoncodes.ErrUnmarshal))
		return
	}
	w.Process(job, d.Body)
}

type pipelineReply struct {
	result ledger.WriteResult
	err    error
}

// Process runs one job to completion and publishes its outcome. rawBody is
// echoed into failure reports so rejected jobs can be replayed by hand.
func (w *Worker) Process(job dtocommon.LedgerWriteJobDto, rawBody []byte) {
	factory := dtocommon.NewLedgerWriteFailureFactory(job.SessionId, rawBody)

	args, err := buildArgs(job)
	if err != nil {
		w.log.Errorf(err, "Job %s carries an unusable payload", job.SessionId)
		w.publishFailure(factory.CreateErrorDto(err, reasoncodes.ErrVerificationFailed))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	replyCh := make(chan pipelineReply, 1)
	go func() {
		result, err := w.writer.StoreVerification(ctx, args)
		replyCh <- pipelineReply{result: result, err: err}
	}()

	select {
	case reply := <-replyCh:
		if reply.err != nil {
			reason := reply.result.ReasonCode
			if reason == "" {
				reason = reasoncodes.ErrNearBlockchain
			}
			w.log.Errorf(reply.err, "Job %s failed with %s", job.SessionId, reason)
			w.publishFailure(factory.CreateErrorDto(reply.err, reason))
			return
		}
		w.publishResult(dtocommon.LedgerWriteResultDto{
			SessionId: job.SessionId,
			AccountId: job.AccountId,
			TxHash:    reply.result.TxHash,
			Outcome:   string(reply.result.Outcome),
			Attempts:  reply.result.PollAttempts,
		})
		w.log.Infof("Job %s confirmed as %s (%s after %d polls)",
			job.SessionId, reply.result.TxHash, reply.result.Outcome, reply.result.PollAttempts)
	case <-ctx.Done():
		w.log.Errorf(ctx.Err(), "Job %s exceeded the worker budget", job.SessionId)
		w.publishFailure(factory.CreateErrorDto(ctx.Err(), reasoncodes.ErrNearBlockchain))
	}
}

func (w *Worker) publishResult(dto dtocommon.LedgerWriteResultDto) {
	if err := w.results.Publish(dto); err != nil {
		w.log.Errorf(err, "Failed to publish write result for session %s", dto.SessionId)
	}
}

func (w *Worker) publishFailure(dto utilities.Serializable) {
	if err := w.failures.Publish(dto); err != nil {
		w.log.Errorf(err, "Failed to publish write failure")
	}
}

// buildArgs turns a queued job into the contract payload. The signature
// bundle travels as the original opaque blob and is decoded here, so the
// byte arrays stay true numeric arrays end to end.
func buildArgs(job dtocommon.LedgerWriteJobDto) (ledger.StoreVerificationArgs, error) {
	args := ledger.StoreVerificationArgs{
		AccountId:     job.AccountId,
		IdentityKey:   job.IdentityKey,
		AttestationId: job.AttestationId,
		Message:       job.Message,
		VerifiedAt:    job.VerifiedAt,
	}
	if job.UserContextHex == "" {
		return args, nil
	}

	bundle, ok := userctx.Decode(job.UserContextHex)
	if !ok {
		return args, fmt.Errorf("job %s: user context does not decode to a signature bundle", job.SessionId)
	}
	if bundle.AccountId != job.AccountId {
		return args, fmt.Errorf("job %s: bundle signed by %q but job names %q", job.SessionId, bundle.AccountId, job.AccountId)
	}
	args.Signature = ledger.ByteArray(bundle.Signature[:])
	args.PublicKey = bundle.PublicKey
	args.Nonce = ledger.ByteArray(bundle.Nonce[:])
	return args, nil
}

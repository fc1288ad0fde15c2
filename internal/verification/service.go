package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/ledger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/nep413"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/statusstore"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/userctx"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/zkproof"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/dtocommon"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/rabbitmq"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/utilities/timeutil"
)

// ErrInvalidSubmission marks input-shape problems. They are rejected before
// any network call and never retried.
var ErrInvalidSubmission = errors.New("invalid verification submission")

// ErrBlockingWritesDisabled is returned by VerifyBlocking when the API runs
// without a signer key and can only queue writes.
var ErrBlockingWritesDisabled = errors.New("blocking ledger writes are not configured")

// ProofVerifier answers whether an identity proof holds. Satisfied by
// zkproof.Verifier.
type ProofVerifier interface {
	Verify(ctx context.Context, request zkproof.VerificationRequest, attestation zkproof.AttestationId) (zkproof.Result, error)
}

// LedgerReader serves the registry's idempotent view calls. Satisfied by
// ledger.Reader.
type LedgerReader interface {
	IsAccountVerified(ctx context.Context, accountId string) (bool, error)
	GetVerificationRecord(ctx context.Context, accountId string) (*ledger.VerificationRecord, error)
}

// LedgerWriter runs a synchronous write attempt. Satisfied by
// ledger.Pipeline; nil when the deployment queues writes instead.
type LedgerWriter interface {
	StoreVerification(ctx context.Context, args ledger.StoreVerificationArgs) (ledger.WriteResult, error)
}

type Service struct {
	repository statusstore.Repository
	publisher  rabbitmq.IRabbitmqPublisher
	verifier   ProofVerifier
	reader     LedgerReader
	writer     LedgerWriter
	log        *logger.Logger
}

func NewService(
	repository statusstore.Repository,
	publisher rabbitmq.IRabbitmqPublisher,
	verifier ProofVerifier,
	reader LedgerReader,
	writer LedgerWriter,
	log *logger.Logger) *Service {
	return &Service{
		repository: repository,
		publisher:  publisher,
		verifier:   verifier,
		reader:     reader,
		writer:     writer,
		log:        log,
	}
}

// SubmitVerification runs both off-chain checks and, when they pass, queues
// the ledger write and opens a session for status polling. An invalid
// signature or proof comes back as a non-queued result with nil error; only
// malformed input or infrastructure trouble produce errors.
func (s *Service) SubmitVerification(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	_, result, err := s.verifySubmission(ctx, req)
	if err != nil || !result.SignatureValid || !result.ProofValid {
		return result, err
	}

	sessionId := req.SessionId
	if sessionId == "" {
		sessionId = uuid.New().String()
	}
	verifiedAt := timeutil.NowUTC().T

	session := &statusstore.VerificationSession{
		SessionId:     sessionId,
		AccountId:     req.AccountId,
		IdentityKey:   result.IdentityKey,
		AttestationId: req.AttestationId,
	}
	if err := s.repository.CreateSession(session); err != nil {
		return result, fmt.Errorf("failed to open verification session: %w", err)
	}

	job := dtocommon.LedgerWriteJobDto{
		SessionId:      sessionId,
		AccountId:      req.AccountId,
		IdentityKey:    result.IdentityKey,
		AttestationId:  req.AttestationId,
		Message:        req.Message,
		VerifiedAt:     verifiedAt,
		PublicSignals:  req.PublicSignals,
		UserContextHex: req.UserContext,
	}
	if err := s.publisher.Publish(job); err != nil {
		return result, fmt.Errorf("failed to queue ledger write for session %s: %w", sessionId, err)
	}

	result.SessionId = sessionId
	result.Queued = true
	s.log.Infof("Queued ledger write for %s (session %s, attestation %d)", req.AccountId, sessionId, req.AttestationId)
	return result, nil
}

// HandleKycCallback queues a ledger write for a provider-vetted applicant.
// The applicant id is the identity key; no proof verification runs here.
func (s *Service) HandleKycCallback(ctx context.Context, req KycWebhookRequest) (SubmitResult, error) {
	result := SubmitResult{SignatureValid: true}

	attestation := zkproof.AttestationId(req.AttestationId)
	if !attestation.Valid() {
		return result, fmt.Errorf("%w: unknown attestation type %d", ErrInvalidSubmission, req.AttestationId)
	}
	if !strings.EqualFold(req.ReviewAnswer, "GREEN") {
		s.log.Warnf("KYC review for %s came back %s, nothing to store", req.AccountId, req.ReviewAnswer)
		return result, nil
	}
	result.ProofValid = true
	result.IdentityKey = req.ApplicantId

	sessionId := req.SessionId
	if sessionId == "" {
		sessionId = uuid.New().String()
	}
	session := &statusstore.VerificationSession{
		SessionId:     sessionId,
		AccountId:     req.AccountId,
		IdentityKey:   req.ApplicantId,
		AttestationId: req.AttestationId,
	}
	if err := s.repository.CreateSession(session); err != nil {
		return result, fmt.Errorf("failed to open verification session: %w", err)
	}

	job := dtocommon.LedgerWriteJobDto{
		SessionId:     sessionId,
		AccountId:     req.AccountId,
		IdentityKey:   req.ApplicantId,
		AttestationId: req.AttestationId,
		VerifiedAt:    timeutil.NowUTC().T,
	}
	if err := s.publisher.Publish(job); err != nil {
		return result, fmt.Errorf("failed to queue ledger write for session %s: %w", sessionId, err)
	}

	result.SessionId = sessionId
	result.Queued = true
	s.log.Infof("Queued ledger write for KYC applicant %s as %s (session %s)", req.ApplicantId, req.AccountId, sessionId)
	return result, nil
}

// VerifyBlocking is the synchronous variant: same checks, but the ledger
// write runs inline and the caller waits for the confirmation poll.
func (s *Service) VerifyBlocking(ctx context.Context, req SubmitRequest) (BlockingResult, error) {
	if s.writer == nil {
		return BlockingResult{}, ErrBlockingWritesDisabled
	}

	bundle, result, err := s.verifySubmission(ctx, req)
	blocking := BlockingResult{SubmitResult: result}
	if err != nil || !result.SignatureValid || !result.ProofValid {
		return blocking, err
	}

	args := ledger.StoreVerificationArgs{
		AccountId:     req.AccountId,
		IdentityKey:   result.IdentityKey,
		AttestationId: req.AttestationId,
		Message:       req.Message,
		Signature:     ledger.ByteArray(bundle.Signature[:]),
		PublicKey:     bundle.PublicKey,
		Nonce:         ledger.ByteArray(bundle.Nonce[:]),
		VerifiedAt:    timeutil.NowUTC().T,
	}
	write, writeErr := s.writer.StoreVerification(ctx, args)
	blocking.Outcome = string(write.Outcome)
	blocking.TxHash = write.TxHash
	blocking.ReasonCode = string(write.ReasonCode)
	if writeErr != nil {
		return blocking, writeErr
	}
	blocking.Queued = true
	return blocking, nil
}

func (s *Service) GetStatus(sessionId string) (StatusResponse, error) {
	session, err := s.repository.GetBySessionId(sessionId)
	if err != nil {
		return StatusResponse{}, err
	}
	return statusFromSession(session), nil
}

func (s *Service) GetRecord(ctx context.Context, accountId string) (*ledger.VerificationRecord, error) {
	return s.reader.GetVerificationRecord(ctx, accountId)
}

func (s *Service) IsAccountVerified(ctx context.Context, accountId string) (bool, error) {
	return s.reader.IsAccountVerified(ctx, accountId)
}

// ProcessWriteResult lands a worker's confirmation in the session store.
func (s *Service) ProcessWriteResult(dto dtocommon.LedgerWriteResultDto) error {
	if err := s.repository.MarkConfirmed(dto.SessionId, dto.TxHash, dto.Outcome, dto.Attempts); err != nil {
		return fmt.Errorf("failed to record write result for session %s: %w", dto.SessionId, err)
	}
	s.log.Infof("Session %s confirmed on the ledger as %s (%s)", dto.SessionId, dto.TxHash, dto.Outcome)
	return nil
}

// ProcessWriteFailure lands a worker's failure report in the session store.
func (s *Service) ProcessWriteFailure(dto dtocommon.LedgerWriteFailureDto) error {
	if err := s.repository.MarkFailed(dto.SessionId, dto.ReasonCode, dto.Error); err != nil {
		return fmt.Errorf("failed to record write failure for session %s: %w", dto.SessionId, err)
	}
	s.log.Warnf("Session %s failed with %s: %s", dto.SessionId, dto.ReasonCode, dto.Error)
	return nil
}

// verifySubmission runs the signature path and the proof path. The returned
// result carries the validity flags; err is reserved for malformed input
// (wrapped ErrInvalidSubmission) and infrastructure failures.
func (s *Service) verifySubmission(ctx context.Context, req SubmitRequest) (userctx.SignatureBundle, SubmitResult, error) {
	var result SubmitResult

	attestation := zkproof.AttestationId(req.AttestationId)
	if !attestation.Valid() {
		return userctx.SignatureBundle{}, result, fmt.Errorf("%w: unknown attestation type %d", ErrInvalidSubmission, req.AttestationId)
	}

	bundle, ok := userctx.Decode(req.UserContext)
	if !ok {
		return bundle, result, fmt.Errorf("%w: user context does not decode to a signature bundle", ErrInvalidSubmission)
	}
	if bundle.AccountId != req.AccountId {
		return bundle, result, fmt.Errorf("%w: bundle signed by %q but submission names %q", ErrInvalidSubmission, bundle.AccountId, req.AccountId)
	}

	payload, err := nep413.NewPayload(req.Message, bundle.Nonce[:], req.Recipient)
	if err != nil {
		return bundle, result, fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}
	valid, err := nep413.VerifySignature(payload, bundle.PublicKey, bundle.Signature[:])
	if err != nil {
		return bundle, result, fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}
	if !valid {
		s.log.Warnf("Challenge signature for %s does not verify", req.AccountId)
		return bundle, result, nil
	}
	result.SignatureValid = true

	request := zkproof.VerificationRequest{Proof: req.Proof, PublicSignals: req.PublicSignals}
	if err := request.Validate(); err != nil {
		return bundle, result, fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}
	identityKey, err := request.Nullifier()
	if err != nil {
		return bundle, result, fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}

	detail, err := s.verifier.Verify(ctx, request, attestation)
	if err != nil {
		return bundle, result, fmt.Errorf("proof verification did not complete: %w", err)
	}
	result.ProofDetail = &detail
	if !detail.Valid {
		s.log.Warnf("Verifier %s reports the proof for %s invalid", detail.VerifierAddress, req.AccountId)
		return bundle, result, nil
	}

	result.ProofValid = true
	result.IdentityKey = identityKey
	return bundle, result, nil
}

package verification

import (
	"gorm.io/gorm"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/internal/statusstore"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/rabbitmq"
)

const ledgerJobsPublisherAlias = "LedgerJobsPublisher"

// Build assembles the verification stack from its leaf dependencies. The
// publisher comes out of the rabbitmq registry, so registries must be
// initialized first. writer may be nil on deployments without a signer key.
func Build(db *gorm.DB, verifier ProofVerifier, reader LedgerReader, writer LedgerWriter) (*Handler, *Service) {
	repository := statusstore.NewRepository(db)
	publisher := rabbitmq.GetPublisher(ledgerJobsPublisherAlias)
	service := NewService(repository, publisher, verifier, reader, writer, logger.Default())
	handler := NewHandler(service)
	return handler, service
}

package verification

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/dtocommon"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/rabbitmq"
)

const (
	resultsConsumerAlias  = "LedgerResultsConsumer"
	failuresConsumerAlias = "LedgerFailuresConsumer"
)

// ResultsConsumer lands worker confirmations in the session store.
type ResultsConsumer struct {
	service  *Service
	consumer rabbitmq.IRabbitmqConsumer
}

func NewResultsConsumer(service *Service) *ResultsConsumer {
	return &ResultsConsumer{
		service:  service,
		consumer: rabbitmq.GetConsumer(resultsConsumerAlias),
	}
}

func (rc *ResultsConsumer) GetServiceName() string {
	return resultsConsumerAlias
}

func (rc *ResultsConsumer) StartService() {
	log := logger.Default()
	rc.consumer.StartConsuming(func(d amqp.Delivery) {
		var dto dtocommon.LedgerWriteResultDto
		if err := json.Unmarshal(d.Body, &dto); err != nil {
			log.Errorf(err, "Failed to unmarshal ledger write result")
			return
		}
		if err := rc.service.ProcessWriteResult(dto); err != nil {
			log.Errorf(err, "Failed to process ledger write result")
		}
	})

	log.Info("Listening for ledger write results...")
}

// FailuresConsumer lands worker failure reports in the session store.
type FailuresConsumer struct {
	service  *Service
	consumer rabbitmq.IRabbitmqConsumer
}

func NewFailuresConsumer(service *Service) *FailuresConsumer {
	return &FailuresConsumer{
		service:  service,
		consumer: rabbitmq.GetConsumer(failuresConsumerAlias),
	}
}

func (fc *FailuresConsumer) GetServiceName() string {
	return failuresConsumerAlias
}

func (fc *FailuresConsumer) StartService() {
	log := logger.Default()
	fc.consumer.StartConsuming(func(d amqp.Delivery) {
		var dto dtocommon.LedgerWriteFailureDto
		if err := json.Unmarshal(d.Body, &dto); err != nil {
			log.Errorf(err, "Failed to unmarshal ledger write failure")
			return
		}
		if err := fc.service.ProcessWriteFailure(dto); err != nil {
			log.Errorf(err, "Failed to process ledger write failure")
		}
	})

	log.Info("Listening for ledger write failures...")
}

package logaudit

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/rabbitmq"
	logger_message "github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/utilities/logger"
)

const logConsumerAlias = "LogConsumer"

// SinkWorker drains the log queue into the audit table.
type SinkWorker struct {
	service  *Service
	consumer rabbitmq.IRabbitmqConsumer
	log      *logger.Logger
}

func NewSinkWorker(service *Service) *SinkWorker {
	return &SinkWorker{
		service:  service,
		consumer: rabbitmq.GetConsumer(logConsumerAlias),
		// Plain logger without the queue sink: persisting a log line must
		// not publish another one.
		log: logger.New(),
	}
}

func (w *SinkWorker) GetServiceName() string {
	return logConsumerAlias
}

func (w *SinkWorker) StartService() {
	w.consumer.StartConsuming(func(d amqp.Delivery) {
		var msg logger_message.LoggerMessage
		if err := json.Unmarshal(d.Body, &msg); err != nil {
			w.log.Errorf(err, "Failed to unmarshal log message")
			return
		}
		if err := w.service.ProcessLogMessage(msg); err != nil {
			w.log.Errorf(err, "Failed to persist log message")
		}
	})

	w.log.Info("Listening for log messages...")
}

package rabbitmq

import (
	"fmt"

	"github.com/rs/zerolog"

	logger_message "github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/utilities/logger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/utilities/timeutil"
)

func CreateRabbitmqLoggerSink(publisher IRabbitmqPublisher, service string) func(string, zerolog.Level, timeutil.TimeUTC) {
	return func(msg string, level zerolog.Level, timestamp timeutil.TimeUTC) {
		loggerMessage := logger_message.LoggerMessage{
			Level:     level.String(),
			Message:   msg,
			Timestamp: timestamp,
			Service:   service,
		}

		err := publisher.Publish(loggerMessage)
		if err != nil {
			// Avoid infinite recursion by not using the logger here
			fmt.Printf("Failed to publish log message to RabbitMQ: %v\n", err)
		}
	}
}

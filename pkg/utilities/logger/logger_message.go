package logger_message

import (
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/utilities"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/utilities/timeutil"
)

type LoggerMessage struct {
	Level     string           `json:"level"`
	Message   string           `json:"message"`
	Timestamp timeutil.TimeUTC `json:"timestamp"`
	Service   string           `json:"service,omitempty"`
}

func (lm LoggerMessage) Serialize() ([]byte, error) {
	return utilities.Serialize[LoggerMessage](lm)
}

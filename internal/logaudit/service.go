package logaudit

import (
	"time"

	logger_message "github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/utilities/logger"
)

// unknownService labels messages from producers that predate the service
// stamp on LoggerMessage.
const unknownService = "unknown"

type Service struct {
	repository Repository
}

func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

func (s *Service) ProcessLogMessage(msg logger_message.LoggerMessage) error {
	service := msg.Service
	if service == "" {
		service = unknownService
	}

	return s.repository.CreateEntry(Entry{
		Level:     msg.Level,
		Message:   msg.Message,
		Timestamp: time.Unix(msg.Timestamp.T, 0).UTC(),
		Service:   service,
	})
}

func (s *Service) GetEntries(limit, offset int) ([]Entry, error) {
	return s.repository.GetEntries(limit, offset)
}

func (s *Service) GetEntriesByService(service string, limit, offset int) ([]Entry, error) {
	return s.repository.GetEntriesByService(service, limit, offset)
}

func (s *Service) GetEntriesByLevel(level string, limit, offset int) ([]Entry, error) {
	return s.repository.GetEntriesByLevel(level, limit, offset)
}

package service

import (
	"context"
	"fmt"

	"homestay/internal/domain"
	"homestay/internal/events"
	"homestay/internal/metrics"
	"homestay/internal/models"

	"github.com/rs/zerolog"
)

type ContactService struct {
	messages domain.MessageRepository
	events   domain.EventPublisher
	logger   *zerolog.Logger
}

func NewContactService(messages domain.MessageRepository, publisher domain.EventPublisher, logger *zerolog.Logger) *ContactService {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &ContactService{messages: messages, events: publisher, logger: logger}
}

// Submit stores the message and announces it. A failed announcement does
// not fail the submission.
func (s *ContactService) Submit(ctx context.Context, in models.MessageInput) (*models.Message, error) {
	msg, err := s.messages.CreateMessage(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	metrics.IncContent("message", "create")

	if s.events != nil {
		payload := events.MessagePayload{
			MessageID: msg.ID,
			Name:      msg.Name,
			Email:     msg.Email,
			Message:   msg.Message,
			CreatedAt: msg.CreatedAt,
		}
		if err := s.events.PublishJSON(models.EventMessageReceived, payload); err != nil {
			s.logger.Warn().Err(err).Int64("message_id", msg.ID).Msg("publish message_received")
		}
	}
	return msg, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.Message, error) {
	return s.messages.ListMessages(ctx)
}

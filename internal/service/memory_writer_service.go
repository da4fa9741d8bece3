package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"mindmate-be/internal/dto"
	"mindmate-be/internal/entity"
	"mindmate-be/internal/repository/unitofwork"
	"mindmate-be/pkg/embedding"
	"mindmate-be/pkg/memorysvc"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IMemoryWriterService interface {
	Consume(ctx context.Context) error
}

// memoryWriterService is the async half of the memory store: the chat path
// publishes a turn pair and returns to the user; this consumer embeds and
// persists it in the background.
type memoryWriterService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewMemoryWriterService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IMemoryWriterService {
	return &memoryWriterService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (s *memoryWriterService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *memoryWriterService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishMemoryMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal memory message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Writing %s memory for user %s", payload.Category, payload.UserId)

	text := fmt.Sprintf("User said: %s\nAssistant replied: %s", payload.UserMessage, payload.AiResponse)

	record := &entity.MemoryRecord{
		Id:        uuid.New(),
		UserId:    payload.UserId,
		Text:      text,
		Category:  entity.MemoryCategory(payload.Category),
		Metadata:  payload.Metadata,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := memorysvc.Append(ctx, uow, s.embeddingProvider, record); err != nil {
		log.Printf("[ERROR] Failed to persist memory for user %s: %v", payload.UserId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	log.Printf("[SUCCESS] Memory written for user %s", payload.UserId)
	msg.Ack()
}

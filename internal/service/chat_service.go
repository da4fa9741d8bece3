package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"mindmate-be/internal/constant"
	"mindmate-be/internal/dto"
	"mindmate-be/internal/entity"
	"mindmate-be/internal/pkg/logger"
	"mindmate-be/internal/pkg/mailer"
	"mindmate-be/internal/repository/specification"
	"mindmate-be/internal/repository/unitofwork"
	"mindmate-be/pkg/access"
	"mindmate-be/pkg/events"
	"mindmate-be/pkg/llm"
	pktNats "mindmate-be/pkg/nats"
	"mindmate-be/pkg/orchestrate"
	"mindmate-be/pkg/orchestrate/brief"
	"mindmate-be/pkg/orchestrate/respond"
	"mindmate-be/pkg/safety"

	"github.com/google/uuid"
)

type IChatService interface {
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.ChatHistoryResponse, error)
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	userService      IUserService
	limiter          *access.Limiter
	executor         *orchestrate.Executor
	summarizer       *brief.Summarizer
	generator        *respond.Generator
	publisherService IPublisherService
	emailService     mailer.IEmailService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
	turnLog          *log.Logger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	userService IUserService,
	limiter *access.Limiter,
	executor *orchestrate.Executor,
	summarizer *brief.Summarizer,
	generator *respond.Generator,
	publisherService IPublisherService,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		userService:      userService,
		limiter:          limiter,
		executor:         executor,
		summarizer:       summarizer,
		generator:        generator,
		publisherService: publisherService,
		emailService:     emailService,
		eventPublisher:   eventPublisher,
		log:              log,
		turnLog:          initOrchestrationLogger(),
	}
}

func initOrchestrationLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_orchestration.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[ORCHESTRATION] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// SendChat runs one full chat turn. The safety gate is evaluated before
// anything else: a severe verdict must prevent all further network
// activity for the message.
func (s *chatService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	verdict := safety.Classify(req.Message)

	if verdict.Severity == safety.SeveritySevere {
		return s.handleSevereCrisis(ctx, userId, req.Message)
	}

	if err := s.limiter.CheckAndIncrement(ctx, userId); err != nil {
		return nil, err
	}

	if err := s.appendTranscript(ctx, userId, constant.ChatMessageRoleUser, req.Message, false); err != nil {
		s.log.Error("chat", "failed to persist user turn", map[string]interface{}{"user_id": userId.String(), "error": err.Error()})
	}

	history := toLLMMessages(req.ConversationHistory)
	concern := verdict.Severity == safety.SeverityConcern

	bundle := s.executor.Orchestrate(ctx, userId, req.Message, history)

	userName := "The user"
	if bundle.Profile != nil && bundle.Profile.Username != "" {
		userName = bundle.Profile.Username
	}

	contextBrief := s.summarizer.Summarize(ctx, req.Message, bundle, userName)

	reply, err := s.generator.Generate(ctx, req.Message, contextBrief, history, concern)
	if err != nil {
		return nil, err
	}

	if err := s.appendTranscript(ctx, userId, constant.ChatMessageRoleAssistant, reply, false); err != nil {
		s.log.Error("chat", "failed to persist assistant turn", map[string]interface{}{"user_id": userId.String(), "error": err.Error()})
	}

	s.turnLog.Printf("user=%s tools=%v orchestration_ms=%d summarize_ms=%d context=%v wearable=%v concern=%v",
		userId, bundle.ToolsUsed, bundle.ExecutionTimeMs, contextBrief.SummarizationTimeMs, bundle.HasContext(), bundle.UsedWearable(), concern)

	s.writeMemoriesAsync(ctx, userId, req.Message, reply, concern, bundle)

	return &dto.SendChatResponse{
		Response:            reply,
		CrisisDetected:      concern,
		SevereCrisis:        false,
		ChatDisabled:        false,
		EmailSent:           false,
		Sources:             bundle.Sources(),
		FitbitDataUsed:      bundle.UsedWearable(),
		ContextUsed:         bundle.HasContext(),
		ToolsUsed:           bundle.ToolsUsed,
		OrchestrationTimeMs: bundle.ExecutionTimeMs,
	}, nil
}

// handleSevereCrisis short-circuits the pipeline: fixed resources message,
// synchronous but failure-tolerant emergency alert, audited transcript.
// No signal provider is ever called for a severe message.
func (s *chatService) handleSevereCrisis(ctx context.Context, userId uuid.UUID, message string) (*dto.SendChatResponse, error) {
	if err := s.appendTranscript(ctx, userId, constant.ChatMessageRoleUser, message, true); err != nil {
		s.log.Error("chat", "failed to persist crisis user turn", map[string]interface{}{"user_id": userId.String(), "error": err.Error()})
	}

	emailSent := false
	user, err := s.userService.GetUser(ctx, userId)
	if err != nil {
		s.log.Error("chat", "failed to load user during crisis handling", map[string]interface{}{"user_id": userId.String(), "error": err.Error()})
	} else if user.EmergencyContactEmail != nil && *user.EmergencyContactEmail != "" {
		if err := s.emailService.SendEmergencyAlert(*user.EmergencyContactEmail, user.Username, user.Email, time.Now()); err != nil {
			s.log.Error("chat", "emergency alert send failed", map[string]interface{}{"user_id": userId.String(), "error": err.Error()})
		} else {
			emailSent = true
		}
	}

	if s.eventPublisher != nil {
		event := events.NewCrisisDetectedEvent(userId.String(), string(safety.SeveritySevere), emailSent)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("chat", "failed to publish crisis event", map[string]interface{}{"user_id": userId.String(), "error": err.Error()})
		}
	}

	if err := s.appendTranscript(ctx, userId, constant.ChatMessageRoleAssistant, constant.SevereCrisisResponse, true); err != nil {
		s.log.Error("chat", "failed to persist crisis assistant turn", map[string]interface{}{"user_id": userId.String(), "error": err.Error()})
	}

	return &dto.SendChatResponse{
		Response:            constant.SevereCrisisResponse,
		CrisisDetected:      true,
		SevereCrisis:        true,
		ChatDisabled:        true,
		EmailSent:           emailSent,
		Sources:             []string{},
		FitbitDataUsed:      false,
		ContextUsed:         false,
		ToolsUsed:           []string{},
		OrchestrationTimeMs: 0,
	}, nil
}

// writeMemoriesAsync publishes memory writes fire-and-forget. Concern-flagged
// turns are excluded from conversational memory so future retrieval does not
// reinforce crisis framing; the health-insight write is unaffected.
func (s *chatService) writeMemoriesAsync(ctx context.Context, userId uuid.UUID, userMessage, reply string, concern bool, bundle *orchestrate.SignalBundle) {
	if !concern {
		s.publishMemory(ctx, dto.PublishMemoryMessage{
			UserId:      userId,
			UserMessage: userMessage,
			AiResponse:  reply,
			Category:    string(entity.MemoryCategoryConversation),
		})
	}

	if bundle.Insight != nil {
		s.publishMemory(ctx, dto.PublishMemoryMessage{
			UserId:      userId,
			UserMessage: userMessage,
			AiResponse:  bundle.Insight.Summary,
			Category:    string(entity.MemoryCategoryHealthInsight),
			Metadata: map[string]interface{}{
				"urgency_level": bundle.Insight.UrgencyLevel,
				"correlation":   bundle.Insight.MentalHealthCorrelation,
			},
		})
	}
}

func (s *chatService) publishMemory(ctx context.Context, payload dto.PublishMemoryMessage) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("chat", "failed to marshal memory payload", map[string]interface{}{"user_id": payload.UserId.String(), "error": err.Error()})
		return
	}
	if err := s.publisherService.Publish(ctx, raw); err != nil {
		s.log.Error("chat", "failed to publish memory write", map[string]interface{}{"user_id": payload.UserId.String(), "error": err.Error()})
	}
}

func (s *chatService) appendTranscript(ctx context.Context, userId uuid.UUID, role, content string, severeCrisis bool) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatMessageRepository().Create(ctx, &entity.ChatMessage{
		Id:           uuid.New(),
		UserId:       userId,
		Role:         role,
		Content:      content,
		SevereCrisis: severeCrisis,
		CreatedAt:    time.Now(),
	})
}

func (s *chatService) GetHistory(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.ChatHistoryResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.ChatMessageRepository().Count(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, fmt.Errorf("failed to count chat history: %w", err)
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chat history: %w", err)
	}

	items := make([]dto.ChatHistoryItem, len(messages))
	for i, msg := range messages {
		items[i] = dto.ChatHistoryItem{
			Id:           msg.Id,
			Role:         msg.Role,
			Content:      msg.Content,
			SevereCrisis: msg.SevereCrisis,
			CreatedAt:    msg.CreatedAt,
		}
	}

	return &dto.ChatHistoryResponse{
		Messages: items,
		Total:    total,
	}, nil
}

func toLLMMessages(history []dto.HistoryTurn) []llm.Message {
	messages := make([]llm.Message, len(history))
	for i, turn := range history {
		role := turn.Role
		if role != constant.ChatMessageRoleUser {
			role = constant.ChatMessageRoleAssistant
		}
		messages[i] = llm.Message{Role: role, Content: turn.Content}
	}
	return messages
}

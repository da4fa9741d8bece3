package bootstrap

import (
	"context"
	"log"
	"time"

	"mindmate-be/internal/config"
	"mindmate-be/internal/controller"
	"mindmate-be/internal/pkg/logger"
	"mindmate-be/internal/pkg/mailer"
	"mindmate-be/internal/repository/memory"
	"mindmate-be/internal/repository/unitofwork"
	"mindmate-be/internal/service"
	"mindmate-be/pkg/access"
	"mindmate-be/pkg/embedding"
	"mindmate-be/pkg/knowledge"
	"mindmate-be/pkg/llm/factory"
	"mindmate-be/pkg/memorysvc"
	"mindmate-be/pkg/orchestrate"
	"mindmate-be/pkg/orchestrate/brief"
	"mindmate-be/pkg/orchestrate/insight"
	"mindmate-be/pkg/orchestrate/policy"
	"mindmate-be/pkg/orchestrate/respond"
	"mindmate-be/pkg/wearable/fitbit"

	pktNats "mindmate-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	UserController     controller.IUserController
	ChatController     controller.IChatController
	WellnessController controller.IWellnessController

	// Background Services (Exposed for main.go to run)
	MemoryWriterService service.IMemoryWriterService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbeddingModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	// NATS (crisis audit events)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis (daily chat limiter)
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	limiter := access.NewLimiter(rdb, cfg.Ai.DailyChatLimit)

	// Fitbit client
	fitbitClient := fitbit.NewClient(fitbit.Config{
		BaseURL:      cfg.Wearable.BaseURL,
		ClientID:     cfg.Wearable.ClientID,
		ClientSecret: cfg.Wearable.ClientSecret,
		TokenURL:     cfg.Wearable.TokenURL,
	})

	// 5. Services
	profileCache := memory.NewProfileCache()
	userService := service.NewUserService(uowFactory, profileCache)
	wearableService := service.NewWearableService(userService, fitbitClient)

	memorySearcher := memorysvc.NewSearcher(uowFactory, embeddingProvider)
	knowledgeSearcher := knowledge.NewSearcher(uowFactory, embeddingProvider)

	// 6. Orchestration pipeline
	selector := policy.NewSelector(llmProvider, sysLogger)
	analyzer := insight.NewAnalyzer(llmProvider, sysLogger)
	summarizer := brief.NewSummarizer(llmProvider, sysLogger)
	generator := respond.NewGenerator(llmProvider, sysLogger)

	executor := orchestrate.NewExecutor(
		memorySearcher,
		wearableService,
		userService,
		knowledgeSearcher,
		selector,
		analyzer,
		sysLogger,
		time.Duration(cfg.Ai.OrchestrationTimeoutMs)*time.Millisecond,
	)

	// 7. Async memory writer
	publisherService := service.NewPublisherService(cfg.Keys.MemoryTopicName, pubSub)
	memoryWriterService := service.NewMemoryWriterService(
		pubSub,
		cfg.Keys.MemoryTopicName,
		uowFactory,
		embeddingProvider,
	)

	authService := service.NewAuthService(uowFactory, natsPub)
	chatService := service.NewChatService(
		uowFactory,
		userService,
		limiter,
		executor,
		summarizer,
		generator,
		publisherService,
		emailService,
		natsPub,
		sysLogger,
	)

	return &Container{
		AuthController:      controller.NewAuthController(authService),
		UserController:      controller.NewUserController(userService),
		ChatController:      controller.NewChatController(chatService),
		WellnessController:  controller.NewWellnessController(wearableService),
		MemoryWriterService: memoryWriterService,
	}
}

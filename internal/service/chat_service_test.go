package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"mindmate-be/internal/constant"
	"mindmate-be/internal/dto"
	"mindmate-be/internal/entity"
	"mindmate-be/internal/repository/contract"
	"mindmate-be/internal/repository/specification"
	"mindmate-be/internal/repository/unitofwork"
	"mindmate-be/pkg/access"
	"mindmate-be/pkg/knowledge"
	"mindmate-be/pkg/llm"
	"mindmate-be/pkg/orchestrate"
	"mindmate-be/pkg/orchestrate/brief"
	"mindmate-be/pkg/orchestrate/insight"
	"mindmate-be/pkg/orchestrate/respond"
	"mindmate-be/pkg/wearable"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type countingLLM struct {
	response string
	err      error
	calls    int
}

func (c *countingLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	c.calls++
	return c.response, c.err
}

func (c *countingLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	c.calls++
	return c.response, c.err
}

type fakeChatRepo struct {
	created []*entity.ChatMessage
}

func (f *fakeChatRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	f.created = append(f.created, message)
	return nil
}

func (f *fakeChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	return f.created, nil
}

func (f *fakeChatRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.created)), nil
}

type fakeUow struct {
	chatRepo *fakeChatRepo
}

func (f *fakeUow) Begin(ctx context.Context) error { return nil }
func (f *fakeUow) Commit() error                   { return nil }
func (f *fakeUow) Rollback() error                 { return nil }

func (f *fakeUow) UserRepository() contract.UserRepository                     { return nil }
func (f *fakeUow) ChatMessageRepository() contract.ChatMessageRepository       { return f.chatRepo }
func (f *fakeUow) MemoryRecordRepository() contract.MemoryRecordRepository     { return nil }
func (f *fakeUow) KnowledgeChunkRepository() contract.KnowledgeChunkRepository { return nil }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUserService struct {
	user  *entity.User
	err   error
	calls int
}

func (f *fakeUserService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error {
	return errors.New("not implemented")
}

func (f *fakeUserService) LinkWearable(ctx context.Context, userId uuid.UUID, req *dto.LinkWearableRequest) error {
	return errors.New("not implemented")
}

func (f *fakeUserService) GetUser(ctx context.Context, userId uuid.UUID) (*entity.User, error) {
	f.calls++
	return f.user, f.err
}

type fakePublisher struct {
	payloads [][]byte
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

type fakeEmail struct {
	calls int
	err   error
	to    string
}

func (f *fakeEmail) SendEmergencyAlert(contactEmail, userName, userEmail string, at time.Time) error {
	f.calls++
	f.to = contactEmail
	return f.err
}

type failingMemory struct{ calls int }

func (f *failingMemory) Search(ctx context.Context, userId uuid.UUID, query string, categories []string) ([]*entity.MemoryRecord, error) {
	f.calls++
	return nil, errors.New("down")
}

type failingWearable struct{ calls int }

func (f *failingWearable) GetHistory(ctx context.Context, userId uuid.UUID, days int) (*wearable.WellnessSnapshot, error) {
	f.calls++
	return nil, errors.New("down")
}

func (f *failingWearable) GetRecentWellness(ctx context.Context, userId uuid.UUID) (*wearable.WellnessSnapshot, error) {
	f.calls++
	return nil, errors.New("down")
}

type failingProfile struct{ calls int }

func (f *failingProfile) GetUser(ctx context.Context, userId uuid.UUID) (*entity.User, error) {
	f.calls++
	return nil, errors.New("down")
}

type failingKnowledge struct{ calls int }

func (f *failingKnowledge) Search(ctx context.Context, query string) ([]*knowledge.Result, error) {
	f.calls++
	return nil, errors.New("down")
}

type offSelector struct{ calls int }

func (o *offSelector) ShouldRetrieveKnowledgeBase(ctx context.Context, message string, recentHistory []llm.Message) bool {
	o.calls++
	return false
}

type nilAnalyzer struct{ calls int }

func (n *nilAnalyzer) Analyze(ctx context.Context, snapshot *wearable.WellnessSnapshot, memoryContext string) *insight.HealthInsight {
	n.calls++
	return nil
}

type chatFixture struct {
	service   IChatService
	chatRepo  *fakeChatRepo
	publisher *fakePublisher
	email     *fakeEmail
	model     *countingLLM
	memory    *failingMemory
	wearable  *failingWearable
	selector  *offSelector
	users     *fakeUserService
}

func newChatFixture(user *entity.User) *chatFixture {
	log := nopLogger{}
	model := &countingLLM{response: "I'm here with you."}
	mem := &failingMemory{}
	wear := &failingWearable{}
	sel := &offSelector{}
	users := &fakeUserService{user: user}

	executor := orchestrate.NewExecutor(mem, wear, &failingProfile{}, &failingKnowledge{}, sel, &nilAnalyzer{}, log, 5*time.Second)
	chatRepo := &fakeChatRepo{}
	publisher := &fakePublisher{}
	email := &fakeEmail{}

	svc := NewChatService(
		&fakeUowFactory{uow: &fakeUow{chatRepo: chatRepo}},
		users,
		access.NewLimiter(nil, -1),
		executor,
		brief.NewSummarizer(model, log),
		respond.NewGenerator(model, log),
		publisher,
		email,
		nil,
		log,
	)

	return &chatFixture{
		service:   svc,
		chatRepo:  chatRepo,
		publisher: publisher,
		email:     email,
		model:     model,
		memory:    mem,
		wearable:  wear,
		selector:  sel,
		users:     users,
	}
}

func TestSendChatSevereCrisisShortCircuits(t *testing.T) {
	contact := "friend@example.com"
	fx := newChatFixture(&entity.User{
		Username:              "sam",
		Email:                 "sam@example.com",
		EmergencyContactEmail: &contact,
	})

	res, err := fx.service.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		Message: "I want to kill myself",
	})
	if err != nil {
		t.Fatalf("SendChat() error = %v", err)
	}

	if !res.SevereCrisis || !res.ChatDisabled || !res.CrisisDetected {
		t.Errorf("crisis flags = severe:%v disabled:%v detected:%v, want all true",
			res.SevereCrisis, res.ChatDisabled, res.CrisisDetected)
	}
	if !strings.Contains(res.Response, "988") {
		t.Error("crisis response missing the 988 lifeline")
	}
	if len(res.ToolsUsed) != 0 {
		t.Errorf("ToolsUsed = %v, want empty", res.ToolsUsed)
	}

	// The whole point of the short-circuit: nothing downstream runs.
	if fx.model.calls != 0 {
		t.Errorf("model called %d times on severe path, want 0", fx.model.calls)
	}
	if fx.memory.calls != 0 || fx.wearable.calls != 0 || fx.selector.calls != 0 {
		t.Error("signal providers were invoked on severe path")
	}
	if len(fx.publisher.payloads) != 0 {
		t.Errorf("published %d memory writes on severe path, want 0", len(fx.publisher.payloads))
	}

	if fx.email.calls != 1 || fx.email.to != contact {
		t.Errorf("emergency alert calls = %d to %q, want 1 to %q", fx.email.calls, fx.email.to, contact)
	}
	if !res.EmailSent {
		t.Error("EmailSent = false, want true")
	}

	if len(fx.chatRepo.created) != 2 {
		t.Fatalf("persisted %d transcript rows, want 2", len(fx.chatRepo.created))
	}
	for _, row := range fx.chatRepo.created {
		if !row.SevereCrisis {
			t.Errorf("transcript row role=%s not flagged as severe crisis", row.Role)
		}
	}
}

func TestSendChatSevereCrisisNoContactConfigured(t *testing.T) {
	fx := newChatFixture(&entity.User{Username: "sam", Email: "sam@example.com"})

	res, err := fx.service.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		Message: "I want to end my life",
	})
	if err != nil {
		t.Fatalf("SendChat() error = %v", err)
	}
	if fx.email.calls != 0 {
		t.Errorf("emergency alert called %d times without a contact, want 0", fx.email.calls)
	}
	if res.EmailSent {
		t.Error("EmailSent = true without a configured contact")
	}
}

func TestSendChatSevereCrisisAlertFailureIsTolerated(t *testing.T) {
	contact := "friend@example.com"
	fx := newChatFixture(&entity.User{
		Username:              "sam",
		Email:                 "sam@example.com",
		EmergencyContactEmail: &contact,
	})
	fx.email.err = errors.New("smtp down")

	res, err := fx.service.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		Message: "I want to kill myself",
	})
	if err != nil {
		t.Fatalf("SendChat() error = %v, want crisis response despite alert failure", err)
	}
	if res.EmailSent {
		t.Error("EmailSent = true after a failed send")
	}
	if !strings.Contains(res.Response, "988") {
		t.Error("crisis response missing the 988 lifeline")
	}
}

// Every enrichment provider failing must still produce a reply.
func TestSendChatFullDegradeStillReplies(t *testing.T) {
	fx := newChatFixture(&entity.User{Username: "sam", Email: "sam@example.com"})

	res, err := fx.service.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		Message: "hi there",
	})
	if err != nil {
		t.Fatalf("SendChat() error = %v", err)
	}
	if res.Response != "I'm here with you." {
		t.Errorf("Response = %q", res.Response)
	}
	if res.CrisisDetected || res.SevereCrisis || res.ChatDisabled {
		t.Error("benign message carries crisis flags")
	}
	if len(res.ToolsUsed) != 0 {
		t.Errorf("ToolsUsed = %v, want empty when every provider failed", res.ToolsUsed)
	}
	if res.ContextUsed || res.FitbitDataUsed {
		t.Error("context flags set with no gathered signals")
	}

	// Conversational memory still written.
	if len(fx.publisher.payloads) != 1 {
		t.Fatalf("published %d memory writes, want 1", len(fx.publisher.payloads))
	}
	var msg dto.PublishMemoryMessage
	if err := json.Unmarshal(fx.publisher.payloads[0], &msg); err != nil {
		t.Fatalf("memory payload unmarshal: %v", err)
	}
	if msg.Category != string(entity.MemoryCategoryConversation) {
		t.Errorf("memory category = %q, want conversation", msg.Category)
	}
}

// Concern-tier messages get the resources footer but skip conversational
// memory so retrieval never resurfaces crisis framing.
func TestSendChatConcernSuppressesConversationMemory(t *testing.T) {
	fx := newChatFixture(&entity.User{Username: "sam", Email: "sam@example.com"})

	res, err := fx.service.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		Message: "everything feels hopeless lately",
	})
	if err != nil {
		t.Fatalf("SendChat() error = %v", err)
	}
	if !res.CrisisDetected || res.SevereCrisis || res.ChatDisabled {
		t.Errorf("flags = detected:%v severe:%v disabled:%v, want concern only",
			res.CrisisDetected, res.SevereCrisis, res.ChatDisabled)
	}
	if !strings.Contains(res.Response, constant.CrisisResourcesFooter) {
		t.Error("concern reply missing crisis resources footer")
	}
	if len(fx.publisher.payloads) != 0 {
		t.Errorf("published %d memory writes for a concern turn, want 0", len(fx.publisher.payloads))
	}
}

func TestSendChatGeneratorFailurePropagates(t *testing.T) {
	fx := newChatFixture(&entity.User{Username: "sam", Email: "sam@example.com"})
	fx.model.err = errors.New("model unavailable")

	if _, err := fx.service.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{Message: "hi"}); err == nil {
		t.Fatal("SendChat() error = nil, want generation failure surfaced")
	}
}

func TestGetHistory(t *testing.T) {
	fx := newChatFixture(&entity.User{Username: "sam", Email: "sam@example.com"})
	userId := uuid.New()

	if _, err := fx.service.SendChat(context.Background(), userId, &dto.SendChatRequest{Message: "hi"}); err != nil {
		t.Fatalf("SendChat() error = %v", err)
	}

	res, err := fx.service.GetHistory(context.Background(), userId, 0, 0)
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if res.Total != 2 {
		t.Errorf("Total = %d, want the user and assistant turns", res.Total)
	}
	if len(res.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(res.Messages))
	}
	if res.Messages[0].Role != constant.ChatMessageRoleUser {
		t.Errorf("first message role = %q, want user", res.Messages[0].Role)
	}
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"twinheart/internal/domain"
	"twinheart/internal/engine"
	"twinheart/internal/repository"
)

// ChatService orquesta un turno de conversacion: clasifica el mensaje,
// genera la respuesta del companion y persiste mensajes, memoria y snapshot.
type ChatService struct {
	logger   *zap.Logger
	engine   *engine.Engine
	users    repository.UserRepository
	sessions repository.SessionRepository
	messages repository.MessageRepository
	memories repository.MemoryRepository
	limiter  ChatRateLimiter
	now      func() time.Time
}

var (
	ErrEmptyMessage    = errors.New("empty message")
	ErrChatRateLimited = errors.New("chat rate limited")
	ErrSessionNotFound = errors.New("session not found")
)

const sessionTTL = 24 * time.Hour

func NewChatService(
	logger *zap.Logger,
	eng *engine.Engine,
	users repository.UserRepository,
	sessions repository.SessionRepository,
	messages repository.MessageRepository,
	memories repository.MemoryRepository,
	limiter ChatRateLimiter,
) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if eng == nil {
		eng = engine.NewEngine(nil)
	}
	return &ChatService{
		logger:   logger,
		engine:   eng,
		users:    users,
		sessions: sessions,
		messages: messages,
		memories: memories,
		limiter:  limiter,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ChatReply es el resultado de un turno. Risk viene siempre: el engine nunca
// bloquea el mensaje, el caller decide si muestra el banner de recursos.
type ChatReply struct {
	Message  domain.Message         `json:"message"`
	Analysis domain.MessageAnalysis `json:"analysis"`
	Risk     domain.RiskAssessment  `json:"risk"`
}

func (s *ChatService) StartSession(ctx context.Context, userID string) (domain.Session, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Session{}, ErrUserNotFound
		}
		return domain.Session{}, err
	}

	now := s.now()
	session := domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (s *ChatService) SendMessage(ctx context.Context, userID, sessionID, content string) (ChatReply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return ChatReply{}, ErrEmptyMessage
	}
	if s.limiter != nil && !s.limiter.Allow(userID) {
		return ChatReply{}, ErrChatRateLimited
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ChatReply{}, ErrUserNotFound
		}
		return ChatReply{}, err
	}

	analysis := engine.Classify(content)
	risk := engine.AssessRisk(content)
	if risk.RequiresIntervention {
		s.logger.Warn("risk keywords detected", zap.String("user_id", userID))
	}

	memory, err := s.memories.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrMemoryNotFound) {
			return ChatReply{}, err
		}
		memory = domain.NewUserMemory(userID)
	}

	conversationLength := 0
	if sessionID != "" {
		conversationLength, err = s.messages.CountBySessionID(ctx, sessionID)
		if err != nil {
			return ChatReply{}, err
		}
	}

	now := s.now()
	convCtx := domain.ConversationContext{
		RecentMood:         string(memory.EmotionalPatterns.RecentMood),
		Personality:        user.Personality,
		TimeOfDay:          now.Hour(),
		UserName:           user.DisplayName,
		UserInterests:      user.Interests,
		ConversationLength: conversationLength,
	}

	replyText := s.engine.GenerateResponse(content, analysis, convCtx, memory)

	userMessage := domain.Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		SessionID: sessionID,
		Content:   content,
		Role:      domain.RoleUser,
		CreatedAt: now,
	}
	if err := s.messages.Create(ctx, userMessage); err != nil {
		return ChatReply{}, err
	}

	companionMessage := domain.Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		SessionID: sessionID,
		Content:   replyText,
		Role:      domain.RoleCompanion,
		CreatedAt: now,
	}
	if err := s.messages.Create(ctx, companionMessage); err != nil {
		return ChatReply{}, err
	}

	if err := s.memories.Save(ctx, memory); err != nil {
		return ChatReply{}, err
	}

	snapshot := domain.MemorySnapshot{
		ID:            uuid.New(),
		UserID:        userID,
		Sentiment:     analysis.Sentiment,
		Emotions:      analysis.Emotions,
		Topics:        analysis.Topics,
		EmotionVector: engine.EmotionVector(analysis),
		CapturedAt:    now,
		CreatedAt:     now,
	}
	if err := s.memories.CreateSnapshot(ctx, snapshot); err != nil {
		// El snapshot es secundario: no tumba el turno.
		s.logger.Warn("create snapshot failed", zap.Error(err), zap.String("user_id", userID))
	}

	return ChatReply{
		Message:  companionMessage,
		Analysis: analysis,
		Risk:     risk,
	}, nil
}

func (s *ChatService) History(ctx context.Context, sessionID string) ([]domain.Message, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionNotFound
	}
	return s.messages.ListBySessionID(ctx, sessionID)
}

// ProactiveMessage arma el saludo espontaneo segun personalidad y franja
// horaria actual.
func (s *ChatService) ProactiveMessage(ctx context.Context, userID string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return engine.ProactiveMessage(user.Personality, s.now().Hour(), user.DisplayName), nil
}

// Insights resume lo aprendido de la memoria; sin memoria devuelve vacio.
func (s *ChatService) Insights(ctx context.Context, userID string) ([]string, error) {
	memory, err := s.memories.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrMemoryNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return engine.Insights(memory), nil
}

// SimilarMoments busca turnos pasados con un perfil emocional parecido al
// del mensaje dado, via distancia de vectores.
func (s *ChatService) SimilarMoments(ctx context.Context, userID, message string, k int) ([]domain.MemorySnapshot, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	analysis := engine.Classify(message)
	return s.memories.SearchSimilar(ctx, userID, engine.EmotionVector(analysis), k)
}

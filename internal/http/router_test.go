package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"twinheart/internal/domain"
	"twinheart/internal/engine"
	"twinheart/internal/repository"
	"twinheart/internal/service"
)

type memUserRepo struct {
	byID    map[string]domain.User
	byEmail map[string]string
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[string]domain.User), byEmail: make(map[string]string)}
}

func (m *memUserRepo) Create(_ context.Context, user domain.User) error {
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user.ID
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	id, ok := m.byEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(context.Background(), id)
}

func (m *memUserRepo) UpdateProfile(_ context.Context, id string, personality domain.Personality, interests []string) error {
	user, ok := m.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Personality = personality
	user.Interests = interests
	m.byID[id] = user
	return nil
}

type memSessionRepo struct {
	sessions map[string]domain.Session
}

func (m *memSessionRepo) Create(_ context.Context, session domain.Session) error {
	m.sessions[session.ID] = session
	return nil
}

func (m *memSessionRepo) GetByID(_ context.Context, id string) (domain.Session, error) {
	session, ok := m.sessions[id]
	if !ok {
		return domain.Session{}, pgx.ErrNoRows
	}
	return session, nil
}

type memMessageRepo struct {
	messages []domain.Message
}

func (m *memMessageRepo) Create(_ context.Context, message domain.Message) error {
	m.messages = append(m.messages, message)
	return nil
}

func (m *memMessageRepo) ListBySessionID(_ context.Context, sessionID string) ([]domain.Message, error) {
	var out []domain.Message
	for _, msg := range m.messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *memMessageRepo) CountBySessionID(_ context.Context, sessionID string) (int, error) {
	out, _ := m.ListBySessionID(context.Background(), sessionID)
	return len(out), nil
}

type memMemoryRepo struct {
	memories map[string]*domain.UserMemory
}

func (m *memMemoryRepo) Get(_ context.Context, userID string) (*domain.UserMemory, error) {
	memory, ok := m.memories[userID]
	if !ok {
		return nil, repository.ErrMemoryNotFound
	}
	return memory, nil
}

func (m *memMemoryRepo) Save(_ context.Context, memory *domain.UserMemory) error {
	m.memories[memory.UserID] = memory
	return nil
}

func (m *memMemoryRepo) CreateSnapshot(_ context.Context, _ domain.MemorySnapshot) error {
	return nil
}

func (m *memMemoryRepo) SearchSimilar(_ context.Context, _ string, _ pgvector.Vector, _ int) ([]domain.MemorySnapshot, error) {
	return nil, nil
}

type memReminderRepo struct {
	reminders map[string][]domain.Reminder
	prefs     map[string]domain.Preferences
}

func (m *memReminderRepo) SaveReminders(_ context.Context, userID string, reminders []domain.Reminder) error {
	m.reminders[userID] = reminders
	return nil
}

func (m *memReminderRepo) GetReminders(_ context.Context, userID string) ([]domain.Reminder, error) {
	return m.reminders[userID], nil
}

func (m *memReminderRepo) SavePreferences(_ context.Context, userID string, prefs domain.Preferences) error {
	m.prefs[userID] = prefs
	return nil
}

func (m *memReminderRepo) GetPreferences(_ context.Context, userID string) (domain.Preferences, error) {
	prefs, ok := m.prefs[userID]
	if !ok {
		return domain.Preferences{}, repository.ErrPreferencesNotFound
	}
	return prefs, nil
}

type memMoodRepo struct {
	entries []domain.MoodEntry
}

func (m *memMoodRepo) Create(_ context.Context, entry domain.MoodEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memMoodRepo) ListByUserID(_ context.Context, userID string, since time.Time) ([]domain.MoodEntry, error) {
	var out []domain.MoodEntry
	for _, e := range m.entries {
		if e.UserID == userID && !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	jwtSvc := service.NewJWTServiceWithStore("secret", 15*time.Minute, 30*time.Minute, service.NewMemoryRefreshTokenStore())
	users := newMemUserRepo()
	userSvc := service.NewUserService(logger, users)
	chatSvc := service.NewChatService(
		logger,
		engine.NewEngine(nil),
		users,
		&memSessionRepo{sessions: make(map[string]domain.Session)},
		&memMessageRepo{},
		&memMemoryRepo{memories: make(map[string]*domain.UserMemory)},
		nil,
	)
	reminderSvc := service.NewReminderService(logger, &memReminderRepo{
		reminders: make(map[string][]domain.Reminder),
		prefs:     make(map[string]domain.Preferences),
	}, nil, nil)
	moodSvc := service.NewMoodService(logger, &memMoodRepo{})

	return NewRouter(
		logger,
		jwtSvc,
		NewUserHandler(logger, userSvc, jwtSvc),
		NewChatHandler(logger, chatSvc),
		NewReminderHandler(logger, reminderSvc),
		NewMoodHandler(logger, moodSvc),
	)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func registerAndToken(t *testing.T, r *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/users", "", gin.H{
		"email":        "anna@example.com",
		"display_name": "Anna",
		"password":     "hunter2hunter2",
		"personality":  "playful",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Tokens service.TokenPair `json:"tokens"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if resp.Tokens.AccessToken == "" {
		t.Fatalf("expected access token")
	}
	return resp.Tokens.AccessToken
}

func TestRegisterAndLoginFlow(t *testing.T) {
	r := newTestRouter(t)
	registerAndToken(t, r)

	rec := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "anna@example.com",
		"password": "hunter2hunter2",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "anna@example.com",
		"password": "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}
}

func TestChatFlow(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndToken(t, r)

	rec := doJSON(t, r, http.MethodPost, "/session", token, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("session status = %d, body %s", rec.Code, rec.Body.String())
	}
	var sessResp struct {
		Session domain.Session `json:"session"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &sessResp); err != nil {
		t.Fatalf("decode session: %v", err)
	}

	rec = doJSON(t, r, http.MethodPost, "/message", token, gin.H{
		"session_id": sessResp.Session.ID,
		"content":    "I'm so happy today, work went great",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("message status = %d, body %s", rec.Code, rec.Body.String())
	}
	var msgResp struct {
		Reply service.ChatReply `json:"reply"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &msgResp); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if msgResp.Reply.Message.Content == "" {
		t.Fatalf("expected companion reply")
	}
	if msgResp.Reply.Analysis.Sentiment != domain.SentimentPositive {
		t.Fatalf("expected positive sentiment, got %q", msgResp.Reply.Analysis.Sentiment)
	}

	rec = doJSON(t, r, http.MethodGet, "/session/"+sessResp.Session.ID+"/messages", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d", rec.Code)
	}
	var histResp struct {
		Messages []domain.Message `json:"messages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &histResp); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(histResp.Messages) != 2 {
		t.Fatalf("expected 2 messages in history, got %d", len(histResp.Messages))
	}
}

func TestChatEndpointsRequireAuth(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/message", "", gin.H{"content": "hi"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodGet, "/reminders", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestReminderEndpoints(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndToken(t, r)

	rec := doJSON(t, r, http.MethodGet, "/reminders", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, body %s", rec.Code, rec.Body.String())
	}
	var listResp struct {
		Reminders []domain.Reminder `json:"reminders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode reminders: %v", err)
	}
	if len(listResp.Reminders) == 0 {
		t.Fatalf("expected default daily reminders")
	}

	rec = doJSON(t, r, http.MethodPost, "/reminders", token, gin.H{
		"time":    "18:30",
		"message": "Take your medication",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodPost, "/reminders/missing/complete", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing reminder, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPut, "/reminders/preferences", token, gin.H{
		"sleep_schedule":    gin.H{"bedtime": "25:00", "wakeup": "07:00"},
		"reminder_settings": gin.H{"hydration": true},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed schedule, got %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestMoodEndpoints(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndToken(t, r)

	rec := doJSON(t, r, http.MethodPost, "/moods", token, gin.H{"mood": "euphoric"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid mood, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPost, "/moods", token, gin.H{"mood": "happy", "note": "sunny day"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("log status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodGet, "/moods/stats", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}
	var statsResp struct {
		Stats domain.MoodStats `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &statsResp); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if statsResp.Stats.Total != 1 || statsResp.Stats.MostCommon != domain.MoodHappy {
		t.Fatalf("unexpected stats: %+v", statsResp.Stats)
	}
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"twinheart/internal/service"
)

// ChatHandler mantiene dependencias para endpoints de sesiones y mensajes.
type ChatHandler struct {
	logger   *zap.Logger
	chatServ *service.ChatService
}

func NewChatHandler(logger *zap.Logger, chatServ *service.ChatService) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		chatServ: chatServ,
	}
}

// CreateSession maneja POST /session.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	session, err := h.chatServ.StartSession(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("create session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// PostMessage maneja POST /message.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		SessionID string `json:"session_id"`
		Content   string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	reply, err := h.chatServ.SendMessage(c.Request.Context(), claims.UserID, req.SessionID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty message"})
			return
		case errors.Is(err, service.ErrChatRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many messages"})
			return
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		default:
			h.logger.Error("send message failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send message"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"reply": reply})
}

// GetHistory maneja GET /session/:id/messages.
func (h *ChatHandler) GetHistory(c *gin.Context) {
	sessionID := c.Param("id")
	messages, err := h.chatServ.History(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h.logger.Error("get history failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// Proactive maneja GET /chat/proactive.
func (h *ChatHandler) Proactive(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	msg, err := h.chatServ.ProactiveMessage(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("proactive message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// Insights maneja GET /chat/insights.
func (h *ChatHandler) Insights(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	insights, err := h.chatServ.Insights(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("insights failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load insights"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

// SimilarMoments maneja POST /chat/similar.
func (h *ChatHandler) SimilarMoments(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
		Limit   int    `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid similar request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	snapshots, err := h.chatServ.SimilarMoments(c.Request.Context(), claims.UserID, req.Message, req.Limit)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty message"})
			return
		}
		h.logger.Error("similar moments failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search snapshots"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}

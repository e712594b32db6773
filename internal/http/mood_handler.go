package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"twinheart/internal/domain"
	"twinheart/internal/service"
)

// MoodHandler mantiene dependencias para endpoints del mood tracker.
type MoodHandler struct {
	logger   *zap.Logger
	moodServ *service.MoodService
}

func NewMoodHandler(logger *zap.Logger, moodServ *service.MoodService) *MoodHandler {
	return &MoodHandler{
		logger:   logger,
		moodServ: moodServ,
	}
}

// Log maneja POST /moods.
func (h *MoodHandler) Log(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		Mood string `json:"mood" binding:"required"`
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid mood request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	entry, err := h.moodServ.Log(c.Request.Context(), claims.UserID, domain.Mood(req.Mood), req.Note)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMood) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mood"})
			return
		}
		h.logger.Error("log mood failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log mood"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// History maneja GET /moods.
func (h *MoodHandler) History(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	days, _ := strconv.Atoi(c.Query("days"))
	entries, err := h.moodServ.History(c.Request.Context(), claims.UserID, days)
	if err != nil {
		h.logger.Error("mood history failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load moods"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// Stats maneja GET /moods/stats.
func (h *MoodHandler) Stats(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	days, _ := strconv.Atoi(c.Query("days"))
	stats, err := h.moodServ.Stats(c.Request.Context(), claims.UserID, days)
	if err != nil {
		h.logger.Error("mood stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

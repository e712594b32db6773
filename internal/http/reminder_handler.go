package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"twinheart/internal/domain"
	"twinheart/internal/scheduler"
	"twinheart/internal/service"
)

// ReminderHandler mantiene dependencias para endpoints de recordatorios.
type ReminderHandler struct {
	logger       *zap.Logger
	reminderServ *service.ReminderService
}

func NewReminderHandler(logger *zap.Logger, reminderServ *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{
		logger:       logger,
		reminderServ: reminderServ,
	}
}

func (h *ReminderHandler) userID(c *gin.Context) (string, bool) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return "", false
	}
	return claims.UserID, true
}

// List maneja GET /reminders.
func (h *ReminderHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	reminders, err := h.reminderServ.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list reminders failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load reminders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// Today maneja GET /reminders/today.
func (h *ReminderHandler) Today(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	reminders, err := h.reminderServ.Today(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("today reminders failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load reminders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// Overdue maneja GET /reminders/overdue.
func (h *ReminderHandler) Overdue(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	reminders, err := h.reminderServ.Overdue(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("overdue reminders failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load reminders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// Upcoming maneja GET /reminders/upcoming.
func (h *ReminderHandler) Upcoming(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	reminders, err := h.reminderServ.Upcoming(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("upcoming reminders failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load reminders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// Stats maneja GET /reminders/stats.
func (h *ReminderHandler) Stats(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	stats, err := h.reminderServ.Stats(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("reminder stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// Add maneja POST /reminders.
func (h *ReminderHandler) Add(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req struct {
		Type      string `json:"type"`
		Time      string `json:"time" binding:"required"`
		Message   string `json:"message" binding:"required"`
		Icon      string `json:"icon"`
		Recurring string `json:"recurring"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid add reminder request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	reminder, err := h.reminderServ.Add(c.Request.Context(), userID, service.AddReminderInput{
		Type:      domain.ReminderType(req.Type),
		Time:      req.Time,
		Message:   req.Message,
		Icon:      req.Icon,
		Recurring: domain.Recurrence(req.Recurring),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidReminder) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reminder"})
			return
		}
		h.logger.Error("add reminder failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add reminder"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"reminder": reminder})
}

// Update maneja PUT /reminders/:id.
func (h *ReminderHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req struct {
		Time    *string `json:"time"`
		Message *string `json:"message"`
		Icon    *string `json:"icon"`
		Active  *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update reminder request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	reminder, err := h.reminderServ.Update(c.Request.Context(), userID, c.Param("id"), service.UpdateReminderInput{
		Time:    req.Time,
		Message: req.Message,
		Icon:    req.Icon,
		Active:  req.Active,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReminder):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reminder"})
			return
		case errors.Is(err, scheduler.ErrReminderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "reminder not found"})
			return
		default:
			h.logger.Error("update reminder failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update reminder"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"reminder": reminder})
}

// Remove maneja DELETE /reminders/:id.
func (h *ReminderHandler) Remove(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	if err := h.reminderServ.Remove(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.logger.Error("remove reminder failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not remove reminder"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Complete maneja POST /reminders/:id/complete.
func (h *ReminderHandler) Complete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	if err := h.reminderServ.Complete(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, scheduler.ErrReminderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reminder not found"})
			return
		}
		h.logger.Error("complete reminder failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete reminder"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Snooze maneja POST /reminders/:id/snooze.
func (h *ReminderHandler) Snooze(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req struct {
		Minutes int `json:"minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid snooze request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Minutes <= 0 {
		req.Minutes = 10
	}

	snoozed, err := h.reminderServ.Snooze(c.Request.Context(), userID, c.Param("id"), req.Minutes)
	if err != nil {
		if errors.Is(err, scheduler.ErrReminderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reminder not found"})
			return
		}
		h.logger.Error("snooze reminder failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not snooze reminder"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminder": snoozed})
}

// GetPreferences maneja GET /reminders/preferences.
func (h *ReminderHandler) GetPreferences(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	prefs, err := h.reminderServ.Preferences(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("get preferences failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load preferences"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// UpdatePreferences maneja PUT /reminders/preferences.
func (h *ReminderHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var prefs domain.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		h.logger.Warn("invalid preferences request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.reminderServ.UpdatePreferences(c.Request.Context(), userID, prefs); err != nil {
		if errors.Is(err, scheduler.ErrInvalidSchedule) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sleep schedule"})
			return
		}
		h.logger.Error("update preferences failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update preferences"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

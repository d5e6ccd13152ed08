package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akarwowski/lingocards-backend/internal/middleware"
	"github.com/akarwowski/lingocards-backend/internal/pkg/apperr"
	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/services"
)

type UserHandler struct {
	log   *logger.Logger
	users services.UserService
}

func NewUserHandler(baseLog *logger.Logger, users services.UserService) *UserHandler {
	return &UserHandler{log: baseLog.With("handler", "UserHandler"), users: users}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	session := middleware.SessionFrom(c)
	if session.Mode != services.ModeAuthenticated {
		RespondError(c, http.StatusUnauthorized, apperr.CodeNotAuthenticated, fmt.Errorf("sign in to view your profile"))
		return
	}

	profile, err := h.users.GetProfile(c.Request.Context(), session.Identity)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, profile)
}

type dailyGoalRequest struct {
	DailyGoal int `json:"daily_goal" binding:"required"`
}

func (h *UserHandler) UpdateDailyGoal(c *gin.Context) {
	session := middleware.SessionFrom(c)
	if session.Mode != services.ModeAuthenticated {
		RespondError(c, http.StatusUnauthorized, apperr.CodeNotAuthenticated, fmt.Errorf("sign in to change your daily goal"))
		return
	}

	var req dailyGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "", err)
		return
	}

	if err := h.users.UpdateDailyGoal(c.Request.Context(), session.Identity, req.DailyGoal); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"daily_goal": req.DailyGoal})
}

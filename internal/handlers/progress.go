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

type ProgressHandler struct {
	log      *logger.Logger
	progress services.ProgressService
	reviews  services.ReviewService
}

func NewProgressHandler(baseLog *logger.Logger, progress services.ProgressService, reviews services.ReviewService) *ProgressHandler {
	return &ProgressHandler{
		log:      baseLog.With("handler", "ProgressHandler"),
		progress: progress,
		reviews:  reviews,
	}
}

func (h *ProgressHandler) Stats(c *gin.Context) {
	session := middleware.SessionFrom(c)
	if session.Mode == services.ModeGuest {
		RespondError(c, http.StatusUnauthorized, apperr.CodeNotAuthenticated, fmt.Errorf("progress tracking requires an account or demo session"))
		return
	}

	stats, err := h.progress.UserStats(c.Request.Context(), session.Identity)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, stats)
}

type reviewRequest struct {
	FlashcardID uint `json:"flashcard_id" binding:"required"`
	Correct     bool `json:"correct"`
}

func (h *ProgressHandler) RecordAnswer(c *gin.Context) {
	session := middleware.SessionFrom(c)
	if session.Mode == services.ModeGuest {
		RespondError(c, http.StatusUnauthorized, apperr.CodeNotAuthenticated, fmt.Errorf("reviews require an account or demo session"))
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "", err)
		return
	}

	record, err := h.reviews.RecordAnswer(c.Request.Context(), session.Identity, req.FlashcardID, req.Correct)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, record)
}

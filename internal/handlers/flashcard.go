package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akarwowski/lingocards-backend/internal/middleware"
	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/services"
)

type FlashcardHandler struct {
	log        *logger.Logger
	generation services.GenerationService
	cards      services.CardService
}

func NewFlashcardHandler(baseLog *logger.Logger, generation services.GenerationService, cards services.CardService) *FlashcardHandler {
	return &FlashcardHandler{
		log:        baseLog.With("handler", "FlashcardHandler"),
		generation: generation,
		cards:      cards,
	}
}

func (h *FlashcardHandler) Generate(c *gin.Context) {
	var req services.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "", err)
		return
	}

	session := middleware.SessionFrom(c)
	out, err := h.generation.Generate(c.Request.Context(), session, req)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, out)
}

func (h *FlashcardHandler) List(c *gin.Context) {
	session := middleware.SessionFrom(c)
	cards, err := h.cards.List(c.Request.Context(), session)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"cards": cards})
}

func (h *FlashcardHandler) DeleteCategory(c *gin.Context) {
	category := c.Param("category")

	session := middleware.SessionFrom(c)
	deleted, err := h.cards.DeleteCategory(c.Request.Context(), session, category)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": deleted})
}

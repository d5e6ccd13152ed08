package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akarwowski/lingocards-backend/internal/middleware"
	"github.com/akarwowski/lingocards-backend/internal/pkg/apperr"
	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/services"
	"github.com/akarwowski/lingocards-backend/internal/types"
)

type SessionHandler struct {
	log        *logger.Logger
	sessions   services.SessionService
	importSvc  services.ImportService
	guestCards services.GuestCardService
}

func NewSessionHandler(baseLog *logger.Logger, sessions services.SessionService, importSvc services.ImportService, guestCards services.GuestCardService) *SessionHandler {
	return &SessionHandler{
		log:        baseLog.With("handler", "SessionHandler"),
		sessions:   sessions,
		importSvc:  importSvc,
		guestCards: guestCards,
	}
}

func (h *SessionHandler) Current(c *gin.Context) {
	RespondOK(c, middleware.SessionFrom(c))
}

// DemoLogout explicitly ends a demo session, for clients that want a button
// in addition to the landing-page auto-logout.
func (h *SessionHandler) DemoLogout(c *gin.Context) {
	http.SetCookie(c.Writer, h.sessions.ClearDemoCookie())
	RespondOK(c, gin.H{"mode": services.ModeGuest})
}

type importRequest struct {
	Cards []types.ImportableCard `json:"cards"`
}

// Import moves the caller's guest cards into their durable collection. The
// request body may carry the cards (clients that held them locally); bodies
// without cards fall back to the server-side guest store. The guest store is
// cleared only after a fully successful import; a partial failure keeps it,
// and it is on the client to not blindly retry.
func (h *SessionHandler) Import(c *gin.Context) {
	session := middleware.SessionFrom(c)
	if session.Mode != services.ModeAuthenticated {
		RespondError(c, http.StatusUnauthorized, apperr.CodeNotAuthenticated, fmt.Errorf("sign in before importing"))
		return
	}

	// An empty body is fine: the cards then come from the server-side store.
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		RespondError(c, http.StatusBadRequest, "", err)
		return
	}

	cards := req.Cards
	if len(cards) == 0 && session.GuestID != "" {
		for _, card := range h.guestCards.GetAll(c.Request.Context(), session.GuestID) {
			cards = append(cards, card.Importable())
		}
	}

	result := h.importSvc.Execute(c.Request.Context(), services.ImportInput{
		Identity: session.Identity,
		Email:    session.Email,
		Cards:    cards,
	})
	if !result.Success {
		status := http.StatusInternalServerError
		if result.Code == apperr.CodeNotAuthenticated {
			status = http.StatusUnauthorized
		}
		c.JSON(status, result)
		return
	}

	if session.GuestID != "" {
		h.guestCards.Clear(c.Request.Context(), session.GuestID)
	}
	RespondOK(c, result)
}

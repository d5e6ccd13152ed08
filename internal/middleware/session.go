package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/services"
)

const sessionContextKey = "session_state"

type SessionMiddleware struct {
	log             *logger.Logger
	sessions        services.SessionService
	guestCookieName string
	guestCookieTTL  time.Duration
}

func NewSessionMiddleware(baseLog *logger.Logger, sessions services.SessionService, guestCookieName string, guestCookieTTL time.Duration) *SessionMiddleware {
	middlewareLog := baseLog.With("middleware", "SessionMiddleware")
	return &SessionMiddleware{
		log:             middlewareLog,
		sessions:        sessions,
		guestCookieName: guestCookieName,
		guestCookieTTL:  guestCookieTTL,
	}
}

// Attach classifies the session exactly once per request and stores the
// result in the gin context. Demo sessions navigating back to a landing page
// are terminated here: the clearing cookie goes out with the response and the
// rest of the request runs as a guest.
func (sm *SessionMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookieHeader := c.GetHeader("Cookie")
		state := sm.sessions.Classify(cookieHeader)

		if state.Mode == services.ModeDemo && sm.sessions.ShouldAutoLogout(c.Request.URL.Path, cookieHeader) {
			sm.log.Info("Demo session auto-logout", "path", c.Request.URL.Path)
			http.SetCookie(c.Writer, sm.sessions.ClearDemoCookie())
			state = services.SessionState{Mode: services.ModeGuest, GuestID: state.GuestID}
		}

		if state.Mode == services.ModeGuest && state.GuestID == "" {
			state.GuestID = uuid.NewString()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     sm.guestCookieName,
				Value:    state.GuestID,
				Path:     "/",
				MaxAge:   int(sm.guestCookieTTL.Seconds()),
				HttpOnly: true,
			})
		}

		c.Set(sessionContextKey, state)
		c.Next()
	}
}

// SessionFrom returns the state Attach stored for this request. A missing
// value reads as a plain guest, which only happens in handlers mounted
// outside the middleware.
func SessionFrom(c *gin.Context) services.SessionState {
	if v, ok := c.Get(sessionContextKey); ok {
		if state, ok := v.(services.SessionState); ok {
			return state
		}
	}
	return services.SessionState{Mode: services.ModeGuest}
}

package services

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
)

type SessionMode string

const (
	ModeGuest         SessionMode = "guest"
	ModeDemo          SessionMode = "demo"
	ModeAuthenticated SessionMode = "authenticated"
)

// SessionState is derived once per request and threaded through to every
// component that needs to know who the caller is.
type SessionState struct {
	Mode     SessionMode `json:"mode"`
	Identity string      `json:"identity,omitempty"`
	Email    string      `json:"email,omitempty"`
	GuestID  string      `json:"-"`
}

// IdentityResolver is the auth-provider boundary: given the raw cookie
// header it either yields the caller's identity and email or an error.
type IdentityResolver interface {
	Resolve(cookieHeader string) (identity, email string, err error)
}

type SessionConfig struct {
	DemoCookieName  string
	DemoCookieValue string
	DemoIdentity    string
	DemoEmail       string
	GuestCookieName string
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		DemoCookieName:  "demo_mode",
		DemoCookieValue: "true",
		DemoIdentity:    "demo-user",
		DemoEmail:       "demo@lingocards.app",
		GuestCookieName: "guest_id",
	}
}

type SessionService interface {
	// Classify is a pure function of the cookie header. Demo wins over
	// authenticated; anything unresolvable is a guest.
	Classify(cookieHeader string) SessionState
	// ShouldAutoLogout reports whether an active demo session should be
	// terminated because the caller navigated back to a landing page.
	ShouldAutoLogout(path, cookieHeader string) bool
	// ClearDemoCookie builds the directive that makes the browser drop the
	// demo cookie immediately. Construction only, no I/O.
	ClearDemoCookie() *http.Cookie
	DemoIdentity() string
}

type sessionService struct {
	log      *logger.Logger
	cfg      SessionConfig
	resolver IdentityResolver
}

// Landing pages: the root, or a single two-letter locale segment, with or
// without a trailing slash.
var landingPathPattern = regexp.MustCompile(`^/(?:[a-z]{2}/?)?$`)

func NewSessionService(baseLog *logger.Logger, resolver IdentityResolver, cfg SessionConfig) SessionService {
	serviceLog := baseLog.With("service", "SessionService")
	return &sessionService{log: serviceLog, cfg: cfg, resolver: resolver}
}

func (s *sessionService) Classify(cookieHeader string) SessionState {
	cookies := parseCookieHeader(cookieHeader)

	guestID := cookies[s.cfg.GuestCookieName]

	if cookies[s.cfg.DemoCookieName] == s.cfg.DemoCookieValue {
		return SessionState{
			Mode:     ModeDemo,
			Identity: s.cfg.DemoIdentity,
			Email:    s.cfg.DemoEmail,
			GuestID:  guestID,
		}
	}

	if s.resolver != nil {
		identity, email, err := s.resolver.Resolve(cookieHeader)
		if err == nil && identity != "" {
			return SessionState{
				Mode:     ModeAuthenticated,
				Identity: identity,
				Email:    email,
				GuestID:  guestID,
			}
		}
	}

	return SessionState{Mode: ModeGuest, GuestID: guestID}
}

func (s *sessionService) ShouldAutoLogout(path, cookieHeader string) bool {
	if !landingPathPattern.MatchString(path) {
		return false
	}
	return s.Classify(cookieHeader).Mode == ModeDemo
}

func (s *sessionService) ClearDemoCookie() *http.Cookie {
	return &http.Cookie{
		Name:    s.cfg.DemoCookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	}
}

func (s *sessionService) DemoIdentity() string {
	return s.cfg.DemoIdentity
}

// parseCookieHeader splits a Cookie header into name=value pairs, tolerating
// stray whitespace around the separators. Malformed fragments are skipped.
func parseCookieHeader(header string) map[string]string {
	cookies := map[string]string{}
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cookies[name] = strings.TrimSpace(value)
	}
	return cookies
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/services"
)

func newTestRouter(t *testing.T) (*gin.Engine, *services.SessionState) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := services.NewSessionService(logger.NewNop(), nil, services.DefaultSessionConfig())
	sm := NewSessionMiddleware(logger.NewNop(), sessions, "guest_id", time.Hour)

	var seen services.SessionState
	router := gin.New()
	router.Use(sm.Attach())
	router.GET("/*path", func(c *gin.Context) {
		seen = SessionFrom(c)
		c.Status(http.StatusOK)
	})
	return router, &seen
}

func TestAttachMintsGuestCookie(t *testing.T) {
	router, seen := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/en/flashcards", nil)
	router.ServeHTTP(w, req)

	if seen.Mode != services.ModeGuest {
		t.Fatalf("Mode = %q, want guest", seen.Mode)
	}
	if seen.GuestID == "" {
		t.Fatal("no guest id assigned")
	}

	var minted bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "guest_id" && c.Value == seen.GuestID {
			minted = true
		}
	}
	if !minted {
		t.Fatal("guest_id cookie not set on the response")
	}
}

func TestAttachKeepsExistingGuestID(t *testing.T) {
	router, seen := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/en/flashcards", nil)
	req.Header.Set("Cookie", "guest_id=g-existing")
	router.ServeHTTP(w, req)

	if seen.GuestID != "g-existing" {
		t.Fatalf("GuestID = %q, want g-existing", seen.GuestID)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "guest_id" {
			t.Fatal("guest_id cookie re-minted for a returning guest")
		}
	}
}

func TestAttachDemoSession(t *testing.T) {
	router, seen := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/en/flashcards", nil)
	req.Header.Set("Cookie", "demo_mode=true")
	router.ServeHTTP(w, req)

	if seen.Mode != services.ModeDemo {
		t.Fatalf("Mode = %q, want demo", seen.Mode)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "demo_mode" {
			t.Fatal("demo cookie cleared off the landing page")
		}
	}
}

func TestAttachDemoAutoLogoutOnLanding(t *testing.T) {
	cases := []struct {
		name string
		path string
	}{
		{name: "root", path: "/"},
		{name: "locale", path: "/en"},
		{name: "locale_trailing", path: "/pl/"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, seen := newTestRouter(t)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			req.Header.Set("Cookie", "demo_mode=true")
			router.ServeHTTP(w, req)

			if seen.Mode != services.ModeGuest {
				t.Fatalf("Mode = %q, want demoted to guest", seen.Mode)
			}

			var cleared bool
			for _, c := range w.Result().Cookies() {
				if c.Name == "demo_mode" && c.Value == "" && c.MaxAge < 0 {
					cleared = true
				}
			}
			if !cleared {
				t.Fatal("demo cookie not cleared on the landing page")
			}

			header := strings.Join(w.Header().Values("Set-Cookie"), "; ")
			if !strings.Contains(header, "demo_mode=") {
				t.Fatalf("Set-Cookie = %q, want a demo_mode clearing directive", header)
			}
		})
	}
}

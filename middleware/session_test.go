package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestSessionMiddlewareKeepsClientID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("sessionId"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Session-ID", "session-abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Body.String() != "session-abc" {
		t.Errorf("sessionId = %q, want session-abc", rec.Body.String())
	}
	if rec.Header().Get("X-Session-ID") != "session-abc" {
		t.Errorf("echoed header = %q, want session-abc", rec.Header().Get("X-Session-ID"))
	}
}

func TestSessionMiddlewareAssignsID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assigned := rec.Header().Get("X-Session-ID")
	if assigned == "" {
		t.Fatal("no session id assigned")
	}
	if _, err := uuid.Parse(assigned); err != nil {
		t.Errorf("assigned id %q is not a uuid: %v", assigned, err)
	}
}

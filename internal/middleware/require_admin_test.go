package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func adminRouter(role string, setRole bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		if setRole {
			c.Set("role", role)
		}
	}, RequireAdmin, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	r := adminRouter("admin", true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if w.Code != http.StatusOK {
		t.Errorf("code = %d, attendu 200", w.Code)
	}
}

func TestRequireAdminRejectsUser(t *testing.T) {
	r := adminRouter("user", true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if w.Code != http.StatusForbidden {
		t.Errorf("code = %d, attendu 403", w.Code)
	}
}

func TestRequireAdminRejectsMissingRole(t *testing.T) {
	r := adminRouter("", false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if w.Code != http.StatusForbidden {
		t.Errorf("code = %d, attendu 403", w.Code)
	}
}

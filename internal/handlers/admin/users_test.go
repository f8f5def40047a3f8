package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestUpdateUserRoleInvalidRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/users/:id/role", UpdateUserRole)

	for _, body := range []string{`{"role":"root"}`, `{"role":""}`, `{}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut,
			"/users/11111111-2222-3333-4444-555555555555/role", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: code = %d, attendu 400", body, w.Code)
		}
	}
}

func TestUpdateUserRoleNormalizesCase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/users/:id/role", UpdateUserRole)

	// " Admin " est normalisé en "admin" : la validation passe, puis la
	// requête échoue en 404 faute d'utilisateur en base de test
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut,
		"/users/11111111-2222-3333-4444-555555555555/role", strings.NewReader(`{"role":" Admin "}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("code = %d, attendu 404", w.Code)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return r
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	r := protectedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, attendu 401", w.Code)
	}
}

func TestAuthRequiredBadFormat(t *testing.T) {
	r := protectedRouter()

	for _, header := range []string{"Basic abc", "Bearer", "n-importe-quoi"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: code = %d, attendu 401", header, w.Code)
		}
	}
}

func TestAuthRequiredGarbageToken(t *testing.T) {
	r := protectedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer pas.un.jwt")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, attendu 401", w.Code)
	}
}

func TestAuthRequiredWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "cle-du-serveur")

	// Token signé avec une autre clé
	t.Setenv("JWT_SECRET", "autre-cle")
	token, err := utils.GenerateJWT(models.User{ID: "u-1", Role: "user"})
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv("JWT_SECRET", "cle-du-serveur")

	r := protectedRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, attendu 401", w.Code)
	}
}

func TestAuthRequiredUnknownUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "cle-de-test")

	// Token valide mais utilisateur introuvable en base : rejeté
	token, err := utils.GenerateJWT(models.User{ID: "00000000-0000-0000-0000-000000000000", Role: "user"})
	if err != nil {
		t.Fatal(err)
	}

	r := protectedRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, attendu 401", w.Code)
	}
}

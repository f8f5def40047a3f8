package utils

import (
	"testing"
	"time"

	"velora_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateJWTClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	u := models.User{ID: "11111111-2222-3333-4444-555555555555", Role: "admin"}
	tokenString, err := GenerateJWT(u)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret-de-test"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token invalide: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims inattendues")
	}

	if claims["user_id"] != u.ID {
		t.Errorf("user_id = %v, attendu %s", claims["user_id"], u.ID)
	}
	if claims["role"] != "admin" {
		t.Errorf("role = %v, attendu admin", claims["role"])
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatal("exp manquant")
	}
	remaining := time.Until(time.Unix(int64(exp), 0))
	if remaining < 23*time.Hour || remaining > 24*time.Hour {
		t.Errorf("expiration hors de la fenêtre 24h: %v", remaining)
	}
}

func TestGenerateJWTWrongSecretRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "bonne-cle")

	tokenString, err := GenerateJWT(models.User{ID: "abc", Role: "user"})
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("mauvaise-cle"), nil
	})
	if err == nil && token.Valid {
		t.Error("un token signé avec une autre clé ne doit pas être valide")
	}
}

package utils

import (
	"os"
	"time"

	"velora_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT signe un token HS256 portant user_id et role, valable 24h.
// Le rôle embarqué n'est qu'indicatif : le middleware relit toujours le rôle
// courant en base à chaque requête.
func GenerateJWT(user models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

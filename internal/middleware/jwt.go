package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/golang-jwt/jwt/v5"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return []byte(secret)
}

// AuthRequired vérifie le token Bearer puis RELIT l'utilisateur en base :
// le rôle embarqué dans le token n'est jamais utilisé, un changement de rôle
// prend donc effet sans re-login, et un compte supprimé est rejeté.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token manquant"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Format Authorization invalide"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
			}
			return jwtSecret(), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
			c.Abort()
			return
		}

		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().Unix() > int64(exp) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expiré"})
				c.Abort()
				return
			}
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user_id manquant"})
			c.Abort()
			return
		}

		user, err := FetchUser(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur introuvable"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("email", user.Email)
		c.Set("role", user.Role)

		c.Next()
	}
}

// FetchUser relit l'utilisateur complet depuis ScyllaDB
func FetchUser(userID string) (*models.User, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	uid, err := gocql.ParseUUID(userID)
	if err != nil {
		return nil, err
	}

	user := models.User{ID: userID}
	err = database.QueryUserByID(session, uid).Scan(
		&user.Username, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Address, &user.Phone, &user.ProfileImage, &user.Role,
		&user.Provider, &user.ProviderID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if user.Role == "" {
		user.Role = "user"
	}

	return &user, nil
}

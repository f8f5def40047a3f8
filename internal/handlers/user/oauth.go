package user

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/facebook"
	"github.com/markbates/goth/providers/google"
)

// ================== AUTH SOCIALE ==================

func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun provider spécifié"})
		return
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	callbackURL := baseURL + "/api/auth/" + provider + "/callback"

	switch provider {
	case "google":
		goth.UseProviders(google.New(
			os.Getenv("GOOGLE_CLIENT_ID"),
			os.Getenv("GOOGLE_CLIENT_SECRET"),
			callbackURL,
		))
	case "facebook":
		goth.UseProviders(facebook.New(
			os.Getenv("FACEBOOK_CLIENT_ID"),
			os.Getenv("FACEBOOK_CLIENT_SECRET"),
			callbackURL,
		))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provider non supporté"})
		return
	}

	state := generateRandomState()
	if redirectURL := c.Query("redirect_url"); redirectURL != "" {
		_ = database.RedisClient.Set(context.Background(), "oauth_redirect:"+state, redirectURL, 10*time.Minute).Err()
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	q.Set("state", state)
	c.Request.URL.RawQuery = q.Encode()
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	state := c.Query("state")

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		log.Printf("❌ Erreur callback OAuth %s: %v", provider, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentification OAuth échouée"})
		return
	}

	user := findOrCreateOAuthUser(provider, gothUser.UserID, gothUser.Email, gothUser.Name)
	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	ctx := context.Background()
	redirectURI, _ := database.RedisClient.Get(ctx, "oauth_redirect:"+state).Result()
	_, _ = database.RedisClient.Del(ctx, "oauth_redirect:"+state).Result()

	if redirectURI == "" {
		redirectURI = os.Getenv("FRONTEND_URL")
		if redirectURI == "" {
			redirectURI = "http://localhost:3000"
		}
	}

	sep := "?"
	if strings.Contains(redirectURI, "?") {
		sep = "&"
	}
	c.Redirect(http.StatusTemporaryRedirect, redirectURI+sep+"token="+url.QueryEscape(token))
}

func generateRandomState() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

// findOrCreateOAuthUser rattache le compte OAuth à un compte local existant
// (même email) ou en crée un nouveau avec le rôle "user".
func findOrCreateOAuthUser(provider, providerID, email, name string) models.User {
	email = strings.ToLower(strings.TrimSpace(email))

	if existing, err := findUserByEmail(email); err == nil {
		session, err := database.GetUsersSession()
		if err == nil {
			uid, _ := gocql.ParseUUID(existing.ID)
			_ = session.Query("UPDATE users SET provider = ?, provider_id = ?, updated_at = ? WHERE user_id = ?",
				provider, providerID, time.Now(), uid).Exec()
		}
		log.Printf("🔄 Compte existant rattaché au provider %s : %s", provider, email)
		existing.Provider = provider
		existing.ProviderID = providerID
		return *existing
	}

	first, last := splitFullName(name)
	userID := gocql.TimeUUID()
	now := time.Now()

	user := models.User{
		ID:         userID.String(),
		Username:   usernameFromEmail(email),
		Email:      email,
		FirstName:  first,
		LastName:   last,
		Role:       "user",
		Provider:   provider,
		ProviderID: providerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	session, err := database.GetUsersSession()
	if err != nil {
		log.Printf("❌ Erreur connexion base de données: %v", err)
		return user
	}

	_ = session.Query(`INSERT INTO users (user_id, username, email, password, first_name, last_name, address, phone, profile_image, role, provider, provider_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, user.Username, user.Email, "", user.FirstName, user.LastName,
		"", "", "", user.Role, user.Provider, user.ProviderID, now, now).Exec()
	_ = session.Query("INSERT INTO users_by_email (email, user_id) VALUES (?, ?)", email, userID).Exec()
	_ = session.Query("INSERT INTO users_by_username (username, user_id) VALUES (?, ?)", user.Username, userID).Exec()

	log.Printf("🆕 Utilisateur OAuth créé (%s) : %s", provider, email)
	return user
}

func splitFullName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func usernameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

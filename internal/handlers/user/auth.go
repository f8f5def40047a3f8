package user

import (
	"log"
	"net/http"
	"strings"
	"time"

	"velora_back_end/internal/database"
	"velora_back_end/internal/middleware"
	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// ================== AUTH LOCALE ==================

func Register(c *gin.Context) {
	var input struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Username == "" || input.Email == "" || input.Password == "" ||
		input.FirstName == "" || input.LastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tous les champs sont obligatoires"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// email ou username déjà pris ?
	var existingID gocql.UUID
	if err := database.QueryUserIDByEmail(session, email).Scan(&existingID); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}
	if err := database.QueryUserIDByUsername(session, input.Username).Scan(&existingID); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ce nom d'utilisateur est déjà pris"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	userID := gocql.TimeUUID()
	now := time.Now()

	user := models.User{
		ID:        userID.String(),
		Username:  input.Username,
		Email:     email,
		Password:  hashedPassword,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      "user",
		Provider:  "local",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := database.QueryInsertUser(session,
		userID, user.Username, user.Email, user.Password, user.FirstName, user.LastName,
		"", "", "", user.Role, user.Provider, "", now, now).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	// Tables de lookup pour l'unicité email / username
	if err := database.QueryInsertUserByEmail(session, email, userID).Exec(); err != nil {
		log.Printf("❌ Erreur insertion users_by_email: %v", err)
	}
	if err := database.QueryInsertUserByName(session, user.Username, userID).Exec(); err != nil {
		log.Printf("❌ Erreur insertion users_by_username: %v", err)
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("🆕 Utilisateur créé : %s (%s)", user.Username, user.Email)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Inscription réussie",
		"token":   token,
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"role":      user.Role,
		},
	})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email et mot de passe obligatoires"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Email inconnu et mauvais mot de passe renvoient la même erreur générique
	user, err := findUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Connexion réussie",
		"token":   token,
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"role":      user.Role,
		},
	})
}

// ================== PROFIL ==================

func GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	user, err := middleware.FetchUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Address   string `json:"address"`
		Phone     string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	uid, err := gocql.ParseUUID(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID utilisateur invalide"})
		return
	}

	if err := session.Query(`UPDATE users SET first_name = ?, last_name = ?, address = ?, phone = ?, updated_at = ?
		WHERE user_id = ?`,
		input.FirstName, input.LastName, input.Address, input.Phone, time.Now(), uid).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour profil"})
		return
	}

	user, err := middleware.FetchUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profil mis à jour avec succès",
		"user":    user,
	})
}

// ================== UTILITAIRES ==================

func findUserByEmail(email string) (*models.User, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	var userID gocql.UUID
	if err := database.QueryUserIDByEmail(session, email).Scan(&userID); err != nil {
		return nil, err
	}

	return middleware.FetchUser(userID.String())
}

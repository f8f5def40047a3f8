package admin

import (
	"log"
	"net/http"
	"strings"
	"time"

	"velora_back_end/internal/database"
	"velora_back_end/internal/middleware"
	"velora_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// GetAllUsers liste tous les comptes (le hash du mot de passe n'est
// jamais sérialisé)
func GetAllUsers(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`
		SELECT user_id, username, email, first_name, last_name, address, phone,
			profile_image, role, provider, created_at, updated_at
		FROM users`).Iter()

	users := []models.User{}
	for {
		var u models.User
		var uid gocql.UUID
		if !iter.Scan(&uid, &u.Username, &u.Email, &u.FirstName, &u.LastName,
			&u.Address, &u.Phone, &u.ProfileImage, &u.Role, &u.Provider,
			&u.CreatedAt, &u.UpdatedAt) {
			break
		}
		u.ID = uid.String()
		if u.Role == "" {
			u.Role = "user"
		}
		users = append(users, u)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture utilisateurs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// GetUserCount renvoie le nombre total de comptes
func GetUserCount(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var count int
	if err := session.Query(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur comptage utilisateurs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// UpdateUserRole change le rôle d'un compte
func UpdateUserRole(c *gin.Context) {
	targetID := c.Param("id")

	var input struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	input.Role = strings.ToLower(strings.TrimSpace(input.Role))
	if !models.IsValidRole(input.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle invalide"})
		return
	}

	target, err := middleware.FetchUser(targetID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	uid, err := gocql.ParseUUID(targetID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`UPDATE users SET role = ?, updated_at = ? WHERE user_id = ?`,
		input.Role, time.Now(), uid).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour rôle %s: %v", targetID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour rôle"})
		return
	}

	log.Printf("✅ Rôle de %s (%s) passé à %s", target.Username, targetID, input.Role)
	c.JSON(http.StatusOK, gin.H{"message": "Rôle mis à jour", "role": input.Role})
}

// DeleteUser supprime un compte ainsi que ses lignes de lookup
func DeleteUser(c *gin.Context) {
	targetID := c.Param("id")

	target, err := middleware.FetchUser(targetID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	uid, err := gocql.ParseUUID(targetID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM users WHERE user_id = ?`, uid).Exec(); err != nil {
		log.Printf("❌ Erreur suppression utilisateur %s: %v", targetID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression utilisateur"})
		return
	}

	// Les tables de lookup doivent suivre, sinon l'email reste réservé
	if err := session.Query(`DELETE FROM users_by_email WHERE email = ?`,
		strings.ToLower(target.Email)).Exec(); err != nil {
		log.Printf("⚠️ Lookup email non supprimé pour %s: %v", target.Email, err)
	}
	if err := session.Query(`DELETE FROM users_by_username WHERE username = ?`,
		target.Username).Exec(); err != nil {
		log.Printf("⚠️ Lookup username non supprimé pour %s: %v", target.Username, err)
	}

	log.Printf("🧹 Utilisateur %s (%s) supprimé", target.Username, targetID)
	c.JSON(http.StatusOK, gin.H{"message": "Utilisateur supprimé"})
}

package product

import (
	"log"
	"net/http"

	"velora_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// UploadProductImage envoie une image produit vers MinIO et renvoie son URL
func UploadProductImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier image manquant"})
		return
	}

	url, err := services.UploadFile("products", file)
	if err != nil {
		log.Printf("❌ Erreur upload image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		return
	}

	log.Printf("🪣 Image produit envoyée : %s", url)
	c.JSON(http.StatusOK, gin.H{"url": url})
}

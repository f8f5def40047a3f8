package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"
)

const cartTTL = 30 * 24 * time.Hour

// Événements poussés sur cart_events:<user_id> pour le websocket de synchro.
// Une lecture du panier (création paresseuse comprise) reste silencieuse.
const (
	cartEventNone    = ""
	cartEventUpdated = "updated"
	cartEventCleared = "cleared"
)

func cartKey(userID string) string {
	return "cart:" + userID
}

// ================== MANIPULATION DES LIGNES ==================

// mergeCartItem ajoute une quantité à la ligne du produit, ou crée la ligne.
// Un produit n'apparaît jamais sur deux lignes.
func mergeCartItem(items []models.CartItem, productID string, quantity int) []models.CartItem {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			return items
		}
	}
	return append(items, models.CartItem{ProductID: productID, Quantity: quantity})
}

// removeCartItem retire la ligne du produit ; no-op si elle n'existe pas
func removeCartItem(items []models.CartItem, productID string) []models.CartItem {
	out := []models.CartItem{}
	for _, item := range items {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}

// setCartItemQuantity fixe la quantité d'une ligne existante
func setCartItemQuantity(items []models.CartItem, productID string, quantity int) ([]models.CartItem, bool) {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			return items, true
		}
	}
	return items, false
}

// ================== STOCKAGE REDIS ==================

func loadCart(ctx context.Context, userID string) ([]models.CartItem, bool, error) {
	data, err := database.RedisClient.Get(ctx, cartKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		// Redis injoignable : à distinguer d'un panier absent
		return nil, false, err
	}
	if data == "" {
		return nil, false, nil
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func saveCart(ctx context.Context, userID string, items []models.CartItem, event string) error {
	if items == nil {
		items = []models.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := database.RedisClient.Set(ctx, cartKey(userID), data, cartTTL).Err(); err != nil {
		return err
	}

	if event != cartEventNone {
		database.RedisClient.Publish(ctx, "cart_events:"+userID, event)
	}
	return nil
}

// enrichCart complète chaque ligne avec les données produit lues à l'instant
// de la requête (le panier ne stocke jamais de prix)
func enrichCart(items []models.CartItem) ([]models.CartItemView, float64) {
	views := []models.CartItemView{}
	var total float64

	session, err := database.GetProductsSession()
	if err != nil {
		return views, 0
	}

	for _, item := range items {
		pid, err := gocql.ParseUUID(item.ProductID)
		if err != nil {
			continue
		}

		var name, image string
		var price float64
		if err := session.Query("SELECT name, price, image FROM products WHERE product_id = ?", pid).
			Scan(&name, &price, &image); err != nil {
			// Produit supprimé du catalogue : la ligne reste mais sans détails
			views = append(views, models.CartItemView{ProductID: item.ProductID, Quantity: item.Quantity})
			continue
		}

		views = append(views, models.CartItemView{
			ProductID: item.ProductID,
			Name:      name,
			Price:     price,
			Image:     image,
			Quantity:  item.Quantity,
		})
		total += price * float64(item.Quantity)
	}

	return views, total
}

// ================== HANDLERS ==================

// GetCart renvoie le panier, en le créant vide au premier accès
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	ctx := context.Background()
	items, exists, err := loadCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	if !exists {
		// Création paresseuse au premier accès, sans notifier le websocket
		if err := saveCart(ctx, userID, []models.CartItem{}, cartEventNone); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création panier"})
			return
		}
		items = []models.CartItem{}
	}

	views, total := enrichCart(items)
	c.JSON(http.StatusOK, gin.H{"userId": userID, "items": views, "total": total})
}

// AddToCart fusionne la quantité dans la ligne existante du produit
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.ProductID == "" || input.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Produit ou quantité invalide"})
		return
	}

	pid, err := gocql.ParseUUID(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var name string
	if err := session.Query("SELECT name FROM products WHERE product_id = ?", pid).Scan(&name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	ctx := context.Background()
	items, _, err := loadCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	items = mergeCartItem(items, input.ProductID, input.Quantity)

	if err := saveCart(ctx, userID, items, cartEventUpdated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	views, total := enrichCart(items)
	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   views,
		"total":   total,
	})
}

// RemoveFromCart retire la ligne du produit ; succès même si la ligne
// n'existait pas, 404 seulement si le panier lui-même n'existe pas
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx := context.Background()
	items, exists, err := loadCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Panier introuvable"})
		return
	}

	items = removeCartItem(items, input.ProductID)

	if err := saveCart(ctx, userID, items, cartEventUpdated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	views, total := enrichCart(items)
	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   views,
		"total":   total,
	})
}

// UpdateCartItem fixe la quantité d'une ligne existante
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.ProductID == "" || input.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Produit ou quantité invalide"})
		return
	}

	ctx := context.Background()
	items, exists, err := loadCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Panier introuvable"})
		return
	}

	items, found := setCartItemQuantity(items, input.ProductID, input.Quantity)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit absent du panier"})
		return
	}

	if err := saveCart(ctx, userID, items, cartEventUpdated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	views, total := enrichCart(items)
	c.JSON(http.StatusOK, gin.H{
		"message": "Quantité mise à jour",
		"items":   views,
		"total":   total,
	})
}

// ClearCart vide la liste des lignes (le panier continue d'exister)
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	ctx := context.Background()
	_, exists, err := loadCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Panier introuvable"})
		return
	}

	if err := saveCart(ctx, userID, []models.CartItem{}, cartEventCleared); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
		"items":   []models.CartItemView{},
		"total":   0,
	})
}

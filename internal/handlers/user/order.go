package user

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// snapshotCartItems lit les données produit en base à l'instant de la
// commande : les lignes figées ne bougeront plus jamais
func snapshotCartItems(items []models.CartItem) ([]models.OrderItem, float64, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, 0, err
	}

	snapshot := []models.OrderItem{}
	var total float64

	for _, item := range items {
		pid, err := gocql.ParseUUID(item.ProductID)
		if err != nil {
			continue
		}

		var name, image string
		var price float64
		if err := session.Query("SELECT name, price, image FROM products WHERE product_id = ?", pid).
			Scan(&name, &price, &image); err != nil {
			// Produit disparu entre l'ajout au panier et la commande : ignoré
			log.Printf("⚠️ Produit %s introuvable lors de la commande", item.ProductID)
			continue
		}

		snapshot = append(snapshot, models.OrderItem{
			ProductID: item.ProductID,
			Name:      name,
			Price:     price,
			Quantity:  item.Quantity,
			Image:     image,
		})
		total += price * float64(item.Quantity)
	}

	return snapshot, total, nil
}

func validShippingAddress(a models.ShippingAddress) bool {
	return a.FullName != "" && a.Address != "" && a.City != "" &&
		a.State != "" && a.ZipCode != "" && a.Country != ""
}

func insertOrder(order models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	if err := session.Query(`
		INSERT INTO orders (order_id, user_id, items, total_amount,
			shipping_full_name, shipping_address, shipping_city, shipping_state,
			shipping_zip_code, shipping_country,
			status, payment_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, string(itemsJSON), order.TotalAmount,
		order.ShippingAddress.FullName, order.ShippingAddress.Address,
		order.ShippingAddress.City, order.ShippingAddress.State,
		order.ShippingAddress.ZipCode, order.ShippingAddress.Country,
		order.Status, order.PaymentID, order.CreatedAt, order.UpdatedAt,
	).Exec(); err != nil {
		return err
	}

	// Table de lookup pour lister les commandes d'un utilisateur
	return session.Query(`
		INSERT INTO orders_by_user (user_id, order_id, created_at)
		VALUES (?, ?, ?)`,
		order.UserID, order.ID, order.CreatedAt,
	).Exec()
}

// FetchOrder recharge une commande complète depuis Scylla
func FetchOrder(orderID gocql.UUID) (models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return models.Order{}, err
	}

	var order models.Order
	var itemsJSON string
	if err := session.Query(`
		SELECT order_id, user_id, items, total_amount,
			shipping_full_name, shipping_address, shipping_city, shipping_state,
			shipping_zip_code, shipping_country,
			status, payment_id, created_at, updated_at
		FROM orders WHERE order_id = ?`, orderID).
		Scan(&order.ID, &order.UserID, &itemsJSON, &order.TotalAmount,
			&order.ShippingAddress.FullName, &order.ShippingAddress.Address,
			&order.ShippingAddress.City, &order.ShippingAddress.State,
			&order.ShippingAddress.ZipCode, &order.ShippingAddress.Country,
			&order.Status, &order.PaymentID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return models.Order{}, err
	}

	if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// ================== HANDLERS ==================

// CreateOrder fige le contenu du panier en commande "pending".
// Le panier N'est PAS vidé ici : il le sera après confirmation du paiement.
func CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if !validShippingAddress(input.ShippingAddress) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Adresse de livraison incomplète"})
		return
	}

	ctx := context.Background()
	items, exists, err := loadCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	if !exists || len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le panier est vide"})
		return
	}

	snapshot, total, err := snapshotCartItems(items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}
	if len(snapshot) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le panier est vide"})
		return
	}

	now := time.Now()
	order := models.Order{
		ID:              gocql.TimeUUID(),
		UserID:          userID,
		Items:           snapshot,
		TotalAmount:     total,
		ShippingAddress: input.ShippingAddress,
		Status:          "pending",
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := insertOrder(order); err != nil {
		log.Printf("❌ Erreur création commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		return
	}

	log.Printf("🆕 Commande %s créée pour l'utilisateur %s (%.2f€)", order.ID, userID, total)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Commande créée",
		"order":   order,
	})
}

// GetMyOrders liste les commandes de l'utilisateur, plus récentes d'abord
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT order_id FROM orders_by_user WHERE user_id = ?`, userID).Iter()

	orders := []models.Order{}
	var orderID gocql.UUID
	for iter.Scan(&orderID) {
		order, err := FetchOrder(orderID)
		if err != nil {
			continue
		}
		orders = append(orders, order)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
		return
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderByID renvoie une commande ; 403 si elle appartient à un autre
// utilisateur (sauf admin)
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	role := c.GetString("role")

	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	order, err := FetchOrder(orderID)
	if errors.Is(err, gocql.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commande"})
		return
	}

	if order.UserID != userID && role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

package admin

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"velora_back_end/internal/database"
	"velora_back_end/internal/handlers/user"
	"velora_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// scanAllOrders parcourt la table orders en entier
func scanAllOrders() ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`
		SELECT order_id, user_id, items, total_amount,
			shipping_full_name, shipping_address, shipping_city, shipping_state,
			shipping_zip_code, shipping_country,
			status, payment_id, created_at, updated_at
		FROM orders`).Iter()

	orders := []models.Order{}
	for {
		var order models.Order
		var itemsJSON string
		if !iter.Scan(&order.ID, &order.UserID, &itemsJSON, &order.TotalAmount,
			&order.ShippingAddress.FullName, &order.ShippingAddress.Address,
			&order.ShippingAddress.City, &order.ShippingAddress.State,
			&order.ShippingAddress.ZipCode, &order.ShippingAddress.Country,
			&order.Status, &order.PaymentID, &order.CreatedAt, &order.UpdatedAt) {
			break
		}
		if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
			continue
		}
		orders = append(orders, order)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// GetAllOrders liste toutes les commandes, filtrables par statut
func GetAllOrders(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.IsValidOrderStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide"})
		return
	}

	orders, err := scanAllOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
		return
	}

	if status != "" {
		filtered := []models.Order{}
		for _, o := range orders {
			if o.Status == status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// GetOrdersByUser liste les commandes d'un utilisateur donné
func GetOrdersByUser(c *gin.Context) {
	targetID := c.Param("id")

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT order_id FROM orders_by_user WHERE user_id = ?`, targetID).Iter()

	orders := []models.Order{}
	var orderID gocql.UUID
	for iter.Scan(&orderID) {
		order, err := user.FetchOrder(orderID)
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

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// UpdateOrderStatus change le statut d'une commande (tout statut valide
// est accepté, sans graphe de transitions)
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if !models.IsValidOrderStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide"})
		return
	}

	order, err := user.FetchOrder(orderID)
	if errors.Is(err, gocql.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commande"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	if err := session.Query(`UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ?`,
		input.Status, now, orderID).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour statut commande %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour commande"})
		return
	}

	order.Status = input.Status
	order.UpdatedAt = now

	log.Printf("✅ Commande %s passée au statut %s", orderID, input.Status)
	c.JSON(http.StatusOK, gin.H{"message": "Statut mis à jour", "order": order})
}

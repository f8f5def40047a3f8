package payement

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"velora_back_end/internal/database"
	"velora_back_end/internal/handlers/user"
	"velora_back_end/internal/middleware"
	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// loadOwnedOrder recharge une commande et vérifie qu'elle appartient bien
// à l'utilisateur courant. 404 si absente, 403 si à quelqu'un d'autre.
func loadOwnedOrder(c *gin.Context, rawID string) (models.Order, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return models.Order{}, false
	}

	orderID, err := gocql.ParseUUID(rawID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return models.Order{}, false
	}

	order, err := user.FetchOrder(orderID)
	if errors.Is(err, gocql.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return models.Order{}, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commande"})
		return models.Order{}, false
	}

	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé"})
		return models.Order{}, false
	}

	return order, true
}

// ✅ Crée un PaymentIntent Stripe pour une commande existante
func CreatePaymentIntent(c *gin.Context) {
	var req struct {
		OrderID string `json:"orderId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	order, ok := loadOwnedOrder(c, req.OrderID)
	if !ok {
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents(order.TotalAmount)),
		Currency: stripe.String("usd"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"order_id": order.ID.String(),
			"user_id":  order.UserID,
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Println("❌ Erreur Stripe:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("💳 PaymentIntent créé : %s (%.2f) pour la commande %s", intent.ID, order.TotalAmount, order.ID)

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": intent.ClientSecret,
		"paymentId":    intent.ID,
	})
}

// ✅ Confirme le paiement côté serveur : commande en "processing",
// puis seulement le panier est vidé
func ConfirmPayment(c *gin.Context) {
	var req struct {
		OrderID         string `json:"orderId"`
		PaymentIntentID string `json:"paymentIntentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" || req.PaymentIntentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	order, ok := loadOwnedOrder(c, req.OrderID)
	if !ok {
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	if err := session.Query(`
		UPDATE orders SET status = ?, payment_id = ?, updated_at = ?
		WHERE order_id = ?`,
		"processing", req.PaymentIntentID, now, order.ID,
	).Exec(); err != nil {
		// La commande reste "pending" et le panier intact : le client peut réessayer
		log.Printf("❌ Erreur confirmation paiement %s: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour commande"})
		return
	}

	// Le paiement est enregistré : on peut maintenant vider le panier
	ctx := context.Background()
	if err := database.RedisClient.Del(ctx, "cart:"+order.UserID).Err(); err != nil {
		log.Printf("⚠️ Panier %s non supprimé après paiement: %v", order.UserID, err)
	}
	database.RedisClient.Publish(ctx, "cart_events:"+order.UserID, "cleared")

	order.Status = "processing"
	order.PaymentID = req.PaymentIntentID
	order.UpdatedAt = now

	log.Printf("💳 Paiement confirmé pour la commande %s (%s)", order.ID, req.PaymentIntentID)

	// Email de confirmation et facture en arrière-plan
	go sendOrderConfirmation(c.GetString("email"), order)

	c.JSON(http.StatusOK, gin.H{
		"message": "Paiement confirmé",
		"order":   order,
	})
}

// sendOrderConfirmation génère la facture PDF et envoie l'email de
// confirmation ; les échecs sont seulement loggés
func sendOrderConfirmation(email string, order models.Order) {
	if email == "" {
		u, err := middleware.FetchUser(order.UserID)
		if err != nil {
			log.Printf("⚠️ Email de confirmation non envoyé (utilisateur %s introuvable)", order.UserID)
			return
		}
		email = u.Email
	}

	pdf, err := utils.GenerateInvoicePDF(order)
	if err != nil {
		log.Printf("⚠️ Facture PDF non générée pour %s: %v", order.ID, err)
		pdf = nil
	}

	html := utils.GenerateOrderConfirmationHTML(order)
	if err := utils.SendConfirmationEmail(email, "Confirmation de votre commande Velora", html, pdf); err != nil {
		log.Printf("⚠️ Email de confirmation non envoyé à %s: %v", email, err)
		return
	}

	log.Printf("📤 Email de confirmation envoyé à %s pour la commande %s", email, order.ID)
}

package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts de commande connus. Le passage pending → processing est déclenché
// par la confirmation de paiement, le reste est piloté par l'admin sans
// contrainte d'ordre.
var ValidOrderStatuses = []string{"pending", "processing", "shipped", "delivered", "cancelled"}

func IsValidOrderStatus(status string) bool {
	for _, s := range ValidOrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Order struct {
	ID              gocql.UUID      `json:"id"`
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     float64         `json:"totalAmount"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Status          string          `json:"status"`
	PaymentID       string          `json:"paymentId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem est un instantané figé du produit au moment de la création de la
// commande. Le montant total n'est jamais recalculé depuis le catalogue.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

type ShippingAddress struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

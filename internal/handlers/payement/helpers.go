package payement

import (
	"math"

	"velora_back_end/internal/models"
)

// calcTotal calcule le montant total des lignes figées d'une commande
func calcTotal(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// amountInCents convertit un montant en centimes pour Stripe, arrondi
// au centime le plus proche pour éviter les erreurs de flottants
func amountInCents(total float64) int64 {
	return int64(math.Round(total * 100))
}

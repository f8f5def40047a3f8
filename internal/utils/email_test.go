package utils

import (
	"strings"
	"testing"

	"velora_back_end/internal/models"
)

func TestGenerateOrderConfirmationHTML(t *testing.T) {
	order := models.Order{
		TotalAmount: 49.99,
		ShippingAddress: models.ShippingAddress{
			FullName: "Jean Dupont",
		},
		Items: []models.OrderItem{
			{Name: "Clavier mécanique", Price: 20.00, Quantity: 2},
			{Name: "Tapis de souris", Price: 9.99, Quantity: 1},
		},
	}

	html := GenerateOrderConfirmationHTML(order)

	for _, want := range []string{"Jean Dupont", "Clavier mécanique", "Tapis de souris", "49.99"} {
		if !strings.Contains(html, want) {
			t.Errorf("le HTML doit contenir %q", want)
		}
	}
}

func TestGenerateSepaQR(t *testing.T) {
	uri, err := GenerateSepaQR("BE71096123456769", "GKCCBEBB", "Velora", "FACT-123", 49.99)
	if err != nil {
		t.Fatalf("GenerateSepaQR: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("data URI attendu, reçu %.40s", uri)
	}
}

package models

import "testing"

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		if !IsValidOrderStatus(status) {
			t.Errorf("%s doit être un statut valide", status)
		}
	}

	for _, status := range []string{"", "Pending", "paid", "refunded", "annulée"} {
		if IsValidOrderStatus(status) {
			t.Errorf("%s ne doit pas être un statut valide", status)
		}
	}
}

func TestOrderItemsAreValueSnapshots(t *testing.T) {
	p := Product{Name: "Clavier", Price: 20.00}

	item := OrderItem{ProductID: "p1", Name: p.Name, Price: p.Price, Quantity: 2}
	order := Order{Items: []OrderItem{item}, TotalAmount: 40.00}

	// Un changement de prix catalogue ne touche jamais une commande existante
	p.Price = 35.00

	if order.Items[0].Price != 20.00 || order.TotalAmount != 40.00 {
		t.Errorf("la commande doit rester figée: %+v", order)
	}
}

func TestIsValidRole(t *testing.T) {
	if !IsValidRole("user") || !IsValidRole("admin") {
		t.Error("user et admin sont les deux rôles valides")
	}
	for _, role := range []string{"", "root", "Admin", "superuser"} {
		if IsValidRole(role) {
			t.Errorf("%s ne doit pas être un rôle valide", role)
		}
	}
}

package user

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"velora_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

func fullAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FullName: "Jean Dupont",
		Address:  "12 rue des Lilas",
		City:     "Bruxelles",
		State:    "Bruxelles-Capitale",
		ZipCode:  "1000",
		Country:  "Belgique",
	}
}

func TestValidShippingAddress(t *testing.T) {
	if !validShippingAddress(fullAddress()) {
		t.Error("une adresse complète doit être acceptée")
	}
}

func TestValidShippingAddressMissingField(t *testing.T) {
	fields := []func(*models.ShippingAddress){
		func(a *models.ShippingAddress) { a.FullName = "" },
		func(a *models.ShippingAddress) { a.Address = "" },
		func(a *models.ShippingAddress) { a.City = "" },
		func(a *models.ShippingAddress) { a.State = "" },
		func(a *models.ShippingAddress) { a.ZipCode = "" },
		func(a *models.ShippingAddress) { a.Country = "" },
	}

	for i, clear := range fields {
		a := fullAddress()
		clear(&a)
		if validShippingAddress(a) {
			t.Errorf("cas %d: une adresse incomplète doit être refusée", i)
		}
	}
}

func TestCreateOrderIncompleteAddress(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders", func(c *gin.Context) {
		c.Set("user_id", "u-1")
		CreateOrder(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders",
		strings.NewReader(`{"shippingAddress":{"fullName":"Jean","city":"Bruxelles"}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("code = %d, attendu 400", w.Code)
	}
}

// Magasin de commandes indisponible : 500, pas une commande introuvable
func TestGetOrderByIDStoreUnavailable(t *testing.T) {
	t.Setenv("SCYLLA_KS_ORDERS_KEYSPACE", "")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/orders/:id", func(c *gin.Context) {
		c.Set("user_id", "u-1")
		GetOrderByID(c)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/11111111-2222-3333-4444-555555555555", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, attendu 500", w.Code)
	}
}

func TestGetOrderByIDBadID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/orders/:id", func(c *gin.Context) {
		c.Set("user_id", "u-1")
		GetOrderByID(c)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/pas-un-uuid", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("code = %d, attendu 404", w.Code)
	}
}

func TestCreateOrderUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders", CreateOrder)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, attendu 401", w.Code)
	}
}

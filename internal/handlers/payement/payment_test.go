package payement

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func paymentRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payment-intent", CreatePaymentIntent)
	r.POST("/confirm-payment", ConfirmPayment)
	return r
}

func TestCreatePaymentIntentMissingOrderID(t *testing.T) {
	r := paymentRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment-intent", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("code = %d, attendu 400", w.Code)
	}
}

func TestConfirmPaymentMissingFields(t *testing.T) {
	r := paymentRouter()

	cases := []string{
		`{}`,
		`{"orderId":"11111111-2222-3333-4444-555555555555"}`,
		`{"paymentIntentId":"pi_123"}`,
	}

	for _, body := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/confirm-payment", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: code = %d, attendu 400", body, w.Code)
		}
	}
}

func TestCreatePaymentIntentUnauthenticated(t *testing.T) {
	r := paymentRouter()

	// Pas de user_id dans le contexte : refusé avant tout accès Stripe
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment-intent",
		strings.NewReader(`{"orderId":"11111111-2222-3333-4444-555555555555"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, attendu 401", w.Code)
	}
}

// Magasin de commandes indisponible : 500, pas une commande introuvable
func TestCreatePaymentIntentStoreUnavailable(t *testing.T) {
	t.Setenv("SCYLLA_KS_ORDERS_KEYSPACE", "")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payment-intent", func(c *gin.Context) {
		c.Set("user_id", "u-1")
		CreatePaymentIntent(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment-intent",
		strings.NewReader(`{"orderId":"11111111-2222-3333-4444-555555555555"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, attendu 500", w.Code)
	}
}

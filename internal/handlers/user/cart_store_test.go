package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"velora_back_end/internal/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func setTestRedis(t *testing.T, addr string) {
	t.Helper()
	prev := database.RedisClient
	client := redis.NewClient(&redis.Options{Addr: addr})
	database.Redis = client
	database.RedisClient = client
	t.Cleanup(func() {
		client.Close()
		database.Redis = prev
		database.RedisClient = prev
	})
}

// Redis injoignable : le panier n'est pas "absent", c'est une panne
func TestLoadCartRedisUnavailable(t *testing.T) {
	setTestRedis(t, "127.0.0.1:1")

	_, exists, err := loadCart(context.Background(), "u-1")
	if err == nil {
		t.Fatal("une panne Redis doit remonter une erreur")
	}
	if exists {
		t.Error("exists doit rester faux en cas de panne")
	}
}

func TestLoadCartAbsent(t *testing.T) {
	mr := miniredis.RunT(t)
	setTestRedis(t, mr.Addr())

	items, exists, err := loadCart(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("erreur inattendue: %v", err)
	}
	if exists || items != nil {
		t.Errorf("panier absent attendu, reçu exists=%v items=%+v", exists, items)
	}
}

func TestCreateOrderRedisUnavailable(t *testing.T) {
	setTestRedis(t, "127.0.0.1:1")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders", func(c *gin.Context) {
		c.Set("user_id", "u-1")
		CreateOrder(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(
		`{"shippingAddress":{"fullName":"Jean Dupont","address":"12 rue des Lilas","city":"Bruxelles","state":"Bruxelles-Capitale","zipCode":"1000","country":"Belgique"}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	// Pas un panier vide (400) : Redis est en panne
	if w.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, attendu 500", w.Code)
	}
}

func TestRemoveFromCartRedisUnavailable(t *testing.T) {
	setTestRedis(t, "127.0.0.1:1")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/cart/remove", func(c *gin.Context) {
		c.Set("user_id", "u-1")
		RemoveFromCart(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/remove", strings.NewReader(`{"productId":"p1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	// Pas un panier introuvable (404) : Redis est en panne
	if w.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, attendu 500", w.Code)
	}
}

func TestRemoveFromCartAbsentCart(t *testing.T) {
	mr := miniredis.RunT(t)
	setTestRedis(t, mr.Addr())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/cart/remove", func(c *gin.Context) {
		c.Set("user_id", "u-1")
		RemoveFromCart(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/remove", strings.NewReader(`{"productId":"p1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("code = %d, attendu 404", w.Code)
	}
}

// La création paresseuse du panier au premier GET ne doit publier aucun
// événement websocket ; le premier événement reçu vient du vidage
func TestGetCartLazyCreateStaysSilent(t *testing.T) {
	mr := miniredis.RunT(t)
	setTestRedis(t, mr.Addr())

	ctx := context.Background()
	sub := database.RedisClient.Subscribe(ctx, "cart_events:u-1")
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("abonnement impossible: %v", err)
	}
	events := sub.Channel()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := func(h gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set("user_id", "u-1")
			h(c)
		}
	}
	r.GET("/cart", authed(GetCart))
	r.POST("/cart/clear", authed(ClearCart))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /cart: code = %d, attendu 200", w.Code)
	}
	if _, err := mr.Get("cart:u-1"); err != nil {
		t.Fatal("le panier doit être créé au premier accès")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cart/clear", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /cart/clear: code = %d, attendu 200", w.Code)
	}

	select {
	case msg := <-events:
		if msg.Payload != "cleared" {
			t.Errorf("premier événement = %q, attendu \"cleared\"", msg.Payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("aucun événement reçu après le vidage du panier")
	}
}

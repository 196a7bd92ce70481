package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"paper-trader/middleware"
	"paper-trader/quotes"
	"paper-trader/store"
	"paper-trader/trading"
)

const testSecret = "test-secret"

func setup(t *testing.T) (*gin.Engine, *store.Memory, *quotes.Static) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemory()
	provider := quotes.NewStatic(map[string]quotes.Quote{
		"AAPL": {Name: "Apple Inc", Price: decimal.RequireFromString("50.00")},
	})
	engine := trading.NewEngine(st, provider, nil, nil)
	h := New(st, engine, provider, nil, testSecret, decimal.RequireFromString("10000.00"), nil)

	router := gin.New()
	router.Use(middleware.NoStore())
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)

	auth := router.Group("/")
	auth.Use(middleware.JWTAuth(testSecret))
	{
		auth.GET("/", h.Portfolio)
		auth.GET("/buy", h.BuyForm)
		auth.POST("/buy", h.Buy)
		auth.GET("/sell", h.SellForm)
		auth.POST("/sell", h.Sell)
		auth.GET("/quote", h.Quote)
		auth.POST("/quote", h.Quote)
		auth.GET("/history", h.History)
	}
	return router, st, provider
}

func request(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// registerAndLogin creates a user and returns an access token.
func registerAndLogin(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()

	w := request(t, router, http.MethodPost, "/register", "", gin.H{
		"username":     username,
		"password":     "hunter22",
		"confirmation": "hunter22",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status %d body %s", w.Code, w.Body.String())
	}

	w = request(t, router, http.MethodPost, "/login", "", gin.H{
		"username": username,
		"password": "hunter22",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d body %s", w.Code, w.Body.String())
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, w, &resp)
	if resp.AccessToken == "" {
		t.Fatal("login returned no access token")
	}
	return resp.AccessToken
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"paper-trader/store"
)

func TestRegisterMismatchedConfirmation(t *testing.T) {
	router, st, _ := setup(t)

	w := request(t, router, http.MethodPost, "/register", "", gin.H{
		"username":     "alice",
		"password":     "hunter22",
		"confirmation": "hunter23",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	// No user row may exist after a failed registration.
	if _, err := st.UserByUsername(context.Background(), "alice"); !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("user lookup err = %v, want ErrUserNotFound", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	router, _, _ := setup(t)

	for _, body := range []gin.H{
		{},
		{"username": "alice"},
		{"username": "alice", "password": "hunter22"},
		{"password": "hunter22", "confirmation": "hunter22"},
	} {
		w := request(t, router, http.MethodPost, "/register", "", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("register %v: status = %d, want 400", body, w.Code)
		}
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	router, _, _ := setup(t)
	registerAndLogin(t, router, "alice")

	w := request(t, router, http.MethodPost, "/register", "", gin.H{
		"username":     "alice",
		"password":     "other",
		"confirmation": "other",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	router, _, _ := setup(t)
	registerAndLogin(t, router, "alice")

	w := request(t, router, http.MethodPost, "/login", "", gin.H{
		"username": "alice",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: status = %d, want 401", w.Code)
	}

	w = request(t, router, http.MethodPost, "/login", "", gin.H{
		"username": "nobody",
		"password": "hunter22",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown user: status = %d, want 401", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _, _ := setup(t)

	for _, path := range []string{"/", "/buy", "/sell", "/history", "/quote?symbol=AAPL"} {
		w := request(t, router, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status = %d, want 401", path, w.Code)
		}
	}

	w := request(t, router, http.MethodGet, "/", "not-a-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", w.Code)
	}
}

func TestResponsesAreNeverCacheable(t *testing.T) {
	router, _, _ := setup(t)
	token := registerAndLogin(t, router, "alice")

	w := request(t, router, http.MethodGet, "/", token, nil)
	if got := w.Header().Get("Cache-Control"); got != "no-cache, no-store, must-revalidate" {
		t.Errorf("Cache-Control = %q, want no-store semantics", got)
	}
}

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/luma/gallery/internal/core/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", time.Second, zerolog.Nop())
}

func TestClient_ListUsers_SkipsMalformed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `[{"id":1,"name":"Ann","role":"buyer"},{"id":"bad"},{"id":2,"name":"Bo","role":"artist"}]`)
	})

	users, err := c.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 || users[0].Name != "Ann" || users[1].Role != domain.RoleArtist {
		t.Fatalf("unexpected users %+v", users)
	}
}

func TestClient_AddUser_SendsEmptyOrders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		orders, ok := body["orders"].([]any)
		if !ok || len(orders) != 0 {
			t.Errorf("expected empty orders array, got %#v", body["orders"])
		}
		body["id"] = 1760000000123
		_ = json.NewEncoder(w).Encode(body)
	})

	u, err := c.AddUser(context.Background(), domain.User{Email: "a@x", Name: "Ann"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != 1760000000123 {
		t.Fatalf("expected server id, got %d", u.ID)
	}
}

func TestClient_UpdateUser_PutsToID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/users/42" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		b, _ := io.ReadAll(r.Body)
		_, _ = w.Write(b)
	})

	u, err := c.UpdateUser(context.Background(), domain.User{ID: 42, Phone: "555"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Phone != "555" {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestClient_UpdateUser_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"User not found"}`)
	})

	_, err := c.UpdateUser(context.Background(), domain.User{ID: 1})
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
}

func TestClient_ListArtworks_StringAndNumberPrices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":3,"title":"Dune","price":"1500"},{"id":1,"title":"Cyber Punk City","price":2400}]`)
	})

	art, err := c.ListArtworks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(art) != 2 || art[0].Price.Display() != "$1500" || art[1].Price.Display() != "$2400" {
		t.Fatalf("unexpected artworks %+v", art)
	}
}

func TestClient_DeleteArtwork(t *testing.T) {
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.Method + " " + r.URL.Path
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	if err := c.DeleteArtwork(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "DELETE /api/art/7" {
		t.Fatalf("unexpected request %q", path)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	c := New("http://127.0.0.1:1/api", 200*time.Millisecond, zerolog.Nop())

	if _, err := c.ListArtworks(context.Background()); err == nil {
		t.Fatal("expected transport error")
	}
}

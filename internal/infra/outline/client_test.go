package outline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"vaultvpn-bot/internal/domain"
	"vaultvpn-bot/internal/domain/model"
)

func newTestServer(t *testing.T, failLimit bool) (*httptest.Server, *[]string) {
	t.Helper()
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/access-keys":
			var in struct {
				Name string `json:"name"`
			}
			_ = json.NewDecoder(r.Body).Decode(&in)
			if in.Name == "" {
				t.Errorf("create call missing owner label")
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"17","accessUrl":"ss://test-key@host:443"}`))
		case r.Method == http.MethodPut && r.URL.Path == "/access-keys/17/data-limit":
			if failLimit {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
			var in struct {
				Limit struct {
					Bytes int64 `json:"bytes"`
				} `json:"limit"`
			}
			_ = json.NewDecoder(r.Body).Decode(&in)
			if in.Limit.Bytes != 100<<30 {
				t.Errorf("expected quota %d bytes, got %d", int64(100)<<30, in.Limit.Bytes)
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	return srv, &calls
}

func TestClient_CreateKey(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("issues create then data-limit call pair", func(t *testing.T) {
		srv, calls := newTestServer(t, false)
		defer srv.Close()

		c, err := New(map[model.Region]string{model.RegionUS: srv.URL}, false, &logger)
		if err != nil {
			t.Fatalf("new client: %v", err)
		}
		key, err := c.CreateKey(ctx, model.RegionUS, "vault_7_us_test", 100<<30)
		if err != nil {
			t.Fatalf("create key: %v", err)
		}
		if key.AccessURL != "ss://test-key@host:443" || key.KeyID != "17" {
			t.Errorf("unexpected key: %+v", key)
		}
		if key.QuotaBytes != 100<<30 {
			t.Errorf("quota mismatch: %d", key.QuotaBytes)
		}
		want := []string{"POST /access-keys", "PUT /access-keys/17/data-limit"}
		if len(*calls) != 2 || (*calls)[0] != want[0] || (*calls)[1] != want[1] {
			t.Errorf("call sequence %v, want %v", *calls, want)
		}
	})

	t.Run("data-limit failure surfaces ErrProvisioning", func(t *testing.T) {
		srv, _ := newTestServer(t, true)
		defer srv.Close()

		c, _ := New(map[model.Region]string{model.RegionSG: srv.URL}, false, &logger)
		_, err := c.CreateKey(ctx, model.RegionSG, "vault_7_sg_test", 100<<30)
		if err == nil {
			t.Fatal("expected an error")
		}
		if !errors.Is(err, domain.ErrProvisioning) {
			t.Errorf("expected ErrProvisioning, got %v", err)
		}
	})

	t.Run("unconfigured region is rejected before any call", func(t *testing.T) {
		srv, calls := newTestServer(t, false)
		defer srv.Close()

		c, _ := New(map[model.Region]string{model.RegionUS: srv.URL}, false, &logger)
		_, err := c.CreateKey(ctx, model.RegionSG, "label", 1<<30)
		if !errors.Is(err, domain.ErrUnknownRegion) {
			t.Fatalf("expected ErrUnknownRegion, got %v", err)
		}
		if len(*calls) != 0 {
			t.Errorf("no HTTP call expected, saw %v", *calls)
		}
	})

	t.Run("empty endpoint set is rejected", func(t *testing.T) {
		if _, err := New(nil, false, &logger); err == nil {
			t.Fatal("expected config error")
		}
	})
}

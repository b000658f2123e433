package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid file with defaults filled", func(t *testing.T) {
		path := writeTempConfig(t, `
bot:
  token: "123:abc"
  admin_id: 777
provision:
  us_base_url: "https://us.example:32987/secret"
  sg_base_url: "https://sg.example:7127/secret"
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if cfg.Web.Port != 3000 {
			t.Errorf("default port = %d, want 3000", cfg.Web.Port)
		}
		if cfg.Runtime.ProofWindow != 5*time.Minute {
			t.Errorf("default proof window = %v", cfg.Runtime.ProofWindow)
		}
		if cfg.Provision.InsecureSkipVerify {
			t.Error("insecure TLS must default to off")
		}
	})

	t.Run("missing token is fatal", func(t *testing.T) {
		path := writeTempConfig(t, `
bot:
  admin_id: 777
provision:
  us_base_url: "https://us.example/secret"
  sg_base_url: "https://sg.example/secret"
`)
		if _, err := Load(path); err == nil {
			t.Fatal("expected error for missing bot token")
		}
	})

	t.Run("missing provisioning endpoint is fatal", func(t *testing.T) {
		path := writeTempConfig(t, `
bot:
  token: "123:abc"
  admin_id: 777
provision:
  us_base_url: "https://us.example/secret"
`)
		if _, err := Load(path); err == nil {
			t.Fatal("expected error for missing sg endpoint")
		}
	})

	t.Run("environment overlays file values", func(t *testing.T) {
		path := writeTempConfig(t, `
bot:
  token: "from-file"
  admin_id: 1
provision:
  us_base_url: "https://us.example/secret"
  sg_base_url: "https://sg.example/secret"
`)
		t.Setenv("BOT_TOKEN", "from-env")
		t.Setenv("ADMIN_ID", "999")
		t.Setenv("PORT", "8080")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if cfg.Bot.Token != "from-env" || cfg.Bot.AdminID != 999 || cfg.Web.Port != 8080 {
			t.Errorf("env overlay not applied: %+v", cfg.Bot)
		}
	})
}

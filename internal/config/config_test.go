package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHostNormalization(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"192.168.1.1", "192.168.1.1"},
		{"http://192.168.1.1", "192.168.1.1"},
		{"http://192.168.1.1/", "192.168.1.1"},
		{"https://attwifimanager/", "attwifimanager"},
	}
	for _, c := range cases {
		cfg := &AppConfig{URL: c.url}
		if got := cfg.Host(); got != c.want {
			t.Errorf("Host(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := &AppConfig{}
	if err := cfg.Validate(); err == nil || err.Error() != "Missing device URL" {
		t.Errorf("err = %v", err)
	}
	cfg.URL = "192.168.1.1"
	if err := cfg.Validate(); err == nil || err.Error() != "Missing password" {
		t.Errorf("err = %v", err)
	}
	cfg.Password = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("err = %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AIRCARD_URL", "192.168.5.1")
	t.Setenv("AIRCARD_PASSWORD", "hunter2")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.URL != "192.168.5.1" || cfg.Password != "hunter2" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aircardctl.yml")
	data := "url: 192.168.1.1\npassword: secret\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.URL != "192.168.1.1" || cfg.Password != "secret" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

package server

import (
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/models"
)

func TestListenAddrRemoteGuard(t *testing.T) {
	t.Run("allows loopback", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "")
		addr, err := ListenAddr("http://127.0.0.1:8080")
		if err != nil {
			t.Fatalf("expected loopback to be allowed, got error: %v", err)
		}
		if addr != "127.0.0.1:8080" {
			t.Fatalf("unexpected addr: %s", addr)
		}
	})

	t.Run("allows localhost host:port", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "")
		addr, err := ListenAddr("localhost:8080")
		if err != nil {
			t.Fatalf("expected localhost to be allowed, got error: %v", err)
		}
		if addr != "localhost:8080" {
			t.Fatalf("unexpected addr: %s", addr)
		}
	})

	t.Run("blocks non-loopback by default", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "")
		_, err := ListenAddr("http://0.0.0.0:8080")
		if err == nil {
			t.Fatal("expected error for non-loopback listen host")
		}
	})

	t.Run("allows non-loopback when explicitly enabled", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "true")
		addr, err := ListenAddr("http://0.0.0.0:8080")
		if err != nil {
			t.Fatalf("expected allow-remote to permit host, got error: %v", err)
		}
		if addr != "0.0.0.0:8080" {
			t.Fatalf("unexpected addr: %s", addr)
		}
	})

	t.Run("requires a url", func(t *testing.T) {
		if _, err := ListenAddr(""); err == nil {
			t.Fatal("expected error for empty listen url")
		}
	})
}

func TestNewAppliesDefaults(t *testing.T) {
	srv, err := New("127.0.0.1:0", Options{Config: config.Default()})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.templates == nil || srv.renderer == nil {
		t.Fatal("expected templates and renderer to be created")
	}
	if srv.now == nil {
		t.Fatal("expected a clock")
	}
	if srv.log() == nil {
		t.Fatal("expected a logger")
	}
	if got := srv.defaultTheme(); got != models.ThemeLight {
		t.Fatalf("unexpected default theme: %s", got)
	}
	if got := srv.relatedLimit(); got != config.DefaultRelatedLimit {
		t.Fatalf("unexpected related limit: %d", got)
	}
}

func TestDefaultThemeIgnoresInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Site.DefaultTheme = "sepia"
	srv, err := New("127.0.0.1:0", Options{Config: cfg})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if got := srv.defaultTheme(); got != models.ThemeLight {
		t.Fatalf("expected light fallback, got %s", got)
	}
}

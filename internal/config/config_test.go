package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func setupConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DEVJOBS_CONFIG_DIR", dir)
	t.Setenv("DEVJOBS_DEFAULT_LOCATION", "")
	t.Setenv("DEVJOBS_BASE_URL", "")
	t.Setenv("DEVJOBS_USER_AGENT", "")
	t.Setenv("DEVJOBS_PROXIES", "")
	return dir
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	setupConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{BaseURL: DefaultBaseURL}
	if cfg != want {
		t.Fatalf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoadJSON5File(t *testing.T) {
	dir := setupConfigDir(t)
	data := `{
  // comments and trailing commas are allowed
  default_location: "Austin, TX",
  base_url: "http://localhost:9000",
}`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultLocation != "Austin, TX" {
		t.Fatalf("DefaultLocation = %q", cfg.DefaultLocation)
	}
	if cfg.BaseURL != "http://localhost:9000" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := setupConfigDir(t)
	data := `{"default_location": "Austin, TX", "base_url": ""}`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DEVJOBS_DEFAULT_LOCATION", "Boston")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultLocation != "Boston" {
		t.Fatalf("DefaultLocation = %q, want Boston", cfg.DefaultLocation)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("BaseURL = %q, want default", cfg.BaseURL)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	dir := setupConfigDir(t)
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatalf("Load() error = nil, want error")
	}
}

func TestInitIsIdempotent(t *testing.T) {
	dir := setupConfigDir(t)

	created, err := Init()
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	want := []string{filepath.Join(dir, ConfigFileName), filepath.Join(dir, ProxiesFileName)}
	if !reflect.DeepEqual(created, want) {
		t.Fatalf("Init() = %v, want %v", created, want)
	}

	created, err = Init()
	if err != nil {
		t.Fatalf("Init() (2nd) error = %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("Init() (2nd) created %v", created)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestLoadProxies(t *testing.T) {
	dir := setupConfigDir(t)

	t.Run("flag wins", func(t *testing.T) {
		t.Setenv("DEVJOBS_PROXIES", "http://env:1")
		got, err := LoadProxies(" http://a:1 , ,http://b:2")
		if err != nil {
			t.Fatalf("LoadProxies() error = %v", err)
		}
		if !reflect.DeepEqual(got, []string{"http://a:1", "http://b:2"}) {
			t.Fatalf("LoadProxies() = %v", got)
		}
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("DEVJOBS_PROXIES", "http://env:1")
		got, err := LoadProxies("")
		if err != nil {
			t.Fatalf("LoadProxies() error = %v", err)
		}
		if !reflect.DeepEqual(got, []string{"http://env:1"}) {
			t.Fatalf("LoadProxies() = %v", got)
		}
	})

	t.Run("file skips comments", func(t *testing.T) {
		data := "# proxies\nhttp://file:1\n\n  http://file:2  \n"
		if err := os.WriteFile(filepath.Join(dir, ProxiesFileName), []byte(data), 0o644); err != nil {
			t.Fatalf("write proxies: %v", err)
		}
		got, err := LoadProxies("")
		if err != nil {
			t.Fatalf("LoadProxies() error = %v", err)
		}
		if !reflect.DeepEqual(got, []string{"http://file:1", "http://file:2"}) {
			t.Fatalf("LoadProxies() = %v", got)
		}
	})
}

package cli

import (
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "/home/ada")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/home/ada", ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestConfigFile(t *testing.T) {
	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"default", "", filepath.Join("/home/ada", ".config", appName, "config.toml")},
		{"xdg", "/etc/xdg", filepath.Join("/etc/xdg", appName, "config.toml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tt.xdg)
			t.Setenv("HOME", "/home/ada")
			got, err := configFile()
			if err != nil {
				t.Fatalf("configFile() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("configFile() = %q, want %q", got, tt.want)
			}
		})
	}
}

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/flowdiagram/pkg/cache"
)

func TestCachePath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	tests := []struct {
		name   string
		config string
		want   string
	}{
		{"file", fileCacheConfig(dir), dir},
		{"memory", memoryConfig, "(memory)"},
		{"disabled", "[cache]\nbackend = \"none\"\n", "(caching disabled)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, tt.config, "", "cache", "path")
			if r.err != nil {
				t.Fatal(r.err)
			}
			if got := strings.TrimSpace(r.out); got != tt.want {
				t.Errorf("cache path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCacheClear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	cfg := fileCacheConfig(dir)
	input := writeFile(t, t.TempDir(), "basic.yaml", basicYAML)

	if r := runCLI(t, cfg, "", "render", input); r.err != nil {
		t.Fatal(r.err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) == 0 {
		t.Fatal("render should populate the cache")
	}

	r := runCLI(t, cfg, "", "cache", "clear")
	if r.err != nil {
		t.Fatal(r.err)
	}
	if !strings.Contains(r.status, "Cleared cache") || !strings.Contains(r.status, dir) {
		t.Errorf("status = %q", r.status)
	}

	again := runCLI(t, cfg, "", "render", input)
	if again.err != nil {
		t.Fatal(again.err)
	}
	if !strings.Contains(again.status, iconFresh) {
		t.Errorf("render after clear should recompute:\n%s", again.status)
	}
}

func TestCacheLocation(t *testing.T) {
	if got := cacheLocation(cache.NewMemoryCache(), "memory"); got != "(memory)" {
		t.Errorf("memory location = %q", got)
	}
	if got := cacheLocation(cache.NewNullCache(), "none"); got != "(caching disabled)" {
		t.Errorf("null location = %q", got)
	}
}

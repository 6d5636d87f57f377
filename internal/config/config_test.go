package config

import "testing"

func TestLoadPaths(t *testing.T) {
	cfg, err := Load([]string{"-r", "a.jpg", "b.jpg"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Recursive || len(cfg.Paths) != 2 || cfg.Paths[0] != "a.jpg" {
		t.Fatalf("got %+v", cfg)
	}
}

func TestLoadNoInput(t *testing.T) {
	if _, err := Load(nil); err == nil {
		t.Fatalf("expected an error")
	}
	if _, err := Load([]string{"-demo"}); err != nil {
		t.Fatalf("demo mode needs no paths: %v", err)
	}
	if _, err := Load([]string{"-version"}); err != nil {
		t.Fatalf("version needs no paths: %v", err)
	}
}

func TestLoadTheme(t *testing.T) {
	cfg, err := Load([]string{"-theme", "light", "a.jpg"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != ThemeLight {
		t.Fatalf("got %q", cfg.Theme)
	}
	if _, err := Load([]string{"-theme", "solarized", "a.jpg"}); err == nil {
		t.Fatalf("unknown theme must fail")
	}
}

func TestLoadExport(t *testing.T) {
	if _, err := Load([]string{"-export", "csv", "a.jpg"}); err == nil {
		t.Fatalf("export without out must fail")
	}
	if _, err := Load([]string{"-export", "yaml", "-out", "x", "a.jpg"}); err == nil {
		t.Fatalf("unknown format must fail")
	}
	cfg, err := Load([]string{"-export", "json", "-out", "x.ndjson", "a.jpg"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ExportFormat != "json" || cfg.ExportOut != "x.ndjson" {
		t.Fatalf("got %+v", cfg)
	}
}

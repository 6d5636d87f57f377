package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type Config struct {
	Paths        []string
	Recursive    bool
	ExiftoolBin  string
	Theme        Theme
	SaveDir      string
	ExportFormat string
	ExportOut    string
	Demo         bool
	ShowVersion  bool
}

func Load(args []string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("exiftui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fs.BoolVar(&cfg.Recursive, "r", false, "scan directories recursively (skips the prompt)")
	fs.StringVar(&cfg.ExiftoolBin, "exiftool", getenvDefault("EXIFTUI_EXIFTOOL", "exiftool"), "exiftool binary to run")
	theme := string(ThemeDark)
	fs.StringVar(&theme, "theme", string(ThemeDark), "theme: dark|light")
	fs.StringVar(&cfg.SaveDir, "save-dir", "", "directory for extracted binary payloads (default: Downloads)")
	fs.StringVar(&cfg.ExportFormat, "export", "", "export the tag listing and exit: csv|json")
	fs.StringVar(&cfg.ExportOut, "out", "", "output path for export")
	fs.BoolVar(&cfg.Demo, "demo", false, "browse a bundled sample instead of running exiftool")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch Theme(theme) {
	case ThemeDark, ThemeLight:
		cfg.Theme = Theme(theme)
	default:
		return nil, fmt.Errorf("unknown theme %q", theme)
	}
	cfg.Paths = fs.Args()

	if cfg.ExportFormat != "" && cfg.ExportOut == "" {
		return nil, errors.New("--export requires --out path")
	}
	switch cfg.ExportFormat {
	case "", "csv", "json":
	default:
		return nil, fmt.Errorf("unknown export format %q", cfg.ExportFormat)
	}
	if len(cfg.Paths) == 0 && !cfg.Demo && !cfg.ShowVersion {
		return nil, errors.New("no input files; pass one or more paths or use --demo")
	}

	return cfg, nil
}

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func (c *Config) String() string {
	return fmt.Sprintf("paths=%v recursive=%v theme=%s demo=%v", c.Paths, c.Recursive, c.Theme, c.Demo)
}

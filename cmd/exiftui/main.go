package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"exiftui/internal/config"
	"exiftui/internal/exiftool"
	"exiftui/internal/export"
	"exiftui/internal/model"
	"exiftui/internal/ui"
	"exiftui/internal/util/logx"
	"exiftui/internal/version"
)

func main() {
	logx.SetLevelFromEnv()
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Println(version.String())
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.ExportFormat != "" {
		if err := runExport(ctx, cfg); err != nil {
			fmt.Fprintln(os.Stderr, "export error:", err)
			os.Exit(1)
		}
		return
	}

	logx.Infof("starting %s: %s", version.String(), cfg.String())
	if err := ui.Run(ctx, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		logx.Errorf("exited with error: %v", err)
		if dump := logx.Dump(); dump != "" {
			fmt.Fprintln(os.Stderr, dump)
		}
		os.Exit(1)
	}
}

// runExport extracts metadata and writes it straight to a file without
// starting the interface.
func runExport(ctx context.Context, cfg *config.Config) error {
	var files []model.FileEntrySet
	var err error
	if cfg.Demo {
		files, err = exiftool.Demo()
	} else {
		runner := exiftool.Runner{Bin: cfg.ExiftoolBin}
		files, err = runner.Run(ctx, cfg.Paths, cfg.Recursive)
	}
	if err != nil {
		return err
	}
	for fi := range files {
		entries := make([]*model.Entry, 0, len(files[fi].Entries))
		for i := range files[fi].Entries {
			entries = append(entries, &files[fi].Entries[i])
		}
		out := cfg.ExportOut
		if len(files) > 1 {
			out = fmt.Sprintf("%s.%d", cfg.ExportOut, fi)
		}
		switch cfg.ExportFormat {
		case "csv":
			err = export.ToCSV(out, files[fi].Path, entries)
		case "json":
			err = export.ToNDJSON(out, files[fi].Path, entries)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

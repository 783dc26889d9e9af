package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/ats-scorer/internal/ingestion"
	"github.com/jonathan/ats-scorer/internal/logger"
)

// resolve returns the flag value, falling back to the config file value.
func resolve(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

// readResume extracts and normalizes the résumé at path.
func readResume(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("--resume is required")
	}
	text, _, err := ingestion.IngestFromFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read résumé: %w", err)
	}
	return text, nil
}

// readJob loads the job description from a file or a URL.
func (a *app) readJob(ctx context.Context, path, url string) (string, error) {
	path = resolve(path, a.cfg.Job)
	url = resolve(url, a.cfg.JobURL)

	switch {
	case path == "" && url == "":
		return "", fmt.Errorf("either --job or --job-url must be provided")
	case path != "" && url != "":
		return "", fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	case path != "":
		text, _, err := ingestion.IngestFromFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return text, nil
	default:
		text, _, err := ingestion.IngestJobURL(ctx, url, ingestion.URLOptions{
			UseBrowser: a.cfg.UseBrowser,
			Logger:     logger.Component(a.logger, "ingestion"),
		})
		if err != nil {
			return "", fmt.Errorf("failed to ingest from URL: %w", err)
		}
		return text, nil
	}
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')
	if path == "" {
		_, err = w.Write(jsonBytes)
		return err
	}
	return writeFile(path, jsonBytes)
}

// writeFile writes data to path, creating the parent directory.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

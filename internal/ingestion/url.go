package ingestion

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/ats-scorer/internal/fetch"
	"go.uber.org/zap"
)

// URLOptions configures IngestJobURL.
type URLOptions struct {
	// UseBrowser enables the headless-browser fallback for client-rendered pages.
	UseBrowser bool
	// BrowserTimeout bounds the browser fallback. Zero means 30 seconds.
	BrowserTimeout time.Duration
	Fetch          *fetch.Options
	Logger         *zap.Logger
}

// IngestJobURL fetches a job posting, extracts its main text with
// platform-specific selectors, and normalizes it.
func IngestJobURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	platform := fetch.DetectPlatform(urlStr)
	logger.Debug("fetching job posting", zap.String("url", urlStr), zap.String("platform", string(platform)))

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		timeout := opts.BrowserTimeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		logger.Info("page text too short, rendering with browser",
			zap.Int("chars", len(text)), zap.Int("min_chars", fetch.MinContentLength))

		rendered, browserErr := fetch.WithBrowser(ctx, urlStr, timeout, logger)
		if browserErr != nil {
			logger.Warn("browser rendering failed, keeping HTTP content", zap.Error(browserErr))
		} else if browserText, extractErr := fetch.ExtractMainText(rendered, contentSelectors, noiseSelectors...); extractErr == nil {
			text = browserText
		} else {
			logger.Warn("browser content extraction failed", zap.Error(extractErr))
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: page has no text", ErrContentExtractionFailed)
	}

	metadata := NewMetadata(cleaned, urlStr)
	metadata.Format = "html"
	metadata.Platform = string(platform)

	return cleaned, metadata, nil
}

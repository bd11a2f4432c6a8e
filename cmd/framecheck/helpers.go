package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/framecheck/framecheck/internal/config"
	"github.com/framecheck/framecheck/internal/engine"
	"github.com/framecheck/framecheck/internal/extract"
	"github.com/framecheck/framecheck/internal/storage"
	"github.com/spf13/viper"
)

// newExtractor builds the extraction adapter from config, or returns nil
// when no provider is configured. Commands that only run local computation
// never need one.
func newExtractor() (*extract.Extractor, error) {
	provider := viper.GetString("extraction.provider")
	if provider == "" {
		return nil, nil
	}

	cfg := extract.Config{
		Provider:    provider,
		APIKey:      viper.GetString("extraction.api_key"),
		Model:       viper.GetString("extraction.model"),
		MaxRetries:  viper.GetInt("extraction.max_retries"),
		RetryDelay:  viper.GetInt("extraction.retry_delay"),
		CacheTTL:    viper.GetInt("extraction.cache_ttl"),
		RateLimit:   viper.GetInt("extraction.rate_limit"),
		Temperature: viper.GetFloat64("extraction.temperature"),
		MaxTokens:   viper.GetInt("extraction.max_tokens"),
	}
	if cfg.APIKey == "" {
		// Fall back to the provider's conventional environment variable.
		switch strings.ToLower(provider) {
		case "anthropic":
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "openai":
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	extractor, err := extract.NewExtractor(cfg, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to configure extraction: %w", err)
	}
	return extractor, nil
}

// newInterpreter wires the pipeline. The extractor doubles as the explainer
// when one is configured.
func newInterpreter() (*engine.Interpreter, func(), error) {
	extractor, err := newExtractor()
	if err != nil {
		return nil, nil, err
	}

	cfg := engine.DefaultConfig()
	if threshold := viper.GetFloat64("confidence.low_threshold"); threshold > 0 {
		cfg.LowConfidenceThreshold = threshold
	}
	if timeout := viper.GetDuration("extraction.timeout"); timeout > 0 {
		cfg.ExtractTimeout = timeout
	}
	if timeout := viper.GetDuration("explanation.timeout"); timeout > 0 {
		cfg.ExplainTimeout = timeout
	}

	cleanup := func() {}
	var interpreter *engine.Interpreter
	if extractor != nil {
		interpreter = engine.NewWithConfig(extractor, extractor, slog.Default(), cfg)
		cleanup = extractor.Close
	} else {
		interpreter = engine.NewWithConfig(nil, nil, slog.Default(), cfg)
	}
	return interpreter, cleanup, nil
}

// openStorage opens the history database at the configured path.
func openStorage() (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/framecheck/framecheck.db"
	}
	dbPath = config.ExpandPath(dbPath)

	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// readFrameArg resolves a --frame argument: inline JSON, or @path to read a file.
func readFrameArg(arg string) ([]byte, error) {
	if arg == "" {
		return nil, nil
	}
	if strings.HasPrefix(arg, "@") {
		data, err := os.ReadFile(config.ExpandPath(arg[1:]))
		if err != nil {
			return nil, fmt.Errorf("failed to read frame file: %w", err)
		}
		return data, nil
	}
	return []byte(arg), nil
}

func formatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

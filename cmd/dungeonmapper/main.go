// Package main is the entry point for the DungeonMapper editor.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/dungeonmapper/internal/config"
	"github.com/samdwyer/dungeonmapper/internal/editor"
	"github.com/samdwyer/dungeonmapper/internal/telemetry"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	if cfg.Telemetry {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx, cfg.ServiceName)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Editor will run without tracing")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	var path string
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	e, err := editor.New(ctx, cfg, path)
	if err != nil {
		log.Fatalf("Failed to start editor: %v", err)
	}

	if err := e.Run(ctx); err != nil {
		log.Fatalf("Editor error: %v", err)
	}
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is
// configured. Explicit OTEL_* settings are left alone.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_DUNGEONMAPPER_API_KEY")
	if apiKey == "" {
		return
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	dataset := os.Getenv("HONEYCOMB_DUNGEONMAPPER_DATASET")
	if dataset == "" {
		dataset = "dungeonmapper"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}

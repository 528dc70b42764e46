package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inkwell-labs/content-guard/backend/internal/audit"
	"github.com/inkwell-labs/content-guard/backend/internal/config"
	"github.com/inkwell-labs/content-guard/backend/internal/gate"
	"github.com/inkwell-labs/content-guard/backend/internal/httpapi"
	"github.com/inkwell-labs/content-guard/backend/internal/metrics"
	"github.com/inkwell-labs/content-guard/backend/internal/oracle"
	"github.com/inkwell-labs/content-guard/backend/internal/privacy"
	"github.com/inkwell-labs/content-guard/backend/internal/provider"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger
	logger := log.New(os.Stdout, "[content-guard] ", log.LstdFlags|log.Lshortfile)

	// Load configuration
	cfg := config.Load()
	logger.Println("Configuration loaded")

	// Optional AI oracle
	var assessor privacy.Assessor
	if cfg.Oracle.Enabled {
		var p provider.Provider
		if cfg.Oracle.Type == "ollama" {
			p = provider.NewOllamaProvider(cfg.Oracle.BaseURL, cfg.Oracle.Timeout)
		} else {
			p = provider.NewOpenAIProvider(cfg.Oracle.BaseURL, cfg.Oracle.APIKey, cfg.Oracle.Timeout)
		}
		assessor = oracle.NewClient(p, cfg.Oracle.Model, logger)
		logger.Printf("Oracle: %s (%s, model %s)", p.Name(), cfg.Oracle.BaseURL, cfg.Oracle.Model)
	} else {
		logger.Println("Oracle: disabled, pattern-only analysis")
	}

	// Privacy engine
	engine := privacy.NewEngine(assessor, cfg.Privacy.FilterEnabled, logger)
	logger.Printf("Privacy filter enabled by default: %v", cfg.Privacy.FilterEnabled)

	// Publish gate (optional: skipped when no policy path is configured)
	var gateEngine *gate.Engine
	if cfg.Gate.PolicyPath != "" {
		var err error
		gateEngine, err = gate.NewEngineWithLogger(cfg.Gate.PolicyPath, logger)
		if err != nil {
			logger.Fatalf("Failed to initialize publish gate: %v", err)
		}
		if cfg.Gate.WatchChanges {
			if err := gateEngine.StartHotReload(); err != nil {
				logger.Printf("[WARN] Policy hot-reload unavailable: %v", err)
			}
		}
		logger.Printf("Publish gate: %s (v%s)", cfg.Gate.PolicyPath, gateEngine.PolicyVersion())
	}

	// Audit trail
	auditLogger, err := audit.NewLogger(cfg.Logging.AuditPath)
	if err != nil {
		logger.Fatalf("Failed to open audit log: %v", err)
	}
	defer auditLogger.Close()

	metrics.Init()

	// Create handler config
	hc := &httpapi.HandlerConfig{
		Config: cfg,
		Engine: engine,
		Gate:   gateEngine,
		Audit:  auditLogger,
		Logger: logger,
	}

	// Setup routes
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"content-guard"}`))
	})

	http.HandleFunc("/api/analyze", httpapi.AnalyzeHandler(hc))
	http.HandleFunc("/api/filter", httpapi.FilterHandler(hc))
	http.HandleFunc("/api/check", httpapi.CheckHandler(hc))
	http.HandleFunc("/api/suggestions", httpapi.SuggestionsHandler(hc))

	// Metrics endpoint (Prometheus)
	if cfg.Metrics.Enabled {
		http.Handle(cfg.Metrics.Endpoint, promhttp.Handler())
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Println("=================================")
	logger.Println("Content Guard Starting")
	logger.Println("=================================")
	logger.Printf("Server: http://%s", addr)
	logger.Println("=================================")

	server := &http.Server{
		Addr:         addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	if err := server.ListenAndServe(); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
}

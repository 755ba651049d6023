// cmd/mcp-server/main.go: HTTP tool server for minimaple
//
// Exposes the minimaple tools as an HTTP endpoint for agent frameworks.
//
// Usage:
//
//	go run ./cmd/mcp-server --addr :8080 [--config minimaple.toml]
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/njchilds90/minimaple"
	"github.com/njchilds90/minimaple/internal/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "mcp-server:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("mcp-server", pflag.ContinueOnError)
	addr := flags.String("addr", "", "address to listen on (overrides server.addr)")
	configPath := flags.String("config", "", "path to "+config.FileName)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	d := minimaple.New(append(cfg.PipelineOptions(), minimaple.WithLogger(logger))...)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(d, cfg.Server.MaxBodyBytes, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout.Duration,
		WriteTimeout:      cfg.Server.WriteTimeout.Duration,
		IdleTimeout:       60 * time.Second,
	}
	logger.Info("minimaple MCP server listening", zap.String("addr", srv.Addr))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serving")
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "working directory")
	}
	cfg, _, err := config.FindAndLoad(wd)
	return cfg, err
}

func newRouter(d *minimaple.Differentiator, maxBodyBytes int64, logger *zap.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(recoverMiddleware(logger))

	// POST /tool: handle a tool call
	r.HandleFunc("/tool", func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		defer r.Body.Close()

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req minimaple.ToolRequest
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if dec.More() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
			return
		}

		resp := d.HandleToolCall(req)
		logger.Debug("tool call", zap.String("tool", req.Tool), zap.String("error", resp.Error))
		writeJSON(w, http.StatusOK, resp)
	}).Methods(http.MethodPost)

	// GET /schema: tool schema for agent registration
	r.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, minimaple.ToolSpec())
	}).Methods(http.MethodGet)

	// GET /health: liveness check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods(http.MethodGet)

	return r
}

func recoverMiddleware(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic in handler",
						zap.String("path", r.URL.Path),
						zap.Any("panic", rec),
						zap.ByteString("stack", debug.Stack()))
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

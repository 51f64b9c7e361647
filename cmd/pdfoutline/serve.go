package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klippa-app/go-pdfium"
	"github.com/urfave/cli/v3"

	pdfoutline "github.com/Shreyash-Thakur/Team-Miraculously-1a"
)

// maxUploadBytes caps the size of an uploaded PDF.
const maxUploadBytes = 64 << 20

type server struct {
	pool pdfium.Pool
	log  *slog.Logger
}

func runServe(_ context.Context, cmd *cli.Command) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	pool, err := pdfoutline.NewPdfiumPool()
	if err != nil {
		return fmt.Errorf("failed to initialise pdfium: %w", err)
	}
	defer pool.Close()

	s := &server{pool: pool, log: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", s.handleHealth)
	r.Post("/api/outline", s.handleOutline)

	addr := cmd.String("addr")
	logger.Info("listening", "addr", addr)

	return http.ListenAndServe(addr, r)
}

// requestLogger logs each request with method, path, status and duration.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).String(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleOutline accepts a multipart upload under the "file" field and
// responds with the extracted title and outline as JSON.
func (s *server) handleOutline(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing file field"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read upload"})
		return
	}

	instance, err := s.pool.GetInstance(time.Second * 30)
	if err != nil {
		s.log.Error("failed to get pdfium instance", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "extractor unavailable"})
		return
	}
	defer instance.Close()

	result, err := pdfoutline.NewExtractor(instance).ExtractBytes(data)
	if err != nil {
		s.log.Error("extraction failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	if result.Outline == nil {
		result.Outline = []pdfoutline.OutlineEntry{}
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

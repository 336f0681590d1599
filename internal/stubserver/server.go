// Package stubserver is a stand-in for the recipe backend with canned replies.
package stubserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/lepinkainen/recipe-forge/internal/recipe"
	"github.com/lepinkainen/recipe-forge/pkg/api"
)

const maxUploadBytes = 32 << 20

// SampleRecord is returned by every endpoint unless Options.Record is set
var SampleRecord = recipe.Record{
	Title:       "Shakshuka",
	Intro:       "Eggs poached in a spiced tomato and pepper sauce.",
	Ingredients: "4 eggs, 400 g tomatoes, 1 bell pepper, 1 onion, 2 cloves garlic, cumin, paprika",
	Recipe:      `1. Soften onion and pepper in oil.\n2. Add garlic, spices and tomatoes; simmer 10 minutes.\n3. Make wells, crack in the eggs, cover until set.`,
	Proteins:    14,
	Fats:        11.5,
	Carbs:       12,
	Calories:    210,
}

// Options configure the stand-in backend
type Options struct {
	// Record is the recipe every endpoint answers with
	Record *recipe.Record
	// FailStatus, when non-zero, makes every endpoint reply with this status
	FailStatus int
}

type handler struct {
	fenced string
	opts   Options
}

// NewRouter returns a router serving the four upload endpoints and /health
func NewRouter(opts Options) (*mux.Router, error) {
	rec := SampleRecord
	if opts.Record != nil {
		rec = *opts.Record
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sample recipe: %w", err)
	}
	h := &handler{fenced: "```json\n" + string(data) + "\n```", opts: opts}

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "OK\n")
	}).Methods(http.MethodGet)

	r.HandleFunc(api.PathImage, h.image).Methods(http.MethodPost)
	r.HandleFunc(api.PathAudio, h.audio).Methods(http.MethodPost)
	r.HandleFunc(api.PathText, h.text).Methods(http.MethodPost)
	r.HandleFunc(api.PathDaily, h.daily).Methods(http.MethodPost)

	r.Use(h.failMiddleware, logMiddleware)
	return r, nil
}

func (h *handler) failMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.opts.FailStatus != 0 && r.URL.Path != "/health" {
			writeError(w, h.opts.FailStatus, http.StatusText(h.opts.FailStatus))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("Stub request", "method", r.Method, "path", r.URL.Path,
			"request_id", r.Header.Get("X-Request-ID"), "duration", time.Since(start))
	})
}

// image replies with the fenced recipe as plain text
func (h *handler) image(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, _, err := r.FormFile(api.FieldImage)
	legacy := false
	if err != nil {
		// legacy clients send the photo as "file"
		file, _, err = r.FormFile(api.FieldFile)
		legacy = true
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image part")
		return
	}
	file.Close()

	if legacy {
		writeJSON(w, map[string]string{"response": h.fenced})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, h.fenced)
}

func (h *handler) audio(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile(api.FieldAudio)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing audio part")
		return
	}
	file.Close()

	writeJSON(w, map[string]string{
		"transcription": fmt.Sprintf("voice note %s (%d bytes)", header.Filename, header.Size),
		"recipe":        h.fenced,
	})
}

func (h *handler) text(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	text := r.FormValue(api.FieldText)
	if text == "" {
		writeError(w, http.StatusBadRequest, "empty text")
		return
	}

	writeJSON(w, map[string]string{
		"transcription": text,
		"recipe":        h.fenced,
	})
}

func (h *handler) daily(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"recipe": h.fenced})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// ListenAndServe runs the stand-in backend until ctx is cancelled
func ListenAndServe(ctx context.Context, addr string, opts Options) error {
	router, err := NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Stub backend listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

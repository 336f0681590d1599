// Package upload submits photos, voice notes and questions and maps the replies
// to display states.
package upload

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lepinkainen/recipe-forge/internal/recipe"
	"github.com/lepinkainen/recipe-forge/pkg/api"
)

// Uploader is the subset of *api.Client used here
type Uploader interface {
	UploadImage(ctx context.Context, imagePath, caption string) api.Result
	UploadAudio(ctx context.Context, audioPath string) api.Result
	UploadText(ctx context.Context, text string) api.Result
	UploadLegacy(ctx context.Context, imagePath string) api.Result
}

// Options tweak how replies are handled
type Options struct {
	// Raw forwards reply bodies as text instead of decoding them
	Raw bool
}

// Service runs one upload per call. It never retries.
type Service struct {
	client Uploader
	opts   Options
}

// NewService creates an upload service
func NewService(client Uploader, opts Options) *Service {
	return &Service{client: client, opts: opts}
}

// Photo uploads a food photo with an optional caption
func (s *Service) Photo(ctx context.Context, path, caption string) recipe.Display {
	slog.Info("Uploading photo", "path", path, "caption", caption != "")
	return s.finish("photo", s.client.UploadImage(ctx, path, caption), recipe.ParseLoose)
}

// PhotoLegacy uploads a photo through the first version of the image endpoint,
// which takes no caption and wraps its reply in {"response": ...}.
func (s *Service) PhotoLegacy(ctx context.Context, path string) recipe.Display {
	slog.Info("Uploading photo (legacy)", "path", path)
	return s.finish("photo_legacy", s.client.UploadLegacy(ctx, path), recipe.ParseLoose)
}

// Voice uploads a recorded voice note
func (s *Service) Voice(ctx context.Context, path string) recipe.Display {
	slog.Info("Uploading voice note", "path", path)
	return s.finish("voice", s.client.UploadAudio(ctx, path), recipe.ParseEnvelope)
}

// Ask sends a typed question. Blank text is rejected locally.
func (s *Service) Ask(ctx context.Context, text string) recipe.Display {
	if strings.TrimSpace(text) == "" {
		err := &api.UploadError{Kind: api.KindPrecondition, Cause: api.ErrEmptyText}
		slog.Warn("Rejected question", "error", err)
		return recipe.Failed(err.Message())
	}

	slog.Info("Sending question", "length", len(text))
	return s.finish("text", s.client.UploadText(ctx, text), recipe.ParseEnvelope)
}

func (s *Service) finish(kind string, result api.Result, parse func(string) recipe.Display) recipe.Display {
	if !result.OK() {
		slog.Error("Upload failed", "kind", kind, "error_kind", result.Err.Kind, "error", result.Err)
		return recipe.Failed(result.Message())
	}

	if s.opts.Raw {
		return recipe.Text(result.Body)
	}

	display := parse(result.Body)
	slog.Debug("Upload finished", "kind", kind, "display", display.Kind)
	return display
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	httputil "github.com/lepinkainen/recipe-forge/pkg/http"
	"github.com/lepinkainen/recipe-forge/pkg/urlutils"
)

// DefaultBaseURL is the production recipe backend
const DefaultBaseURL = "https://recipe.glubina.org"

// Endpoint paths relative to the base URL
const (
	PathImage = "/upload"
	PathAudio = "/upload_audio"
	PathText  = "/upload_text"
	PathDaily = "/upload_daily_recipe"
)

// Multipart part names and media types
const (
	FieldImage   = "image"
	FieldCaption = "caption"
	FieldAudio   = "audio"
	FieldText    = "text"
	FieldFile    = "file"

	ImageContentType = "image/jpeg"
	AudioContentType = "audio/mp4"
)

// noLegacyData is returned when a legacy reply lacks the "response" key
const noLegacyData = "no data in server response"

// Endpoints holds the absolute URLs of the backend operations
type Endpoints struct {
	Image string
	Audio string
	Text  string
	Daily string
}

// NewEndpoints resolves the fixed endpoint paths against baseURL
func NewEndpoints(baseURL string) (Endpoints, error) {
	if !urlutils.IsValidURL(baseURL) {
		return Endpoints{}, fmt.Errorf("invalid base URL: %q", baseURL)
	}

	var e Endpoints
	targets := []struct {
		path string
		dst  *string
	}{
		{PathImage, &e.Image},
		{PathAudio, &e.Audio},
		{PathText, &e.Text},
		{PathDaily, &e.Daily},
	}
	for _, target := range targets {
		resolved, err := urlutils.ResolveURL(baseURL, target.path)
		if err != nil {
			return Endpoints{}, fmt.Errorf("failed to resolve %s: %w", target.path, err)
		}
		*target.dst = resolved
	}

	return e, nil
}

// Poster is the transport used by Client. *httputil.Client satisfies it.
type Poster interface {
	PostMultipart(ctx context.Context, url string, form *httputil.Form) (*httputil.Response, error)
}

// Client talks to the recipe backend. Calls are independent and safe to run concurrently.
type Client struct {
	http      Poster
	endpoints Endpoints
}

// NewClient creates a backend client using the given transport and endpoints
func NewClient(poster Poster, endpoints Endpoints) *Client {
	return &Client{
		http:      poster,
		endpoints: endpoints,
	}
}

// Endpoints returns the resolved endpoint URLs
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// UploadImage sends a photo with an optional caption.
// The backend answers with the recipe text itself, not a JSON envelope.
func (c *Client) UploadImage(ctx context.Context, imagePath, caption string) Result {
	slog.Debug("Sending image to server", "path", imagePath)

	if err := checkFile(imagePath, false); err != nil {
		return Failure(preconditionError(err))
	}

	form := httputil.NewForm().AddFile(FieldImage, imagePath, ImageContentType)
	if strings.TrimSpace(caption) != "" {
		form.AddField(FieldCaption, caption)
	}

	return c.send(ctx, c.endpoints.Image, form)
}

// UploadAudio sends a recorded voice note
func (c *Client) UploadAudio(ctx context.Context, audioPath string) Result {
	slog.Debug("Sending audio to server", "path", audioPath)

	if err := checkFile(audioPath, true); err != nil {
		return Failure(preconditionError(err))
	}

	form := httputil.NewForm().AddFile(FieldAudio, audioPath, AudioContentType)
	return c.send(ctx, c.endpoints.Audio, form)
}

// UploadText sends a typed question. Empty text asks for the daily recipe instead.
func (c *Client) UploadText(ctx context.Context, text string) Result {
	slog.Debug("Sending text to server", "length", len(text))

	url := c.endpoints.Text
	if text == "" {
		url = c.endpoints.Daily
	}

	form := httputil.NewForm().AddField(FieldText, text)
	return c.send(ctx, url, form)
}

// FetchDaily asks the backend for the recipe of the day
func (c *Client) FetchDaily(ctx context.Context) Result {
	return c.UploadText(ctx, "")
}

// UploadLegacy sends a photo under the "file" part and unwraps the {"response": ...} reply
// used by the first version of the upload endpoint.
func (c *Client) UploadLegacy(ctx context.Context, imagePath string) Result {
	if err := checkFile(imagePath, false); err != nil {
		return Failure(preconditionError(err))
	}

	form := httputil.NewForm().AddFile(FieldFile, imagePath, ImageContentType)
	result := c.send(ctx, c.endpoints.Image, form)
	if !result.OK() {
		return result
	}

	var reply map[string]any
	if err := json.Unmarshal([]byte(result.Body), &reply); err != nil {
		return Failure(transportError(fmt.Errorf("failed to decode json response: %w", err)))
	}

	value, ok := reply["response"]
	if !ok || value == nil {
		return Success(noLegacyData)
	}
	if s, isString := value.(string); isString {
		return Success(s)
	}
	return Success(fmt.Sprint(value))
}

// send performs one multipart POST and classifies the outcome
func (c *Client) send(ctx context.Context, url string, form *httputil.Form) Result {
	resp, err := c.http.PostMultipart(ctx, url, form)
	if err != nil {
		slog.Error("Upload failed", "url", url, "error", err)
		// the file can vanish or lose permissions between checkFile and encoding
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return Failure(preconditionError(ErrFileNotFound))
		case errors.Is(err, fs.ErrPermission):
			return Failure(preconditionError(ErrUnreadable))
		}
		return Failure(transportError(err))
	}

	if err := httputil.EnsureSuccess(resp); err != nil {
		slog.Error("Server error", "url", url, "status", resp.StatusCode, "request_id", resp.RequestID)
		return Failure(statusError(resp.StatusCode, resp.Body))
	}

	slog.Debug("Server response received", "url", url, "bytes", len(resp.Body), "request_id", resp.RequestID)
	return Success(string(resp.Body))
}

// checkFile validates a media file before it is uploaded
func checkFile(path string, requireContent bool) error {
	if path == "" {
		return ErrFileNotFound
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrFileNotFound
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return ErrFileNotFound
	}
	if requireContent && info.Size() == 0 {
		return ErrEmptyFile
	}

	file, err := os.Open(path)
	if err != nil {
		slog.Warn("Media file is not readable", "path", path, "error", err)
		return ErrUnreadable
	}
	return file.Close()
}

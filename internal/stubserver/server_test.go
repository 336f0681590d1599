package stubserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lepinkainen/recipe-forge/internal/recipe"
	"github.com/lepinkainen/recipe-forge/pkg/api"
	httputil "github.com/lepinkainen/recipe-forge/pkg/http"
)

func newStub(t *testing.T, opts Options) (*api.Client, string) {
	t.Helper()

	router, err := NewRouter(opts)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	endpoints, err := api.NewEndpoints(server.URL)
	if err != nil {
		t.Fatalf("NewEndpoints() error = %v", err)
	}
	return api.NewClient(httputil.NewClient(nil), endpoints), server.URL
}

func tempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestEndpointsRoundTrip(t *testing.T) {
	client, _ := newStub(t, Options{})
	ctx := context.Background()

	tests := []struct {
		name  string
		call  func() api.Result
		parse func(string) recipe.Display
	}{
		{name: "image", call: func() api.Result { return client.UploadImage(ctx, tempFile(t, "a.jpg", "jpeg"), "lunch") }, parse: recipe.ParseLoose},
		{name: "audio", call: func() api.Result { return client.UploadAudio(ctx, tempFile(t, "a.m4a", "aac")) }, parse: recipe.ParseEnvelope},
		{name: "text", call: func() api.Result { return client.UploadText(ctx, "eggs and tomatoes") }, parse: recipe.ParseEnvelope},
		{name: "daily", call: func() api.Result { return client.FetchDaily(ctx) }, parse: recipe.ParseEnvelope},
		{name: "legacy", call: func() api.Result { return client.UploadLegacy(ctx, tempFile(t, "b.jpg", "jpeg")) }, parse: recipe.ParseLoose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.call()
			if !result.OK() {
				t.Fatalf("call failed: %s", result.Message())
			}
			display := tt.parse(result.Body)
			if !display.IsReady() {
				t.Fatalf("display kind = %v, body %q", display.Kind, result.Body)
			}
			if display.Record != SampleRecord {
				t.Errorf("record = %+v", display.Record)
			}
		})
	}
}

func TestCustomRecord(t *testing.T) {
	rec := recipe.Record{Title: "Tea", Ingredients: "none", Recipe: "none"}
	client, _ := newStub(t, Options{Record: &rec})

	display := recipe.ParseEnvelope(client.FetchDaily(context.Background()).Body)
	if display.Record != rec {
		t.Errorf("record = %+v, want %+v", display.Record, rec)
	}
}

func TestFailStatus(t *testing.T) {
	client, baseURL := newStub(t, Options{FailStatus: http.StatusInternalServerError})

	result := client.UploadText(context.Background(), "hi")
	if result.OK() || !strings.Contains(result.Message(), "500") {
		t.Errorf("result = %+v", result)
	}

	resp, err := http.Get(baseURL + "/health")
	if err != nil {
		t.Fatalf("GET /health error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/health status = %d, want 200 even when failing", resp.StatusCode)
	}
}

func TestMissingParts(t *testing.T) {
	_, baseURL := newStub(t, Options{})

	tests := []struct {
		path    string
		wantErr string
	}{
		{path: api.PathImage, wantErr: "missing image part"},
		{path: api.PathAudio, wantErr: "missing audio part"},
		{path: api.PathText, wantErr: "empty text"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			body, contentType, err := httputil.NewForm().AddField("other", "x").Encode()
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			resp, err := http.Post(baseURL+tt.path, contentType, body)
			if err != nil {
				t.Fatalf("POST error = %v", err)
			}
			defer resp.Body.Close()

			data, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if !strings.Contains(string(data), tt.wantErr) {
				t.Errorf("body = %q, want %q", data, tt.wantErr)
			}
		})
	}
}

func TestListenAndServeStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ListenAndServe(ctx, "127.0.0.1:0", Options{}) }()

	cancel()
	if err := <-done; err != nil {
		t.Errorf("ListenAndServe() error = %v", err)
	}
}

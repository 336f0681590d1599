package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const (
	fenceOpen  = "```json\n"
	fenceClose = "\n```"
)

// ErrNoRecipe means the envelope carried no recipe text
var ErrNoRecipe = errors.New("no recipe in response")

// Envelope is the {"recipe": ..., "transcription": ...} reply of the text,
// audio and daily endpoints. Every value must be a JSON string.
type Envelope struct {
	// Recipe is the inner recipe JSON with any ```json fence removed
	Recipe        string
	Transcription string
}

// ExtractEnvelope decodes an envelope body and strips the fence around the recipe
func ExtractEnvelope(body string) (Envelope, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return Envelope{}, fmt.Errorf("failed to decode envelope: %w", err)
	}
	if raw == nil {
		return Envelope{}, errors.New("failed to decode envelope: null body")
	}

	values := make(map[string]string, len(raw))
	for key, value := range raw {
		var s string
		if len(value) == 0 || value[0] != '"' {
			return Envelope{}, fmt.Errorf("failed to decode envelope: %q is not a string", key)
		}
		if err := json.Unmarshal(value, &s); err != nil {
			return Envelope{}, fmt.Errorf("failed to decode envelope key %q: %w", key, err)
		}
		values[key] = s
	}

	env := Envelope{Transcription: values["transcription"]}
	inner := values["recipe"]
	if inner == "" {
		return env, ErrNoRecipe
	}

	if strings.HasPrefix(inner, fenceOpen) && strings.HasSuffix(inner, fenceClose) && len(inner) >= len(fenceOpen)+len(fenceClose) {
		inner = strings.TrimSpace(inner[len(fenceOpen) : len(inner)-len(fenceClose)])
	}
	env.Recipe = inner
	return env, nil
}

// ExtractLoose returns the JSON between the first ```json marker and the next
// closing fence, or the trimmed body when no fence is present.
func ExtractLoose(body string) string {
	start := strings.Index(body, fenceOpen)
	if start < 0 {
		return strings.TrimSpace(body)
	}
	start += len(fenceOpen)

	end := strings.Index(body[start:], fenceClose)
	if end < 0 {
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(body[start : start+end])
}

// ParseEnvelope turns a text, audio or daily reply into a display state
func ParseEnvelope(body string) Display {
	env, err := ExtractEnvelope(body)
	if errors.Is(err, ErrNoRecipe) {
		slog.Debug("Recipe envelope is empty")
		return NoData()
	}
	if err != nil {
		slog.Warn("Failed to parse recipe envelope", "error", err)
		return ParseFailure()
	}

	display := decodeDisplay(env.Recipe)
	if display.IsReady() {
		display.Transcription = env.Transcription
	}
	return display
}

// ParseLoose turns a photo reply, which is not wrapped in an envelope, into a display state
func ParseLoose(body string) Display {
	return decodeDisplay(ExtractLoose(body))
}

func decodeDisplay(data string) Display {
	rec, err := DecodeRecord([]byte(data))
	if err != nil {
		slog.Warn("Failed to parse recipe", "error", err)
		return ParseFailure()
	}
	return Ready(rec)
}

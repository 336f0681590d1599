package recipe

import (
	"encoding/json"
	"errors"
	"testing"
)

const sampleJSON = `{"title":"Borscht","intro":"Beet soup","ingredients":"beets, cabbage","recipe":"Chop.\\nBoil.","proteins":4,"fats":2.5,"carbs":12,"calories":250}`

var sampleRecord = Record{
	Title:       "Borscht",
	Intro:       "Beet soup",
	Ingredients: "beets, cabbage",
	Recipe:      `Chop.\nBoil.`,
	Proteins:    4,
	Fats:        2.5,
	Carbs:       12,
	Calories:    250,
}

func envelopeOf(t *testing.T, inner string) string {
	t.Helper()
	data, err := json.Marshal(map[string]string{"recipe": inner})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	return string(data)
}

func TestParseEnvelopeFencedMatchesUnfenced(t *testing.T) {
	plain := ParseEnvelope(envelopeOf(t, sampleJSON))
	fenced := ParseEnvelope(envelopeOf(t, "```json\n"+sampleJSON+"\n```"))

	if !plain.IsReady() || !fenced.IsReady() {
		t.Fatalf("kinds = %v / %v, want ready", plain.Kind, fenced.Kind)
	}
	if plain.Record != fenced.Record {
		t.Errorf("fenced record %+v differs from plain %+v", fenced.Record, plain.Record)
	}
	if plain.Record != sampleRecord {
		t.Errorf("record = %+v, want %+v", plain.Record, sampleRecord)
	}
}

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Kind
	}{
		{name: "empty recipe", body: `{"recipe":""}`, want: KindNoData},
		{name: "missing recipe key", body: `{"transcription":"hi"}`, want: KindNoData},
		{name: "null recipe", body: `{"recipe":null}`, want: KindParseError},
		{name: "non-string transcription", body: `{"transcription":5,"recipe":` + quote(sampleJSON) + `}`, want: KindParseError},
		{name: "unknown record key", body: envelopeOfString(`{"title":"x","intro":"y","ingredients":"z","recipe":"w","proteins":1,"fats":1,"carbs":1,"calories":1,"cuisine":"fr"}`), want: KindParseError},
		{name: "audio reply", body: `{"transcription":"make soup","recipe":` + quote(sampleJSON) + `}`, want: KindReady},
		{name: "outer not json", body: `Internal error`, want: KindParseError},
		{name: "recipe not a string", body: `{"recipe":{"title":"x"}}`, want: KindParseError},
		{name: "inner not json", body: `{"recipe":"just some words"}`, want: KindParseError},
		{name: "only opening fence", body: envelopeOfString("```json\n" + sampleJSON), want: KindParseError},
		{name: "missing field", body: envelopeOfString(`{"title":"x","intro":"y","ingredients":"z","recipe":"w","proteins":1,"fats":1,"carbs":1}`), want: KindParseError},
		{name: "wrong type", body: envelopeOfString(`{"title":"x","intro":"y","ingredients":"z","recipe":"w","proteins":"lots","fats":1,"carbs":1,"calories":1}`), want: KindParseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEnvelope(tt.body)
			if got.Kind != tt.want {
				t.Errorf("ParseEnvelope() kind = %v, want %v", got.Kind, tt.want)
			}
		})
	}
}

func TestParseEnvelopeTranscription(t *testing.T) {
	body := `{"transcription":"borscht please","recipe":` + quote("```json\n"+sampleJSON+"\n```") + `}`

	got := ParseEnvelope(body)
	if !got.IsReady() {
		t.Fatalf("ParseEnvelope() kind = %v, want ready", got.Kind)
	}
	if got.Transcription != "borscht please" {
		t.Errorf("Transcription = %q", got.Transcription)
	}

	env, err := ExtractEnvelope(body)
	if err != nil {
		t.Fatalf("ExtractEnvelope() error = %v", err)
	}
	if env.Recipe != sampleJSON {
		t.Errorf("Recipe = %q, want fence stripped", env.Recipe)
	}
}

func TestParseErrorPlaceholder(t *testing.T) {
	got := ParseEnvelope(envelopeOfString(`{"title":"x"}`))
	if got.Kind != KindParseError || got.Message != MessageParseError {
		t.Errorf("ParseEnvelope() = %+v, want parse-error placeholder", got)
	}
	if got.Record != (Record{}) {
		t.Errorf("record should be dropped, got %+v", got.Record)
	}
}

func TestParseLoose(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Kind
	}{
		{name: "unfenced", body: "  " + sampleJSON + "\n", want: KindReady},
		{name: "fenced with chatter", body: "Here you go:\n```json\n" + sampleJSON + "\n```\nEnjoy!", want: KindReady},
		{name: "unterminated fence", body: "```json\n" + sampleJSON, want: KindParseError},
		{name: "plain text", body: "I could not see any food", want: KindParseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLoose(tt.body)
			if got.Kind != tt.want {
				t.Fatalf("ParseLoose() kind = %v, want %v", got.Kind, tt.want)
			}
			if got.IsReady() && got.Record != sampleRecord {
				t.Errorf("record = %+v", got.Record)
			}
		})
	}
}

func TestExtractLoose(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{body: "```json\n{}\n```", want: "{}"},
		{body: "a ```json\n{\"a\":1}\n``` b ```json\n{}\n```", want: `{"a":1}`},
		{body: " {} ", want: "{}"},
	}

	for _, tt := range tests {
		if got := ExtractLoose(tt.body); got != tt.want {
			t.Errorf("ExtractLoose(%q) = %q, want %q", tt.body, got, tt.want)
		}
	}
}

func TestDecodeRecord(t *testing.T) {
	t.Run("sentinel sections", func(t *testing.T) {
		data := `{"title":"x","intro":"","ingredients":"none","recipe":"none","proteins":0,"fats":0,"carbs":0,"calories":0}`
		rec, err := DecodeRecord([]byte(data))
		if err != nil {
			t.Fatalf("DecodeRecord() error = %v", err)
		}
		if rec.HasIngredients() || rec.HasSteps() || rec.HasMacros() {
			t.Errorf("unexpected sections for %+v", rec)
		}
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		data := `{"title":"x","intro":"","ingredients":"none","recipe":"none","proteins":0,"fats":0,"carbs":0,"calories":0,"cuisine":"fr"}`
		if _, err := DecodeRecord([]byte(data)); err == nil {
			t.Error("DecodeRecord() should reject an unknown key")
		}
	})

	t.Run("missing fields listed", func(t *testing.T) {
		_, err := DecodeRecord([]byte(`{"title":"x","intro":"y","ingredients":"z","recipe":"w"}`))
		var missing *MissingFieldsError
		if !errors.As(err, &missing) {
			t.Fatalf("error = %v, want MissingFieldsError", err)
		}
		want := []string{"proteins", "fats", "carbs", "calories"}
		if len(missing.Fields) != len(want) {
			t.Fatalf("Fields = %v, want %v", missing.Fields, want)
		}
		for i := range want {
			if missing.Fields[i] != want[i] {
				t.Errorf("Fields[%d] = %q, want %q", i, missing.Fields[i], want[i])
			}
		}
	})

	t.Run("fractional calories rejected", func(t *testing.T) {
		data := `{"title":"x","intro":"y","ingredients":"z","recipe":"w","proteins":1,"fats":1,"carbs":1,"calories":1.5}`
		if _, err := DecodeRecord([]byte(data)); err == nil {
			t.Error("DecodeRecord() should reject non-integer calories")
		}
	})
}

func TestRecordSteps(t *testing.T) {
	if got := sampleRecord.Steps(); got != "Chop.\nBoil." {
		t.Errorf("Steps() = %q", got)
	}
}

func TestFailedDisplay(t *testing.T) {
	d := Failed("server error: 500")
	if d.Kind != KindFailed || d.Message != "Error: server error: 500" {
		t.Errorf("Failed() = %+v", d)
	}
}

func quote(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

func envelopeOfString(inner string) string {
	return `{"recipe":` + quote(inner) + `}`
}

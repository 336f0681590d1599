package recipe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SentinelNone in Ingredients or Recipe means the section does not apply
const SentinelNone = "none"

// Record is one structured recipe as produced by the backend
type Record struct {
	Title       string  `json:"title" yaml:"title"`
	Intro       string  `json:"intro" yaml:"intro"`
	Ingredients string  `json:"ingredients" yaml:"ingredients"`
	Recipe      string  `json:"recipe" yaml:"recipe"`
	Proteins    float64 `json:"proteins" yaml:"proteins"`
	Fats        float64 `json:"fats" yaml:"fats"`
	Carbs       float64 `json:"carbs" yaml:"carbs"`
	Calories    int     `json:"calories" yaml:"calories"`
}

// HasIngredients reports whether the ingredients section should be shown
func (r Record) HasIngredients() bool {
	return r.Ingredients != SentinelNone
}

// HasSteps reports whether the steps section should be shown
func (r Record) HasSteps() bool {
	return r.Recipe != SentinelNone
}

// HasMacros reports whether any nutritional value is positive
func (r Record) HasMacros() bool {
	return r.Proteins > 0 || r.Fats > 0 || r.Carbs > 0 || r.Calories > 0
}

// Steps returns the cooking steps with escaped "\n" sequences expanded
func (r Record) Steps() string {
	return strings.ReplaceAll(r.Recipe, `\n`, "\n")
}

// wireRecord mirrors Record with pointers so absent keys can be told apart from zero values
type wireRecord struct {
	Title       *string  `json:"title"`
	Intro       *string  `json:"intro"`
	Ingredients *string  `json:"ingredients"`
	Recipe      *string  `json:"recipe"`
	Proteins    *float64 `json:"proteins"`
	Fats        *float64 `json:"fats"`
	Carbs       *float64 `json:"carbs"`
	Calories    *int     `json:"calories"`
}

// DecodeRecord decodes data into a Record. Every key is required, must carry
// the right type, and no other keys are accepted.
func DecodeRecord(data []byte) (Record, error) {
	var w wireRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&w); err != nil {
		return Record{}, fmt.Errorf("failed to decode recipe: %w", err)
	}
	if dec.More() {
		return Record{}, errors.New("failed to decode recipe: trailing data after object")
	}

	var missing []string
	check := func(name string, present bool) {
		if !present {
			missing = append(missing, name)
		}
	}
	check("title", w.Title != nil)
	check("intro", w.Intro != nil)
	check("ingredients", w.Ingredients != nil)
	check("recipe", w.Recipe != nil)
	check("proteins", w.Proteins != nil)
	check("fats", w.Fats != nil)
	check("carbs", w.Carbs != nil)
	check("calories", w.Calories != nil)
	if len(missing) > 0 {
		return Record{}, &MissingFieldsError{Fields: missing}
	}

	return Record{
		Title:       *w.Title,
		Intro:       *w.Intro,
		Ingredients: *w.Ingredients,
		Recipe:      *w.Recipe,
		Proteins:    *w.Proteins,
		Fats:        *w.Fats,
		Carbs:       *w.Carbs,
		Calories:    *w.Calories,
	}, nil
}

// MissingFieldsError lists required keys absent from a recipe object
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

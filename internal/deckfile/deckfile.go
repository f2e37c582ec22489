// Package deckfile reads decks from JSON files.
package deckfile

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/flashdeck/internal/card"
)

//go:embed deck.schema.json
var schemaJSON []byte

const schemaURL = "schema://flashdeck/deck.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// File is a parsed deck file.
type File struct {
	Name        string
	Description string
	Cards       []card.Payload
}

// InvalidError reports a deck file that failed validation.
type InvalidError struct {
	Path string
	Err  error
}

func (e *InvalidError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid deck file: %v", e.Err)
	}
	return fmt.Sprintf("invalid deck file %s: %v", e.Path, e.Err)
}

func (e *InvalidError) Unwrap() error {
	return e.Err
}

// Load reads and parses the deck file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		if ie, ok := err.(*InvalidError); ok {
			ie.Path = path
		}
		return nil, err
	}
	return f, nil
}

// Parse validates data against the deck schema and decodes every card.
// A card without a "type" is read as front/back.
func Parse(data []byte) (*File, error) {
	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &InvalidError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := schema()
	if err != nil {
		return nil, fmt.Errorf("compile deck schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, &InvalidError{Err: err}
	}

	var raw struct {
		Name        string            `json:"name"`
		Description string            `json:"description"`
		Cards       []json.RawMessage `json:"cards"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &InvalidError{Err: err}
	}

	f := &File{Name: raw.Name, Description: raw.Description}
	for i, fields := range raw.Cards {
		var tag struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(fields, &tag); err != nil {
			return nil, &InvalidError{Err: fmt.Errorf("card %d: %w", i+1, err)}
		}
		c, err := card.Decode(card.Record{
			ID:      fmt.Sprintf("#%d", i+1),
			Variant: tag.Type,
			Fields:  fields,
		})
		if err != nil {
			return nil, &InvalidError{Err: err}
		}
		if err := card.Validate(c.Payload); err != nil {
			return nil, &InvalidError{Err: fmt.Errorf("card %d: %w", i+1, err)}
		}
		f.Cards = append(f.Cards, c.Payload)
	}
	return f, nil
}

// NewCards returns the file's cards as new cards due at now.
func (f *File) NewCards(now time.Time) []*card.Card {
	out := make([]*card.Card, 0, len(f.Cards))
	for _, p := range f.Cards {
		out = append(out, card.New(p, now))
	}
	return out
}

func schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaJSON, &def); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Package codec provides the pluggable structured-text codecs for lock file
// content. A codec round-trips a string-keyed mapping with scalar and nested
// mapping values; the lock engine treats it as an opaque collaborator.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/latch-project/latch/pkg/errclass"
)

// Codec serializes and parses lock file documents.
type Codec interface {
	// Marshal serializes a document for writing to a lock file.
	Marshal(doc map[string]any) ([]byte, error)
	// Unmarshal parses lock file bytes back into a document.
	Unmarshal(data []byte) (map[string]any, error)
	// Name identifies the codec ("yaml", "json").
	Name() string
}

// ForName returns the codec for a format name. The empty string selects the
// default (yaml).
func ForName(name string) (Codec, error) {
	switch name {
	case "", "yaml", "yml":
		return YAML{}, nil
	case "json":
		return JSON{}, nil
	}
	return nil, errclass.ErrFormatUnsupported.WithMessagef("unknown lock file format: %q", name)
}

// YAML is the default lock file codec.
type YAML struct{}

func (YAML) Name() string { return "yaml" }

func (YAML) Marshal(doc map[string]any) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal lock document: %w", err)
	}
	return data, nil
}

func (YAML) Unmarshal(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse lock document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("parse lock document: not a mapping")
	}
	return doc, nil
}

// JSON is an alternative codec for environments whose audit tooling consumes
// JSON rather than YAML.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Marshal(doc map[string]any) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal lock document: %w", err)
	}
	return append(data, '\n'), nil
}

func (JSON) Unmarshal(data []byte) (map[string]any, error) {
	var doc map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse lock document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("parse lock document: not an object")
	}
	return doc, nil
}

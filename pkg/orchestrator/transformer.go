package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-policygen/pkg/answers"
)

// Transformer mutates an answer record after derivation and before
// validation. Implementations can normalise values, inject house defaults or
// perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, rec answers.Record) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, rec answers.Record) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, rec answers.Record) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, rec)
}

// PresetTransformer applies declarative answer presets loaded from JSON:
//
//	{
//	  "defaults":  {"customerServiceHours": "Weekdays, 8 AM to 4 PM CET"},
//	  "overrides": {"isoCurrencyCode": "EUR"}
//	}
//
// Defaults fill fields that are still empty; overrides always win.
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Defaults  map[string]string `json:"defaults"`
	Overrides map[string]string `json:"overrides"`
}

// NewPresetTransformer constructs a transformer from raw JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the preset to rec in place.
func (t *PresetTransformer) Transform(_ context.Context, rec answers.Record) error {
	if t == nil {
		return nil
	}
	if rec == nil {
		return errors.New("preset transformer: record is nil")
	}
	for field, value := range t.document.Defaults {
		field = strings.TrimSpace(field)
		if field == "" || rec.Get(field) != "" {
			continue
		}
		rec[field] = value
	}
	for field, value := range t.document.Overrides {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		rec[field] = value
	}
	return nil
}

// Package export writes rendered policies to a directory together with an
// index page that links them and explains how to paste them into a store's
// page editor.
package export

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-policygen/pkg/render"
	"github.com/goliatone/go-policygen/pkg/render/template"
	"github.com/goliatone/go-policygen/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var embeddedLayouts embed.FS

// IndexFile is the name of the generated index page.
const IndexFile = "index.html"

// InstallSteps explain how to publish a policy through a store page editor.
var InstallSteps = []string{
	"In Shopify admin, go to Online Store → Pages.",
	`Click Add page, name it after the policy (e.g. "Shipping Policy").`,
	"Click the <> (Show HTML) icon in the top-right of the editor.",
	"Paste the generated HTML code into the HTML view.",
	"Click <> again to return to normal view and confirm rendering.",
	"Click Save.",
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger for write events.
func WithLogger(logger *zap.Logger) Option {
	return func(x *Exporter) {
		if logger != nil {
			x.logger = logger
		}
	}
}

// WithLayoutDir lets an index.tpl on disk replace the embedded layout.
func WithLayoutDir(dir string) Option {
	return func(x *Exporter) {
		x.layoutDir = dir
	}
}

// WithRenderer replaces the layout engine entirely.
func WithRenderer(r template.Renderer) Option {
	return func(x *Exporter) {
		x.renderer = r
	}
}

// WithClock overrides the time source for the index timestamp.
func WithClock(now func() time.Time) Option {
	return func(x *Exporter) {
		if now != nil {
			x.now = now
		}
	}
}

// Exporter writes policy bundles.
type Exporter struct {
	renderer  template.Renderer
	layoutDir string
	logger    *zap.Logger
	now       func() time.Time
}

// File is one written policy document.
type File struct {
	PolicyID string
	Name     string
	Path     string
	Bytes    int
}

// Result describes a written bundle.
type Result struct {
	Dir   string
	Index string
	Files []File
}

// New builds an Exporter backed by the embedded index layout.
func New(opts ...Option) (*Exporter, error) {
	x := &Exporter{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(x)
		}
	}
	if x.renderer == nil {
		layouts, err := fs.Sub(embeddedLayouts, "templates")
		if err != nil {
			return nil, fmt.Errorf("export: layouts: %w", err)
		}
		engineOpts := []gotemplate.Option{gotemplate.WithFS(layouts)}
		if x.layoutDir != "" {
			engineOpts = append(engineOpts, gotemplate.WithBaseDir(x.layoutDir))
		}
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("export: layout engine: %w", err)
		}
		x.renderer = engine
	}
	return x, nil
}

type indexPolicy struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	File        string `json:"file"`
}

type indexData struct {
	Business  string        `json:"business"`
	Generated string        `json:"generated"`
	Policies  []indexPolicy `json:"policies"`
	Steps     []string      `json:"steps"`
}

// Write stores each policy as <id>.html under dir and renders the index page.
// The directory is created when missing; existing files are overwritten.
func (x *Exporter) Write(ctx context.Context, dir, business string, policies []render.Rendered) (Result, error) {
	if dir == "" {
		return Result{}, fmt.Errorf("export: output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("export: create %s: %w", dir, err)
	}

	result := Result{Dir: dir}
	data := indexData{
		Business:  business,
		Generated: x.now().Format(render.DateLayout),
		Steps:     InstallSteps,
	}
	for _, policy := range policies {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		name := policy.ID + ".html"
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(policy.HTML), 0o644); err != nil {
			return result, fmt.Errorf("export: write %s: %w", path, err)
		}
		x.logger.Info("policy written", zap.String("policy", policy.ID), zap.String("path", path))

		result.Files = append(result.Files, File{PolicyID: policy.ID, Name: policy.Name, Path: path, Bytes: len(policy.HTML)})
		data.Policies = append(data.Policies, indexPolicy{
			ID:          policy.ID,
			Name:        policy.Name,
			Description: policy.Description,
			File:        name,
		})
	}

	index, err := x.renderer.RenderTemplate("index", data)
	if err != nil {
		return result, fmt.Errorf("export: render index: %w", err)
	}
	result.Index = filepath.Join(dir, IndexFile)
	if err := os.WriteFile(result.Index, []byte(index), 0o644); err != nil {
		return result, fmt.Errorf("export: write %s: %w", result.Index, err)
	}
	x.logger.Info("export complete", zap.String("dir", dir), zap.Int("policies", len(result.Files)))
	return result, nil
}

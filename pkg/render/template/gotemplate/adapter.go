// Package gotemplate runs page layouts through the go-template engine. It
// backs the export bundle's index page and accepts either an fs.FS (the
// embedded layouts) or a directory on disk for user overrides.
package gotemplate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-policygen/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
	extension string
	globals   map[string]any
	extra     []gotemplatepkg.Option
}

// WithBaseDir loads templates from a directory. It is consulted before any
// fs.FS supplied with WithFS, so files on disk override embedded layouts.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension sets the suffix appended to bare template names.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		cfg.extension = strings.TrimSpace(ext)
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// WithGoTemplateOptions forwards go-template options, such as template
// functions, to the underlying renderer. They are applied after the options
// above.
func WithGoTemplateOptions(opts ...gotemplatepkg.Option) Option {
	return func(cfg *config) {
		for _, opt := range opts {
			if opt != nil {
				cfg.extra = append(cfg.extra, opt)
			}
		}
	}
}

// Engine wraps a go-template renderer.
type Engine struct {
	renderer *gotemplatepkg.Engine
}

var _ template.Renderer = (*Engine)(nil)

// New builds an engine. At least one of WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: a base dir or fs.FS is required")
	}

	var opts []gotemplatepkg.Option
	if cfg.baseDir != "" {
		opts = append(opts, gotemplatepkg.WithBaseDir(cfg.baseDir))
	}
	if cfg.templates != nil {
		opts = append(opts, gotemplatepkg.WithFS(cfg.templates))
	}
	if cfg.extension != "" {
		opts = append(opts, gotemplatepkg.WithExtension(cfg.extension))
	}
	if len(cfg.globals) > 0 {
		opts = append(opts, gotemplatepkg.WithGlobalData(cfg.globals))
	}
	opts = append(opts, cfg.extra...)

	renderer, err := gotemplatepkg.NewRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: new renderer: %w", err)
	}
	return &Engine{renderer: renderer}, nil
}

// Render picks RenderString for inline template content and RenderTemplate
// otherwise.
func (e *Engine) Render(nameOrContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.renderer == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	return e.renderer.Render(nameOrContent, data, writers(out)...)
}

// RenderTemplate executes a named template, appending the configured
// extension when name has none.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.renderer == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	result, err := e.renderer.RenderTemplate(name, data, writers(out)...)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %w", err)
	}
	return result, nil
}

// RenderString compiles and executes inline template content.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.renderer == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	result, err := e.renderer.RenderString(content, data, writers(out)...)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %w", err)
	}
	return result, nil
}

// RegisterFilter adds a filter. Filters are process-wide, so a name already
// registered is an error.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if e == nil || e.renderer == nil {
		return errors.New("gotemplate: engine is nil")
	}
	return e.renderer.RegisterFilter(name, fn)
}

// GlobalContext merges data into the values every template can see.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.renderer == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}
	return e.renderer.GlobalContext(data)
}

func writers(out []io.Writer) []io.Writer {
	kept := out[:0:0]
	for _, w := range out {
		if w != nil {
			kept = append(kept, w)
		}
	}
	return kept
}

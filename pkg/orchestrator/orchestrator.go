package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/goliatone/go-policygen/pkg/answers"
	"github.com/goliatone/go-policygen/pkg/catalog"
	"github.com/goliatone/go-policygen/pkg/render"
	"github.com/goliatone/go-policygen/pkg/validation"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithCatalog injects a pre-loaded catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = cat
	}
}

// WithCatalogFS loads the catalog from fsys instead of the embedded data.
func WithCatalogFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.catalogFS = fsys
	}
}

// WithEngine injects a configured substitution engine.
func WithEngine(engine *render.Engine) Option {
	return func(o *Orchestrator) {
		o.engine = engine
	}
}

// WithRenderOptions configures the default engine. Ignored when WithEngine is
// supplied.
func WithRenderOptions(options ...render.Option) Option {
	return func(o *Orchestrator) {
		o.renderOptions = append(o.renderOptions, options...)
	}
}

// WithTransformer registers a Transformer that runs on every request record
// after derivation.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLogger sets the pipeline logger. It is also handed to the default
// engine.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from answer record to rendered
// policies. It applies sensible defaults (embedded catalog, default engine)
// while remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	catalog       *catalog.Catalog
	catalogFS     fs.FS
	engine        *render.Engine
	renderOptions []render.Option
	transformer   Transformer
	logger        *zap.Logger
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers can
// start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one rendering run.
type Request struct {
	// Record holds the answers. It is cloned and derived before use; the
	// caller's map is never modified.
	Record answers.Record

	// Policies selects template ids in output order. Empty renders every
	// template in catalog order.
	Policies []string

	// Strict turns answer format problems and missing required answers into
	// an error. Otherwise they are logged and rendering proceeds.
	Strict bool
}

// Generate derives the record, runs the transformer, checks the answers and
// renders the requested policies.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]render.Rendered, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	rec := answers.Derive(req.Record.Trimmed())
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, rec); err != nil {
			return nil, fmt.Errorf("orchestrator: transform record: %w", err)
		}
		rec = answers.Derive(rec.Trimmed())
	}

	if err := o.check(rec, req.Strict); err != nil {
		return nil, err
	}

	if len(req.Policies) == 0 {
		return o.engine.RenderAll(o.catalog.Templates, rec), nil
	}

	out := make([]render.Rendered, 0, len(req.Policies))
	for _, id := range req.Policies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tpl, ok := o.catalog.Templates.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("orchestrator: policy %q not found", id)
		}
		out = append(out, render.Rendered{
			ID:          tpl.ID,
			Name:        tpl.Name,
			Description: tpl.Description,
			HTML:        o.engine.Render(tpl.HTML, rec),
		})
	}
	o.logger.Debug("policies generated", zap.Strings("policies", req.Policies))
	return out, nil
}

// Catalog exposes the catalog in use.
func (o *Orchestrator) Catalog() *catalog.Catalog {
	return o.catalog
}

// Engine exposes the substitution engine in use.
func (o *Orchestrator) Engine() *render.Engine {
	return o.engine
}

// Err reports a failure from applying defaults, such as an unreadable
// catalog filesystem.
func (o *Orchestrator) Err() error {
	return o.initialiseErr
}

func (o *Orchestrator) check(rec answers.Record, strict bool) error {
	issues := validation.Answers(o.catalog.Questions.All(), rec, strict)
	if len(issues) == 0 {
		return nil
	}
	if !strict {
		for _, issue := range issues {
			o.logger.Warn("answer issue", zap.String("field", issue.Field), zap.String("message", issue.Message))
		}
		return nil
	}
	errs := make([]error, 0, len(issues))
	for _, issue := range issues {
		errs = append(errs, issue)
	}
	return fmt.Errorf("orchestrator: invalid answers: %w", errors.Join(errs...))
}

func (o *Orchestrator) applyDefaults() {
	if o.catalog == nil {
		if o.catalogFS != nil {
			cat, err := catalog.LoadFS(o.catalogFS)
			if err != nil {
				o.initialiseErr = fmt.Errorf("orchestrator: load catalog: %w", err)
				return
			}
			o.catalog = cat
		} else {
			o.catalog = catalog.Default()
		}
	}
	if o.engine == nil {
		options := append([]render.Option{render.WithLogger(o.logger)}, o.renderOptions...)
		o.engine = render.New(options...)
	}
}

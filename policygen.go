// Package policygen collects a business profile through a question wizard and
// renders it into ready-to-paste legal policy pages.
package policygen

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-policygen/pkg/answers"
	"github.com/goliatone/go-policygen/pkg/catalog"
	"github.com/goliatone/go-policygen/pkg/orchestrator"
	"github.com/goliatone/go-policygen/pkg/render"
	"github.com/goliatone/go-policygen/pkg/wizard"
)

// Record aliases answers.Record, the field-keyed answer map.
type Record = answers.Record

// Rendered aliases render.Rendered; one finished policy document.
type Rendered = render.Rendered

// Request aliases orchestrator.Request for callers of Generate.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate renders the named policies (all of them when none are named) from
// rec using the embedded catalog. It is the simplest entry point for callers
// that already hold the answers.
func Generate(ctx context.Context, rec Record, policies []string, options ...orchestrator.Option) ([]Rendered, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Record:   rec,
		Policies: policies,
	})
}

// NewWizard starts a wizard over the embedded question catalog.
func NewWizard(options ...wizard.Option) (*wizard.Wizard, error) {
	return wizard.New(catalog.Default().Questions, options...)
}

// CatalogFS exposes the embedded question and policy files so applications
// can serve or copy them as a starting point for a custom catalog.
//
// Typical override:
//
//	fsys := os.DirFS("./my-catalog")
//	orch := policygen.NewOrchestrator(orchestrator.WithCatalogFS(fsys))
func CatalogFS() fs.FS {
	return catalog.EmbeddedFS()
}

// WithThemeSelector resolves the anchor colour through a go-theme selector.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) orchestrator.Option {
	return orchestrator.WithRenderOptions(render.WithThemeSelector(selector, name, variant))
}

// WithLinkColor sets the anchor colour directly.
func WithLinkColor(color string) orchestrator.Option {
	return orchestrator.WithRenderOptions(render.WithLinkColor(color))
}

package render

import (
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-policygen/pkg/answers"
	"github.com/goliatone/go-policygen/pkg/model"
)

// TemplateSource is the read side of a template catalog.
type TemplateSource interface {
	Lookup(id string) (model.Template, bool)
	List() []model.Template
}

// Rendered is one finished policy document.
type Rendered struct {
	ID          string
	Name        string
	Description string
	HTML        string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for the fallback effective date.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger used for theme resolution warnings and render
// debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSanitizer cleans every answer before substitution.
func WithSanitizer(s Sanitizer) Option {
	return func(e *Engine) {
		e.sanitizer = s
	}
}

// WithLinkColor sets the anchor colour directly. An empty colour, "none" or
// "inherit" produces anchors without a colour declaration.
func WithLinkColor(color string) Option {
	return func(e *Engine) {
		e.linkColor = linkColorValue(color)
		e.colorSet = true
	}
}

// WithThemeSelector resolves the anchor colour from a go-theme selection.
// WithLinkColor takes precedence when both are supplied.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(e *Engine) {
		e.selector = selector
		e.themeName = name
		e.themeVariant = variant
	}
}

// WithoutLinkify disables the anchor pass.
func WithoutLinkify() Option {
	return func(e *Engine) {
		e.linkify = false
	}
}

// Engine substitutes answers into policy templates.
type Engine struct {
	now          func() time.Time
	logger       *zap.Logger
	sanitizer    Sanitizer
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	linkColor    string
	colorSet     bool
	linkify      bool
	linker       linker
}

// New constructs an Engine. Theme selection failures fall back to
// DefaultLinkColor and are logged.
func New(opts ...Option) *Engine {
	e := &Engine{
		now:       time.Now,
		logger:    zap.NewNop(),
		linkColor: DefaultLinkColor,
		linkify:   true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	if !e.colorSet && e.selector != nil {
		selection, err := e.selector.Select(e.themeName, e.themeVariant)
		if err != nil {
			e.logger.Warn("theme selection failed, using default link colour",
				zap.String("theme", e.themeName),
				zap.String("variant", e.themeVariant),
				zap.Error(err),
			)
		} else {
			e.linkColor = LinkColor(selection)
		}
	}
	e.linker = newLinker(e.linkColor)
	return e
}

// LinkColor reports the anchor colour in effect.
func (e *Engine) LinkColor() string {
	return e.linkColor
}

// Render substitutes every placeholder in tpl and linkifies the result.
// Tokens are matched literally; empty values render as "N/A". Render never
// fails: unknown tokens are left as written.
func (e *Engine) Render(tpl string, rec answers.Record) string {
	out := tpl
	for _, r := range Placeholders(e.clean(rec), e.now()) {
		if !strings.Contains(out, r.Token) {
			continue
		}
		value := r.Value
		if value == "" {
			value = missingValue
		}
		out = strings.ReplaceAll(out, r.Token, value)
	}
	if e.linkify {
		out = e.linker.Linkify(out)
	}
	return out
}

// RenderPolicy renders the template registered under id. Unknown ids return
// ("", false) without rendering anything.
func (e *Engine) RenderPolicy(src TemplateSource, id string, rec answers.Record) (string, bool) {
	if src == nil {
		return "", false
	}
	tpl, ok := src.Lookup(id)
	if !ok {
		e.logger.Debug("policy template not found", zap.String("policy", id))
		return "", false
	}
	return e.Render(tpl.HTML, rec), true
}

// RenderAll renders every template in catalog order.
func (e *Engine) RenderAll(src TemplateSource, rec answers.Record) []Rendered {
	if src == nil {
		return nil
	}
	templates := src.List()
	out := make([]Rendered, 0, len(templates))
	for _, tpl := range templates {
		out = append(out, Rendered{
			ID:          tpl.ID,
			Name:        tpl.Name,
			Description: tpl.Description,
			HTML:        e.Render(tpl.HTML, rec),
		})
	}
	e.logger.Debug("rendered policies", zap.Int("count", len(out)))
	return out
}

func (e *Engine) clean(rec answers.Record) answers.Record {
	if e.sanitizer == nil {
		return rec
	}
	out := make(answers.Record, len(rec))
	for field, value := range rec {
		out[field] = e.sanitizer.Sanitize(value)
	}
	return out
}

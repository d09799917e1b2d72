package gotemplate_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-policygen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-policygen/pkg/testsupport"
)

var layouts = fstest.MapFS{
	"greeting.tpl": {Data: []byte("Hello {{ name }}!")},
	"list.tpl":     {Data: []byte("{% for p in policies %}{{ p.id }}:{{ p.name|trim }};{% endfor %}")},
	"global.tpl":   {Data: []byte("{{ site }}")},
	"shout.tpl":    {Data: []byte("{{ name|policyshout }}")},
}

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(layouts)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}

func TestRenderTemplate_WritesToOutputs(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("greeting", map[string]any{"name": "Acme"}, w)
	})
	if result != "Hello Acme!" || written != result {
		t.Fatalf("unexpected output result=%q written=%q", result, written)
	}
}

func TestRenderTemplate_StructData(t *testing.T) {
	engine := newEngine(t)

	type policy struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	data := struct {
		Policies []policy `json:"policies"`
	}{Policies: []policy{{"shipping", " Shipping Policy "}, {"terms", "Terms of Service"}}}

	got, err := engine.RenderTemplate("list.tpl", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "shipping:Shipping Policy;terms:Terms of Service;" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGlobalContext(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{"site": "acme.com"}))

	got, err := engine.RenderTemplate("global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "acme.com" {
		t.Fatalf("expected global value, got %q", got)
	}

	if err := engine.GlobalContext(map[string]any{"site": "shop.com"}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, _ = engine.RenderTemplate("global", nil)
	if got != "shop.com" {
		t.Fatalf("expected updated global, got %q", got)
	}
}

func TestRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("policyshout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("policyshout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	got, err := engine.RenderTemplate("shout", map[string]any{"name": "acme"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ACME!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRender_InlineContent(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.Render("{{ a }}-{{ b }}", map[string]any{"a": "1", "b": "x"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "1-x" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestWithBaseDir_OverridesFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "greeting.tpl"), []byte("Hi {{ name }}"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	engine := newEngine(t, gotemplate.WithBaseDir(dir))

	got, err := engine.RenderTemplate("greeting", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hi Ada" {
		t.Fatalf("expected disk template to win, got %q", got)
	}
}

func TestRenderTemplate_Missing(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestWithGoTemplateOptions_Forwarded(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGoTemplateOptions(
		gotemplatepkg.WithTemplateFunc(map[string]any{
			"storename": func() string { return "Acme" },
		}),
	))

	got, err := engine.RenderString("{{ storename() }}", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Acme" {
		t.Fatalf("expected forwarded template func, got %q", got)
	}
}

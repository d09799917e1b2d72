package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-policygen/pkg/model"
)

// Templates stores policy templates by id and keeps registration order, which
// is the order policies are rendered and listed in.
type Templates struct {
	mu        sync.RWMutex
	order     []string
	templates map[string]model.Template
}

// NewTemplates creates an empty template registry.
func NewTemplates() *Templates {
	return &Templates{templates: make(map[string]model.Template)}
}

// Register adds a template. Duplicate or empty ids return an error.
func (t *Templates) Register(tpl model.Template) error {
	id := strings.TrimSpace(tpl.ID)
	if id == "" {
		return fmt.Errorf("catalog: template id is required")
	}
	if strings.TrimSpace(tpl.HTML) == "" {
		return fmt.Errorf("catalog: template %q has no content", id)
	}
	tpl.ID = id
	if tpl.Name == "" {
		tpl.Name = id
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.templates[id]; exists {
		return fmt.Errorf("catalog: template %q already registered", id)
	}
	t.templates[id] = tpl
	t.order = append(t.order, id)
	return nil
}

// MustRegister panics on registration failure.
func (t *Templates) MustRegister(tpl model.Template) {
	if err := t.Register(tpl); err != nil {
		panic(err)
	}
}

// Get retrieves a template by id.
func (t *Templates) Get(id string) (model.Template, error) {
	tpl, ok := t.Lookup(id)
	if !ok {
		return model.Template{}, fmt.Errorf("catalog: template %q not found", id)
	}
	return tpl, nil
}

// Lookup retrieves a template by id, reporting whether it exists.
func (t *Templates) Lookup(id string) (model.Template, bool) {
	if t == nil {
		return model.Template{}, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	tpl, ok := t.templates[id]
	return tpl, ok
}

// Has reports whether a template is registered.
func (t *Templates) Has(id string) bool {
	_, ok := t.Lookup(id)
	return ok
}

// IDs returns template ids in registration order.
func (t *Templates) IDs() []string {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	return append([]string(nil), t.order...)
}

// List returns the templates in registration order.
func (t *Templates) List() []model.Template {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]model.Template, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.templates[id])
	}
	return out
}

// Len reports how many templates are registered.
func (t *Templates) Len() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order)
}

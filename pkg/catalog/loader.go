package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/goliatone/go-policygen/pkg/model"
	"gopkg.in/yaml.v3"
)

const (
	// QuestionsFile is the question catalog path inside a catalog filesystem.
	QuestionsFile = "questions.yaml"
	// PoliciesFile is the policy manifest path inside a catalog filesystem.
	PoliciesFile = "policies.yaml"
)

// Catalog bundles the question catalog with the policy templates.
type Catalog struct {
	Questions *Questions
	Templates *Templates
}

type questionsFile struct {
	NonSkippable []int            `json:"nonSkippable" yaml:"nonSkippable"`
	Questions    []model.Question `json:"questions" yaml:"questions"`
}

type policiesFile struct {
	Policies []policyEntry `json:"policies" yaml:"policies"`
}

type policyEntry struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	File        string `json:"file" yaml:"file"`
}

// LoadFS reads questions.yaml, policies.yaml and the policy documents the
// manifest references from fsys. Both manifests may be JSON or YAML.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	if fsys == nil {
		return nil, fmt.Errorf("catalog: filesystem is required")
	}

	questions, err := LoadQuestions(fsys, QuestionsFile)
	if err != nil {
		return nil, err
	}
	templates, err := LoadTemplates(fsys, PoliciesFile)
	if err != nil {
		return nil, err
	}
	return &Catalog{Questions: questions, Templates: templates}, nil
}

// LoadQuestions parses a question catalog document from fsys.
func LoadQuestions(fsys fs.FS, name string) (*Questions, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", name, err)
	}
	var doc questionsFile
	if err := parseDocument(data, name, &doc); err != nil {
		return nil, err
	}
	if len(doc.Questions) == 0 {
		return nil, fmt.Errorf("catalog: file %s defines no questions", name)
	}
	questions, err := NewQuestions(doc.Questions, doc.NonSkippable)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, name)
	}
	return questions, nil
}

// LoadTemplates parses a policy manifest from fsys and reads each referenced
// document. Document paths are relative to the manifest.
func LoadTemplates(fsys fs.FS, name string) (*Templates, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", name, err)
	}
	var doc policiesFile
	if err := parseDocument(data, name, &doc); err != nil {
		return nil, err
	}

	dir := path.Dir(name)
	templates := NewTemplates()
	for idx, entry := range doc.Policies {
		file := strings.TrimSpace(entry.File)
		if file == "" {
			return nil, fmt.Errorf("catalog: file %s policy %d (%q) has no file", name, idx, entry.ID)
		}
		html, err := fs.ReadFile(fsys, path.Join(dir, file))
		if err != nil {
			return nil, fmt.Errorf("catalog: read policy %q: %w", entry.ID, err)
		}
		tpl := model.Template{
			ID:          entry.ID,
			Name:        strings.TrimSpace(entry.Name),
			Description: strings.TrimSpace(entry.Description),
			HTML:        string(html),
		}
		if err := templates.Register(tpl); err != nil {
			return nil, fmt.Errorf("%w (file %s)", err, name)
		}
	}
	return templates, nil
}

func parseDocument(data []byte, source string, out any) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("catalog: file %s is empty", source)
	}
	if err := json.Unmarshal(data, out); err == nil {
		return nil
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("catalog: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the bundled catalog. It panics if the embedded data is
// malformed, which only a broken build can cause.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = LoadFS(EmbeddedFS())
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultCatalog
}

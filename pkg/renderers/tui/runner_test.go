package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/goliatone/go-policygen/pkg/answers"
	"github.com/goliatone/go-policygen/pkg/catalog"
	"github.com/goliatone/go-policygen/pkg/clipboard"
	"github.com/goliatone/go-policygen/pkg/model"
	"github.com/goliatone/go-policygen/pkg/render"
	"github.com/goliatone/go-policygen/pkg/wizard"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	selects      []SelectConfig
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
	inputErr     error
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) saw(msg string) bool {
	for _, m := range s.infoMessages {
		if strings.Contains(m, msg) {
			return true
		}
	}
	return false
}

type clipRecorder struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func (c *clipRecorder) write(s string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.writes = append(c.writes, s)
	return nil
}

func testQuestions(t *testing.T) *catalog.Questions {
	t.Helper()
	questions, err := catalog.NewQuestions([]model.Question{
		{ID: 1, Field: answers.FieldLegalBusinessName, Type: model.InputText, Group: "Business", Required: true, Question: "Legal name?"},
		{ID: 2, Field: answers.FieldMainContactEmail, Type: model.InputEmail, Group: "Business", Required: true, Question: "Contact email?"},
		{ID: 3, Field: answers.FieldISOCurrencyCode, Type: model.InputSelect, Group: "Payments", DefaultValue: "USD", Options: []string{"USD", "EUR"}, Question: "Currency?"},
	}, []int{1})
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	return questions
}

func testTemplates() *catalog.Templates {
	templates := catalog.NewTemplates()
	templates.MustRegister(model.Template{
		ID:   "terms",
		Name: "Terms",
		HTML: "<p>[Your Company Name] [Customer Service Email] [Currency]</p>",
	})
	return templates
}

func newTestRunner(t *testing.T, driver *stubDriver, clip *clipRecorder) *Runner {
	t.Helper()
	r, err := New(render.New(), testTemplates(),
		WithPromptDriver(driver),
		WithCopier(clipboard.New(clipboard.WithWriter(clip.write))),
	)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

func newTestWizard(t *testing.T) *wizard.Wizard {
	t.Helper()
	w, err := wizard.New(testQuestions(t))
	if err != nil {
		t.Fatalf("new wizard: %v", err)
	}
	return w
}

func TestRun_FullSession(t *testing.T) {
	defer goleak.VerifyNone(t)

	driver := &stubDriver{
		inputs:    []string{"Acme LLC", "bad", "help@acme.com"},
		selectIdx: []int{1, 0, 0, 1, 3},
	}
	clip := &clipRecorder{}
	r := newTestRunner(t, driver, clip)

	result, err := r.Run(context.Background(), newTestWizard(t))
	r.Close()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := result.Record.Get(answers.FieldISOCurrencyCode); got != "EUR" {
		t.Fatalf("expected EUR, got %q", got)
	}
	if len(result.Policies) != 1 {
		t.Fatalf("expected one policy, got %d", len(result.Policies))
	}
	html := result.Policies[0].HTML
	for _, want := range []string{"Acme LLC", "mailto:help@acme.com", "EUR"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered policy missing %q: %s", want, html)
		}
	}

	if len(clip.writes) != 1 || clip.writes[0] != html {
		t.Fatalf("expected rendered html on the clipboard, got %v", clip.writes)
	}
	if !driver.saw("Please enter a valid email address") {
		t.Fatalf("expected email validation message, got %v", driver.infoMessages)
	}
	if !driver.saw("Terms copied to the clipboard.") {
		t.Fatalf("expected copy confirmation")
	}
	if !driver.saw("1. In Shopify admin") {
		t.Fatalf("expected installation steps")
	}
	if !driver.saw("Step 3 of 3") {
		t.Fatalf("expected final step header")
	}
	if result.SessionID == "" {
		t.Fatalf("expected session id")
	}
}

func TestRun_NavigationAndEditCancel(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{":skip", "", "Acme", ":back", "Acme", ":skip", ":skip", ":back", "x@y.io"},
		selectIdx: []int{2, 0, 1, 1, 2, 0, 0, 3},
	}
	r := newTestRunner(t, driver, &clipRecorder{})

	result, err := r.Run(context.Background(), newTestWizard(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if !driver.saw("This question cannot be skipped.") {
		t.Fatalf("expected non-skippable message")
	}
	if !driver.saw("This question is required.") {
		t.Fatalf("expected required message")
	}
	want := map[string]string{
		answers.FieldLegalBusinessName: "Acme",
		answers.FieldMainContactEmail:  "x@y.io",
		answers.FieldISOCurrencyCode:   "USD",
	}
	for field, value := range want {
		if got := result.Record.Get(field); got != value {
			t.Errorf("%s: expected %q, got %q", field, value, got)
		}
	}
	if driver.inputPos != len(driver.inputs) || driver.selectPos != len(driver.selectIdx) {
		t.Fatalf("prompts not consumed as expected: inputs %d selects %d", driver.inputPos, driver.selectPos)
	}

	// The currency prompt on the last question offers back but never skip.
	first := driver.selects[0]
	if got := strings.Join(first.Options, ","); got != "USD,EUR,"+labelBack {
		t.Fatalf("unexpected select options %q", got)
	}
}

func TestRun_MissingRequiredNeedsConfirmation(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Acme", ":skip"},
		selectIdx: []int{0, 0, 0, 3},
		confirm:   []bool{false, true},
	}
	r := newTestRunner(t, driver, &clipRecorder{})

	result, err := r.Run(context.Background(), newTestWizard(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if driver.confirmPos != 2 {
		t.Fatalf("expected two confirmations, got %d", driver.confirmPos)
	}
	if !driver.saw("(required)") {
		t.Fatalf("expected missing marker on review")
	}
	if !strings.Contains(result.Policies[0].HTML, "N/A") {
		t.Fatalf("expected N/A for the missing email: %s", result.Policies[0].HTML)
	}
}

func TestRun_CopyFailureKeepsGoing(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Acme", "help@acme.com"},
		selectIdx: []int{0, 0, 0, 3},
	}
	clip := &clipRecorder{err: errors.New("no clipboard")}
	r := newTestRunner(t, driver, clip)

	if _, err := r.Run(context.Background(), newTestWizard(t)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !driver.saw("Could not copy Terms") {
		t.Fatalf("expected copy failure message, got %v", driver.infoMessages)
	}
}

func TestRun_AbortPropagates(t *testing.T) {
	driver := &stubDriver{inputErr: ErrAborted}
	r := newTestRunner(t, driver, &clipRecorder{})

	_, err := r.Run(context.Background(), newTestWizard(t))
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestNew_RequiresTemplates(t *testing.T) {
	if _, err := New(nil, nil); !errors.Is(err, ErrNoTemplates) {
		t.Fatalf("expected ErrNoTemplates, got %v", err)
	}
}

func TestStylesBar(t *testing.T) {
	s := defaultStyles()
	s.barWidth = 10

	got := s.bar(50)
	if strings.Count(got, "█") != 5 || strings.Count(got, "░") != 5 {
		t.Fatalf("unexpected bar %q", got)
	}
	if !strings.HasSuffix(got, " 50%") {
		t.Fatalf("expected percentage suffix, got %q", got)
	}
	if full := s.bar(150); strings.Count(full, "█") != 10 {
		t.Fatalf("expected clamped bar, got %q", full)
	}
}

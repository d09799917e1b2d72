package wizard

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-policygen/pkg/answers"
	"github.com/goliatone/go-policygen/pkg/catalog"
	"github.com/goliatone/go-policygen/pkg/model"
	"github.com/goliatone/go-policygen/pkg/validation"
)

func newTestWizard(t *testing.T, opts ...Option) *Wizard {
	t.Helper()

	questions, err := catalog.NewQuestions([]model.Question{
		{ID: 1, Field: "company", Type: model.InputText, Required: true, Group: "Business"},
		{ID: 2, Field: "site", Type: model.InputDomain, Group: "Business"},
		{ID: 3, Field: "region", Type: model.InputText, Required: true, DefaultValue: model.AutoFill, Group: "Shipping"},
		{ID: 4, Field: "hours", Type: model.InputText, Required: true, DefaultValue: "9-5", Group: "Shipping"},
	}, []int{1})
	if err != nil {
		t.Fatalf("new questions: %v", err)
	}
	w, err := New(questions, opts...)
	if err != nil {
		t.Fatalf("new wizard: %v", err)
	}
	return w
}

func TestNew_EmptyCatalog(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for nil catalog")
	}
}

func TestAnswer_EmptyInputAcrossCatalog(t *testing.T) {
	questions := catalog.Default().Questions

	for _, q := range questions.All() {
		w, err := New(questions)
		if err != nil {
			t.Fatalf("new wizard: %v", err)
		}

		err = w.Answer(q.ID, "")
		blocked := q.Required && q.ResolveDefault() == ""
		if blocked {
			if !errors.Is(err, ErrRequired) {
				t.Errorf("question %d: expected ErrRequired, got %v", q.ID, err)
			}
			if w.Index() != 0 || w.Answered(q.ID) {
				t.Errorf("question %d: expected no advance and not answered", q.ID)
			}
			if _, written := w.Record().Lookup(q.Field); written {
				t.Errorf("question %d: expected no write", q.ID)
			}
			continue
		}

		if err != nil {
			t.Errorf("question %d: unexpected error %v", q.ID, err)
			continue
		}
		if w.Index() != 1 {
			t.Errorf("question %d: expected advance to 1, got %d", q.ID, w.Index())
		}
		if !w.Answered(q.ID) {
			t.Errorf("question %d: expected answered", q.ID)
		}
		if got, written := w.Record().Lookup(q.Field); !written || got != q.ResolveDefault() {
			t.Errorf("question %d: expected %q committed, got %q (written=%v)", q.ID, q.ResolveDefault(), got, written)
		}
	}
}

func TestAnswer_Defaults(t *testing.T) {
	w := newTestWizard(t)

	if err := w.Answer(3, ""); !errors.Is(err, ErrRequired) {
		t.Fatalf("expected AUTO_FILL required question to be rejected, got %v", err)
	}

	if err := w.Answer(4, ""); err != nil {
		t.Fatalf("expected default to satisfy required question: %v", err)
	}
	if got := w.Record().Get("hours"); got != "9-5" {
		t.Fatalf("expected default committed, got %q", got)
	}
}

func TestAnswer_ValidationRejects(t *testing.T) {
	w := newTestWizard(t)
	if err := w.Answer(1, "Acme"); err != nil {
		t.Fatalf("answer company: %v", err)
	}

	err := w.Answer(2, "example")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Message() != validation.MessageDomain {
		t.Fatalf("unexpected message %q", verr.Message())
	}
	if !errors.Is(err, validation.ErrInvalidDomain) {
		t.Fatalf("expected error to wrap ErrInvalidDomain")
	}
	if w.Index() != 1 || w.Answered(2) || w.Record().Has("site") {
		t.Fatalf("expected state unchanged after rejection")
	}

	if err := w.Answer(2, "example.com"); err != nil {
		t.Fatalf("answer site: %v", err)
	}
	if w.Index() != 2 {
		t.Fatalf("expected index 2, got %d", w.Index())
	}
}

func TestAnswer_TrimsInput(t *testing.T) {
	w := newTestWizard(t)
	if err := w.Answer(1, "  Acme  "); err != nil {
		t.Fatalf("answer company: %v", err)
	}
	if got := w.Record().Get("company"); got != "Acme" {
		t.Fatalf("expected trimmed answer, got %q", got)
	}

	if err := w.Answer(2, " example.com\n"); err != nil {
		t.Fatalf("expected padded domain to validate: %v", err)
	}
	if got := w.Record().Get("site"); got != "example.com" {
		t.Fatalf("expected trimmed domain, got %q", got)
	}

	if err := w.Answer(3, "   "); !errors.Is(err, ErrRequired) {
		t.Fatalf("expected whitespace-only answer to count as empty, got %v", err)
	}
	if err := w.Answer(4, " \t"); err != nil {
		t.Fatalf("answer hours: %v", err)
	}
	if got := w.Record().Get("hours"); got != "9-5" {
		t.Fatalf("expected whitespace-only answer to take the default, got %q", got)
	}
}

func TestAnswer_UnknownQuestion(t *testing.T) {
	w := newTestWizard(t)
	if err := w.Answer(99, "x"); !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("expected ErrUnknownQuestion, got %v", err)
	}
	if w.Index() != 0 || w.AnsweredCount() != 0 {
		t.Fatalf("expected no state change")
	}
}

func TestAnswer_LastQuestionStays(t *testing.T) {
	w := newTestWizard(t, WithNonSkippable())
	for i := 0; i < 3; i++ {
		if err := w.Skip(); err != nil {
			t.Fatalf("skip: %v", err)
		}
	}
	if !w.IsLast() {
		t.Fatalf("expected to be on last question")
	}
	if err := w.Answer(4, "10-6"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if w.Index() != 3 || w.Step() != StepQuestions {
		t.Fatalf("expected to stay on last question, index=%d step=%s", w.Index(), w.Step())
	}
}

func TestAnswer_DerivesFromDomain(t *testing.T) {
	w, err := New(catalog.Default().Questions)
	if err != nil {
		t.Fatalf("new wizard: %v", err)
	}

	if err := w.Answer(3, "shop.com"); err != nil {
		t.Fatalf("answer domain: %v", err)
	}
	rec := w.Record()
	if got := rec.Get(answers.FieldFAQPageURL); got != "https://shop.com" {
		t.Fatalf("expected derived faq url, got %q", got)
	}
	if got := rec.Get(answers.FieldContactPageURL); got != "https://shop.com/contact" {
		t.Fatalf("expected derived contact url, got %q", got)
	}
}

func TestSkip(t *testing.T) {
	w := newTestWizard(t)

	if err := w.Skip(); !errors.Is(err, ErrNotSkippable) {
		t.Fatalf("expected ErrNotSkippable on question 1, got %v", err)
	}
	if w.ShowSkip() {
		t.Fatalf("expected skip hidden on question 1")
	}

	if err := w.Answer(1, "Acme"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	before := w.Record()

	if err := w.Skip(); err != nil {
		t.Fatalf("skip: %v", err)
	}
	if w.Index() != 2 {
		t.Fatalf("expected index 2, got %d", w.Index())
	}
	if diff := cmp.Diff(before, w.Record()); diff != "" {
		t.Fatalf("skip wrote to record (-before +after):\n%s", diff)
	}
	if w.Answered(2) {
		t.Fatalf("expected skipped question not answered")
	}

	// Required questions can still be skipped.
	if err := w.Skip(); err != nil {
		t.Fatalf("skip required: %v", err)
	}
	if err := w.Skip(); err != nil {
		t.Fatalf("skip on last: %v", err)
	}
	if w.Index() != 3 || w.CanSkip() {
		t.Fatalf("expected skip to stop on last question")
	}
}

func TestBack(t *testing.T) {
	w := newTestWizard(t)

	if err := w.Back(); err != nil {
		t.Fatalf("back at start: %v", err)
	}
	if w.Index() != 0 || w.CanGoBack() {
		t.Fatalf("expected back to be a no-op at index 0")
	}

	if err := w.Answer(1, "Acme"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if err := w.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if w.Index() != 0 {
		t.Fatalf("expected index 0, got %d", w.Index())
	}
	if w.CurrentValue() != "Acme" {
		t.Fatalf("expected previous answer kept, got %q", w.CurrentValue())
	}
}

func TestEditQuestionThenBackLeavesRecord(t *testing.T) {
	w := newTestWizard(t)
	if err := w.Answer(1, "Acme"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if err := w.CompleteQuestions(); err != nil {
		t.Fatalf("complete: %v", err)
	}
	before := w.Record()

	if err := w.EditQuestion(1); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if w.Step() != StepQuestions || !w.Editing() || w.EditingID() != 1 || w.Index() != 0 {
		t.Fatalf("unexpected edit state: step=%s editing=%d index=%d", w.Step(), w.EditingID(), w.Index())
	}

	if err := w.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if w.Step() != StepReview || w.Editing() {
		t.Fatalf("expected review without edit mode, got step=%s editing=%v", w.Step(), w.Editing())
	}
	if diff := cmp.Diff(before, w.Record()); diff != "" {
		t.Fatalf("record changed (-before +after):\n%s", diff)
	}
}

func TestEditQuestion_SubmitReturnsToReview(t *testing.T) {
	w := newTestWizard(t)
	if err := w.CompleteQuestions(); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if err := w.EditQuestion(99); !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("expected ErrUnknownQuestion, got %v", err)
	}
	if w.Step() != StepReview {
		t.Fatalf("expected to stay in review")
	}

	if err := w.EditQuestion(2); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := w.Submit(2, "acme.com"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if w.Step() != StepReview || w.Editing() {
		t.Fatalf("expected return to review after submit")
	}
	if got := w.Record().Get("site"); got != "acme.com" {
		t.Fatalf("expected edited value, got %q", got)
	}
}

func TestSubmit_ValidationKeepsEditMode(t *testing.T) {
	w := newTestWizard(t)
	if err := w.CompleteQuestions(); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := w.EditQuestion(2); err != nil {
		t.Fatalf("edit: %v", err)
	}

	var verr *ValidationError
	if err := w.Submit(2, "nope"); !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if w.Step() != StepQuestions || w.EditingID() != 2 {
		t.Fatalf("expected to remain editing question 2")
	}
}

func TestComplete(t *testing.T) {
	w := newTestWizard(t, WithNonSkippable())
	for !w.IsLast() {
		if err := w.Skip(); err != nil {
			t.Fatalf("skip: %v", err)
		}
	}

	if err := w.Complete(4, ""); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if w.Step() != StepReview {
		t.Fatalf("expected review, got %s", w.Step())
	}
	if got := w.Record().Get("hours"); got != "9-5" {
		t.Fatalf("expected default committed on complete, got %q", got)
	}
}

func TestStepTransitions(t *testing.T) {
	w := newTestWizard(t)

	invalid := map[string]func() error{
		"review complete": w.ReviewComplete,
		"back to review":  w.BackToReview,
		"back to q":       w.BackToQuestions,
		"finish editing":  w.FinishEditing,
		"edit":            func() error { return w.EditQuestion(1) },
	}
	for name, fn := range invalid {
		if err := fn(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s from questions: expected ErrInvalidTransition, got %v", name, err)
		}
	}

	if err := w.CompleteQuestions(); err != nil {
		t.Fatalf("complete questions: %v", err)
	}
	if err := w.Answer(1, "x"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected answer in review to be rejected, got %v", err)
	}
	if err := w.ReviewComplete(); err != nil {
		t.Fatalf("review complete: %v", err)
	}
	if w.Step() != StepFinalOutput || w.StepNumber() != 3 {
		t.Fatalf("expected final output step 3")
	}
	if err := w.BackToReview(); err != nil {
		t.Fatalf("back to review: %v", err)
	}
	if err := w.ReviewComplete(); err != nil {
		t.Fatalf("review complete: %v", err)
	}
	if err := w.BackToQuestions(); err != nil {
		t.Fatalf("back to questions: %v", err)
	}
	if w.Step() != StepQuestions || w.Index() != 0 {
		t.Fatalf("expected questions at preserved index")
	}
}

func TestProgress(t *testing.T) {
	questions, err := catalog.NewQuestions([]model.Question{
		{ID: 1, Field: "a"},
		{ID: 2, Field: "b"},
		{ID: 3, Field: "c"},
	}, nil)
	if err != nil {
		t.Fatalf("new questions: %v", err)
	}
	w, err := New(questions)
	if err != nil {
		t.Fatalf("new wizard: %v", err)
	}

	if w.Progress() != 0 || w.StepNumber() != 1 {
		t.Fatalf("unexpected initial progress %d step %d", w.Progress(), w.StepNumber())
	}
	_ = w.Answer(1, "x")
	if w.Progress() != 33 {
		t.Fatalf("expected 33, got %d", w.Progress())
	}
	_ = w.Answer(2, "y")
	if w.Progress() != 67 {
		t.Fatalf("expected 67, got %d", w.Progress())
	}
	_ = w.Answer(2, "z")
	if w.AnsweredCount() != 2 {
		t.Fatalf("expected re-answer not to double count, got %d", w.AnsweredCount())
	}

	_ = w.CompleteQuestions()
	if w.ProgressBar() != 66 || w.StepNumber() != 2 {
		t.Fatalf("expected review bar 66 step 2, got %d step %d", w.ProgressBar(), w.StepNumber())
	}
	_ = w.ReviewComplete()
	if w.ProgressBar() != 100 {
		t.Fatalf("expected final bar 100, got %d", w.ProgressBar())
	}
}

func TestWithRecordAndSession(t *testing.T) {
	w := newTestWizard(t,
		WithRecord(answers.Record{answers.FieldShipToCountries: "USA"}),
		WithSessionID("session-1"),
	)
	if w.SessionID() != "session-1" {
		t.Fatalf("expected session id override")
	}
	if got := w.Record().Get(answers.FieldSellingRegions); got != "USA" {
		t.Fatalf("expected seeded record to be derived, got %q", got)
	}
	if w.AnsweredCount() != 0 {
		t.Fatalf("expected seeded fields not marked answered")
	}

	generated := newTestWizard(t)
	if generated.SessionID() == "" {
		t.Fatalf("expected generated session id")
	}
}

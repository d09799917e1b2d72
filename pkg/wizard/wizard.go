package wizard

import (
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-policygen/pkg/answers"
	"github.com/goliatone/go-policygen/pkg/catalog"
	"github.com/goliatone/go-policygen/pkg/model"
	"github.com/goliatone/go-policygen/pkg/validation"
)

// Step is the top-level wizard state.
type Step int

const (
	StepQuestions Step = iota
	StepReview
	StepFinalOutput
)

func (s Step) String() string {
	switch s {
	case StepQuestions:
		return "questions"
	case StepReview:
		return "review"
	case StepFinalOutput:
		return "final-output"
	default:
		return "unknown"
	}
}

// TotalSteps is the number of top-level steps shown in the step indicator.
const TotalSteps = 3

// Review and final-output bar widths, in percent.
const (
	reviewProgress = 66
	finalProgress  = 100
)

// Wizard walks a question catalog and owns the resulting answer record.
type Wizard struct {
	questions    *catalog.Questions
	record       answers.Record
	answered     map[int]struct{}
	nonSkippable map[int]struct{}

	step      Step
	index     int
	editingID int

	sessionID string
	logger    *zap.Logger
}

// New creates a wizard positioned on the first question with an empty record.
func New(questions *catalog.Questions, opts ...Option) (*Wizard, error) {
	if questions == nil || questions.Len() == 0 {
		return nil, errors.New("wizard: question catalog is empty")
	}

	w := &Wizard{
		questions: questions,
		record:    answers.New(),
		answered:  make(map[int]struct{}),
		step:      StepQuestions,
		sessionID: uuid.NewString(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	if w.nonSkippable == nil {
		ids := questions.NonSkippable()
		w.nonSkippable = make(map[int]struct{}, len(ids))
		for _, id := range ids {
			w.nonSkippable[id] = struct{}{}
		}
	}
	w.logger = w.logger.With(zap.String("session", w.sessionID))
	return w, nil
}

// Answer trims raw, resolves it against the question default, validates it,
// writes it into the record and advances unless on the last question. Empty
// input takes the declared default; the AUTO_FILL sentinel resolves to "".
func (w *Wizard) Answer(id int, raw string) error {
	if w.step != StepQuestions {
		return w.reject("answer", ErrInvalidTransition)
	}
	q, ok := w.questions.ByID(id)
	if !ok {
		return w.reject("answer", ErrUnknownQuestion, zap.Int("question", id))
	}

	final := strings.TrimSpace(raw)
	if final == "" && q.HasDefault() {
		final = q.ResolveDefault()
	}
	if err := validation.Check(q, final); err != nil {
		w.logger.Debug("answer rejected", zap.Int("question", id), zap.String("field", q.Field), zap.Error(err))
		return &ValidationError{QuestionID: id, Field: q.Field, Value: final, Err: err}
	}
	if q.Required && final == "" {
		return w.reject("answer", ErrRequired, zap.Int("question", id))
	}

	w.record = answers.Derive(w.record.With(q.Field, final))
	w.answered[id] = struct{}{}
	if !w.IsLast() {
		w.index++
	}
	w.logger.Debug("answer accepted",
		zap.Int("question", id),
		zap.String("field", q.Field),
		zap.Int("index", w.index),
	)
	return nil
}

// Submit is the "next" action: Answer, then return to review when editing.
func (w *Wizard) Submit(id int, raw string) error {
	if err := w.Answer(id, raw); err != nil {
		return err
	}
	if w.Editing() {
		return w.FinishEditing()
	}
	return nil
}

// Complete is the action offered on the last question: Answer, then move to
// review.
func (w *Wizard) Complete(id int, raw string) error {
	if err := w.Answer(id, raw); err != nil {
		return err
	}
	return w.CompleteQuestions()
}

// Back cancels an edit (returning to review without touching the record) or
// steps to the previous question. It is a no-op on the first question.
func (w *Wizard) Back() error {
	if w.step != StepQuestions {
		return w.reject("back", ErrInvalidTransition)
	}
	if w.Editing() {
		id := w.editingID
		w.editingID = 0
		w.step = StepReview
		w.logger.Debug("edit cancelled", zap.Int("question", id))
		return nil
	}
	if w.index > 0 {
		w.index--
		w.logger.Debug("moved back", zap.Int("index", w.index))
	}
	return nil
}

// Skip advances without writing. It is a no-op on the last question and is
// rejected for non-skippable questions.
func (w *Wizard) Skip() error {
	if w.step != StepQuestions {
		return w.reject("skip", ErrInvalidTransition)
	}
	current := w.Current()
	if _, blocked := w.nonSkippable[current.ID]; blocked {
		return w.reject("skip", ErrNotSkippable, zap.Int("question", current.ID))
	}
	if !w.IsLast() {
		w.index++
		w.logger.Debug("question skipped", zap.Int("question", current.ID), zap.Int("index", w.index))
	}
	return nil
}

// CompleteQuestions moves from the questions step to review.
func (w *Wizard) CompleteQuestions() error {
	if w.step != StepQuestions {
		return w.reject("complete questions", ErrInvalidTransition)
	}
	w.editingID = 0
	w.step = StepReview
	w.logger.Debug("questions completed", zap.Int("answered", len(w.answered)))
	return nil
}

// EditQuestion jumps from review to a single question in edit mode.
func (w *Wizard) EditQuestion(id int) error {
	if w.step != StepReview {
		return w.reject("edit", ErrInvalidTransition)
	}
	idx := w.questions.IndexOf(id)
	if idx < 0 {
		return w.reject("edit", ErrUnknownQuestion, zap.Int("question", id))
	}
	w.index = idx
	w.editingID = id
	w.step = StepQuestions
	w.logger.Debug("editing question", zap.Int("question", id))
	return nil
}

// FinishEditing leaves edit mode and returns to review.
func (w *Wizard) FinishEditing() error {
	if w.step != StepQuestions || !w.Editing() {
		return w.reject("finish editing", ErrInvalidTransition)
	}
	w.editingID = 0
	w.step = StepReview
	w.logger.Debug("editing finished")
	return nil
}

// ReviewComplete moves from review to the final output step.
func (w *Wizard) ReviewComplete() error {
	if w.step != StepReview {
		return w.reject("review complete", ErrInvalidTransition)
	}
	w.step = StepFinalOutput
	w.logger.Debug("review completed")
	return nil
}

// BackToQuestions returns to the questions step at the current index.
func (w *Wizard) BackToQuestions() error {
	if w.step != StepReview && w.step != StepFinalOutput {
		return w.reject("back to questions", ErrInvalidTransition)
	}
	w.editingID = 0
	w.step = StepQuestions
	w.logger.Debug("back to questions", zap.Int("index", w.index))
	return nil
}

// BackToReview returns from the final output step to review.
func (w *Wizard) BackToReview() error {
	if w.step != StepFinalOutput {
		return w.reject("back to review", ErrInvalidTransition)
	}
	w.step = StepReview
	w.logger.Debug("back to review")
	return nil
}

func (w *Wizard) reject(op string, err error, fields ...zap.Field) error {
	fields = append(fields, zap.String("op", op), zap.Stringer("step", w.step), zap.Error(err))
	w.logger.Debug("transition rejected", fields...)
	return err
}

// Step reports the current top-level step.
func (w *Wizard) Step() Step { return w.step }

// Index reports the current position in catalog order.
func (w *Wizard) Index() int { return w.index }

// Current returns the question at the current index.
func (w *Wizard) Current() model.Question {
	q, _ := w.questions.At(w.index)
	return q
}

// CurrentValue returns the recorded answer for the current question.
func (w *Wizard) CurrentValue() string {
	return w.record.Get(w.Current().Field)
}

// Editing reports whether a single question is being edited from review.
func (w *Wizard) Editing() bool { return w.editingID != 0 }

// EditingID returns the id being edited, or 0.
func (w *Wizard) EditingID() int { return w.editingID }

// CanGoBack reports whether Back moves to a previous question.
func (w *Wizard) CanGoBack() bool { return w.index > 0 }

// CanSkip reports whether Skip would advance.
func (w *Wizard) CanSkip() bool { return !w.IsLast() }

// IsLast reports whether the current question is the last one.
func (w *Wizard) IsLast() bool { return w.index >= w.questions.Len()-1 }

// ShowSkip reports whether the skip action should be offered for the current
// question.
func (w *Wizard) ShowSkip() bool {
	_, blocked := w.nonSkippable[w.Current().ID]
	return !blocked
}

// Answered reports whether id has been submitted at least once.
func (w *Wizard) Answered(id int) bool {
	_, ok := w.answered[id]
	return ok
}

// AnsweredCount reports how many distinct questions were submitted.
func (w *Wizard) AnsweredCount() int { return len(w.answered) }

// Total reports the number of questions.
func (w *Wizard) Total() int { return w.questions.Len() }

// Progress is answered/total as a rounded integer percentage.
func (w *Wizard) Progress() int {
	total := w.questions.Len()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(len(w.answered)) / float64(total) * 100))
}

// ProgressBar is the progress indicator width: question progress while
// answering, then fixed widths for review and final output.
func (w *Wizard) ProgressBar() int {
	switch w.step {
	case StepReview:
		return reviewProgress
	case StepFinalOutput:
		return finalProgress
	default:
		return w.Progress()
	}
}

// StepNumber is the 1-based step shown as "Step N of 3".
func (w *Wizard) StepNumber() int { return int(w.step) + 1 }

// Record returns a copy of the answer record.
func (w *Wizard) Record() answers.Record { return w.record.Clone() }

// SessionID identifies this wizard run in logs.
func (w *Wizard) SessionID() string { return w.sessionID }

// Questions exposes the catalog the wizard walks.
func (w *Wizard) Questions() *catalog.Questions { return w.questions }

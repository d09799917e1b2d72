// Package tui drives a policy wizard from the terminal using survey prompts.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-policygen/pkg/answers"
	"github.com/goliatone/go-policygen/pkg/clipboard"
	"github.com/goliatone/go-policygen/pkg/export"
	"github.com/goliatone/go-policygen/pkg/model"
	"github.com/goliatone/go-policygen/pkg/render"
	"github.com/goliatone/go-policygen/pkg/wizard"
)

// Commands typed at a question prompt.
const (
	CommandBack = ":back"
	CommandSkip = ":skip"
)

// Labels for navigation entries appended to select prompts.
const (
	labelBack = "← Back"
	labelSkip = "Skip →"
)

// Review step actions.
const (
	actionGenerate = "Generate policies"
	actionEdit     = "Edit an answer"
	actionBack     = "Back to questions"
)

// Final step actions that follow the per-policy copy entries.
const (
	actionInstall  = "Show installation steps"
	actionToReview = "Back to review"
	actionFinish   = "Finish"
)

// Result is what a completed session produced.
type Result struct {
	SessionID string
	Record    answers.Record
	Policies  []render.Rendered
}

// Runner walks a wizard through its three steps.
type Runner struct {
	engine    *render.Engine
	templates render.TemplateSource

	driver PromptDriver
	out    io.Writer
	copier *clipboard.Copier
	logger *zap.Logger
	theme  Theme
	styles styles
}

// New constructs a runner with the survey driver and the system clipboard
// unless overridden.
func New(engine *render.Engine, templates render.TemplateSource, options ...Option) (*Runner, error) {
	if templates == nil {
		return nil, ErrNoTemplates
	}
	if engine == nil {
		engine = render.New()
	}
	r := &Runner{
		engine:    engine,
		templates: templates,
		logger:    zap.NewNop(),
		theme:     DefaultTheme,
		styles:    defaultStyles(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	if r.copier == nil {
		r.copier = clipboard.New(clipboard.WithLogger(r.logger))
	}
	return r, nil
}

// Close releases the clipboard reset timer.
func (r *Runner) Close() {
	r.copier.Close()
}

// Run prompts until the user finishes on the final step or aborts.
func (r *Runner) Run(ctx context.Context, w *wizard.Wizard) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("tui: context is required")
	}
	if w == nil {
		return Result{}, errors.New("tui: wizard is required")
	}
	logger := r.logger.With(zap.String("session", w.SessionID()))
	logger.Debug("wizard session started", zap.Int("questions", w.Total()))

	if err := r.info(ctx, r.styles.hint.Render(fmt.Sprintf("Type %s to return to the previous question or %s to skip it.", CommandBack, CommandSkip))); err != nil {
		return Result{}, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		var (
			done     bool
			policies []render.Rendered
			err      error
		)
		switch w.Step() {
		case wizard.StepQuestions:
			err = r.askQuestion(ctx, w)
		case wizard.StepReview:
			err = r.review(ctx, w)
		case wizard.StepFinalOutput:
			policies, done, err = r.finalOutput(ctx, w)
		default:
			err = fmt.Errorf("tui: unknown step %v", w.Step())
		}
		if err != nil {
			logger.Debug("wizard session stopped", zap.Error(err))
			return Result{}, err
		}
		if done {
			logger.Info("wizard session finished", zap.Int("answered", w.AnsweredCount()), zap.Int("policies", len(policies)))
			return Result{SessionID: w.SessionID(), Record: w.Record(), Policies: policies}, nil
		}
	}
}

func (r *Runner) header(ctx context.Context, w *wizard.Wizard, title string) error {
	line := r.styles.header.Render(fmt.Sprintf("Step %d of %d · %s", w.StepNumber(), wizard.TotalSteps, title))
	return r.info(ctx, line+"\n"+r.styles.bar(w.ProgressBar()))
}

func (r *Runner) askQuestion(ctx context.Context, w *wizard.Wizard) error {
	q := w.Current()
	title := fmt.Sprintf("Question %d of %d", w.Index()+1, w.Total())
	if w.Editing() {
		title = "Editing answer"
	}
	if err := r.header(ctx, w, title); err != nil {
		return err
	}

	message := q.Question
	if q.Group != "" {
		message = q.Group + " · " + q.Question
	}
	if q.Required {
		message += " *"
	}

	raw, command, err := r.prompt(ctx, w, q, message)
	if err != nil {
		return err
	}

	switch command {
	case CommandBack:
		return w.Back()
	case CommandSkip:
		if !w.ShowSkip() {
			return r.fail(ctx, "This question cannot be skipped.")
		}
		if !w.CanSkip() {
			return r.fail(ctx, "This is the last question. Leave it empty to finish.")
		}
		if err := w.Skip(); err != nil {
			return r.explain(ctx, err)
		}
		return nil
	}

	if w.IsLast() && !w.Editing() {
		err = w.Complete(q.ID, raw)
	} else {
		err = w.Submit(q.ID, raw)
	}
	return r.explain(ctx, err)
}

// prompt asks q with the driver matching its input type. A non-empty command
// is returned when the user picked a navigation entry or typed one.
func (r *Runner) prompt(ctx context.Context, w *wizard.Wizard, q model.Question, message string) (string, string, error) {
	current := w.CurrentValue()

	if q.Type == model.InputSelect {
		options := append([]string(nil), q.Options...)
		if w.CanGoBack() || w.Editing() {
			options = append(options, labelBack)
		}
		if w.ShowSkip() && w.CanSkip() {
			options = append(options, labelSkip)
		}
		selected := current
		if selected == "" {
			selected = q.ResolveDefault()
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      options,
			DefaultIndex: indexOf(options, selected),
			Help:         q.Guidance,
		})
		if err != nil {
			return "", "", err
		}
		if idx < 0 || idx >= len(options) {
			return "", "", fmt.Errorf("tui: selection %d out of range", idx)
		}
		switch options[idx] {
		case labelBack:
			return "", CommandBack, nil
		case labelSkip:
			return "", CommandSkip, nil
		}
		return options[idx], "", nil
	}

	var (
		raw string
		err error
	)
	if q.Type == model.InputTextarea {
		raw, err = r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: current,
			Help:    q.Guidance,
		})
	} else {
		raw, err = r.driver.Input(ctx, InputConfig{
			Message:     message,
			Default:     current,
			Help:        q.Guidance,
			Placeholder: wizard.Placeholder(q, w.Record()),
		})
	}
	if err != nil {
		return "", "", err
	}
	switch cmd := strings.TrimSpace(raw); cmd {
	case CommandBack, CommandSkip:
		return "", cmd, nil
	}
	return raw, "", nil
}

// explain prints recoverable wizard errors and swallows them so the loop
// re-prompts. Anything else is returned.
func (r *Runner) explain(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	var verr *wizard.ValidationError
	switch {
	case errors.As(err, &verr):
		return r.fail(ctx, verr.Message())
	case errors.Is(err, wizard.ErrRequired):
		return r.fail(ctx, "This question is required.")
	case errors.Is(err, wizard.ErrNotSkippable):
		return r.fail(ctx, "This question cannot be skipped.")
	default:
		return err
	}
}

func (r *Runner) review(ctx context.Context, w *wizard.Wizard) error {
	if err := r.header(ctx, w, "Review your answers"); err != nil {
		return err
	}
	for _, group := range w.Review() {
		lines := []string{r.styles.group.Render(group.Name)}
		for _, item := range group.Items {
			line := fmt.Sprintf("  %s: %s", item.Question.Question, item.Display)
			if item.Missing {
				line += " " + r.styles.missing.Render("(required)")
			}
			lines = append(lines, line)
		}
		if err := r.info(ctx, strings.Join(lines, "\n")); err != nil {
			return err
		}
	}

	actions := []string{actionGenerate, actionEdit, actionBack}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: "What next?", Options: actions})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(actions) {
		return fmt.Errorf("tui: selection %d out of range", idx)
	}

	switch actions[idx] {
	case actionGenerate:
		if missing := w.MissingRequired(); len(missing) > 0 {
			ok, err := r.driver.Confirm(ctx, ConfirmConfig{
				Message: fmt.Sprintf("%d required answer(s) are missing and will show as N/A. Generate anyway?", len(missing)),
			})
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
		return w.ReviewComplete()
	case actionEdit:
		return r.pickEdit(ctx, w)
	default:
		return w.BackToQuestions()
	}
}

func (r *Runner) pickEdit(ctx context.Context, w *wizard.Wizard) error {
	all := w.Questions().All()
	options := make([]string, 0, len(all))
	for _, q := range all {
		options = append(options, fmt.Sprintf("%s · %s", q.Group, q.Question))
	}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: "Which answer?", Options: options, PageSize: 12})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(all) {
		return fmt.Errorf("tui: selection %d out of range", idx)
	}
	return w.EditQuestion(all[idx].ID)
}

func (r *Runner) finalOutput(ctx context.Context, w *wizard.Wizard) ([]render.Rendered, bool, error) {
	if err := r.header(ctx, w, "Your policies"); err != nil {
		return nil, false, err
	}
	policies := r.engine.RenderAll(r.templates, w.Record())

	options := make([]string, 0, len(policies)+3)
	for _, p := range policies {
		label := "Copy " + p.Name
		if r.copier.IsCopied(p.ID) {
			label += " (copied)"
		}
		options = append(options, label)
	}
	options = append(options, actionInstall, actionToReview, actionFinish)

	idx, err := r.driver.Select(ctx, SelectConfig{Message: "Copy a policy as HTML", Options: options, PageSize: 12})
	if err != nil {
		return nil, false, err
	}
	if idx < 0 || idx >= len(options) {
		return nil, false, fmt.Errorf("tui: selection %d out of range", idx)
	}
	if idx < len(policies) {
		p := policies[idx]
		if r.copier.Copy(ctx, p.ID, p.HTML) {
			return nil, false, r.info(ctx, r.theme.SuccessPrefix+p.Name+" copied to the clipboard.")
		}
		return nil, false, r.fail(ctx, "Could not copy "+p.Name+". Use the render command to print it instead.")
	}

	switch options[idx] {
	case actionInstall:
		return nil, false, r.installSteps(ctx)
	case actionToReview:
		return nil, false, w.BackToReview()
	default:
		return policies, true, nil
	}
}

func (r *Runner) installSteps(ctx context.Context) error {
	lines := []string{r.styles.group.Render("Adding a policy to your store")}
	for i, step := range export.InstallSteps {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, step))
	}
	return r.info(ctx, strings.Join(lines, "\n"))
}

func (r *Runner) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Runner) fail(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

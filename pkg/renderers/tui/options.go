package tui

import (
	"io"

	"go.uber.org/zap"

	"github.com/goliatone/go-policygen/pkg/clipboard"
)

// Theme captures the message prefixes the runner prints. Keep minimal to
// avoid coupling runner logic to ANSI specifics; colours live in styles.
type Theme struct {
	InfoPrefix    string
	ErrorPrefix   string
	SuccessPrefix string
}

// DefaultTheme is used when WithTheme is not supplied.
var DefaultTheme = Theme{
	InfoPrefix:    "",
	ErrorPrefix:   "✗ ",
	SuccessPrefix: "✓ ",
}

// Option configures the Runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where the default survey driver prints messages.
func WithOutput(out io.Writer) Option {
	return func(r *Runner) {
		r.out = out
	}
}

// WithLogger sets the runner logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithCopier replaces the clipboard copier used on the final step.
func WithCopier(copier *clipboard.Copier) Option {
	return func(r *Runner) {
		if copier != nil {
			r.copier = copier
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}

// WithBarWidth sets the progress bar width in cells.
func WithBarWidth(width int) Option {
	return func(r *Runner) {
		if width > 0 {
			r.styles.barWidth = width
		}
	}
}

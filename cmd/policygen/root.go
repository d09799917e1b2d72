package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-policygen/pkg/catalog"
	"github.com/goliatone/go-policygen/pkg/config"
	"github.com/goliatone/go-policygen/pkg/orchestrator"
	"github.com/goliatone/go-policygen/pkg/render"
)

const defaultOutputDir = "policies"

// options holds the global flags plus state built in PersistentPreRunE.
type options struct {
	verbose    bool
	configPath string
	theme      string
	variant    string
	linkColor  string
	sanitize   bool
	policies   []string
	output     string
	strict     bool

	settings config.Settings
	logger   *zap.Logger
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "policygen",
		Short: "Generate store legal policies from a short questionnaire",
		Long: `policygen asks a few questions about your business and turns the answers
into ready-to-paste HTML for shipping, billing, cookie, disclaimer, payment,
return and refund, privacy and terms pages.

Run without arguments to start the interactive wizard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logger == nil {
				cfg := zap.NewProductionConfig()
				if opts.verbose {
					cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
				}
				logger, err := cfg.Build()
				if err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
				opts.logger = logger
			}
			if opts.configPath != "" {
				settings, err := config.Load(opts.configPath)
				if err != nil {
					return err
				}
				opts.settings = settings
				opts.logger.Debug("settings loaded", zap.String("path", opts.configPath), zap.Int("answers", len(settings.Answers)))
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVarP(&opts.configPath, "config", "c", "", "settings file with prefilled answers (YAML or JSON)")
	flags.StringVar(&opts.theme, "theme", "", "theme manifest for link colours (default "+render.DefaultTheme+")")
	flags.StringVar(&opts.variant, "variant", "", "theme variant, e.g. plain or dark")
	flags.StringVar(&opts.linkColor, "link-color", "", "CSS colour for generated links; empty disables colouring")
	flags.BoolVar(&opts.sanitize, "sanitize", false, "strip HTML from answers before rendering")
	flags.StringSliceVarP(&opts.policies, "policy", "p", nil, "policy ids to render (default all)")
	flags.StringVarP(&opts.output, "output", "o", "", "export directory (default "+defaultOutputDir+")")
	flags.BoolVar(&opts.strict, "strict", false, "fail on invalid or missing required answers")

	root.AddCommand(
		newWizardCmd(opts),
		newRenderCmd(opts),
		newExportCmd(opts),
		newPoliciesCmd(opts),
		newQuestionsCmd(opts),
	)
	return root
}

// changed reports whether a persistent flag was set on the command line.
func changed(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}

func (o *options) themeName(cmd *cobra.Command) string {
	switch {
	case changed(cmd, "theme"):
		return o.theme
	case o.settings.Theme != "":
		return o.settings.Theme
	default:
		return render.DefaultTheme
	}
}

func (o *options) themeVariant(cmd *cobra.Command) string {
	if changed(cmd, "variant") {
		return o.variant
	}
	return o.settings.Variant
}

func (o *options) selectedPolicies(cmd *cobra.Command, args []string) []string {
	switch {
	case len(args) > 0:
		return args
	case changed(cmd, "policy"):
		return o.policies
	default:
		return o.settings.Policies
	}
}

func (o *options) outputDir(cmd *cobra.Command) string {
	switch {
	case changed(cmd, "output"):
		return o.output
	case o.settings.Output != "":
		return o.settings.Output
	default:
		return defaultOutputDir
	}
}

// renderOptions resolves engine settings: flags first, then the settings
// file, then built-in defaults.
func (o *options) renderOptions(cmd *cobra.Command) ([]render.Option, error) {
	out := []render.Option{render.WithLogger(o.logger)}

	switch {
	case changed(cmd, "link-color"):
		out = append(out, render.WithLinkColor(o.linkColor))
	case o.settings.LinkColor != "":
		out = append(out, render.WithLinkColor(o.settings.LinkColor))
	default:
		selector, err := render.NewSelector()
		if err != nil {
			return nil, err
		}
		out = append(out, render.WithThemeSelector(selector, o.themeName(cmd), o.themeVariant(cmd)))
	}

	sanitize := o.settings.SanitizeOr(false)
	if changed(cmd, "sanitize") {
		sanitize = o.sanitize
	}
	if sanitize {
		out = append(out, render.WithSanitizer(render.StrictSanitizer()))
	}
	return out, nil
}

func (o *options) orchestrator(cmd *cobra.Command) (*orchestrator.Orchestrator, error) {
	renderOpts, err := o.renderOptions(cmd)
	if err != nil {
		return nil, err
	}
	orch := orchestrator.New(
		orchestrator.WithCatalog(catalog.Default()),
		orchestrator.WithLogger(o.logger),
		orchestrator.WithRenderOptions(renderOpts...),
	)
	return orch, orch.Err()
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-policygen/pkg/answers"
	"github.com/goliatone/go-policygen/pkg/catalog"
	"github.com/goliatone/go-policygen/pkg/export"
	"github.com/goliatone/go-policygen/pkg/orchestrator"
	"github.com/goliatone/go-policygen/pkg/render"
	"github.com/goliatone/go-policygen/pkg/renderers/tui"
	"github.com/goliatone/go-policygen/pkg/wizard"
)

func newWizardCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Answer the questionnaire interactively and copy the generated policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(cmd, opts)
		},
	}
}

func runWizard(cmd *cobra.Command, opts *options) error {
	orch, err := opts.orchestrator(cmd)
	if err != nil {
		return err
	}
	cat := orch.Catalog()

	templates, err := subset(cat.Templates, opts.selectedPolicies(cmd, nil))
	if err != nil {
		return err
	}

	w, err := wizard.New(cat.Questions,
		wizard.WithLogger(opts.logger),
		wizard.WithRecord(opts.settings.Record()),
	)
	if err != nil {
		return err
	}

	runner, err := tui.New(orch.Engine(), templates,
		tui.WithLogger(opts.logger),
		tui.WithOutput(cmd.OutOrStdout()),
	)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Run(cmd.Context(), w)
	if err != nil {
		return err
	}

	if !changed(cmd, "output") && opts.settings.Output == "" {
		return nil
	}
	return writeExport(cmd, opts, result.Record, result.Policies)
}

func newRenderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "render [policy...]",
		Short: "Render policies from a settings file and print the HTML",
		Long: `Render substitutes the answers from --config into the selected policies and
prints the HTML. With several policies each document is preceded by an HTML
comment naming it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			policies, _, err := generate(cmd, opts, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, p := range policies {
				if len(policies) > 1 {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "<!-- policy: %s -->\n", p.ID)
				}
				fmt.Fprintln(out, p.HTML)
			}
			return nil
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var layoutDir string
	cmd := &cobra.Command{
		Use:   "export [policy...]",
		Short: "Write every rendered policy plus an index page to a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			policies, rec, err := generate(cmd, opts, args)
			if err != nil {
				return err
			}
			return writeExport(cmd, opts, rec, policies, export.WithLayoutDir(layoutDir))
		},
	}
	cmd.Flags().StringVar(&layoutDir, "layout-dir", "", "directory with an index.tpl overriding the built-in index layout")
	return cmd
}

func newPoliciesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List the available policy templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
			for _, tpl := range catalog.Default().Templates.List() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", tpl.ID, tpl.Name, tpl.Description)
			}
			return tw.Flush()
		},
	}
}

func newQuestionsCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List the questionnaire, grouped as the wizard asks it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			questions := catalog.Default().Questions
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(questions.All())
			}
			return printQuestions(cmd.OutOrStdout(), questions)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	return cmd
}

func printQuestions(out io.Writer, questions *catalog.Questions) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, group := range questions.Groups() {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\n", group.Name)
		for _, q := range group.Questions {
			marker := ""
			if q.Required {
				marker = "*"
			}
			fmt.Fprintf(tw, "  %d%s\t%s\t%s\t%s\n", q.ID, marker, q.Field, q.Type, q.Question)
		}
	}
	return tw.Flush()
}

// generate renders the selected policies from the settings-file answers.
func generate(cmd *cobra.Command, opts *options, args []string) ([]render.Rendered, answers.Record, error) {
	orch, err := opts.orchestrator(cmd)
	if err != nil {
		return nil, nil, err
	}
	rec := opts.settings.Record()
	policies, err := orch.Generate(cmd.Context(), orchestrator.Request{
		Record:   rec,
		Policies: opts.selectedPolicies(cmd, args),
		Strict:   opts.strict,
	})
	if err != nil {
		return nil, nil, err
	}
	return policies, rec, nil
}

func writeExport(cmd *cobra.Command, opts *options, rec answers.Record, policies []render.Rendered, extra ...export.Option) error {
	exporter, err := export.New(append([]export.Option{export.WithLogger(opts.logger)}, extra...)...)
	if err != nil {
		return err
	}
	dir := opts.outputDir(cmd)
	business := rec.Or(answers.FieldStoreWebsiteName, rec.Or(answers.FieldLegalBusinessName, "Store"))
	result, err := exporter.Write(cmd.Context(), dir, business, policies)
	if err != nil {
		return err
	}
	opts.logger.Debug("export finished", zap.String("index", result.Index))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d policies to %s (index: %s)\n", len(result.Files), dir, result.Index)
	return nil
}

// subset restricts templates to ids, keeping the requested order.
func subset(all *catalog.Templates, ids []string) (*catalog.Templates, error) {
	if len(ids) == 0 {
		return all, nil
	}
	out := catalog.NewTemplates()
	for _, id := range ids {
		tpl, ok := all.Lookup(strings.TrimSpace(id))
		if !ok {
			return nil, fmt.Errorf("policy %q not found", id)
		}
		if err := out.Register(tpl); err != nil {
			return nil, err
		}
	}
	return out, nil
}

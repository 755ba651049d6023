package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/njchilds90/minimaple"
)

func newDiffCmd(a *app) *cobra.Command {
	var (
		variable  string
		trace     bool
		latex     bool
		asJSON    bool
		maxIter   int
		noRestore bool
	)
	cmd := &cobra.Command{
		Use:   "diff <expr>",
		Short: "Differentiate an expression and print the simplified result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := append(a.cfg.PipelineOptions(), minimaple.WithLogger(a.logger))
			if cmd.Flags().Changed("max-iter") {
				opts = append(opts, minimaple.WithMaxIterations(maxIter))
			}
			if noRestore {
				opts = append(opts, minimaple.WithoutDivisionRestore())
			}

			res, err := minimaple.New(opts...).DifferentiateSteps(args[0], variable)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			format := a.cfg.Output.Format
			switch {
			case asJSON:
				format = "json"
			case latex:
				format = "latex"
			}
			if format == "json" {
				return writeJSON(out, res)
			}
			if trace {
				printTrace(out, res.Steps, a.cfg.Output.Color, format == "latex")
			}
			if format == "latex" {
				fmt.Fprintln(out, res.LaTeX)
			} else {
				fmt.Fprintln(out, res.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&variable, "var", "v", "x", "differentiation variable")
	cmd.Flags().BoolVarP(&trace, "trace", "t", false, "print every pipeline stage")
	cmd.Flags().BoolVar(&latex, "latex", false, "print LaTeX instead of plain text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result and steps as JSON")
	cmd.Flags().IntVar(&maxIter, "max-iter", minimaple.DefaultMaxIterations, "derivation loop cap (0 keeps only the tree depth bound)")
	cmd.Flags().BoolVar(&noRestore, "no-restore", false, "keep negative powers instead of quotients")
	return cmd
}

func newParseCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "parse <expr>",
		Short: "Parse an expression and print it back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := minimaple.Parse(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				s, err := minimaple.ToJSON(n)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), minimaple.Print(n))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tree as JSON")
	return cmd
}

func newExpandCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "expand <expr>",
		Short: "Distribute products and integer powers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := minimaple.Parse(args[0])
			if err != nil {
				return err
			}
			if n, err = minimaple.Distribute(n); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), minimaple.Print(n))
			return nil
		},
	}
}

func newTermsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "terms <expr>",
		Short: "Print the grouped monomials of an expression, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := minimaple.Parse(args[0])
			if err != nil {
				return err
			}
			terms, err := minimaple.CanonicalTerms(n)
			if err != nil {
				return err
			}
			for _, t := range terms {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

func newToolsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool schema served by mcp-server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), minimaple.ToolSpec())
			return nil
		},
	}
}

func printTrace(w io.Writer, steps []minimaple.Step, colored, latex bool) {
	stage := color.New(color.FgCyan, color.Bold)
	if colored {
		stage.EnableColor()
	} else {
		stage.DisableColor()
	}
	for _, s := range steps {
		name := string(s.Stage)
		if s.Stage == minimaple.StageDerive {
			name = fmt.Sprintf("%s(%d)", s.Stage, s.Depth)
		}
		text := s.Text
		if latex {
			text = s.LaTeX
		}
		fmt.Fprintf(w, "%s %s\n", stage.Sprintf("%-18s", name), text)
	}
}

func writeJSON(w io.Writer, res *minimaple.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err := enc.Encode(map[string]interface{}{
		"input":      res.Input,
		"variable":   res.Variable,
		"result":     res.Text,
		"latex":      res.LaTeX,
		"iterations": res.Iterations,
		"steps":      res.Steps,
	})
	return errors.Wrap(err, "encoding result")
}

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/document"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/rules"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an ontology document (JSON or YAML)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		o, err := document.Load(args[0])
		if err != nil {
			return err
		}
		engine := newEngine(cfg, logger)
		if err := engine.CheckLimits(o.Structure); err != nil {
			return err
		}
		r := engine.Validate(o.Structure)
		printResult(cmd.OutOrStdout(), args[0], r)
		if !r.IsValid {
			return fmt.Errorf("%w: %d problem(s)", types.ErrInvalidStructure, len(r.Errors))
		}
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-validate an ontology document whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		engine := newEngine(cfg, logger)
		out := cmd.OutOrStdout()
		check := func(o *types.Ontology) {
			if err := engine.CheckLimits(o.Structure); err != nil {
				logger.Warn("document rejected", zap.String("path", args[0]), zap.Error(err))
				return
			}
			printResult(out, args[0], engine.Validate(o.Structure))
		}

		w, err := document.NewWatcher(args[0], logger)
		if err != nil {
			return err
		}
		check(w.Current())
		w.OnChange(check)

		stop, err := w.Watch()
		if err != nil {
			return err
		}
		defer stop()

		<-cmd.Context().Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd, watchCmd)
}

func printResult(w io.Writer, name string, r rules.ValidationResult) {
	if r.IsValid {
		fmt.Fprintf(w, "%s: valid\n", name)
		return
	}
	fmt.Fprintf(w, "%s: %d problem(s)\n", name, len(r.Errors))
	for _, msg := range r.Errors {
		fmt.Fprintf(w, "  - %s\n", msg)
	}
	fmt.Fprintf(w, "  invalid nodes: %v\n", r.InvalidNodeIDs)
}

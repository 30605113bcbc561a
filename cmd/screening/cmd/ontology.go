package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/db"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/document"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/rules"
)

var ontologyCmd = &cobra.Command{
	Use:     "ontology",
	Aliases: []string{"ont"},
	Short:   "Manage stored ontologies",
}

var ontologyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored ontologies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		sortBy, _ := cmd.Flags().GetString("sort")
		desc, _ := cmd.Flags().GetBool("desc")

		return withStore(cmd, func(store *db.Ontologies, _ *rules.Engine, _ *zap.Logger) error {
			list, err := store.List(cmd.Context(), db.ListOptions{Search: search, SortBy: sortBy, Descending: desc})
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tROLE TYPE\tCREATED ON\tCREATED BY")
			for _, o := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", o.ID, o.RoleType, o.CreatedOn.Format(time.RFC3339), o.CreatedBy)
			}
			return w.Flush()
		})
	},
}

var ontologyImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate and store an ontology document (JSON or YAML)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		author, _ := cmd.Flags().GetString("created-by")

		return withStore(cmd, func(store *db.Ontologies, engine *rules.Engine, logger *zap.Logger) error {
			o, err := document.Load(args[0])
			if err != nil {
				return err
			}
			if o.CreatedBy == "" {
				o.CreatedBy = author
			}
			r, err := engine.Prepare(o)
			if err != nil {
				if len(r.Errors) > 0 {
					printResult(cmd.OutOrStdout(), args[0], r)
				}
				return err
			}
			if err := store.Save(cmd.Context(), o); err != nil {
				return err
			}
			logger.Info("ontology imported",
				zap.String("ontology_id", o.ID),
				zap.String("role_type", o.RoleType),
				zap.String("path", args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s)\n", o.ID, o.RoleType)
			return nil
		})
	},
}

var ontologyExportCmd = &cobra.Command{
	Use:   "export <id> <file>",
	Short: "Write a stored ontology to a JSON or YAML document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store *db.Ontologies, _ *rules.Engine, _ *zap.Logger) error {
			o, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := document.Save(args[1], o); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[1])
			return nil
		})
	},
}

var ontologyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored ontology",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store *db.Ontologies, _ *rules.Engine, logger *zap.Logger) error {
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			logger.Info("ontology deleted", zap.String("ontology_id", args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		})
	},
}

var ontologyDuplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Copy a stored ontology under a new id and role type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		author, _ := cmd.Flags().GetString("created-by")

		return withStore(cmd, func(store *db.Ontologies, _ *rules.Engine, logger *zap.Logger) error {
			dup, err := store.Duplicate(cmd.Context(), args[0], author)
			if err != nil {
				return err
			}
			logger.Info("ontology duplicated",
				zap.String("source_id", args[0]),
				zap.String("ontology_id", dup.ID))
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s)\n", dup.ID, dup.RoleType)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(ontologyCmd)
	ontologyCmd.AddCommand(ontologyListCmd, ontologyImportCmd, ontologyExportCmd, ontologyDeleteCmd, ontologyDuplicateCmd)

	ontologyListCmd.Flags().String("search", "", "case-insensitive role type substring")
	ontologyListCmd.Flags().String("sort", db.SortByCreatedOn, "sort key (createdOn, roleType)")
	ontologyListCmd.Flags().Bool("desc", false, "sort descending")
	ontologyImportCmd.Flags().String("created-by", "", "author recorded when the document has none")
	ontologyDuplicateCmd.Flags().String("created-by", "", "author of the copy (default: source author)")
}

func withStore(cmd *cobra.Command, fn func(*db.Ontologies, *rules.Engine, *zap.Logger) error) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	database, queries, err := openDatabase(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()
	return fn(db.NewOntologies(queries), newEngine(cfg, logger), logger)
}

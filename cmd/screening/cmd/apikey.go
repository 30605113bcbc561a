package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/auth"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/config"
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage API keys",
}

var apikeyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an API key signed with the primary HMAC secret",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetString("owner")
		return withAuthenticator(cmd, func(a *auth.Authenticator, _ *zap.Logger) error {
			secretID, _, err := config.PrimaryHMACSecret()
			if err != nil {
				return fmt.Errorf("failed to load HMAC secret: %w", err)
			}
			key, plaintext, err := a.Create(cmd.Context(), owner, secretID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:    %s\n", key.ID)
			fmt.Fprintf(out, "owner: %s\n", key.Owner)
			fmt.Fprintf(out, "key:   %s\n", plaintext)
			fmt.Fprintln(out, "The key is shown once. Store it now.")
			return nil
		})
	},
}

var apikeyRevokeCmd = &cobra.Command{
	Use:   "revoke <id>",
	Short: "Revoke an API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAuthenticator(cmd, func(a *auth.Authenticator, _ *zap.Logger) error {
			if err := a.Revoke(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revoked %s\n", args[0])
			return nil
		})
	},
}

var apikeyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List API keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAuthenticator(cmd, func(a *auth.Authenticator, _ *zap.Logger) error {
			keys, err := a.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tOWNER\tCREATED\tLAST USED\tREVOKED")
			for _, k := range keys {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					k.ID, k.Owner, k.CreatedAt.Format(time.RFC3339), formatTime(k.LastUsedAt), formatTime(k.RevokedAt))
			}
			return w.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(apikeyCmd)
	apikeyCmd.AddCommand(apikeyCreateCmd, apikeyRevokeCmd, apikeyListCmd)
	apikeyCreateCmd.Flags().String("owner", "", "key owner recorded as author of saved ontologies")
	apikeyCreateCmd.MarkFlagRequired("owner")
}

func withAuthenticator(cmd *cobra.Command, fn func(*auth.Authenticator, *zap.Logger) error) error {
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

	secrets, err := config.HMACSecrets()
	if err != nil {
		return fmt.Errorf("failed to load HMAC secrets: %w", err)
	}
	return fn(auth.NewAuthenticator(secrets, queries, logger), logger)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.RFC3339)
}

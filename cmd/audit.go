package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/foundry/config"
	"github.com/kilianp07/foundry/core/audit"
	"github.com/kilianp07/foundry/pkg/export"
)

var (
	auditQuery  audit.Query
	auditSince  time.Duration
	auditFormat string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Export recorded creation events",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		store, err := audit.NewStore(cfg.Audit.Backend, cfg.Audit.Path)
		if err != nil {
			return fmt.Errorf("audit store: %w", err)
		}
		defer func() { _ = store.Close() }()
		q := auditQuery
		if auditSince > 0 {
			q.Start = time.Now().Add(-auditSince)
		}
		records, err := store.Query(cmd.Context(), q)
		if err != nil {
			return err
		}
		return export.Write(cmd.OutOrStdout(), auditFormat, records)
	},
}

func init() {
	auditCmd.Flags().StringVar(&auditQuery.Scope, "scope", "", "registry, family or world name")
	auditCmd.Flags().StringVar(&auditQuery.Key, "key", "", "discriminator, role or composition id")
	auditCmd.Flags().StringVar(&auditQuery.Outcome, "outcome", "", "ok, unsupported or failed")
	auditCmd.Flags().DurationVar(&auditSince, "since", 0, "only events younger than this")
	auditCmd.Flags().StringVarP(&auditFormat, "format", "f", export.FormatJSON, "json or csv")
	rootCmd.AddCommand(auditCmd)
}

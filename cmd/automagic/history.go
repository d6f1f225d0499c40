package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/LegoCylon/automagic/internal/profile"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored profile reports, newest first.",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	cmd.Flags().String("variant", "", "only reports for this variant (default all)")
	cmd.Flags().Int("limit", 20, "maximum number of reports")
	cmd.AddCommand(newHistoryDeleteCmd())
	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	a, err := newStorageApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	repo, err := a.reports()
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("variant")
	limit, _ := cmd.Flags().GetInt("limit")

	reports, err := repo.ListByVariant(cmd.Context(), name, limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, r := range reports {
		if _, err := fmt.Fprintf(out, "# %s %s on %s\n", r.ID, r.StartedAt.Format(time.RFC3339), r.Host); err != nil {
			return err
		}
		if err := profile.WriteReport(out, r); err != nil {
			return err
		}
	}
	return nil
}

func newHistoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <report-id>",
		Short: "Delete a stored report and its trials.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parsing report id: %w", err)
			}
			a, err := newStorageApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			repo, err := a.reports()
			if err != nil {
				return err
			}
			if err := repo.Delete(cmd.Context(), id); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return err
		},
	}
}

// newStorageApp loads configuration with the database forced on.
func newStorageApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg.Database.Enabled = true
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newApp(cmd.Context(), cfg)
}

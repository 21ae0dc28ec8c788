package cli

import (
	"fmt"

	"moxie/migrations"

	"github.com/spf13/cobra"
)

func newCreateSchemaCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "create-schema",
		Short: "Create the current schema directly",
		Long: `Creates the entire (current) schema of a DB without the migrations.
A schema created this way cannot be upgraded with upgrade-schema.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := o.openProvider(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer provider.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Schema created for %s\n", provider.URL())
			return nil
		},
	}
}

func newUpgradeSchemaCmd(o *options) *cobra.Command {
	var target int

	cmd := &cobra.Command{
		Use:   "upgrade-schema",
		Short: "Upgrade the schema through the migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			provider, err := o.openProvider(ctx, false)
			if err != nil {
				return err
			}
			defer provider.Close()

			runner := migrations.NewRunner(provider.DB(), o.logger)
			if err := runner.VersionControl(ctx); err != nil {
				return err
			}
			if err := runner.Upgrade(ctx, target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Schema upgraded for %s\n", provider.URL())
			return nil
		},
	}

	cmd.Flags().IntVar(&target, "version", 0, "Version to upgrade to (default latest)")
	return cmd
}

func newDowngradeSchemaCmd(o *options) *cobra.Command {
	var target int

	cmd := &cobra.Command{
		Use:   "downgrade-schema",
		Short: "Revert migrations down to a version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			provider, err := o.openProvider(ctx, false)
			if err != nil {
				return err
			}
			defer provider.Close()

			runner := migrations.NewRunner(provider.DB(), o.logger)
			if err := runner.Downgrade(ctx, target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Schema downgraded to version %d for %s\n", target, provider.URL())
			return nil
		},
	}

	cmd.Flags().IntVar(&target, "version", 0, "Version to downgrade to")
	_ = cmd.MarkFlagRequired("version")
	return cmd
}

func newSchemaVersionCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "schema-version",
		Short: "Print the migration version of the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			provider, err := o.openProvider(ctx, false)
			if err != nil {
				return err
			}
			defer provider.Close()

			version, err := migrations.NewRunner(provider.DB(), o.logger).Version(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}

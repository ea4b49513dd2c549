package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsinha/agrierp/pkg/config"
)

// Version is set at build time with -ldflags
var Version = "dev"

// NewRootCommand builds the agrierp command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "agrierp",
		Short:         "Agricultural equipment maintenance tracking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "Path to YAML config file (defaults to $AGRIERP_CONFIG)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	root.AddCommand(newEvaluateCommand(), newVersionCommand())
	return root
}

func newEvaluateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate maintenance plans against equipment usage",
		Example: `  agrierp evaluate --scenario ./data/farm-a
  agrierp evaluate --equipment equipment.csv --plans plans.csv --readings readings.csv --only-due
  agrierp evaluate --scenario ./data/farm-a --format csv --output ./out`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, cfg)

			verbose, _ := cmd.Flags().GetBool("verbose")
			onlyDue, _ := cmd.Flags().GetBool("only-due")

			return NewEvaluateCommand(*cfg, onlyDue, verbose, cmd.OutOrStdout(), cmd.ErrOrStderr()).Execute(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.String("scenario", "", "Path to scenario directory containing equipment.csv, plans.csv and optional readings.csv")
	flags.String("equipment", "", "Path to equipment CSV file")
	flags.String("plans", "", "Path to maintenance plans CSV file")
	flags.String("readings", "", "Path to usage readings CSV file (optional)")
	flags.String("format", "text", "Output format: text, json, csv")
	flags.String("output", "", "Output directory for results (optional)")
	flags.Int("workers", 0, "Concurrent equipment evaluations (defaults to config)")
	flags.Bool("only-due", false, "Only report due and overdue plans")

	return cmd
}

// applyFlagOverrides copies explicitly set flags over loaded configuration
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	stringFlags := map[string]*string{
		"scenario":  &cfg.DataDir,
		"equipment": &cfg.EquipmentFile,
		"plans":     &cfg.PlansFile,
		"readings":  &cfg.ReadingsFile,
		"format":    &cfg.OutputFormat,
		"output":    &cfg.OutputDir,
	}
	for name, target := range stringFlags {
		if flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}
	if flags.Changed("workers") {
		cfg.EvaluationWorkers, _ = flags.GetInt("workers")
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "agrierp %s\n", Version)
		},
	}
}

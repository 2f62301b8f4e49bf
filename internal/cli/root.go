package cli

import (
	"calibration_quiz/internal/config"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	configDir := os.Getenv("CONFIG_PATH")
	if configDir == "" {
		configDir = "configs"
	}

	cmd := &cobra.Command{
		Use:           "calibration-quiz",
		Short:         "Calibration quiz server: interval estimates, scoring and score history",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&configDir, "config", configDir, "directory holding config.yaml")

	serve := NewServeCmd(&configDir)
	cmd.RunE = serve.RunE
	cmd.Flags().AddFlagSet(serve.Flags())

	cmd.AddCommand(serve)
	cmd.AddCommand(NewMigrateCmd(&configDir))
	cmd.AddCommand(NewUsersCmd(&configDir))
	cmd.AddCommand(NewBankCmd(&configDir))
	return cmd
}

func loadConfig(configDir string) (*config.Config, error) {
	return config.LoadConfig(configDir)
}

package cli

import (
	"calibration_quiz/internal/app"
	"calibration_quiz/pkg/logger"

	"github.com/spf13/cobra"
)

// NewServeCmd starts the HTTP server.
func NewServeCmd(configDir *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configDir)
			if err != nil {
				return err
			}
			// 启动时强制执行数据库迁移（即使是 release 模式）
			cfg.ForceMigrate = migrate

			application, err := app.Bootstrap(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer logger.Log.Sync()

			return application.Run()
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run database migrations on start, even in release mode")
	return cmd
}

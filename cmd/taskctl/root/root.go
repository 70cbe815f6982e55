// Package root taskctl 子命令
package root

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"task-prompt-api/internal/config"
	"task-prompt-api/internal/wire"
	"task-prompt-api/pkg/logger"
)

// Version 版本信息，构建时注入
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:           "taskctl",
	Short:         "Operations tool for the task prompt API",
	Long:          "taskctl applies schema migrations, seeds the prompt catalog, bootstraps the admin account and grants credits.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

// Execute 执行根命令
func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newBootstrapAdminCmd(),
		newCreditsCmd(),
		newEventsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error: "+err.Error())
		os.Exit(1)
	}
}

// loadConfig 加载配置并初始化日志
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	return cfg, nil
}

// openCLI 初始化命令依赖
func openCLI(ctx context.Context) (*wire.CLI, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	cli, cleanup, err := wire.InitializeCLI(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return cli, cleanup, nil
}

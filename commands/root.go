package commands

import (
	"Gin_postgres_redis_book_exchange/app"
	"Gin_postgres_redis_book_exchange/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

// rootCmd 不带子命令时等同于 serve
var rootCmd = &cobra.Command{
	Use:   "bookswap",
	Short: "bookswap - peer-to-peer book exchange API",
	Long: `bookswap serves the REST API of a peer-to-peer book exchange:
owners list books, seekers browse, filter and claim them.

Configuration comes from an optional YAML file (--config), a .env file
and environment variables, in increasing order of precedence.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

// Execute is called by main.main.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		return Error(err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// setup 读取配置并创建 logger，供各子命令复用
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := app.NewLogger(cfg.LogLevel, cfg.GinMode)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"a11y-auditor/internal/config"
	"a11y-auditor/internal/logging"
)

// version é trocada no build com -ldflags "-X main.version=..."
var version = "dev"

var (
	debugMode  bool
	configPath string

	cfg    *config.Config
	logger *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:           "a11y",
	Short:         "a11y - Auditoria de acessibilidade de páginas HTML",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(debugMode || cfg.Debug)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Ativa logs de depuração")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Arquivo de configuração (padrão a11y.yaml)")
	rootCmd.AddCommand(auditCmd, watchCmd)
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"mailSuite/internal/config"
	"mailSuite/internal/logger"
)

var (
	cfg *config.Cfg
	log *logger.Zap
)

var rootCmd = &cobra.Command{
	Use:           "mailsuite",
	Short:         "UI-тесты почтового веб-интерфейса",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		log, err = logger.New(cfg.Logger.Env, cfg.Logger.Level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd, listCmd, historyCmd, showCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if log != nil {
			log.Error(err.Error())
		} else {
			os.Stderr.WriteString(err.Error() + "\n")
		}
		os.Exit(1)
	}
}

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"mailSuite/internal/cli/commands"
	"mailSuite/internal/database"
)

var errNoJournal = errors.New("журнал прогонов не настроен: задайте DB_HOST и DB_NAME")

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Показать последние запуски из журнала",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(h *commands.HistoryHandler) error {
			return h.List(cmd.Context(), historyLimit)
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Показать результаты запуска",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(h *commands.HistoryHandler) error {
			return h.Show(cmd.Context(), args[0])
		})
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Сколько запусков показать")
}

func withHistory(cmd *cobra.Command, fn func(h *commands.HistoryHandler) error) error {
	if !cfg.Database.Enabled() {
		return errNoJournal
	}
	db, err := database.New(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close(log)

	return fn(commands.NewHistoryHandler(database.NewRunRepository(db.DB), log.Logger, cmd.OutOrStdout()))
}

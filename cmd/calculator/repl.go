package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ERRORIK404/calculator_screen/database"
	"github.com/ERRORIK404/calculator_screen/internal/console"
	"github.com/ERRORIK404/calculator_screen/internal/screen"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run a calculator screen in this terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		login, _ := cmd.Flags().GetString("login")

		db, err := database.InitDB(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		histories, closer, err := openHistories(cmd.Context(), cfg, db, log)
		if err != nil {
			return err
		}
		defer closer.Close()

		c := screen.New(histories(login), screen.WithLogger(log.With("login", login)))
		c.LoadHistory()
		c.Wait()

		fmt.Fprintln(cmd.OutOrStdout(), "type help for the keys")
		runErr := console.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), console.Local{C: c})

		c.SaveHistory()
		c.Wait()
		c.Close()
		return runErr
	},
}

func init() {
	replCmd.Flags().String("login", "local", "History owner")
}

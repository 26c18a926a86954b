package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ERRORIK404/calculator_screen/internal/client_application"
	"github.com/ERRORIK404/calculator_screen/internal/console"
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Drive a screen hosted by a calculator server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.GRPCAddr
		}
		login, _ := cmd.Flags().GetString("login")
		password, _ := cmd.Flags().GetString("password")

		client, err := client_application.Dial(addr)
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.Login(cmd.Context(), login, password); err != nil {
			return err
		}
		log.Debug("logged in", "addr", addr, "login", login)

		fmt.Fprintln(cmd.OutOrStdout(), "type help for the keys")
		return console.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), client)
	},
}

func init() {
	remoteCmd.Flags().String("addr", "", "gRPC address of the server (default GRPC_ADDR)")
	remoteCmd.Flags().String("login", "", "Login")
	remoteCmd.Flags().String("password", "", "Password")
	remoteCmd.MarkFlagRequired("login")
}

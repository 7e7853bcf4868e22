package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/syspro/lsp"
)

func newLSPCmd() *cobra.Command {
	var tcpAddress string
	var websocketAddress string
	var debug bool

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the Language Server Protocol server.

Speaks over stdio unless --tcp or --websocket is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, debug)
			switch {
			case tcpAddress != "":
				return server.RunTCP(tcpAddress)
			case websocketAddress != "":
				return server.RunWebSocket(websocketAddress)
			}
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&tcpAddress, "tcp", "", "listen on this TCP address")
	cmd.Flags().StringVar(&websocketAddress, "websocket", "", "listen for web socket connections on this address")
	cmd.Flags().BoolVar(&debug, "debug", false, "log protocol messages")

	return cmd
}

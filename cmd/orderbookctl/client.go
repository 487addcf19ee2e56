package main

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newClientCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "client",
		Short: "Connect to a running orderbookctl serve instance and send line-protocol commands from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := fmt.Sprintf("%s:%d", viper.GetString("address"), viper.GetInt("port"))
			conn, err := net.Dial("tcp", addr)
			if err != nil {
				return fmt.Errorf("dial %s: %w", addr, err)
			}
			defer conn.Close()

			go io.Copy(os.Stdout, conn)

			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				if _, err := fmt.Fprintln(conn, scanner.Text()); err != nil {
					return fmt.Errorf("write: %w", err)
				}
			}
			return scanner.Err()
		},
	}
}

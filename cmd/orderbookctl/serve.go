package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ironbook/internal/engine"
	ironbooknet "ironbook/internal/net"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve a fresh order book over the line protocol",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := zerolog.New(os.Stderr).With().Timestamp().Logger()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			book := engine.New()
			srv := ironbooknet.New(viper.GetString("address"), viper.GetInt("port"), book)

			log.Info().Str("address", viper.GetString("address")).Int("port", viper.GetInt("port")).Msg("starting orderbookctl serve")
			srv.Run(ctx)
			return nil
		},
	}
}

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "orderbookctl",
		Short: "Run, serve, or drive an order book",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default none, flags and env only)")
	root.PersistentFlags().String("address", "0.0.0.0", "server bind/dial address")
	root.PersistentFlags().Int("port", 9001, "server bind/dial port")
	viper.BindPFlag("address", root.PersistentFlags().Lookup("address"))
	viper.BindPFlag("port", root.PersistentFlags().Lookup("port"))
	viper.SetEnvPrefix("orderbookctl")
	viper.AutomaticEnv()

	cobra.OnInitialize(func() {
		if cfgFile == "" {
			return
		}
		viper.SetConfigFile(cfgFile)
		_ = viper.ReadInConfig()
	})

	root.AddCommand(newRunCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newClientCmd())
	return root
}

package main

import (
	"bufio"
	"fmt"
	"os"

	"ironbook/internal/driver"
	"ironbook/internal/engine"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [file...]",
		Short: "Replay one or more batch command files against a fresh order book",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
			book := engine.New()

			failed := false
			for _, path := range args {
				if err := runFile(book, logger, path); err != nil {
					logger.Error().Err(err).Str("path", path).Msg("could not open file, skipping")
					failed = true
				}
			}
			if failed {
				return fmt.Errorf("one or more files could not be processed")
			}
			return nil
		},
	}
}

func runFile(book *engine.OrderBook, logger zerolog.Logger, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		driver.Dispatch(book, logger, scanner.Text(), os.Stdout)
	}
	return scanner.Err()
}

// Command orderbookctl drives the matching engine three ways: run replays
// batch command files against a fresh book, serve exposes a book over the
// line protocol on a TCP socket, and client is a small interactive client
// for that socket.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

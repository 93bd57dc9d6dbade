package main

import (
	"os"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/cli"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("An error occurred when running command.")
		os.Exit(1)
	}
}

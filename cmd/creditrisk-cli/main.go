package main

import (
	"os"

	"creditrisk/internal/platform/config"
	"creditrisk/internal/platform/logger"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		logger.Get().Fatal().Err(err).Msg("load .env")
	}
	lopt := logger.FromEnv()
	lopt.Service = "creditrisk-cli"
	// stdout carries the command output
	lopt.Writer = os.Stderr
	logger.Init(lopt)

	if err := newRootCmd(defaultEnv()).Execute(); err != nil {
		os.Exit(1)
	}
}

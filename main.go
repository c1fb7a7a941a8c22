package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/KirillKCrypto/Trading-Journal-APP/internal/cli"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/config"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/logging"
)

func main() {
	// Local .env overrides are optional.
	_ = godotenv.Load()

	// The config directory is needed before cobra parses flags, because
	// configuration drives command wiring.
	cfg, err := config.Load(configDirArg(os.Args[1:]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger()

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func configDirArg(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(arg, "--config=") {
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}

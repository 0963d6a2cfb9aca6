package main

import (
	"fmt"
	"os"

	"mealtoys/internal/config"
	"mealtoys/internal/errors"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal; the process environment still applies.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg, os.Stdout, os.Stderr).Execute(); err != nil {
		// application errors were already logged with their code
		if !errors.IsAppError(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/doeshing/synora-ui/internal/infrastructure/cli"
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	ctx := context.Background()
	opts := cli.Options{
		Verbose:   envFlag("SYNORA_UI_DEBUG"),
		Ephemeral: envFlag("SYNORA_UI_EPHEMERAL"),
	}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		os.Exit(cli.HandleError(os.Stderr, err))
	}

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(cli.HandleError(os.Stderr, err))
	}
}

func envFlag(name string) bool {
	v := os.Getenv(name)
	return strings.EqualFold(v, "1") || strings.EqualFold(v, "true")
}

package main

import (
	"os"

	"go-leave/internal/cli"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := cli.NewRootCommand(cli.OpenPostgres).Execute(); err != nil {
		os.Exit(1)
	}
}

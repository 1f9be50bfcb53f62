package main

import (
	"github.com/joho/godotenv"

	"github.com/ljmonteiro/backoffice/internal/cli"
)

func main() {
	// A missing .env is fine; config falls back to defaults.
	_ = godotenv.Load()

	cli.Execute()
}

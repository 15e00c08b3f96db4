package main

import (
	"github.com/joho/godotenv"

	"codeinsight/src/handler/cli"
)

func main() {
	// Load .env if present; real environment variables take precedence
	_ = godotenv.Load()

	cli.Run()
}

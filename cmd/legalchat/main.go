// Package main is the entry point for the legalchat TUI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Tanjamul-Azad/Complete-Legal-Aid/internal/chatui"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var _ = []string{commit, date}

func main() {
	// A local .env can carry the server token during development.
	_ = godotenv.Load()

	if err := chatui.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

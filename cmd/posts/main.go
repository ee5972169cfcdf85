package main

import (
	"os"

	"github.com/aussiebroadwan/posts/internal/posts/app"
)

func main() {
	cmd := NewRootCmd()
	cmd.Version = app.BuildVersion

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

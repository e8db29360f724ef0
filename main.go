package main

import (
	"github.com/joho/godotenv"

	"minter/cmd"
)

// version is injected via ldflags:
// go build -ldflags "-X main.version=0.2.0"
var version = "0.2.0"

func main() {
	// A local .env can carry MINTER_* overrides; missing is fine.
	_ = godotenv.Load()

	cmd.Execute(version)
}

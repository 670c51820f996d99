// Package main is the single-binary entrypoint for battalert.
// battalert tells you to unplug the charger once the battery is full.
package main

import "github.com/battalert/battalert/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}

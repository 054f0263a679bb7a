// Package main is the entry point for the crwrapped CLI tool, which fetches
// Clash Royale battle logs and computes wrapped-style player insights.
package main

import "github.com/pable/go-cr-wrapped/cmd"

func main() {
	cmd.Execute()
}

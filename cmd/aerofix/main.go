// Command aerofix builds, enriches and reconciles the world airport
// dataset. See `aerofix --help` for the stage commands.
package main

import "github.com/aerofix/aerofix/internal/cli"

func main() {
	cli.Execute()
}

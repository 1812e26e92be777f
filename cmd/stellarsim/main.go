package main

import "github.com/orbitalworks/stellarsim/internal/adapters/cli"

func main() {
	cli.Execute()
}

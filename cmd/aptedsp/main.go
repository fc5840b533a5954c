package main

import "aptedsp/internal/cli"

func main() {
	cli.Execute()
}

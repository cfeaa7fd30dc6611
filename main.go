package main

import "github.com/agentic-research/settingsgen/cmd"

func main() {
	cmd.Execute()
}

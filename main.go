package main

import "github.com/agentic-research/shapekit/cmd"

func main() {
	cmd.Execute()
}

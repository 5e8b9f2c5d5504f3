package main

import "github.com/hurou927/prereq-graph/cmd"

func main() {
	cmd.Execute()
}
